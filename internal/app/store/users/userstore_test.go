package userstore_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	userstore "github.com/matematikhane/matematikhane/internal/app/store/users"
	"github.com/matematikhane/matematikhane/internal/domain/models"
	"github.com/matematikhane/matematikhane/internal/testutil"
)

func TestStore_EnsureUser_FirstSignIn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx := testutil.TestContext(t)

	user, err := store.EnsureUser(ctx, "ayse@example.com", "Ayşe")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	if user.ID.IsZero() {
		t.Error("id not assigned")
	}
	if user.Role != models.RoleStudent {
		t.Errorf("first sign-in role: got %q, want student", user.Role)
	}
	if user.Email != "ayse@example.com" {
		t.Errorf("email: got %q", user.Email)
	}
}

func TestStore_EnsureUser_RepeatKeepsRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx := testutil.TestContext(t)

	first, err := store.EnsureUser(ctx, "ayse@example.com", "Ayşe")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	if err := store.PromoteAdmin(ctx, "ayse@example.com"); err != nil {
		t.Fatalf("PromoteAdmin failed: %v", err)
	}

	// A later sign-in refreshes the name but never demotes the role.
	again, err := store.EnsureUser(ctx, "AYSE@example.com", "Ayşe Yılmaz")
	if err != nil {
		t.Fatalf("repeat EnsureUser failed: %v", err)
	}
	if again.ID != first.ID {
		t.Error("case-folded email must resolve to the same user")
	}
	if again.Role != models.RoleAdmin {
		t.Errorf("role: got %q, want admin preserved", again.Role)
	}
	if again.Name != "Ayşe Yılmaz" {
		t.Errorf("name should refresh: got %q", again.Name)
	}
}

func TestStore_PromoteAdmin_CreatesWhenMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx := testutil.TestContext(t)

	if err := store.PromoteAdmin(ctx, "ops@example.com"); err != nil {
		t.Fatalf("PromoteAdmin failed: %v", err)
	}
	user, err := store.GetByEmail(ctx, "ops@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("role: got %q, want admin", user.Role)
	}
}

func TestStore_GetByEmail_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx := testutil.TestContext(t)

	_, err := store.GetByEmail(ctx, "nobody@example.com")
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("got %v, want ErrNoDocuments", err)
	}
}
