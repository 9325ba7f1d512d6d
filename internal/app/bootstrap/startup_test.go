package bootstrap

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/matematikhane/matematikhane/internal/domain/models"
	"github.com/matematikhane/matematikhane/internal/testutil"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestStartup_AdminBootstrap(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	deps := DBDeps{MongoDatabase: db}
	appCfg := AppConfig{AdminEmail: "ops@example.com"}

	if err := Startup(ctx, nil, appCfg, deps, testLogger()); err != nil {
		t.Fatalf("Startup failed: %v", err)
	}

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"email": "ops@example.com"}).Decode(&user); err != nil {
		t.Fatalf("admin user not created: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("role: got %q, want admin", user.Role)
	}
	if user.Status != "active" {
		t.Errorf("status: got %q, want active", user.Status)
	}
}

func TestStartup_NoAdminConfigured(t *testing.T) {
	deps := DBDeps{}
	if err := Startup(testutil.TestContext(t), nil, AppConfig{}, deps, testLogger()); err != nil {
		t.Fatalf("Startup without admin email should be a no-op, got %v", err)
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	deps := DBDeps{MongoDatabase: db}
	for i := 0; i < 2; i++ {
		if err := EnsureSchema(ctx, nil, AppConfig{}, deps, testLogger()); err != nil {
			t.Fatalf("EnsureSchema run %d failed: %v", i+1, err)
		}
	}
}
