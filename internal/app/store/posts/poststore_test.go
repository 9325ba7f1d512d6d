package poststore_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	poststore "github.com/matematikhane/matematikhane/internal/app/store/posts"
	"github.com/matematikhane/matematikhane/internal/domain/models"
	"github.com/matematikhane/matematikhane/internal/testutil"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"LGS'ye Hazırlık İpuçları", "lgsye-hazirlik-ipuclari"},
		{"Kesirler: Toplama & Çıkarma", "kesirler-toplama-cikarma"},
		{"  Boşluklu   Başlık  ", "bosluklu-baslik"},
	}
	for _, c := range cases {
		if got := poststore.Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	ctx := testutil.TestContext(t)

	post, err := store.Create(ctx, models.Post{
		Title:   "Sınav Kaygısı",
		Content: "<p>İçerik</p>",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if post.ID.IsZero() {
		t.Error("id not assigned")
	}
	if post.Slug != "sinav-kaygisi" {
		t.Errorf("slug: got %q", post.Slug)
	}
	if post.CreatedAt.IsZero() || post.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}

	got, err := store.GetBySlug(ctx, "sinav-kaygisi")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if got.Content != "<p>İçerik</p>" {
		t.Errorf("content: got %q", got.Content)
	}
}

func TestStore_GetAll_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	ctx := testutil.TestContext(t)

	for _, title := range []string{"Birinci", "İkinci", "Üçüncü"} {
		if _, err := store.Create(ctx, models.Post{Title: title, Content: "x"}); err != nil {
			t.Fatalf("Create(%s) failed: %v", title, err)
		}
	}

	posts, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("posts: got %d, want 3", len(posts))
	}
	if posts[0].Title != "Üçüncü" {
		t.Errorf("newest post should come first, got %q", posts[0].Title)
	}
}

func TestStore_Update_TitleChangeRegeneratesSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	ctx := testutil.TestContext(t)

	post, err := store.Create(ctx, models.Post{Title: "Eski Başlık", Content: "x"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := store.Update(ctx, post.ID, "Yeni Başlık", "y", "")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Slug != "yeni-baslik" {
		t.Errorf("slug: got %q", updated.Slug)
	}
	if updated.Content != "y" {
		t.Errorf("content: got %q", updated.Content)
	}
	if !updated.UpdatedAt.After(post.UpdatedAt) {
		t.Error("updated_at should advance")
	}

	if _, err := store.GetBySlug(ctx, "eski-baslik"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Error("old slug should no longer resolve")
	}
}

func TestStore_Update_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	ctx := testutil.TestContext(t)

	_, err := store.Update(ctx, primitive.NewObjectID(), "X", "y", "")
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("got %v, want ErrNoDocuments", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	ctx := testutil.TestContext(t)

	post, err := store.Create(ctx, models.Post{Title: "Silinecek", Content: "x"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.Delete(ctx, post.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, post.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("second delete: got %v, want ErrNoDocuments", err)
	}
}
