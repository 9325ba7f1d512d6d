// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matematikhane/matematikhane/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// Subject builds an in-memory subject with empty resource collections.
func Subject(id, title string) models.Subject {
	return models.Subject{
		ID:           id,
		Title:        title,
		Videos:       []models.Resource{},
		Documents:    []models.Resource{},
		Applications: []models.Resource{},
	}
}

// Resource builds an in-memory resource with a creation time.
func Resource(id, title, url string, created time.Time) models.Resource {
	return models.Resource{ID: id, Title: title, URL: url, CreatedAt: &created}
}

// SeedGrade writes subjects for one grade straight into the course document,
// bypassing the store's write path.
func (f *Fixtures) SeedGrade(ctx context.Context, grade string, subjects []models.Subject) {
	f.t.Helper()

	_, err := f.db.Collection("course_data").UpdateByID(ctx, "allGrades",
		bson.M{"$set": bson.M{grade + ".subjects": subjects}},
		options.Update().SetUpsert(true))
	if err != nil {
		f.t.Fatalf("failed to seed grade %s: %v", grade, err)
	}
}

// CreateQuiz inserts a quiz document and returns it.
func (f *Fixtures) CreateQuiz(ctx context.Context, title, grade, subject string, questions []models.Question) models.Quiz {
	f.t.Helper()

	quiz := models.Quiz{
		ID:        primitive.NewObjectID().Hex(),
		Title:     title,
		Grade:     grade,
		Subject:   subject,
		Questions: questions,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("quizzes").InsertOne(ctx, quiz); err != nil {
		f.t.Fatalf("failed to create test quiz: %v", err)
	}
	return quiz
}

// CreatePost inserts a blog post document and returns it.
func (f *Fixtures) CreatePost(ctx context.Context, slug, title, content string) models.Post {
	f.t.Helper()

	now := time.Now().UTC()
	post := models.Post{
		ID:        primitive.NewObjectID(),
		Slug:      slug,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("posts").InsertOne(ctx, post); err != nil {
		f.t.Fatalf("failed to create test post: %v", err)
	}
	return post
}
