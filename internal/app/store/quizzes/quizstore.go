// internal/app/store/quizzes/quizstore.go
package quizstore

import (
	"context"
	"fmt"

	"github.com/matematikhane/matematikhane/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store provides access to the quizzes collection. Quizzes are written once
// at publish time and read by the quiz player; there is no update or delete
// path.
type Store struct {
	c *mongo.Collection
}

// New creates a new quiz store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("quizzes")}
}

// Insert persists a quiz under its own id.
func (s *Store) Insert(ctx context.Context, quiz models.Quiz) error {
	if quiz.ID == "" {
		return fmt.Errorf("quiz id is empty")
	}
	if _, err := s.c.InsertOne(ctx, quiz); err != nil {
		return fmt.Errorf("insert quiz %s: %w", quiz.ID, err)
	}
	return nil
}

// GetByID fetches a quiz. Returns mongo.ErrNoDocuments when the id is
// unknown; the quiz endpoint turns that into a 404, which is what a course
// link whose quiz was deleted out-of-band resolves to.
func (s *Store) GetByID(ctx context.Context, id string) (models.Quiz, error) {
	var quiz models.Quiz
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&quiz)
	if err != nil {
		return models.Quiz{}, err
	}
	return quiz, nil
}
