// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/matematikhane/matematikhane/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the users collection. Users carry only the role
// claim the app needs; identity verification is Google's job.
type Store struct {
	c *mongo.Collection
}

// New creates a new user store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByEmail looks a user up by case-folded email.
// Returns mongo.ErrNoDocuments when no user matches.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(email)}).Decode(&user)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// EnsureUser returns the user for the given email, creating an active
// student record on first sign-in. Name is refreshed from the identity
// provider on every call.
func (s *Store) EnsureUser(ctx context.Context, email, name string) (models.User, error) {
	now := time.Now().UTC()
	filter := bson.M{"email_ci": text.Fold(email)}
	update := bson.M{
		"$set": bson.M{
			"name":       name,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"email":      email,
			"email_ci":   text.Fold(email),
			"role":       models.RoleStudent,
			"status":     "active",
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var user models.User
	if err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// PromoteAdmin creates or promotes the user with the given email to the
// admin role. Used by the startup bootstrap so a configured operator can
// always reach the admin console.
func (s *Store) PromoteAdmin(ctx context.Context, email string) error {
	now := time.Now().UTC()
	filter := bson.M{"email_ci": text.Fold(email)}
	update := bson.M{
		"$set": bson.M{
			"role":       models.RoleAdmin,
			"status":     "active",
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"email":      email,
			"email_ci":   text.Fold(email),
			"name":       email,
			"created_at": now,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, filter, update, opts)
	return err
}
