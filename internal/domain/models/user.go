package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. Identity itself is delegated to Google sign-in; the user
// record only carries the role claim the app needs.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	EmailCI   string             `bson:"email_ci" json:"email_ci"` // lowercase, diacritics-stripped
	Name      string             `bson:"name" json:"name"`
	Role      string             `bson:"role" json:"role"`
	Status    string             `bson:"status" json:"status"` // "active" or "disabled"
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
