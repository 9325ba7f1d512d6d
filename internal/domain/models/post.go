package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a blog entry. Slug is derived from the title and unique across
// the collection; it is the public URL key.
type Post struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Slug         string             `bson:"slug" json:"slug"`
	Title        string             `bson:"title" json:"title"`
	Content      string             `bson:"content" json:"content"`
	ThumbnailURL string             `bson:"thumbnail_url,omitempty" json:"thumbnailUrl,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}
