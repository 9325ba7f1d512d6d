// internal/app/store/posts/poststore.go
package poststore

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/matematikhane/matematikhane/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the posts collection (blog).
type Store struct {
	c *mongo.Collection
}

// New creates a new post store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("posts")}
}

// turkishASCII maps Turkish letters to their ASCII forms so slugs stay
// readable instead of losing characters to the strip below.
var turkishASCII = strings.NewReplacer(
	"ı", "i", "İ", "i", "ğ", "g", "Ğ", "g", "ü", "u", "Ü", "u",
	"ş", "s", "Ş", "s", "ö", "o", "Ö", "o", "ç", "c", "Ç", "c",
)

var slugDash = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-friendly slug from a post title.
func Slugify(title string) string {
	s := turkishASCII.Replace(strings.TrimSpace(title))
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "'", "")
	s = slugDash.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// GetAll returns every post, newest first.
func (s *Store) GetAll(ctx context.Context) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := []models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetBySlug returns the post published under the given slug.
// Returns mongo.ErrNoDocuments when no post matches.
func (s *Store) GetBySlug(ctx context.Context, slug string) (models.Post, error) {
	var post models.Post
	err := s.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&post)
	if err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// Create inserts a new post, deriving its slug from the title.
func (s *Store) Create(ctx context.Context, post models.Post) (models.Post, error) {
	now := time.Now().UTC()
	post.ID = primitive.NewObjectID()
	post.Slug = Slugify(post.Title)
	post.CreatedAt = now
	post.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, post); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// Update rewrites an existing post's content fields. A changed title
// regenerates the slug; CreatedAt is preserved.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, title, content, thumbnailURL string) (models.Post, error) {
	set := bson.M{
		"content":       content,
		"thumbnail_url": thumbnailURL,
		"updated_at":    time.Now().UTC(),
	}
	if title != "" {
		set["title"] = title
		set["slug"] = Slugify(title)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Post
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		return models.Post{}, err
	}
	return updated, nil
}

// Delete removes a post by id. Returns mongo.ErrNoDocuments when the post
// does not exist.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
