// internal/app/store/course/coursestore.go
package coursestore

import (
	"context"
	"fmt"

	"github.com/matematikhane/matematikhane/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	// CollectionName holds the single curriculum document.
	CollectionName = "course_data"
	// DocumentID is the fixed id of that document. All grades live under it.
	DocumentID = "allGrades"
)

// storedGrade is the persisted shape of one grade: subjects only. Display
// name and description come from the static catalog at read time, so metadata
// edits in code take effect even against a stale stored document.
type storedGrade struct {
	Subjects []models.Subject `bson:"subjects"`
}

// Store mediates all access to the curriculum document. It is the only
// component that reads or writes the course_data collection.
type Store struct {
	c   *mongo.Collection
	log *zap.Logger
}

// New creates a course store bound to the given database.
func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{c: db.Collection(CollectionName), log: logger}
}

// Empty returns a fully populated curriculum with no subjects: every
// configured grade is present with its static metadata and an empty list.
func Empty() models.CourseData {
	data := make(models.CourseData, len(models.Grades))
	for _, g := range models.Grades {
		data[g.Slug] = models.GradeData{
			Name:        g.Name,
			Description: g.Description,
			Subjects:    []models.Subject{},
		}
	}
	return data
}

// Load fetches the curriculum document and merges stored subjects onto the
// static grade catalog. Every configured grade slug is present in the result.
//
// A missing document is not an error: Load synthesizes the empty structure
// and does NOT persist it, so a read never mutates the store. A storage
// failure degrades the same way, with the error both logged and returned so
// that display callers can serve the empty structure while mutation callers
// can refuse to proceed.
func (s *Store) Load(ctx context.Context) (models.CourseData, error) {
	var raw map[string]storedGrade
	err := s.c.FindOne(ctx, bson.M{"_id": DocumentID}).Decode(&raw)
	if err == mongo.ErrNoDocuments {
		return Empty(), nil
	}
	if err != nil {
		s.log.Error("course document load failed; serving empty curriculum", zap.Error(err))
		return Empty(), fmt.Errorf("load course document: %w", err)
	}

	data := make(models.CourseData, len(models.Grades))
	for _, g := range models.Grades {
		gd := models.GradeData{
			Name:        g.Name,
			Description: g.Description,
			Subjects:    []models.Subject{},
		}
		if stored, ok := raw[g.Slug]; ok && stored.Subjects != nil {
			gd.Subjects = stored.Subjects
		}
		for i := range gd.Subjects {
			sub := &gd.Subjects[i]
			models.SortResourcesNewestFirst(sub.Videos)
			models.SortResourcesNewestFirst(sub.Documents)
			models.SortResourcesNewestFirst(sub.Applications)
		}
		data[g.Slug] = gd
	}
	return data, nil
}

// ReplaceSubjects overwrites one grade's entire subject list, leaving every
// other grade untouched. This is the only write primitive; the unit of write
// atomicity is a whole grade. Upsert handles the very first write when the
// document does not exist yet.
func (s *Store) ReplaceSubjects(ctx context.Context, grade string, subjects []models.Subject) error {
	if !models.IsValidGrade(grade) {
		return fmt.Errorf("unknown grade %q", grade)
	}
	if subjects == nil {
		subjects = []models.Subject{}
	}
	update := bson.M{"$set": bson.M{grade + ".subjects": subjects}}
	opts := options.Update().SetUpsert(true)
	if _, err := s.c.UpdateOne(ctx, bson.M{"_id": DocumentID}, update, opts); err != nil {
		return fmt.Errorf("replace subjects for %s: %w", grade, err)
	}
	return nil
}
