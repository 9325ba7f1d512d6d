// internal/app/courseops/service.go
//
// Package courseops implements every curriculum mutation as a
// read-modify-write cycle against the course store. The unit of write
// atomicity is one grade's whole subject list, so two admins editing the
// same grade concurrently race last-write-wins; edits to different grades
// never conflict. Each operation re-reads the document immediately before
// writing to keep that window small.
package courseops

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/matematikhane/matematikhane/internal/domain/models"
	"go.uber.org/zap"
)

// CourseStore is the slice of the course store the service needs.
type CourseStore interface {
	Load(ctx context.Context) (models.CourseData, error)
	ReplaceSubjects(ctx context.Context, grade string, subjects []models.Subject) error
}

// QuizStore persists published quizzes.
type QuizStore interface {
	Insert(ctx context.Context, quiz models.Quiz) error
}

// Actor identifies the caller of a mutation. Every operation requires the
// admin role and fails with ErrUnauthorized before touching the store
// otherwise.
type Actor struct {
	Name string
	Role string
}

func (a Actor) isAdmin() bool {
	return strings.EqualFold(a.Role, models.RoleAdmin)
}

// Service owns all content-editing operations for the curriculum.
type Service struct {
	courses CourseStore
	quizzes QuizStore
	log     *zap.Logger
}

// New creates a mutation service over the given stores.
func New(courses CourseStore, quizzes QuizStore, logger *zap.Logger) *Service {
	return &Service{courses: courses, quizzes: quizzes, log: logger}
}

// loadSubjects fetches the current subject list for one grade. A load error
// aborts the mutation: writing on top of degraded data would clobber real
// content. The returned list is a deep copy, so the loaded document stays
// untouched until ReplaceSubjects commits the new state; a failed write
// leaves no partial mutation behind.
func (s *Service) loadSubjects(ctx context.Context, grade string) ([]models.Subject, error) {
	data, err := s.courses.Load(ctx)
	if err != nil {
		return nil, err
	}
	gd, ok := data[grade]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneSubjects(gd.Subjects), nil
}

func cloneSubjects(subjects []models.Subject) []models.Subject {
	if subjects == nil {
		return nil
	}
	out := make([]models.Subject, len(subjects))
	for i, sub := range subjects {
		out[i] = sub
		out[i].Videos = cloneResources(sub.Videos)
		out[i].Documents = cloneResources(sub.Documents)
		out[i].Applications = cloneResources(sub.Applications)
	}
	return out
}

func cloneResources(resources []models.Resource) []models.Resource {
	if resources == nil {
		return nil
	}
	out := make([]models.Resource, len(resources))
	copy(out, resources)
	return out
}

// AddSubject creates a subject with empty resource collections and appends
// it to the grade's subject list.
func (s *Service) AddSubject(ctx context.Context, actor Actor, grade, title string) (models.Subject, error) {
	if !actor.isAdmin() {
		return models.Subject{}, ErrUnauthorized
	}
	title = strings.TrimSpace(title)
	if err := required("title", title); err != nil {
		return models.Subject{}, err
	}
	if !models.IsValidGrade(grade) {
		return models.Subject{}, ErrNotFound
	}

	subjects, err := s.loadSubjects(ctx, grade)
	if err != nil {
		return models.Subject{}, err
	}

	subject := models.Subject{
		ID:           uuid.NewString(),
		Title:        title,
		Videos:       []models.Resource{},
		Documents:    []models.Resource{},
		Applications: []models.Resource{},
	}
	subjects = append(subjects, subject)

	if err := s.courses.ReplaceSubjects(ctx, grade, subjects); err != nil {
		return models.Subject{}, err
	}
	s.log.Info("subject added",
		zap.String("grade", grade),
		zap.String("subject_id", subject.ID),
		zap.String("actor", actor.Name))
	return subject, nil
}

// RenameSubject replaces a subject's title, leaving its resources alone.
func (s *Service) RenameSubject(ctx context.Context, actor Actor, grade, subjectID, title string) error {
	if !actor.isAdmin() {
		return ErrUnauthorized
	}
	title = strings.TrimSpace(title)
	if err := required("title", title); err != nil {
		return err
	}
	if !models.IsValidGrade(grade) {
		return ErrNotFound
	}

	subjects, err := s.loadSubjects(ctx, grade)
	if err != nil {
		return err
	}
	idx := indexOfSubject(subjects, subjectID)
	if idx < 0 {
		return ErrNotFound
	}
	subjects[idx].Title = title

	return s.courses.ReplaceSubjects(ctx, grade, subjects)
}

// DeleteSubject removes a subject and, with it, every resource it held.
// Resources have no independent storage, so pruning the subject is the whole
// cascade. Confirmation of destructive intent is the caller's concern.
func (s *Service) DeleteSubject(ctx context.Context, actor Actor, grade, subjectID string) error {
	if !actor.isAdmin() {
		return ErrUnauthorized
	}
	if !models.IsValidGrade(grade) {
		return ErrNotFound
	}

	subjects, err := s.loadSubjects(ctx, grade)
	if err != nil {
		return err
	}
	idx := indexOfSubject(subjects, subjectID)
	if idx < 0 {
		return ErrNotFound
	}
	subjects = append(subjects[:idx], subjects[idx+1:]...)

	if err := s.courses.ReplaceSubjects(ctx, grade, subjects); err != nil {
		return err
	}
	s.log.Info("subject deleted",
		zap.String("grade", grade),
		zap.String("subject_id", subjectID),
		zap.String("actor", actor.Name))
	return nil
}

// AddResource appends a new resource to one subject's category collection.
func (s *Service) AddResource(ctx context.Context, actor Actor, grade, subjectID string, category models.ResourceCategory, title, url string) (models.Resource, error) {
	if !actor.isAdmin() {
		return models.Resource{}, ErrUnauthorized
	}
	title = strings.TrimSpace(title)
	url = strings.TrimSpace(url)
	if err := required("title", title); err != nil {
		return models.Resource{}, err
	}
	if err := required("url", url); err != nil {
		return models.Resource{}, err
	}
	if !models.IsValidCategory(string(category)) {
		return models.Resource{}, &ValidationError{Field: "category", Msg: "is invalid"}
	}
	if !models.IsValidGrade(grade) {
		return models.Resource{}, ErrNotFound
	}

	subjects, err := s.loadSubjects(ctx, grade)
	if err != nil {
		return models.Resource{}, err
	}
	idx := indexOfSubject(subjects, subjectID)
	if idx < 0 {
		return models.Resource{}, ErrNotFound
	}

	now := time.Now().UTC()
	resource := models.Resource{
		ID:        uuid.NewString(),
		Title:     title,
		URL:       url,
		CreatedAt: &now,
	}
	coll := subjects[idx].Category(category)
	*coll = append(*coll, resource)

	if err := s.courses.ReplaceSubjects(ctx, grade, subjects); err != nil {
		return models.Resource{}, err
	}
	return resource, nil
}

// EditResource replaces a resource's title and url in place. The id and the
// original creation timestamp survive the edit.
func (s *Service) EditResource(ctx context.Context, actor Actor, grade, subjectID string, category models.ResourceCategory, resourceID, title, url string) error {
	if !actor.isAdmin() {
		return ErrUnauthorized
	}
	title = strings.TrimSpace(title)
	url = strings.TrimSpace(url)
	if err := required("title", title); err != nil {
		return err
	}
	if err := required("url", url); err != nil {
		return err
	}
	if !models.IsValidCategory(string(category)) {
		return &ValidationError{Field: "category", Msg: "is invalid"}
	}
	if !models.IsValidGrade(grade) {
		return ErrNotFound
	}

	subjects, err := s.loadSubjects(ctx, grade)
	if err != nil {
		return err
	}
	idx := indexOfSubject(subjects, subjectID)
	if idx < 0 {
		return ErrNotFound
	}

	coll := subjects[idx].Category(category)
	found := false
	for i := range *coll {
		if (*coll)[i].ID == resourceID {
			(*coll)[i].Title = title
			(*coll)[i].URL = url
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}

	return s.courses.ReplaceSubjects(ctx, grade, subjects)
}

// DeleteResource removes a resource by id. Deleting an id that is already
// gone is a no-op, not an error, so retries and double-clicks are harmless.
func (s *Service) DeleteResource(ctx context.Context, actor Actor, grade, subjectID string, category models.ResourceCategory, resourceID string) error {
	if !actor.isAdmin() {
		return ErrUnauthorized
	}
	if !models.IsValidCategory(string(category)) {
		return &ValidationError{Field: "category", Msg: "is invalid"}
	}
	if !models.IsValidGrade(grade) {
		return ErrNotFound
	}

	subjects, err := s.loadSubjects(ctx, grade)
	if err != nil {
		return err
	}
	idx := indexOfSubject(subjects, subjectID)
	if idx < 0 {
		return ErrNotFound
	}

	coll := subjects[idx].Category(category)
	kept := (*coll)[:0:0]
	removed := false
	for _, r := range *coll {
		if r.ID == resourceID {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	if !removed {
		return nil
	}
	if kept == nil {
		kept = []models.Resource{}
	}
	*coll = kept

	return s.courses.ReplaceSubjects(ctx, grade, subjects)
}

func indexOfSubject(subjects []models.Subject, id string) int {
	for i := range subjects {
		if subjects[i].ID == id {
			return i
		}
	}
	return -1
}
