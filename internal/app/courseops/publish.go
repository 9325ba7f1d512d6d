// internal/app/courseops/publish.go
package courseops

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/matematikhane/matematikhane/internal/domain/models"
	"go.uber.org/zap"
)

// GeneratedQuestion is a question as returned by the quiz generator, before
// it has been given a storage identity.
type GeneratedQuestion struct {
	QuestionText  string   `json:"questionText"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// PublishQuiz turns a generated question set into a persisted quiz plus a
// linked application resource on the target subject.
//
// Two writes happen with no shared transaction: the quiz record first, then
// the course document. If the second write fails (or the subject vanished in
// between), the quiz record stays behind orphaned but unreferenced; the
// admin can retry the publish and nothing is silently duplicated into the
// course document. If the first write fails, the course document is never
// touched.
func (s *Service) PublishQuiz(ctx context.Context, actor Actor, questions []GeneratedQuestion, topic, grade, subjectID string) (string, error) {
	if !actor.isAdmin() {
		return "", ErrUnauthorized
	}
	topic = strings.TrimSpace(topic)
	if err := required("topic", topic); err != nil {
		return "", err
	}
	if len(questions) == 0 {
		return "", &ValidationError{Field: "questions", Msg: "are required"}
	}
	for i, q := range questions {
		if q.QuestionText == "" || len(q.Options) != 4 {
			return "", &ValidationError{Field: fmt.Sprintf("questions[%d]", i), Msg: "must have text and exactly four options"}
		}
		switch q.CorrectAnswer {
		case "A", "B", "C", "D":
		default:
			return "", &ValidationError{Field: fmt.Sprintf("questions[%d].correctAnswer", i), Msg: "must be one of A, B, C, D"}
		}
	}
	gradeInfo, ok := models.GradeBySlug(grade)
	if !ok {
		return "", ErrNotFound
	}

	// The subject title is needed for the denormalized quiz header, so the
	// course document is read before the quiz is written; the re-read below
	// still happens after, to minimize the lost-update window.
	subjects, err := s.loadSubjects(ctx, grade)
	if err != nil {
		return "", err
	}
	idx := indexOfSubject(subjects, subjectID)
	if idx < 0 {
		return "", ErrNotFound
	}
	subjectTitle := subjects[idx].Title

	now := time.Now().UTC()
	quiz := models.Quiz{
		ID:        uuid.NewString(),
		Title:     topic + " Testi",
		Grade:     gradeInfo.Name,
		Subject:   subjectTitle,
		Questions: make([]models.Question, 0, len(questions)),
		CreatedAt: now,
	}
	for _, q := range questions {
		quiz.Questions = append(quiz.Questions, models.Question{
			ID:            uuid.NewString(),
			QuestionText:  q.QuestionText,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		})
	}

	if err := s.quizzes.Insert(ctx, quiz); err != nil {
		return "", err
	}

	// Re-fetch so concurrent subject edits made while the quiz was being
	// written are not clobbered.
	subjects, err = s.loadSubjects(ctx, grade)
	if err != nil {
		return "", err
	}
	idx = indexOfSubject(subjects, subjectID)
	if idx < 0 {
		s.log.Warn("subject vanished during quiz publish; quiz record is orphaned",
			zap.String("quiz_id", quiz.ID),
			zap.String("grade", grade),
			zap.String("subject_id", subjectID))
		return "", ErrNotFound
	}

	link := models.Resource{
		ID:        quiz.ID,
		Title:     quiz.Title,
		URL:       models.QuizURL(quiz.ID),
		CreatedAt: &now,
	}
	subjects[idx].Applications = append(subjects[idx].Applications, link)

	if err := s.courses.ReplaceSubjects(ctx, grade, subjects); err != nil {
		return "", err
	}

	s.log.Info("quiz published",
		zap.String("quiz_id", quiz.ID),
		zap.String("grade", grade),
		zap.String("subject_id", subjectID),
		zap.String("actor", actor.Name))
	return quiz.ID, nil
}
