// internal/app/features/admin/quizzes.go
package admin

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/matematikhane/matematikhane/internal/app/courseops"
	uierrors "github.com/matematikhane/matematikhane/internal/app/features/errors"
	"github.com/matematikhane/matematikhane/internal/app/quizgen"
	"github.com/matematikhane/matematikhane/internal/app/system/inputval"
	"github.com/matematikhane/matematikhane/internal/app/system/timeouts"
	"github.com/matematikhane/matematikhane/internal/domain/models"
)

// generateInput is the quiz generation request. The grade slug is resolved
// to its display name before it reaches the model prompt.
type generateInput struct {
	Topic  string `json:"topic" validate:"required,max=200" label:"Topic"`
	Grade  string `json:"grade" validate:"required" label:"Grade"`
	Prompt string `json:"prompt" validate:"max=1000" label:"Extra instructions"`
}

// HandleGenerateQuiz handles POST /api/admin/quizzes/generate. The generated
// questions are returned for the admin to review; nothing is stored until
// publish.
func (h *Handler) HandleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var in generateInput
	if !decode(w, r, h.ErrLog, &in) {
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		h.ErrLog.LogBadRequest(w, r, "generate validation failed", nil, result.First())
		return
	}
	grade, ok := models.GradeBySlug(in.Grade)
	if !ok {
		h.ErrLog.LogBadRequest(w, r, "unknown grade for generation", nil, "Unknown grade.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Generate(), h.Log, "generate quiz")
	defer cancel()

	questions, err := h.Gen.Generate(ctx, quizgen.Input{
		Topic:  in.Topic,
		Grade:  grade.Name,
		Prompt: in.Prompt,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "quiz generation failed", err, "Quiz generation failed. Please try again.")
		return
	}

	h.Log.Info("quiz generated",
		zap.String("topic", in.Topic),
		zap.String("grade", in.Grade),
		zap.Int("questions", len(questions)))
	uierrors.JSON(w, http.StatusOK, map[string]any{"questions": questions})
}

// publishInput is the reviewed quiz the admin wants to make live.
type publishInput struct {
	Topic     string                        `json:"topic" validate:"required,max=200" label:"Topic"`
	Grade     string                        `json:"grade" validate:"required" label:"Grade"`
	SubjectID string                        `json:"subjectId" validate:"required" label:"Subject"`
	Questions []courseops.GeneratedQuestion `json:"questions" validate:"required,len=5" label:"Questions"`
}

// HandlePublishQuiz handles POST /api/admin/quizzes/publish. On success the
// quiz is stored and linked into the subject's applications list, and the
// new quiz id comes back to the caller.
func (h *Handler) HandlePublishQuiz(w http.ResponseWriter, r *http.Request) {
	var in publishInput
	if !decode(w, r, h.ErrLog, &in) {
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		h.ErrLog.LogBadRequest(w, r, "publish validation failed", nil, result.First())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "publish quiz")
	defer cancel()

	quizID, err := h.Svc.PublishQuiz(ctx, actor(r), in.Questions, in.Topic, in.Grade, in.SubjectID)
	if err != nil {
		h.ErrLog.LogServiceError(w, r, "publish quiz failed", err)
		return
	}

	uierrors.JSON(w, http.StatusCreated, map[string]string{
		"quizId": quizID,
		"url":    models.QuizURL(quizID),
	})
}
