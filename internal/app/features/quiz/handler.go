// internal/app/features/quiz/handler.go
//
// Package quiz serves published quizzes to students and grades submitted
// answers. The correct answers never leave the server; the take endpoint
// strips them and the score endpoint resolves them from the stored document.
package quiz

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/matematikhane/matematikhane/internal/app/features/errors"
	quizstore "github.com/matematikhane/matematikhane/internal/app/store/quizzes"
	"github.com/matematikhane/matematikhane/internal/app/system/timeouts"
)

// Handler owns the public quiz endpoints.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

// NewHandler constructs a quiz Handler bound to the given Mongo database and
// logger.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger, ErrLog: errLog}
}

// takeQuestion is a question as shown to a student: no answer key.
type takeQuestion struct {
	ID           string   `json:"id"`
	QuestionText string   `json:"questionText"`
	Options      []string `json:"options"`
}

type takeQuiz struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Grade     string         `json:"grade"`
	Subject   string         `json:"subject"`
	Questions []takeQuestion `json:"questions"`
	CreatedAt time.Time      `json:"createdAt"`
}

// ServeQuiz handles GET /api/quiz/{quizID}.
func (h *Handler) ServeQuiz(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizID")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "load quiz")
	defer cancel()

	q, err := quizstore.New(h.DB).GetByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.ErrLog.LogNotFound(w, r, "quiz not found", "Quiz not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "load quiz failed", err, "Could not load the quiz.")
		return
	}

	out := takeQuiz{
		ID:        q.ID,
		Title:     q.Title,
		Grade:     q.Grade,
		Subject:   q.Subject,
		Questions: make([]takeQuestion, 0, len(q.Questions)),
		CreatedAt: q.CreatedAt,
	}
	for _, question := range q.Questions {
		out.Questions = append(out.Questions, takeQuestion{
			ID:           question.ID,
			QuestionText: question.QuestionText,
			Options:      question.Options,
		})
	}
	uierrors.JSON(w, http.StatusOK, out)
}

// scoreInput is the submitted attempt: selected option text per question id.
type scoreInput struct {
	Answers map[string]string `json:"answers"`
}

// HandleScore handles POST /api/quiz/{quizID}/score.
func (h *Handler) HandleScore(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizID")

	var in scoreInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode score request failed", err, "Invalid request body.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "score quiz")
	defer cancel()

	q, err := quizstore.New(h.DB).GetByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.ErrLog.LogNotFound(w, r, "quiz not found for scoring", "Quiz not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "load quiz for scoring failed", err, "Could not score the quiz.")
		return
	}

	result := Score(q, in.Answers)
	h.Log.Info("quiz scored",
		zap.String("quiz_id", q.ID),
		zap.Int("correct", result.Correct),
		zap.Int("total", result.Total),
		zap.Bool("passed", result.Passed))
	uierrors.JSON(w, http.StatusOK, result)
}
