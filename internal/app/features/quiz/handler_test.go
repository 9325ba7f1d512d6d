// internal/app/features/quiz/handler_test.go
package quiz_test

import (
	"net/http"
	"strings"
	"testing"

	"go.uber.org/zap"

	uierrors "github.com/matematikhane/matematikhane/internal/app/features/errors"
	"github.com/matematikhane/matematikhane/internal/app/features/quiz"
	"github.com/matematikhane/matematikhane/internal/domain/models"
	"github.com/matematikhane/matematikhane/internal/testutil"
)

func newHandler(t *testing.T) (*quiz.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	return quiz.NewHandler(db, uierrors.NewErrorLogger(logger), logger), testutil.NewFixtures(t, db)
}

func seededQuestions() []models.Question {
	return []models.Question{
		{ID: "q1", QuestionText: "1/2 + 1/4 kaçtır?", Options: []string{"3/4", "1/6", "2/6", "1/8"}, CorrectAnswer: "A"},
		{ID: "q2", QuestionText: "2x = 10 ise x?", Options: []string{"2", "3", "5", "10"}, CorrectAnswer: "C"},
	}
}

func TestServeQuiz(t *testing.T) {
	h, fx := newHandler(t)
	ctx := testutil.TestContext(t)
	created := fx.CreateQuiz(ctx, "Kesirler Testi", "5. Sınıf", "Kesirler", seededQuestions())

	rec := testutil.NewRecorder()
	req := testutil.WithChiURLParam(testutil.NewRequest(http.MethodGet, "/api/quiz/"+created.ID), "quizID", created.ID)
	h.ServeQuiz(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	var got struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		Questions []struct {
			ID           string   `json:"id"`
			QuestionText string   `json:"questionText"`
			Options      []string `json:"options"`
		} `json:"questions"`
	}
	rec.DecodeJSON(t, &got)
	if got.ID != created.ID || got.Title != "Kesirler Testi" {
		t.Errorf("quiz mismatch: %+v", got)
	}
	if len(got.Questions) != 2 {
		t.Fatalf("questions: got %d, want 2", len(got.Questions))
	}
	// The take payload must not leak the answer key.
	if strings.Contains(rec.Body.String(), "correctAnswer") {
		t.Error("response leaks the answer key")
	}
}

func TestServeQuizNotFound(t *testing.T) {
	h, _ := newHandler(t)

	rec := testutil.NewRecorder()
	req := testutil.WithChiURLParam(testutil.NewRequest(http.MethodGet, "/api/quiz/nope"), "quizID", "nope")
	h.ServeQuiz(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestHandleScore(t *testing.T) {
	h, fx := newHandler(t)
	ctx := testutil.TestContext(t)
	created := fx.CreateQuiz(ctx, "Kesirler Testi", "5. Sınıf", "Kesirler", seededQuestions())

	body := map[string]any{"answers": map[string]string{"q1": "3/4", "q2": "10"}}
	rec := testutil.NewRecorder()
	req := testutil.WithChiURLParam(
		testutil.NewJSONRequest(t, http.MethodPost, "/api/quiz/"+created.ID+"/score", body),
		"quizID", created.ID)
	h.HandleScore(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	var res quiz.Result
	rec.DecodeJSON(t, &res)
	if res.Total != 2 || res.Correct != 1 || res.Percent != 50 || res.Passed {
		t.Errorf("score: %+v, want 1/2 50%% failed", res)
	}
	if res.Questions[1].CorrectAnswer != "5" {
		t.Errorf("result should reveal the correct option, got %q", res.Questions[1].CorrectAnswer)
	}
}

func TestHandleScoreQuizMissing(t *testing.T) {
	h, _ := newHandler(t)

	rec := testutil.NewRecorder()
	req := testutil.WithChiURLParam(
		testutil.NewJSONRequest(t, http.MethodPost, "/api/quiz/nope/score", map[string]any{"answers": map[string]string{}}),
		"quizID", "nope")
	h.HandleScore(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
}
