// internal/app/features/quiz/routes.go
package quiz

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the public quiz routes under whatever base path the caller
// chooses (typically "/api/quiz" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{quizID}", h.ServeQuiz)
	r.Post("/{quizID}/score", h.HandleScore)
	return r
}
