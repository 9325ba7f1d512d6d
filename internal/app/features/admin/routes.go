// internal/app/features/admin/routes.go
package admin

import (
	"github.com/go-chi/chi/v5"

	"github.com/matematikhane/matematikhane/internal/app/system/auth"
)

// Routes mounts the admin console routes under whatever base path the caller
// chooses (typically "/api/admin" from bootstrap).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole("admin"))

		// Subjects per grade.
		pr.Post("/grades/{grade}/subjects", h.HandleAddSubject)
		pr.Put("/grades/{grade}/subjects/{subjectID}", h.HandleRenameSubject)
		pr.Delete("/grades/{grade}/subjects/{subjectID}", h.HandleDeleteSubject)

		// Resources within a subject category.
		pr.Post("/grades/{grade}/subjects/{subjectID}/{category}", h.HandleAddResource)
		pr.Put("/grades/{grade}/subjects/{subjectID}/{category}/{resourceID}", h.HandleEditResource)
		pr.Delete("/grades/{grade}/subjects/{subjectID}/{category}/{resourceID}", h.HandleDeleteResource)

		// Quiz generation and publishing.
		pr.Post("/quizzes/generate", h.HandleGenerateQuiz)
		pr.Post("/quizzes/publish", h.HandlePublishQuiz)
	})

	return r
}
