// internal/app/features/courses/routes.go
package courses

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the public course catalog routes under whatever base path
// the caller chooses (typically "/api/grades" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeGrades)
	r.Get("/{grade}", h.ServeGrade)
	return r
}
