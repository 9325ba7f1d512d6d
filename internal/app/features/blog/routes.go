// internal/app/features/blog/routes.go
package blog

import (
	"github.com/go-chi/chi/v5"

	"github.com/matematikhane/matematikhane/internal/app/system/auth"
)

// Routes mounts the public blog routes under whatever base path the caller
// chooses (typically "/api/posts" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/{slug}", h.ServePost)
	return r
}

// AdminRoutes mounts the post editor routes (typically "/api/admin/posts").
func AdminRoutes(h *AdminHandler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole("admin"))

		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
