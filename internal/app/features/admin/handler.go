// internal/app/features/admin/handler.go
//
// Package admin exposes the console API: subject and resource management per
// grade, and the quiz generate/publish pair. Every route requires a
// signed-in admin; the mutation service checks the actor again so the rule
// holds even for callers that bypass HTTP.
package admin

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/matematikhane/matematikhane/internal/app/courseops"
	uierrors "github.com/matematikhane/matematikhane/internal/app/features/errors"
	"github.com/matematikhane/matematikhane/internal/app/quizgen"
	"github.com/matematikhane/matematikhane/internal/app/system/authz"
	"github.com/matematikhane/matematikhane/internal/app/system/inputval"
	"github.com/matematikhane/matematikhane/internal/app/system/timeouts"
	"github.com/matematikhane/matematikhane/internal/domain/models"
)

// Handler owns the admin console endpoints.
type Handler struct {
	Svc    *courseops.Service
	Gen    *quizgen.Client
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

// NewHandler constructs an admin Handler.
func NewHandler(svc *courseops.Service, gen *quizgen.Client, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Gen: gen, Log: logger, ErrLog: errLog}
}

// actor resolves the course-mutation actor from the session user. The role
// middleware has already run, so a missing user here means a wiring bug; the
// empty actor fails the service's own admin check.
func actor(r *http.Request) courseops.Actor {
	role, name, ok := authz.UserCtx(r)
	if !ok {
		return courseops.Actor{}
	}
	return courseops.Actor{Name: name, Role: role}
}

func decode(w http.ResponseWriter, r *http.Request, errLog *uierrors.ErrorLogger, in any) bool {
	if err := json.NewDecoder(r.Body).Decode(in); err != nil {
		errLog.LogBadRequest(w, r, "decode request failed", err, "Invalid request body.")
		return false
	}
	return true
}

// subjectInput is the add/rename subject payload.
type subjectInput struct {
	Title string `json:"title" validate:"required,max=120" label:"Subject title"`
}

// HandleAddSubject handles POST /api/admin/grades/{grade}/subjects.
func (h *Handler) HandleAddSubject(w http.ResponseWriter, r *http.Request) {
	grade := chi.URLParam(r, "grade")

	var in subjectInput
	if !decode(w, r, h.ErrLog, &in) {
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		h.ErrLog.LogBadRequest(w, r, "subject validation failed", nil, result.First())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "add subject")
	defer cancel()

	subject, err := h.Svc.AddSubject(ctx, actor(r), grade, in.Title)
	if err != nil {
		h.ErrLog.LogServiceError(w, r, "add subject failed", err)
		return
	}
	uierrors.JSON(w, http.StatusCreated, subject)
}

// HandleRenameSubject handles PUT /api/admin/grades/{grade}/subjects/{subjectID}.
func (h *Handler) HandleRenameSubject(w http.ResponseWriter, r *http.Request) {
	grade := chi.URLParam(r, "grade")
	subjectID := chi.URLParam(r, "subjectID")

	var in subjectInput
	if !decode(w, r, h.ErrLog, &in) {
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		h.ErrLog.LogBadRequest(w, r, "subject validation failed", nil, result.First())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "rename subject")
	defer cancel()

	if err := h.Svc.RenameSubject(ctx, actor(r), grade, subjectID, in.Title); err != nil {
		h.ErrLog.LogServiceError(w, r, "rename subject failed", err)
		return
	}
	uierrors.JSON(w, http.StatusOK, map[string]bool{"updated": true})
}

// HandleDeleteSubject handles DELETE /api/admin/grades/{grade}/subjects/{subjectID}.
func (h *Handler) HandleDeleteSubject(w http.ResponseWriter, r *http.Request) {
	grade := chi.URLParam(r, "grade")
	subjectID := chi.URLParam(r, "subjectID")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "delete subject")
	defer cancel()

	if err := h.Svc.DeleteSubject(ctx, actor(r), grade, subjectID); err != nil {
		h.ErrLog.LogServiceError(w, r, "delete subject failed", err)
		return
	}
	uierrors.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// resourceInput is the add/edit resource payload.
type resourceInput struct {
	Title string `json:"title" validate:"required,max=200" label:"Resource title"`
	URL   string `json:"url" validate:"required" label:"Resource URL"`
}

// HandleAddResource handles
// POST /api/admin/grades/{grade}/subjects/{subjectID}/{category}.
func (h *Handler) HandleAddResource(w http.ResponseWriter, r *http.Request) {
	grade := chi.URLParam(r, "grade")
	subjectID := chi.URLParam(r, "subjectID")
	category := models.ResourceCategory(chi.URLParam(r, "category"))

	var in resourceInput
	if !decode(w, r, h.ErrLog, &in) {
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		h.ErrLog.LogBadRequest(w, r, "resource validation failed", nil, result.First())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "add resource")
	defer cancel()

	resource, err := h.Svc.AddResource(ctx, actor(r), grade, subjectID, category, in.Title, in.URL)
	if err != nil {
		h.ErrLog.LogServiceError(w, r, "add resource failed", err)
		return
	}
	uierrors.JSON(w, http.StatusCreated, resource)
}

// HandleEditResource handles
// PUT /api/admin/grades/{grade}/subjects/{subjectID}/{category}/{resourceID}.
func (h *Handler) HandleEditResource(w http.ResponseWriter, r *http.Request) {
	grade := chi.URLParam(r, "grade")
	subjectID := chi.URLParam(r, "subjectID")
	category := models.ResourceCategory(chi.URLParam(r, "category"))
	resourceID := chi.URLParam(r, "resourceID")

	var in resourceInput
	if !decode(w, r, h.ErrLog, &in) {
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		h.ErrLog.LogBadRequest(w, r, "resource validation failed", nil, result.First())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "edit resource")
	defer cancel()

	if err := h.Svc.EditResource(ctx, actor(r), grade, subjectID, category, resourceID, in.Title, in.URL); err != nil {
		h.ErrLog.LogServiceError(w, r, "edit resource failed", err)
		return
	}
	uierrors.JSON(w, http.StatusOK, map[string]bool{"updated": true})
}

// HandleDeleteResource handles
// DELETE /api/admin/grades/{grade}/subjects/{subjectID}/{category}/{resourceID}.
func (h *Handler) HandleDeleteResource(w http.ResponseWriter, r *http.Request) {
	grade := chi.URLParam(r, "grade")
	subjectID := chi.URLParam(r, "subjectID")
	category := models.ResourceCategory(chi.URLParam(r, "category"))
	resourceID := chi.URLParam(r, "resourceID")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "delete resource")
	defer cancel()

	if err := h.Svc.DeleteResource(ctx, actor(r), grade, subjectID, category, resourceID); err != nil {
		h.ErrLog.LogServiceError(w, r, "delete resource failed", err)
		return
	}
	uierrors.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
