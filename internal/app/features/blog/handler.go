// internal/app/features/blog/handler.go
//
// Package blog serves the public blog and the admin post editor endpoints.
// Post content arrives as HTML from the editor and is run through a UGC
// sanitizer before it is stored, so stored content is always safe to serve.
package blog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/matematikhane/matematikhane/internal/app/features/errors"
	poststore "github.com/matematikhane/matematikhane/internal/app/store/posts"
	"github.com/matematikhane/matematikhane/internal/app/system/inputval"
	"github.com/matematikhane/matematikhane/internal/app/system/timeouts"
	"github.com/matematikhane/matematikhane/internal/domain/models"
)

// Handler owns the public blog endpoints.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

// AdminHandler owns the admin post editor endpoints.
type AdminHandler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	sanitize *bluemonday.Policy
}

// NewHandler constructs a blog Handler bound to the given Mongo database and
// logger.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger, ErrLog: errLog}
}

// NewAdminHandler constructs an AdminHandler with a UGC sanitation policy.
func NewAdminHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		DB:       db,
		Log:      logger,
		ErrLog:   errLog,
		sanitize: bluemonday.UGCPolicy(),
	}
}

// ServeList handles GET /api/posts. Posts come back newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list posts")
	defer cancel()

	posts, err := poststore.New(h.DB).GetAll(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list posts failed", err, "Could not load posts.")
		return
	}
	uierrors.JSON(w, http.StatusOK, posts)
}

// ServePost handles GET /api/posts/{slug}.
func (h *Handler) ServePost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "load post")
	defer cancel()

	post, err := poststore.New(h.DB).GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.ErrLog.LogNotFound(w, r, "post not found", "Post not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "load post failed", err, "Could not load the post.")
		return
	}
	uierrors.JSON(w, http.StatusOK, post)
}

// postInput is the admin create/update payload.
type postInput struct {
	Title        string `json:"title" validate:"required,max=200" label:"Title"`
	Content      string `json:"content" validate:"required" label:"Content"`
	ThumbnailURL string `json:"thumbnailUrl" validate:"omitempty,url" label:"Thumbnail URL"`
}

// HandleCreate handles POST /api/admin/posts.
func (h *AdminHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in postInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode post failed", err, "Invalid request body.")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		h.ErrLog.LogBadRequest(w, r, "post validation failed", nil, result.First())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create post")
	defer cancel()

	post, err := poststore.New(h.DB).Create(ctx, models.Post{
		Title:        in.Title,
		Content:      h.sanitize.Sanitize(in.Content),
		ThumbnailURL: in.ThumbnailURL,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create post failed", err, "Could not save the post.")
		return
	}

	h.Log.Info("post created",
		zap.String("post_id", post.ID.Hex()),
		zap.String("slug", post.Slug))
	uierrors.JSON(w, http.StatusCreated, post)
}

// HandleUpdate handles PUT /api/admin/posts/{id}.
func (h *AdminHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid post id", err, "Invalid post id.")
		return
	}

	var in postInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode post failed", err, "Invalid request body.")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		h.ErrLog.LogBadRequest(w, r, "post validation failed", nil, result.First())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update post")
	defer cancel()

	post, err := poststore.New(h.DB).Update(ctx, id, in.Title, h.sanitize.Sanitize(in.Content), in.ThumbnailURL)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.ErrLog.LogNotFound(w, r, "post not found for update", "Post not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "update post failed", err, "Could not save the post.")
		return
	}

	h.Log.Info("post updated",
		zap.String("post_id", post.ID.Hex()),
		zap.String("slug", post.Slug))
	uierrors.JSON(w, http.StatusOK, post)
}

// HandleDelete handles DELETE /api/admin/posts/{id}.
func (h *AdminHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid post id", err, "Invalid post id.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete post")
	defer cancel()

	if err := poststore.New(h.DB).Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.ErrLog.LogNotFound(w, r, "post not found for delete", "Post not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "delete post failed", err, "Could not delete the post.")
		return
	}

	h.Log.Info("post deleted", zap.String("post_id", id.Hex()))
	uierrors.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
