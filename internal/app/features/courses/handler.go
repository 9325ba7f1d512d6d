// internal/app/features/courses/handler.go
package courses

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/matematikhane/matematikhane/internal/app/features/errors"
	coursestore "github.com/matematikhane/matematikhane/internal/app/store/course"
	"github.com/matematikhane/matematikhane/internal/app/system/timeouts"
	"github.com/matematikhane/matematikhane/internal/domain/models"
)

// Handler owns the public course catalog endpoints: the grade list and the
// per-grade subject/resource detail.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

// NewHandler constructs a courses Handler bound to the given Mongo database
// and logger.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger, ErrLog: errLog}
}

// gradeSummary is one entry in the grade list response.
type gradeSummary struct {
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	SubjectCount int    `json:"subjectCount"`
}

// gradeDetail is the full per-grade response.
type gradeDetail struct {
	Slug        string           `json:"slug"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Subjects    []models.Subject `json:"subjects"`
}

// ServeGrades handles GET /api/grades.
//
// The grade catalog itself is static; only the subject counts come from the
// database. A storage failure degrades to zero counts rather than a 500 so
// the public site keeps its navigation.
func (h *Handler) ServeGrades(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list grades")
	defer cancel()

	data, err := coursestore.New(h.DB, h.Log).Load(ctx)
	if err != nil {
		h.Log.Warn("grade list degraded to empty subject counts", zap.Error(err))
	}

	out := make([]gradeSummary, 0, len(models.Grades))
	for _, g := range models.Grades {
		out = append(out, gradeSummary{
			Slug:         g.Slug,
			Name:         g.Name,
			Description:  g.Description,
			SubjectCount: len(data[g.Slug].Subjects),
		})
	}
	uierrors.JSON(w, http.StatusOK, out)
}

// ServeGrade handles GET /api/grades/{grade}.
func (h *Handler) ServeGrade(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "grade")
	grade, ok := models.GradeBySlug(slug)
	if !ok {
		h.ErrLog.LogNotFound(w, r, "unknown grade requested", "Grade not found.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "load grade")
	defer cancel()

	data, err := coursestore.New(h.DB, h.Log).Load(ctx)
	if err != nil {
		h.Log.Warn("grade detail degraded to empty subjects",
			zap.String("grade", slug), zap.Error(err))
	}

	uierrors.JSON(w, http.StatusOK, gradeDetail{
		Slug:        grade.Slug,
		Name:        grade.Name,
		Description: grade.Description,
		Subjects:    data[grade.Slug].Subjects,
	})
}
