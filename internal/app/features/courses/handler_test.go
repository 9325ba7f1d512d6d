// internal/app/features/courses/handler_test.go
package courses_test

import (
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/matematikhane/matematikhane/internal/app/features/courses"
	uierrors "github.com/matematikhane/matematikhane/internal/app/features/errors"
	"github.com/matematikhane/matematikhane/internal/domain/models"
	"github.com/matematikhane/matematikhane/internal/testutil"
)

func newHandler(t *testing.T) (*courses.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	return courses.NewHandler(db, uierrors.NewErrorLogger(logger), logger), testutil.NewFixtures(t, db)
}

func TestServeGrades(t *testing.T) {
	h, fx := newHandler(t)
	ctx := testutil.TestContext(t)
	fx.SeedGrade(ctx, "5-sinif", []models.Subject{
		testutil.Subject("s1", "Kesirler"),
		testutil.Subject("s2", "Doğal Sayılar"),
	})

	rec := testutil.NewRecorder()
	h.ServeGrades(rec.ResponseRecorder, testutil.NewRequest(http.MethodGet, "/api/grades"))

	rec.AssertStatus(t, http.StatusOK)

	var got []struct {
		Slug         string `json:"slug"`
		Name         string `json:"name"`
		SubjectCount int    `json:"subjectCount"`
	}
	rec.DecodeJSON(t, &got)
	if len(got) != len(models.Grades) {
		t.Fatalf("grades: got %d, want %d", len(got), len(models.Grades))
	}
	if got[0].Slug != "5-sinif" || got[0].SubjectCount != 2 {
		t.Errorf("5-sinif summary: %+v", got[0])
	}
	if got[3].Slug != "lgs" || got[3].SubjectCount != 0 {
		t.Errorf("lgs summary: %+v", got[3])
	}
}

func TestServeGrade(t *testing.T) {
	h, fx := newHandler(t)
	ctx := testutil.TestContext(t)
	sub := testutil.Subject("s1", "Kesirler")
	sub.Videos = append(sub.Videos, testutil.Resource("r1", "Konu Anlatımı", "https://example.com/v", time.Now().UTC()))
	fx.SeedGrade(ctx, "6-sinif", []models.Subject{sub})

	rec := testutil.NewRecorder()
	req := testutil.WithChiURLParam(testutil.NewRequest(http.MethodGet, "/api/grades/6-sinif"), "grade", "6-sinif")
	h.ServeGrade(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	var got struct {
		Slug     string           `json:"slug"`
		Name     string           `json:"name"`
		Subjects []models.Subject `json:"subjects"`
	}
	rec.DecodeJSON(t, &got)
	if got.Name != "6. Sınıf" {
		t.Errorf("name: got %q", got.Name)
	}
	if len(got.Subjects) != 1 || len(got.Subjects[0].Videos) != 1 {
		t.Errorf("subjects: %+v", got.Subjects)
	}
}

func TestServeGradeEmptyDatabase(t *testing.T) {
	h, _ := newHandler(t)

	rec := testutil.NewRecorder()
	req := testutil.WithChiURLParam(testutil.NewRequest(http.MethodGet, "/api/grades/lgs"), "grade", "lgs")
	h.ServeGrade(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	var got struct {
		Subjects []models.Subject `json:"subjects"`
	}
	rec.DecodeJSON(t, &got)
	if got.Subjects == nil {
		t.Error("subjects should serialize as an empty list, not null")
	}
	if len(got.Subjects) != 0 {
		t.Errorf("subjects: %+v", got.Subjects)
	}
}

func TestServeGradeUnknown(t *testing.T) {
	h, _ := newHandler(t)

	rec := testutil.NewRecorder()
	req := testutil.WithChiURLParam(testutil.NewRequest(http.MethodGet, "/api/grades/9-sinif"), "grade", "9-sinif")
	h.ServeGrade(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
}
