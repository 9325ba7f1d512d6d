// internal/app/features/errors/errors_test.go
package errors_test

import (
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/matematikhane/matematikhane/internal/app/courseops"
	uierrors "github.com/matematikhane/matematikhane/internal/app/features/errors"
)

func TestLogServiceError(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		status   int
		contains string
	}{
		{
			name: "validation names the field",
			err:  &courseops.ValidationError{Field: "title", Msg: "is required"},
			// The admin has to know which field failed, not just that one did.
			status:   http.StatusBadRequest,
			contains: "title: is required",
		},
		{
			name:     "unauthorized",
			err:      courseops.ErrUnauthorized,
			status:   http.StatusForbidden,
			contains: "permission",
		},
		{
			name:     "not found",
			err:      courseops.ErrNotFound,
			status:   http.StatusNotFound,
			contains: "Not found",
		},
		{
			name:     "unknown errors stay internal",
			err:      stderrors.New("connection reset"),
			status:   http.StatusInternalServerError,
			contains: "Something went wrong",
		},
	}

	errLog := uierrors.NewErrorLogger(zap.NewNop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/admin/grades/5-sinif/subjects", nil)
			errLog.LogServiceError(rec, req, "test failure", tc.err)

			if rec.Code != tc.status {
				t.Errorf("status: got %d, want %d", rec.Code, tc.status)
			}
			if !strings.Contains(rec.Body.String(), tc.contains) {
				t.Errorf("body %q does not contain %q", rec.Body.String(), tc.contains)
			}
		})
	}

	t.Run("unknown error detail never reaches the client", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		errLog.LogServiceError(rec, req, "test failure", stderrors.New("mongo: topology closed"))
		if strings.Contains(rec.Body.String(), "topology") {
			t.Errorf("internal detail leaked: %s", rec.Body.String())
		}
	})
}
