// internal/app/features/login/handler_test.go
package login_test

import (
	"errors"
	"net/http"
	"testing"

	"go.uber.org/zap"

	uierrors "github.com/matematikhane/matematikhane/internal/app/features/errors"
	"github.com/matematikhane/matematikhane/internal/app/features/login"
	userstore "github.com/matematikhane/matematikhane/internal/app/store/users"
	"github.com/matematikhane/matematikhane/internal/app/system/auth"
	"github.com/matematikhane/matematikhane/internal/domain/models"
	"github.com/matematikhane/matematikhane/internal/testutil"
)

// stubVerifier accepts one hard-coded token and rejects everything else.
type stubVerifier struct {
	claims login.Claims
}

func (s stubVerifier) Verify(idToken string) (login.Claims, error) {
	if idToken != "good-token" {
		return login.Claims{}, errors.New("bad token")
	}
	return s.claims, nil
}

func newHandler(t *testing.T) (*login.Handler, *userstore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "test-session", "", false, logger)
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	verifier := stubVerifier{claims: login.Claims{Email: "ayse@example.com", Name: "Ayşe"}}
	return login.NewHandler(db, sm, verifier, uierrors.NewErrorLogger(logger), logger), userstore.New(db)
}

func TestHandleLogin(t *testing.T) {
	h, users := newHandler(t)
	ctx := testutil.TestContext(t)

	rec := testutil.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/login", map[string]string{"idToken": "good-token"})
	h.HandleLogin(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	var got struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	rec.DecodeJSON(t, &got)
	if got.Email != "ayse@example.com" || got.Role != models.RoleStudent {
		t.Errorf("session response: %+v", got)
	}

	// A session cookie was issued.
	if len(rec.Result().Cookies()) == 0 {
		t.Error("no session cookie set")
	}

	// The user record was created.
	user, err := users.GetByEmail(ctx, "ayse@example.com")
	if err != nil {
		t.Fatalf("user not created: %v", err)
	}
	if user.Name != "Ayşe" {
		t.Errorf("name: got %q", user.Name)
	}
}

func TestHandleLoginPreservesAdminRole(t *testing.T) {
	h, users := newHandler(t)
	ctx := testutil.TestContext(t)

	if err := users.PromoteAdmin(ctx, "ayse@example.com"); err != nil {
		t.Fatalf("PromoteAdmin failed: %v", err)
	}

	rec := testutil.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/login", map[string]string{"idToken": "good-token"})
	h.HandleLogin(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"role":"admin"`)
}

func TestHandleLoginBadToken(t *testing.T) {
	h, _ := newHandler(t)

	rec := testutil.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/login", map[string]string{"idToken": "forged"})
	h.HandleLogin(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestHandleLoginMissingToken(t *testing.T) {
	h, _ := newHandler(t)

	rec := testutil.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/login", map[string]string{})
	h.HandleLogin(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandleMe(t *testing.T) {
	h, _ := newHandler(t)

	rec := testutil.NewRecorder()
	h.HandleMe(rec.ResponseRecorder, testutil.NewRequest(http.MethodGet, "/api/me"))
	rec.AssertStatus(t, http.StatusUnauthorized)

	rec = testutil.NewRecorder()
	req := testutil.WithUser(testutil.NewRequest(http.MethodGet, "/api/me"), testutil.AdminUser())
	h.HandleMe(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"role":"admin"`)
}
