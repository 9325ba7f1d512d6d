// internal/app/features/login/handler.go
//
// Package login signs users in with a Google ID token. The client obtains
// the token from Google Identity Services; we verify it against our client
// id, upsert the user record, and establish a cookie session. There are no
// local passwords.
package login

import (
	"encoding/json"
	"net/http"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/matematikhane/matematikhane/internal/app/features/errors"
	userstore "github.com/matematikhane/matematikhane/internal/app/store/users"
	"github.com/matematikhane/matematikhane/internal/app/system/auth"
	"github.com/matematikhane/matematikhane/internal/app/system/timeouts"
)

// Claims are the identity fields we need from a verified Google ID token.
type Claims struct {
	Email string
	Name  string
}

// TokenVerifier validates a raw ID token and extracts its claims. Tests
// substitute a stub; production uses GoogleVerifier.
type TokenVerifier interface {
	Verify(idToken string) (Claims, error)
}

// GoogleVerifier checks tokens against Google's signing keys and our OAuth
// client id.
type GoogleVerifier struct {
	ClientID string
}

// Verify implements TokenVerifier.
func (g GoogleVerifier) Verify(idToken string) (Claims, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{g.ClientID}); err != nil {
		return Claims{}, err
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return Claims{}, err
	}
	return Claims{Email: claimSet.Email, Name: claimSet.Name}, nil
}

// Handler owns the sign-in and sign-out endpoints.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Sessions *auth.SessionManager
	Verifier TokenVerifier
}

// NewHandler constructs a login Handler.
func NewHandler(db *mongo.Database, sm *auth.SessionManager, verifier TokenVerifier, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger, ErrLog: errLog, Sessions: sm, Verifier: verifier}
}

type loginInput struct {
	IDToken string `json:"idToken"`
}

type sessionResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// HandleLogin handles POST /api/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode login failed", err, "Invalid request body.")
		return
	}
	if in.IDToken == "" {
		h.ErrLog.LogBadRequest(w, r, "login without token", nil, "Missing ID token.")
		return
	}

	claims, err := h.Verifier.Verify(in.IDToken)
	if err != nil {
		h.Log.Warn("google token verification failed", zap.Error(err))
		uierrors.Error(w, http.StatusUnauthorized, "Invalid Google ID token.")
		return
	}
	if claims.Email == "" {
		uierrors.Error(w, http.StatusUnauthorized, "Token carried no email.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "ensure user")
	defer cancel()

	user, err := userstore.New(h.DB).EnsureUser(ctx, claims.Email, claims.Name)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "ensure user failed", err, "Sign-in failed. Please try again.")
		return
	}

	sessionUser := &auth.SessionUser{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
	if err := h.Sessions.SignIn(w, r, sessionUser); err != nil {
		h.ErrLog.LogServerError(w, r, "establish session failed", err, "Sign-in failed. Please try again.")
		return
	}

	h.Log.Info("user signed in",
		zap.String("user_id", sessionUser.ID),
		zap.String("role", sessionUser.Role))
	uierrors.JSON(w, http.StatusOK, sessionResponse{
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
}

// HandleLogout handles POST /api/logout. Always succeeds; an absent session
// is already logged out.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.Log.Warn("clear session failed", zap.Error(err))
	}
	uierrors.JSON(w, http.StatusOK, map[string]bool{"loggedOut": true})
}

// HandleMe handles GET /api/me, reporting the current session's identity.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.Error(w, http.StatusUnauthorized, "Not signed in.")
		return
	}
	uierrors.JSON(w, http.StatusOK, sessionResponse{Name: u.Name, Email: u.Email, Role: u.Role})
}
