// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/matematikhane/matematikhane/internal/app/system/auth"
)

// UserCtx returns the current user's role (lowercased), name, and a found
// flag. Absent users read as "visitor" so callers can compare roles without
// nil checks.
func UserCtx(r *http.Request) (role string, name string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", false
	}
	return strings.ToLower(user.Role), user.Name, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, ok := UserCtx(r)
	return ok && role == "admin"
}
