package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
)

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser retrieves the identity attached by RequireAuth.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(currentUserKey).(*models.User)
	return user, ok
}

// extractBearerToken reads the Authorization header and returns the bearer
// token, or "" when the header is missing or malformed.
func extractBearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// RequireAuth is the authentication gate for protected routes: it verifies
// the bearer token, resolves the identity (including the live active-status
// check), and attaches it to the request context. Any failure ends the
// request before the handler runs.
func (s *Server) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			s.writeError(w, r, common.ErrInvalidToken)
			return
		}

		userID, err := s.auth.VerifyToken(token)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		user, err := s.auth.ValidateUser(r.Context(), userID)
		if err != nil {
			// a token naming a vanished user is an auth failure, not a 404
			if errors.Is(err, common.ErrNotFound) {
				err = common.ErrInvalidToken
			}
			s.writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), currentUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles gates a route on the attached identity holding at least one
// of the given roles. An empty role set admits any authenticated identity.
// Must run after RequireAuth.
func RequireRoles(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := CurrentUser(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			if !user.HasAnyRole(roles...) {
				err := &common.ForbiddenError{
					Required: models.RoleStrings(roles),
					Actual:   models.RoleStrings(user.Roles),
				}
				writeJSONError(w, http.StatusForbidden, err.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
