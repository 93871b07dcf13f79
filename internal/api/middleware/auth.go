// Package middleware provides HTTP middleware for the API: bearer-token
// authentication and request tracing.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/weeklisthq/weeklist-api/internal/api/shared"
	"github.com/weeklisthq/weeklist-api/internal/service/auth"
)

// NotLoggedInMessage is the response for any request that fails
// authentication, regardless of the reason.
const NotLoggedInMessage = "You're not logged in!"

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// Authenticate validates the bearer token and adds the user ID to the
// request context. A missing or invalid token yields a single generic
// response so callers cannot distinguish the failure mode.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, NotLoggedInMessage, auth.ErrMissingToken)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized, NotLoggedInMessage, err)
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken pulls the token from the Authorization header ("Bearer x" or
// a bare token) or, for compatibility with older clients, from the jwtoken
// header.
func extractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return strings.TrimSpace(h)
	}
	return strings.TrimSpace(r.Header.Get("jwtoken"))
}

// GetUserID extracts the user ID from the request context.
// Returns the user ID and a boolean indicating if it was found.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	return userID, ok
}
