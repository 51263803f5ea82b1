package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/fintrack/fintrack-backend/internal/api/response"
	"github.com/fintrack/fintrack-backend/internal/auth"
)

type contextKey string

// UserIDKey is the request-context key under which the authenticated
// user's ID is stored.
const UserIDKey contextKey = "userID"

// UserAuth verifies the Bearer token on incoming requests and injects
// the authenticated user's ID into the request context.
type UserAuth struct {
	issuer *auth.TokenIssuer
}

// NewUserAuth creates the authentication middleware around a token issuer.
func NewUserAuth(issuer *auth.TokenIssuer) *UserAuth {
	return &UserAuth{issuer: issuer}
}

// Handler rejects requests without a valid Bearer token.
// Returns 401 Unauthorized when the token is missing, tampered or expired.
func (a *UserAuth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
			return
		}

		userID, err := a.issuer.Verify(token)
		if err != nil {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext extracts the authenticated user's ID set by Handler.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}
