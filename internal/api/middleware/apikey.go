package middleware

import (
	"net/http"
	"os"

	"github.com/fintrack/fintrack-backend/internal/api/response"
)

// APIKeyMiddleware guards internal endpoints with a shared API key.
// The expected key comes from the INTERNAL_API_KEY environment variable
// and callers pass theirs in the X-API-Key header.
// Returns 401 Unauthorized when the key is missing or does not match.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := os.Getenv("INTERNAL_API_KEY")
		if expected == "" {
			response.RespondError(w, http.StatusServiceUnavailable, "internal API not configured", "Authentication not loaded")
			return
		}

		provided := r.Header.Get("X-API-Key")
		if provided == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}
		if provided != expected {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}
