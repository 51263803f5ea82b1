package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/fintrack/fintrack-backend/internal/api/middleware"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode JSON: %v", err)
		}
	}
}

// parseJSON decodes a request body into the given type. Unknown fields
// are rejected so typos in payloads fail loudly instead of being dropped.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return req, fmt.Errorf("failed to decode request body: %w", err)
	}
	return req, nil
}

// authenticatedUser extracts the user ID placed in the context by the
// auth middleware. A missing ID means the route was mounted without the
// middleware, which is a wiring bug surfaced as 401.
func authenticatedUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]string{
			"error": "unauthorized",
		})
		return "", false
	}
	return userID, true
}
