package handlers

import (
	"errors"
	"net/http"

	"github.com/fintrack/fintrack-backend/internal/api/request"
	"github.com/fintrack/fintrack-backend/internal/api/response"
	"github.com/fintrack/fintrack-backend/internal/apperrors"
	"github.com/fintrack/fintrack-backend/internal/auth"
	"github.com/fintrack/fintrack-backend/internal/repository"
)

// AuthHandler issues access tokens for registered users. Token issuance
// itself sits behind the internal API key; the issued token is what the
// user-facing endpoints accept.
type AuthHandler struct {
	issuer   *auth.TokenIssuer
	userRepo *repository.UserRepository
}

// NewAuthHandler creates a new AuthHandler with the provided dependencies.
func NewAuthHandler(issuer *auth.TokenIssuer, userRepo *repository.UserRepository) *AuthHandler {
	return &AuthHandler{
		issuer:   issuer,
		userRepo: userRepo,
	}
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// IssueToken handles POST requests to issue a bearer token for a user,
// looked up by email.
//
// Endpoint: POST /api/internal/token
// Request Body: TokenRequest (email)
// Response: 200 OK with TokenResponse
// Error: 400 Bad Request if the request body is invalid
// Error: 404 Not Found if no user has the given email
// Error: 500 Internal Server Error if token signing fails
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.TokenRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.Email == "" {
		response.RespondError(w, http.StatusBadRequest, "validation failed", "email is required")
		return
	}

	user, err := h.userRepo.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrUserNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to look up user", err.Error())
		return
	}

	token, err := h.issuer.Issue(user.ID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to issue token", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, TokenResponse{Token: token})
}
