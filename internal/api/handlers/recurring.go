package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fintrack/fintrack-backend/internal/api/request"
	"github.com/fintrack/fintrack-backend/internal/api/response"
	"github.com/fintrack/fintrack-backend/internal/apperrors"
	"github.com/fintrack/fintrack-backend/internal/service"
	"github.com/fintrack/fintrack-backend/internal/validation"
)

// RecurringHandler handles HTTP requests for recurring transaction endpoints.
type RecurringHandler struct {
	recurringService *service.RecurringService
}

// NewRecurringHandler creates a new RecurringHandler with the provided service dependency.
func NewRecurringHandler(recurringService *service.RecurringService) *RecurringHandler {
	return &RecurringHandler{
		recurringService: recurringService,
	}
}

// ListRecurring handles GET requests to retrieve all recurring
// transaction templates for the authenticated user.
//
// Endpoint: GET /api/recurring
// Response: 200 OK with array of RecurringTransaction
// Error: 500 Internal Server Error if retrieval fails
func (h *RecurringHandler) ListRecurring(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	recurring, err := h.recurringService.GetRecurringTransactions(userID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve recurring transactions", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, recurring)
}

// GetRecurring handles GET requests to retrieve a single recurring
// transaction template.
//
// Endpoint: GET /api/recurring/{uuid}
// Response: 200 OK with RecurringTransaction
// Error: 400 Bad Request if ID is invalid (validated by middleware)
// Error: 404 Not Found if the template is not found
// Error: 500 Internal Server Error if retrieval fails
func (h *RecurringHandler) GetRecurring(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}
	recurringID := chi.URLParam(r, "uuid")

	recurring, err := h.recurringService.GetRecurringTransaction(userID, recurringID)
	if err != nil {
		if errors.Is(err, apperrors.ErrRecurringNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrRecurringNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve recurring transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, recurring)
}

// CreateRecurring handles POST requests to create a recurring
// transaction template for the authenticated user.
//
// Endpoint: POST /api/recurring
// Request Body: CreateRecurringRequest (categoryId, description, amount, direction, frequency, startDate, optional anchorDay and endDate)
// Response: 201 Created with RecurringTransaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *RecurringHandler) CreateRecurring(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	req, err := parseJSON[request.CreateRecurringRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateRecurring(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	recurring, err := h.recurringService.CreateRecurringTransaction(r.Context(), userID, req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create recurring transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, recurring)
}

// DeleteRecurring handles DELETE requests to remove a recurring
// transaction template. Already-materialized occurrences are kept.
//
// Endpoint: DELETE /api/recurring/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if ID is invalid (validated by middleware)
// Error: 404 Not Found if the template is not found
// Error: 500 Internal Server Error if deletion fails
func (h *RecurringHandler) DeleteRecurring(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}
	recurringID := chi.URLParam(r, "uuid")

	err := h.recurringService.DeleteRecurringTransaction(r.Context(), userID, recurringID)
	if err != nil {
		if errors.Is(err, apperrors.ErrRecurringNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrRecurringNotFound.Error(), err.Error())
			return
		}

		response.RespondError(w, http.StatusInternalServerError, "failed to delete recurring transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// AdvanceDue handles POST requests to materialize every due occurrence
// across all active templates. Typically invoked by the scheduler;
// exposed for manual runs behind the internal API key. An optional
// asOf query parameter (YYYY-MM-DD) overrides the evaluation date.
//
// Endpoint: POST /api/internal/advance
// Response: 200 OK with AdvanceSummary (per-series failures listed, not fatal)
// Error: 400 Bad Request if asOf is malformed
// Error: 500 Internal Server Error if the batch itself could not run
func (h *RecurringHandler) AdvanceDue(w http.ResponseWriter, r *http.Request) {
	asOf := time.Now().UTC()
	if raw := r.URL.Query().Get("asOf"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid asOf date", err.Error())
			return
		}
		asOf = parsed
	}

	summary, err := h.recurringService.AdvanceDue(r.Context(), asOf)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to advance recurring transactions", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}
