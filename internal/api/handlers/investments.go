package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fintrack/fintrack-backend/internal/api/request"
	"github.com/fintrack/fintrack-backend/internal/api/response"
	"github.com/fintrack/fintrack-backend/internal/apperrors"
	"github.com/fintrack/fintrack-backend/internal/service"
	"github.com/fintrack/fintrack-backend/internal/validation"
)

// InvestmentHandler handles HTTP requests for investment endpoints.
type InvestmentHandler struct {
	investmentService *service.InvestmentService
}

// NewInvestmentHandler creates a new InvestmentHandler with the provided service dependency.
func NewInvestmentHandler(investmentService *service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{
		investmentService: investmentService,
	}
}

// ListInvestments handles GET requests to retrieve all holdings for the
// authenticated user, each with its current valuation.
//
// Endpoint: GET /api/investment
// Response: 200 OK with array of InvestmentResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *InvestmentHandler) ListInvestments(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	investments, err := h.investmentService.GetInvestments(userID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve investments", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, investments)
}

// GetInvestment handles GET requests to retrieve a single holding with
// its current valuation.
//
// Endpoint: GET /api/investment/{uuid}
// Response: 200 OK with InvestmentResponse
// Error: 400 Bad Request if investment ID is invalid (validated by middleware)
// Error: 404 Not Found if investment not found
// Error: 500 Internal Server Error if retrieval fails
func (h *InvestmentHandler) GetInvestment(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}
	investmentID := chi.URLParam(r, "uuid")

	investment, err := h.investmentService.GetInvestment(userID, investmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvestmentNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestmentNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve investment", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, investment)
}

// CreateInvestment handles POST requests to register a new holding for
// the authenticated user.
//
// Endpoint: POST /api/investment
// Request Body: CreateInvestmentRequest (symbol, name, assetType, quantity, purchasePrice, purchaseDate)
// Response: 201 Created with Investment
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *InvestmentHandler) CreateInvestment(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	req, err := parseJSON[request.CreateInvestmentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateInvestment(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	investment, err := h.investmentService.CreateInvestment(r.Context(), userID, req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create investment", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, investment)
}

// UpdateQuote handles PUT requests to record the latest market quote
// for a holding. Quotes are pushed by the caller; a zero quote is
// accepted and values the position at zero.
//
// Endpoint: PUT /api/investment/{uuid}/quote
// Request Body: UpdateQuoteRequest (quote)
// Response: 200 OK with InvestmentResponse reflecting the new quote
// Error: 400 Bad Request if investment ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if investment not found
// Error: 500 Internal Server Error if update fails
func (h *InvestmentHandler) UpdateQuote(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}
	investmentID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateQuoteRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateQuote(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	investment, err := h.investmentService.UpdateQuote(r.Context(), userID, investmentID, req.Quote)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvestmentNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestmentNotFound.Error(), err.Error())
			return
		}

		response.RespondError(w, http.StatusInternalServerError, "failed to update quote", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, investment)
}

// DeactivateInvestment handles POST requests to mark a holding as
// closed. Deactivated holdings are excluded from listings but retained
// for history.
//
// Endpoint: POST /api/investment/{uuid}/deactivate
// Response: 204 No Content on success
// Error: 400 Bad Request if investment ID is invalid (validated by middleware)
// Error: 404 Not Found if investment not found
// Error: 500 Internal Server Error if the update fails
func (h *InvestmentHandler) DeactivateInvestment(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}
	investmentID := chi.URLParam(r, "uuid")

	err := h.investmentService.DeactivateInvestment(r.Context(), userID, investmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvestmentNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestmentNotFound.Error(), err.Error())
			return
		}

		response.RespondError(w, http.StatusInternalServerError, "failed to deactivate investment", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// DeleteInvestment handles DELETE requests to remove a holding entirely.
//
// Endpoint: DELETE /api/investment/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if investment ID is invalid (validated by middleware)
// Error: 404 Not Found if investment not found
// Error: 500 Internal Server Error if deletion fails
func (h *InvestmentHandler) DeleteInvestment(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}
	investmentID := chi.URLParam(r, "uuid")

	err := h.investmentService.DeleteInvestment(r.Context(), userID, investmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvestmentNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestmentNotFound.Error(), err.Error())
			return
		}

		response.RespondError(w, http.StatusInternalServerError, "failed to delete investment", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
