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

// ObjectiveHandler handles HTTP requests for objective endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the objectiveService.
type ObjectiveHandler struct {
	objectiveService *service.ObjectiveService
}

// NewObjectiveHandler creates a new ObjectiveHandler with the provided service dependency.
func NewObjectiveHandler(objectiveService *service.ObjectiveService) *ObjectiveHandler {
	return &ObjectiveHandler{
		objectiveService: objectiveService,
	}
}

// ListObjectives handles GET requests to retrieve all objectives for the
// authenticated user.
//
// Endpoint: GET /api/objective
// Response: 200 OK with array of Objective
// Error: 500 Internal Server Error if retrieval fails
func (h *ObjectiveHandler) ListObjectives(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	objectives, err := h.objectiveService.GetObjectives(userID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve objectives", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, objectives)
}

// GetObjective handles GET requests to retrieve a single objective by ID.
//
// Endpoint: GET /api/objective/{uuid}
// Response: 200 OK with Objective
// Error: 400 Bad Request if objective ID is invalid (validated by middleware)
// Error: 404 Not Found if objective not found
// Error: 500 Internal Server Error if retrieval fails
func (h *ObjectiveHandler) GetObjective(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}
	objectiveID := chi.URLParam(r, "uuid")

	objective, err := h.objectiveService.GetObjective(userID, objectiveID)
	if err != nil {
		if errors.Is(err, apperrors.ErrObjectiveNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrObjectiveNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve objective", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, objective)
}

// GetProgress handles GET requests to compute an objective's current
// progress and alert status. The returned alert level is transient
// display state; it is never persisted by this endpoint.
//
// Endpoint: GET /api/objective/{uuid}/progress
// Response: 200 OK with ObjectiveProgressResponse
// Error: 400 Bad Request if objective ID is invalid (validated by middleware)
// Error: 404 Not Found if objective not found
// Error: 502 Bad Gateway if the value source is unavailable
// Error: 500 Internal Server Error otherwise
func (h *ObjectiveHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}
	objectiveID := chi.URLParam(r, "uuid")

	progress, err := h.objectiveService.GetProgressByID(userID, objectiveID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrObjectiveNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrObjectiveNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrSourceUnavailable):
			response.RespondError(w, http.StatusBadGateway, apperrors.ErrSourceUnavailable.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to compute progress", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, progress)
}

// CreateObjective handles POST requests to create a new objective for
// the authenticated user.
//
// Endpoint: POST /api/objective
// Request Body: CreateObjectiveRequest (description, targetAmount, kind, optional categoryId and period)
// Response: 201 Created with Objective
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *ObjectiveHandler) CreateObjective(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	req, err := parseJSON[request.CreateObjectiveRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateObjective(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	objective, err := h.objectiveService.CreateObjective(r.Context(), userID, req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create objective", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, objective)
}

// UpdateObjective handles PUT requests to update an existing objective.
//
// Endpoint: PUT /api/objective/{uuid}
// Request Body: UpdateObjectiveRequest
// Response: 200 OK with updated Objective
// Error: 400 Bad Request if objective ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if objective not found
// Error: 500 Internal Server Error if update fails
func (h *ObjectiveHandler) UpdateObjective(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}
	objectiveID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateObjectiveRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateObjective(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	objective, err := h.objectiveService.UpdateObjective(r.Context(), userID, objectiveID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrObjectiveNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrObjectiveNotFound.Error(), err.Error())
			return
		}

		response.RespondError(w, http.StatusInternalServerError, "failed to update objective", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, objective)
}

// DeleteObjective handles DELETE requests to remove an objective.
//
// Endpoint: DELETE /api/objective/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if objective ID is invalid (validated by middleware)
// Error: 404 Not Found if objective not found
// Error: 500 Internal Server Error if deletion fails
func (h *ObjectiveHandler) DeleteObjective(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}
	objectiveID := chi.URLParam(r, "uuid")

	err := h.objectiveService.DeleteObjective(r.Context(), userID, objectiveID)
	if err != nil {
		if errors.Is(err, apperrors.ErrObjectiveNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrObjectiveNotFound.Error(), err.Error())
			return
		}

		response.RespondError(w, http.StatusInternalServerError, "failed to delete objective", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// EvaluateAll handles POST requests to run the alert evaluation pass
// over every active objective. Typically invoked by the scheduler;
// exposed for manual runs behind the internal API key.
//
// Endpoint: POST /api/internal/evaluate
// Response: 200 OK with EvaluationSummary (per-objective failures listed, not fatal)
// Error: 500 Internal Server Error if the batch itself could not run
func (h *ObjectiveHandler) EvaluateAll(w http.ResponseWriter, r *http.Request) {
	summary, err := h.objectiveService.EvaluateAll(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to evaluate objectives", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}
