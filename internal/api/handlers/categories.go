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

// CategoryHandler handles HTTP requests for category endpoints.
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler with the provided service dependency.
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// ListCategories handles GET requests to retrieve all categories.
//
// Endpoint: GET /api/category
// Response: 200 OK with array of Category
// Error: 500 Internal Server Error if retrieval fails
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, _ *http.Request) {
	categories, err := h.categoryService.GetCategories()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve categories", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, categories)
}

// GetCategory handles GET requests to retrieve a single category by ID.
//
// Endpoint: GET /api/category/{uuid}
// Response: 200 OK with Category
// Error: 400 Bad Request if category ID is invalid (validated by middleware)
// Error: 404 Not Found if category not found
// Error: 500 Internal Server Error if retrieval fails
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "uuid")

	category, err := h.categoryService.GetCategory(categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCategoryNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrCategoryNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve category", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, category)
}

// CreateCategory handles POST requests to create a new category.
//
// Endpoint: POST /api/category
// Request Body: CreateCategoryRequest (name, kind)
// Response: 201 Created with Category
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if a category with the same name exists
// Error: 500 Internal Server Error if creation fails
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateCategoryRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateCategory(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	category, err := h.categoryService.CreateCategory(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEntry) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateEntry.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create category", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, category)
}

// DeleteCategory handles DELETE requests to remove a category. Seeded
// default categories and categories referenced by any transaction,
// objective, or recurring template are refused.
//
// Endpoint: DELETE /api/category/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if category ID is invalid (validated by middleware)
// Error: 404 Not Found if category not found
// Error: 409 Conflict if the category is a default or still in use
// Error: 500 Internal Server Error if deletion fails
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "uuid")

	err := h.categoryService.DeleteCategory(r.Context(), categoryID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrCategoryNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrCategoryNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrDefaultCategory):
			response.RespondError(w, http.StatusConflict, apperrors.ErrDefaultCategory.Error(), err.Error())
		case errors.Is(err, apperrors.ErrCategoryInUse):
			response.RespondError(w, http.StatusConflict, apperrors.ErrCategoryInUse.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to delete category", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
