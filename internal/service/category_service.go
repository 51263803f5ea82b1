package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/fintrack-backend/internal/api/request"
	"github.com/fintrack/fintrack-backend/internal/apperrors"
	"github.com/fintrack/fintrack-backend/internal/model"
	"github.com/fintrack/fintrack-backend/internal/repository"
)

// defaultCategories is the seed set inserted on startup.
var defaultCategories = []model.Category{
	{Name: "Salary", Kind: model.DirectionIncome},
	{Name: "Groceries", Kind: model.DirectionExpense},
	{Name: "Housing", Kind: model.DirectionExpense},
	{Name: "Transport", Kind: model.DirectionExpense},
	{Name: "Leisure", Kind: model.DirectionExpense},
	{Name: "Savings", Kind: model.DirectionIncome},
}

// CategoryService handles category business logic and default seeding.
type CategoryService struct {
	categoryRepo *repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService with the provided repository dependency.
func NewCategoryService(categoryRepo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// GetCategories retrieves all categories.
func (s *CategoryService) GetCategories() ([]model.Category, error) {
	return s.categoryRepo.GetCategories()
}

// GetCategory retrieves a single category by its ID.
func (s *CategoryService) GetCategory(categoryID string) (model.Category, error) {
	return s.categoryRepo.GetCategory(categoryID)
}

// CreateCategory stores a new user-defined category.
func (s *CategoryService) CreateCategory(ctx context.Context, req request.CreateCategoryRequest) (*model.Category, error) {
	category := &model.Category{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Kind:      model.Direction(req.Kind),
		IsDefault: false,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.categoryRepo.InsertCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// DeleteCategory removes a category. Default categories and categories
// still referenced by transactions, objectives or recurring templates
// are refused.
func (s *CategoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	category, err := s.categoryRepo.GetCategory(categoryID)
	if err != nil {
		return err
	}
	if category.IsDefault {
		return apperrors.ErrDefaultCategory
	}

	usage, err := s.categoryRepo.CountUsage(categoryID)
	if err != nil {
		return err
	}
	if usage > 0 {
		return apperrors.ErrCategoryInUse
	}

	return s.categoryRepo.DeleteCategory(ctx, categoryID)
}

// SeedDefaults inserts the default category set. Idempotent; safe to
// run on every startup.
func (s *CategoryService) SeedDefaults(ctx context.Context) error {
	seed := make([]model.Category, len(defaultCategories))
	copy(seed, defaultCategories)
	now := time.Now().UTC()
	for i := range seed {
		seed[i].CreatedAt = now
	}
	return s.categoryRepo.SeedDefaults(ctx, seed)
}
