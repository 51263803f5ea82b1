package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fintrack/fintrack-backend/internal/api/request"
	"github.com/fintrack/fintrack-backend/internal/apperrors"
	"github.com/fintrack/fintrack-backend/internal/model"
	"github.com/fintrack/fintrack-backend/internal/testutil"
)

// TestSeedDefaults tests seeding the default category set.
//
// WHY: Seeding runs on every startup, so it must be idempotent, and
// the seeded categories must be protected from deletion.
func TestSeedDefaults(t *testing.T) {
	// Setup
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestCategoryService(t, db)

	// Execute: seed twice, as two startups would.
	if err := svc.SeedDefaults(context.Background()); err != nil {
		t.Fatalf("SeedDefaults() returned unexpected error: %v", err)
	}
	if err := svc.SeedDefaults(context.Background()); err != nil {
		t.Fatalf("SeedDefaults() second run returned unexpected error: %v", err)
	}

	// Assert
	categories, err := svc.GetCategories()
	if err != nil {
		t.Fatalf("GetCategories() returned unexpected error: %v", err)
	}
	if len(categories) != 6 {
		t.Fatalf("Expected 6 default categories after two seed runs, got %d", len(categories))
	}

	byName := make(map[string]model.Category, len(categories))
	for _, c := range categories {
		if !c.IsDefault {
			t.Errorf("Expected seeded category %q to be marked default", c.Name)
		}
		byName[c.Name] = c
	}
	if byName["Salary"].Kind != model.DirectionIncome {
		t.Errorf("Expected Salary to be an income category, got %s", byName["Salary"].Kind)
	}
	if byName["Groceries"].Kind != model.DirectionExpense {
		t.Errorf("Expected Groceries to be an expense category, got %s", byName["Groceries"].Kind)
	}
}

// TestCreateCategory tests creating a user-defined category.
func TestCreateCategory(t *testing.T) {
	// Setup
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestCategoryService(t, db)

	// Execute
	category, err := svc.CreateCategory(context.Background(), request.CreateCategoryRequest{
		Name: "Gifts",
		Kind: "expense",
	})
	if err != nil {
		t.Fatalf("CreateCategory() returned unexpected error: %v", err)
	}

	// Assert
	if category.IsDefault {
		t.Error("Expected a user-defined category not to be marked default")
	}

	stored, err := svc.GetCategory(category.ID)
	if err != nil {
		t.Fatalf("GetCategory() returned unexpected error: %v", err)
	}
	if stored.Name != "Gifts" || stored.Kind != model.DirectionExpense {
		t.Errorf("Expected stored category Gifts/expense, got %s/%s", stored.Name, stored.Kind)
	}
}

// TestDeleteCategory tests the deletion guards.
//
// WHY: Deleting a category that transactions or objectives still
// reference would orphan their rows, and deleting a default would
// break the seed set, so both are refused with distinct errors.
func TestDeleteCategory(t *testing.T) {
	t.Run("deletes an unused user-defined category", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCategoryService(t, db)
		category := testutil.CreateCategory(t, db, "Gifts", model.DirectionExpense)

		// Execute
		if err := svc.DeleteCategory(context.Background(), category.ID); err != nil {
			t.Fatalf("DeleteCategory() returned unexpected error: %v", err)
		}

		// Assert
		_, err := svc.GetCategory(category.ID)
		if !errors.Is(err, apperrors.ErrCategoryNotFound) {
			t.Errorf("Expected ErrCategoryNotFound after delete, got %v", err)
		}
	})

	t.Run("refuses to delete a default category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCategoryService(t, db)

		if err := svc.SeedDefaults(context.Background()); err != nil {
			t.Fatalf("SeedDefaults() returned unexpected error: %v", err)
		}
		categories, err := svc.GetCategories()
		if err != nil {
			t.Fatalf("GetCategories() returned unexpected error: %v", err)
		}

		err = svc.DeleteCategory(context.Background(), categories[0].ID)
		if !errors.Is(err, apperrors.ErrDefaultCategory) {
			t.Errorf("Expected ErrDefaultCategory, got %v", err)
		}
	})

	t.Run("refuses to delete a category with transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCategoryService(t, db)
		user := testutil.CreateUser(t, db, "user@example.com")
		category := testutil.CreateCategory(t, db, "Gifts", model.DirectionExpense)
		testutil.NewTransaction(user.ID, category.ID).Build(t, db)

		err := svc.DeleteCategory(context.Background(), category.ID)
		if !errors.Is(err, apperrors.ErrCategoryInUse) {
			t.Errorf("Expected ErrCategoryInUse, got %v", err)
		}
	})

	t.Run("refuses to delete a category an objective tracks", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCategoryService(t, db)
		user := testutil.CreateUser(t, db, "user@example.com")
		category := testutil.CreateCategory(t, db, "Gifts", model.DirectionExpense)
		testutil.NewObjective(user.ID).WithCategory(category.ID).Build(t, db)

		err := svc.DeleteCategory(context.Background(), category.ID)
		if !errors.Is(err, apperrors.ErrCategoryInUse) {
			t.Errorf("Expected ErrCategoryInUse, got %v", err)
		}
	})

	t.Run("returns not found for an unknown category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCategoryService(t, db)

		err := svc.DeleteCategory(context.Background(), testutil.MakeID())
		if !errors.Is(err, apperrors.ErrCategoryNotFound) {
			t.Errorf("Expected ErrCategoryNotFound, got %v", err)
		}
	})
}
