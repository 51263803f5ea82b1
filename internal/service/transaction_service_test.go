package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-backend/internal/api/request"
	"github.com/fintrack/fintrack-backend/internal/apperrors"
	"github.com/fintrack/fintrack-backend/internal/model"
	"github.com/fintrack/fintrack-backend/internal/testutil"
)

// TestCreateTransaction tests recording a transaction.
func TestCreateTransaction(t *testing.T) {
	t.Run("stores the transaction with an exact amount", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		user := testutil.CreateUser(t, db, "user@example.com")
		category := testutil.CreateCategory(t, db, "Groceries", model.DirectionExpense)

		// Execute
		transaction, err := svc.CreateTransaction(context.Background(), user.ID, request.CreateTransactionRequest{
			CategoryID:  category.ID,
			Date:        "2024-06-15",
			Amount:      decimal.RequireFromString("42.99"),
			Direction:   "expense",
			Description: "Weekly shop",
		})
		if err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}

		// Assert
		stored, err := svc.GetTransaction(user.ID, transaction.ID)
		if err != nil {
			t.Fatalf("GetTransaction() returned unexpected error: %v", err)
		}
		if stored.Amount.String() != "42.99" {
			t.Errorf("Expected amount 42.99, got %s", stored.Amount)
		}
		if !stored.Date.Equal(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("Expected date 2024-06-15, got %s", stored.Date)
		}
		if stored.RecurringID != nil {
			t.Error("Expected a manual transaction without a recurring link")
		}
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		user := testutil.CreateUser(t, db, "user@example.com")
		category := testutil.CreateCategory(t, db, "Groceries", model.DirectionExpense)

		_, err := svc.CreateTransaction(context.Background(), user.ID, request.CreateTransactionRequest{
			CategoryID: category.ID,
			Date:       "15-06-2024",
			Amount:     decimal.NewFromInt(10),
			Direction:  "expense",
		})
		if err == nil {
			t.Fatal("Expected error for malformed date, got nil")
		}
	})
}

// TestGetTransactions tests the date-ranged listing.
func TestGetTransactions(t *testing.T) {
	// Setup
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestTransactionService(t, db)
	user := testutil.CreateUser(t, db, "user@example.com")
	category := testutil.CreateCategory(t, db, "Groceries", model.DirectionExpense)

	testutil.NewTransaction(user.ID, category.ID).
		WithDate(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)).
		Build(t, db)
	testutil.NewTransaction(user.ID, category.ID).
		WithDate(time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC)).
		Build(t, db)

	// Execute: June only
	transactions, err := svc.GetTransactions(user.ID,
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("GetTransactions() returned unexpected error: %v", err)
	}

	// Assert
	if len(transactions) != 1 {
		t.Fatalf("Expected 1 transaction in range, got %d", len(transactions))
	}
	if transactions[0].CategoryName != "Groceries" {
		t.Errorf("Expected category name Groceries, got %s", transactions[0].CategoryName)
	}
}

// TestTransactionOwnership tests that transactions are only reachable
// by their owner.
//
// WHY: Transaction IDs are global. Another authenticated user probing
// an ID must get the same not-found as a missing ID, so neither data
// nor existence leaks across users.
func TestTransactionOwnership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestTransactionService(t, db)
	owner := testutil.CreateUser(t, db, "owner@example.com")
	other := testutil.CreateUser(t, db, "other@example.com")
	category := testutil.CreateCategory(t, db, "Groceries", model.DirectionExpense)
	transaction := testutil.NewTransaction(owner.ID, category.ID).Build(t, db)

	_, err := svc.GetTransaction(other.ID, transaction.ID)
	if !errors.Is(err, apperrors.ErrTransactionNotFound) {
		t.Errorf("Expected ErrTransactionNotFound, got %v", err)
	}

	err = svc.DeleteTransaction(context.Background(), other.ID, transaction.ID)
	if !errors.Is(err, apperrors.ErrTransactionNotFound) {
		t.Errorf("Expected ErrTransactionNotFound, got %v", err)
	}

	// The owner still sees it
	if _, err := svc.GetTransaction(owner.ID, transaction.ID); err != nil {
		t.Errorf("Expected transaction intact for its owner, got %v", err)
	}
}

// TestDeleteTransaction tests removal.
func TestDeleteTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestTransactionService(t, db)
	user := testutil.CreateUser(t, db, "user@example.com")
	category := testutil.CreateCategory(t, db, "Groceries", model.DirectionExpense)
	transaction := testutil.NewTransaction(user.ID, category.ID).Build(t, db)

	if err := svc.DeleteTransaction(context.Background(), user.ID, transaction.ID); err != nil {
		t.Fatalf("DeleteTransaction() returned unexpected error: %v", err)
	}

	_, err := svc.GetTransaction(user.ID, transaction.ID)
	if !errors.Is(err, apperrors.ErrTransactionNotFound) {
		t.Errorf("Expected ErrTransactionNotFound after delete, got %v", err)
	}
}
