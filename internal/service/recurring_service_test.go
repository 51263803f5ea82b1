package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-backend/internal/api/request"
	"github.com/fintrack/fintrack-backend/internal/apperrors"
	"github.com/fintrack/fintrack-backend/internal/model"
	"github.com/fintrack/fintrack-backend/internal/testutil"
)

// TestRecurringService_CreateRecurringTransaction tests template creation.
//
// WHY: The first due date and the anchor-day default decide every later
// occurrence; getting either wrong shifts the whole series.
func TestRecurringService_CreateRecurringTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("first due date is the start date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRecurringService(t, db)

		user := testutil.CreateUser(t, db, "recurring@example.com")
		category := testutil.CreateCategory(t, db, "Rent", model.DirectionExpense)

		recurring, err := svc.CreateRecurringTransaction(ctx, user.ID, request.CreateRecurringRequest{
			CategoryID:  category.ID,
			Description: "Monthly rent",
			Amount:      decimal.RequireFromString("1250.50"),
			Direction:   "expense",
			Frequency:   "monthly",
			AnchorDay:   31,
			StartDate:   "2024-01-31",
		})
		if err != nil {
			t.Fatalf("CreateRecurringTransaction() returned unexpected error: %v", err)
		}

		if !recurring.NextDueDate.Equal(recurring.StartDate) {
			t.Errorf("Expected next due %s, got %s", recurring.StartDate, recurring.NextDueDate)
		}
		if recurring.AnchorDay != 31 {
			t.Errorf("Expected anchor day 31, got %d", recurring.AnchorDay)
		}
		if !recurring.IsActive {
			t.Error("Expected new template to be active")
		}

		// Round-trips through the repository
		stored, err := svc.GetRecurringTransaction(user.ID, recurring.ID)
		if err != nil {
			t.Fatalf("GetRecurringTransaction() returned unexpected error: %v", err)
		}
		if stored.Amount.String() != "1250.50" && stored.Amount.String() != "1250.5" {
			t.Errorf("Expected amount 1250.50, got %s", stored.Amount)
		}
	})

	t.Run("anchor day defaults to the start date's day", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRecurringService(t, db)

		user := testutil.CreateUser(t, db, "anchor@example.com")
		category := testutil.CreateCategory(t, db, "Gym", model.DirectionExpense)

		recurring, err := svc.CreateRecurringTransaction(ctx, user.ID, request.CreateRecurringRequest{
			CategoryID:  category.ID,
			Description: "Gym membership",
			Amount:      decimal.NewFromInt(30),
			Direction:   "expense",
			Frequency:   "monthly",
			StartDate:   "2024-03-17",
		})
		if err != nil {
			t.Fatalf("CreateRecurringTransaction() returned unexpected error: %v", err)
		}

		if recurring.AnchorDay != 17 {
			t.Errorf("Expected anchor day 17, got %d", recurring.AnchorDay)
		}
	})
}

// TestRecurringService_AdvanceDue tests the materialization batch.
//
// WHY: This is the automation users depend on: every due occurrence must
// appear exactly once as a real transaction, catch-up after downtime must
// fill all missed dates, and a finished series must deactivate itself.
func TestRecurringService_AdvanceDue(t *testing.T) {
	ctx := context.Background()

	t.Run("materializes a single due occurrence and advances", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRecurringService(t, db)

		user := testutil.CreateUser(t, db, "due@example.com")
		category := testutil.CreateCategory(t, db, "Streaming", model.DirectionExpense)

		recurring := testutil.NewRecurring(user.ID, category.ID).
			WithAnchorDay(15).
			WithSchedule(
				time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			).
			WithAmount("9.99").
			Build(t, db)

		summary, err := svc.AdvanceDue(ctx, time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("AdvanceDue() returned unexpected error: %v", err)
		}

		if summary.Processed != 1 {
			t.Errorf("Expected 1 processed, got %d", summary.Processed)
		}
		if summary.Materialized != 1 {
			t.Errorf("Expected 1 materialized, got %d", summary.Materialized)
		}

		// The occurrence exists, linked to its template
		transactions := listTransactions(t, db, user.ID)
		if len(transactions) != 1 {
			t.Fatalf("Expected 1 transaction, got %d", len(transactions))
		}
		tx := transactions[0]
		if tx.RecurringID == nil || *tx.RecurringID != recurring.ID {
			t.Error("Expected transaction linked to the recurring template")
		}
		if !tx.Date.Equal(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("Expected occurrence dated 2024-06-15, got %s", tx.Date)
		}
		if tx.Amount.String() != "9.99" {
			t.Errorf("Expected amount 9.99, got %s", tx.Amount)
		}

		// The series moved to July 15
		stored, err := svc.GetRecurringTransaction(user.ID, recurring.ID)
		if err != nil {
			t.Fatalf("GetRecurringTransaction() returned unexpected error: %v", err)
		}
		if !stored.NextDueDate.Equal(time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("Expected next due 2024-07-15, got %s", stored.NextDueDate)
		}
	})

	t.Run("catches up all missed occurrences", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRecurringService(t, db)

		user := testutil.CreateUser(t, db, "catchup@example.com")
		category := testutil.CreateCategory(t, db, "Insurance", model.DirectionExpense)

		// Due since March; evaluated in June. Anchor 31 exercises the
		// clamping path: 03-31, 04-30, 05-31.
		testutil.NewRecurring(user.ID, category.ID).
			WithAnchorDay(31).
			WithSchedule(
				time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
			).
			Build(t, db)

		summary, err := svc.AdvanceDue(ctx, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("AdvanceDue() returned unexpected error: %v", err)
		}

		if summary.Materialized != 3 {
			t.Errorf("Expected 3 materialized, got %d", summary.Materialized)
		}

		transactions := listTransactions(t, db, user.ID)
		if len(transactions) != 3 {
			t.Fatalf("Expected 3 transactions, got %d", len(transactions))
		}

		wantDates := map[string]bool{"2024-03-31": false, "2024-04-30": false, "2024-05-31": false}
		for _, tx := range transactions {
			wantDates[tx.Date.Format("2006-01-02")] = true
		}
		for d, seen := range wantDates {
			if !seen {
				t.Errorf("Missing occurrence on %s", d)
			}
		}
	})

	t.Run("deactivates an exhausted series after its final occurrence", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRecurringService(t, db)

		user := testutil.CreateUser(t, db, "exhausted@example.com")
		category := testutil.CreateCategory(t, db, "Loan", model.DirectionExpense)

		recurring := testutil.NewRecurring(user.ID, category.ID).
			WithAnchorDay(15).
			WithSchedule(
				time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			).
			WithEndDate(time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)).
			Build(t, db)

		summary, err := svc.AdvanceDue(ctx, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("AdvanceDue() returned unexpected error: %v", err)
		}

		if summary.Materialized != 1 {
			t.Errorf("Expected 1 materialized, got %d", summary.Materialized)
		}
		if summary.Exhausted != 1 {
			t.Errorf("Expected 1 exhausted, got %d", summary.Exhausted)
		}

		// Final occurrence written, series switched off
		transactions := listTransactions(t, db, user.ID)
		if len(transactions) != 1 {
			t.Fatalf("Expected 1 transaction, got %d", len(transactions))
		}
		stored, err := svc.GetRecurringTransaction(user.ID, recurring.ID)
		if err != nil {
			t.Fatalf("GetRecurringTransaction() returned unexpected error: %v", err)
		}
		if stored.IsActive {
			t.Error("Expected exhausted series to be inactive")
		}

		// A second run finds nothing due and never duplicates the
		// final occurrence
		summary, err = svc.AdvanceDue(ctx, time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("AdvanceDue() returned unexpected error: %v", err)
		}
		if summary.Processed != 0 {
			t.Errorf("Expected nothing processed on rerun, got %d", summary.Processed)
		}
		if n := len(listTransactions(t, db, user.ID)); n != 1 {
			t.Errorf("Expected the final occurrence to stay unique, got %d transactions", n)
		}
	})

	t.Run("nothing due leaves the database untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRecurringService(t, db)

		user := testutil.CreateUser(t, db, "future@example.com")
		category := testutil.CreateCategory(t, db, "Savings", model.DirectionIncome)

		testutil.NewRecurring(user.ID, category.ID).
			WithSchedule(
				time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			).
			Build(t, db)

		summary, err := svc.AdvanceDue(ctx, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("AdvanceDue() returned unexpected error: %v", err)
		}

		if summary.Processed != 0 || summary.Materialized != 0 {
			t.Errorf("Expected empty summary, got %+v", summary)
		}
		if n := len(listTransactions(t, db, user.ID)); n != 0 {
			t.Errorf("Expected no transactions, got %d", n)
		}
	})

	t.Run("one broken series does not stop the batch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRecurringService(t, db)

		user := testutil.CreateUser(t, db, "broken@example.com")
		category := testutil.CreateCategory(t, db, "Phone", model.DirectionExpense)

		// Anchor day 0 slipped into storage; monthly advancement rejects it
		broken := testutil.NewRecurring(user.ID, category.ID).
			WithAnchorDay(0).
			WithSchedule(
				time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			).
			Build(t, db)
		healthy := testutil.NewRecurring(user.ID, category.ID).
			WithAnchorDay(15).
			WithSchedule(
				time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			).
			Build(t, db)

		summary, err := svc.AdvanceDue(ctx, time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("AdvanceDue() returned unexpected error: %v", err)
		}

		if summary.Processed != 1 {
			t.Errorf("Expected 1 processed, got %d", summary.Processed)
		}
		if len(summary.Failures) != 1 {
			t.Fatalf("Expected 1 failure, got %v", summary.Failures)
		}
		if summary.Failures[0].RecurringID != broken.ID {
			t.Errorf("Expected failure for %s, got %s", broken.ID, summary.Failures[0].RecurringID)
		}

		// The healthy series still materialized
		transactions := listTransactions(t, db, user.ID)
		if len(transactions) != 1 {
			t.Fatalf("Expected 1 transaction, got %d", len(transactions))
		}
		if *transactions[0].RecurringID != healthy.ID {
			t.Error("Expected the healthy series' occurrence")
		}
	})
}

// TestRecurringOwnership tests that templates are only reachable by
// their owner.
//
// WHY: Template IDs are global. Another authenticated user probing an
// ID must get the same not-found as a missing ID, so neither data nor
// existence leaks across users.
func TestRecurringOwnership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestRecurringService(t, db)
	owner := testutil.CreateUser(t, db, "owner@example.com")
	other := testutil.CreateUser(t, db, "other@example.com")
	category := testutil.CreateCategory(t, db, "Rent", model.DirectionExpense)
	recurring := testutil.NewRecurring(owner.ID, category.ID).Build(t, db)

	_, err := svc.GetRecurringTransaction(other.ID, recurring.ID)
	if !errors.Is(err, apperrors.ErrRecurringNotFound) {
		t.Errorf("Expected ErrRecurringNotFound, got %v", err)
	}

	err = svc.DeleteRecurringTransaction(context.Background(), other.ID, recurring.ID)
	if !errors.Is(err, apperrors.ErrRecurringNotFound) {
		t.Errorf("Expected ErrRecurringNotFound, got %v", err)
	}

	// The owner still sees it
	if _, err := svc.GetRecurringTransaction(owner.ID, recurring.ID); err != nil {
		t.Errorf("Expected template intact for its owner, got %v", err)
	}
}

func listTransactions(t *testing.T, db *sql.DB, userID string) []model.TransactionResponse {
	t.Helper()
	svc := testutil.NewTestTransactionService(t, db)
	transactions, err := svc.GetTransactions(userID,
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("Failed to list transactions: %v", err)
	}
	return transactions
}
