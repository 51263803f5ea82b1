package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-backend/internal/model"
)

// CreateUser inserts a user with the given email and returns it.
func CreateUser(t *testing.T, db *sql.DB, email string) model.User {
	t.Helper()

	user := model.User{
		ID:        MakeID(),
		Email:     email,
		Name:      "Test User",
		CreatedAt: time.Now().UTC(),
	}

	_, err := db.Exec(
		`INSERT INTO user (id, email, name, created_at) VALUES (?, ?, ?, ?)`,
		user.ID, user.Email, user.Name, user.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// CreateCategory inserts a category with the given name and kind and returns it.
func CreateCategory(t *testing.T, db *sql.DB, name string, kind model.Direction) model.Category {
	t.Helper()

	category := model.Category{
		ID:        MakeID(),
		Name:      name,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	}

	_, err := db.Exec(
		`INSERT INTO category (id, name, kind, is_default, created_at) VALUES (?, ?, ?, 0, ?)`,
		category.ID, category.Name, string(category.Kind), category.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}

	return category
}

// ObjectiveBuilder provides a fluent interface for creating test objectives.
//
// Example usage:
//
//	objective := testutil.NewObjective(user.ID).
//	    WithKind(model.ObjectiveKindSavingsGoal).
//	    WithTarget("1000").
//	    Build(t, db)
type ObjectiveBuilder struct {
	objective model.Objective
}

// NewObjective creates an ObjectiveBuilder with sensible defaults: an
// active spending limit of 500 for the current month.
func NewObjective(userID string) *ObjectiveBuilder {
	return &ObjectiveBuilder{
		objective: model.Objective{
			ID:                MakeID(),
			UserID:            userID,
			Description:       "Test objective",
			TargetAmount:      decimal.NewFromInt(500),
			Kind:              model.ObjectiveKindSpendingLimit,
			Period:            time.Now().UTC().Format("2006-01"),
			IsActive:          true,
			LastNotifiedLevel: model.AlertLevelNone,
			CreatedAt:         time.Now().UTC(),
		},
	}
}

// WithKind sets the objective kind.
func (b *ObjectiveBuilder) WithKind(kind model.ObjectiveKind) *ObjectiveBuilder {
	b.objective.Kind = kind
	return b
}

// WithTarget sets the target amount from a decimal string.
func (b *ObjectiveBuilder) WithTarget(target string) *ObjectiveBuilder {
	b.objective.TargetAmount = decimal.RequireFromString(target)
	return b
}

// WithCategory scopes the objective to a category.
func (b *ObjectiveBuilder) WithCategory(categoryID string) *ObjectiveBuilder {
	b.objective.CategoryID = &categoryID
	return b
}

// WithPeriod sets the period token ("YYYY-MM").
func (b *ObjectiveBuilder) WithPeriod(period string) *ObjectiveBuilder {
	b.objective.Period = period
	return b
}

// WithNotified sets the persisted notification state.
func (b *ObjectiveBuilder) WithNotified(level model.AlertLevel, period string) *ObjectiveBuilder {
	b.objective.LastNotifiedLevel = level
	b.objective.LastNotifiedPeriod = period
	return b
}

// Inactive marks the objective as inactive.
func (b *ObjectiveBuilder) Inactive() *ObjectiveBuilder {
	b.objective.IsActive = false
	return b
}

// Build creates the objective in the database and returns it.
func (b *ObjectiveBuilder) Build(t *testing.T, db *sql.DB) model.Objective {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO objective (
			id, user_id, category_id, description, target_amount, kind,
			period, is_active, last_notified_level, last_notified_period, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.objective.ID,
		b.objective.UserID,
		b.objective.CategoryID,
		b.objective.Description,
		b.objective.TargetAmount.String(),
		string(b.objective.Kind),
		b.objective.Period,
		b.objective.IsActive,
		string(b.objective.LastNotifiedLevel),
		b.objective.LastNotifiedPeriod,
		b.objective.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test objective: %v", err)
	}

	return b.objective
}

// InvestmentBuilder provides a fluent interface for creating test holdings.
type InvestmentBuilder struct {
	investment model.Investment
}

// NewInvestment creates an InvestmentBuilder with sensible defaults:
// 10 shares bought at 100, quoted at 100.
func NewInvestment(userID string) *InvestmentBuilder {
	return &InvestmentBuilder{
		investment: model.Investment{
			ID:            MakeID(),
			UserID:        userID,
			Symbol:        "VWCE",
			Name:          "Test Fund",
			AssetType:     "etf",
			Quantity:      decimal.NewFromInt(10),
			PurchasePrice: decimal.NewFromInt(100),
			InvestedCost:  decimal.NewFromInt(1000),
			LatestQuote:   decimal.NewFromInt(100),
			PurchaseDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			IsActive:      true,
			CreatedAt:     time.Now().UTC(),
		},
	}
}

// WithSymbol sets the ticker symbol.
func (b *InvestmentBuilder) WithSymbol(symbol string) *InvestmentBuilder {
	b.investment.Symbol = symbol
	return b
}

// WithPosition sets quantity and purchase price from decimal strings,
// deriving the invested cost.
func (b *InvestmentBuilder) WithPosition(quantity, purchasePrice string) *InvestmentBuilder {
	b.investment.Quantity = decimal.RequireFromString(quantity)
	b.investment.PurchasePrice = decimal.RequireFromString(purchasePrice)
	b.investment.InvestedCost = b.investment.Quantity.Mul(b.investment.PurchasePrice)
	return b
}

// WithQuote sets the latest quote from a decimal string.
func (b *InvestmentBuilder) WithQuote(quote string) *InvestmentBuilder {
	b.investment.LatestQuote = decimal.RequireFromString(quote)
	return b
}

// Inactive marks the holding as closed.
func (b *InvestmentBuilder) Inactive() *InvestmentBuilder {
	b.investment.IsActive = false
	return b
}

// Build creates the investment in the database and returns it.
func (b *InvestmentBuilder) Build(t *testing.T, db *sql.DB) model.Investment {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO investment (
			id, user_id, symbol, name, asset_type, quantity, purchase_price,
			invested_cost, latest_quote, purchase_date, is_active, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.investment.ID,
		b.investment.UserID,
		b.investment.Symbol,
		b.investment.Name,
		b.investment.AssetType,
		b.investment.Quantity.String(),
		b.investment.PurchasePrice.String(),
		b.investment.InvestedCost.String(),
		b.investment.LatestQuote.String(),
		b.investment.PurchaseDate.Format("2006-01-02"),
		b.investment.IsActive,
		b.investment.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test investment: %v", err)
	}

	return b.investment
}

// RecurringBuilder provides a fluent interface for creating test
// recurring transaction templates.
type RecurringBuilder struct {
	recurring model.RecurringTransaction
}

// NewRecurring creates a RecurringBuilder with sensible defaults: an
// active monthly expense of 100 anchored on the 1st, due 2024-01-01.
func NewRecurring(userID, categoryID string) *RecurringBuilder {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &RecurringBuilder{
		recurring: model.RecurringTransaction{
			ID:          MakeID(),
			UserID:      userID,
			CategoryID:  categoryID,
			Description: "Test recurring",
			Amount:      decimal.NewFromInt(100),
			Direction:   model.DirectionExpense,
			Frequency:   model.FrequencyMonthly,
			AnchorDay:   1,
			StartDate:   start,
			NextDueDate: start,
			IsActive:    true,
			CreatedAt:   time.Now().UTC(),
		},
	}
}

// WithFrequency sets the recurrence frequency.
func (b *RecurringBuilder) WithFrequency(frequency model.Frequency) *RecurringBuilder {
	b.recurring.Frequency = frequency
	return b
}

// WithAnchorDay sets the target day-of-month.
func (b *RecurringBuilder) WithAnchorDay(day int) *RecurringBuilder {
	b.recurring.AnchorDay = day
	return b
}

// WithSchedule sets the start date and next due date together.
func (b *RecurringBuilder) WithSchedule(start, nextDue time.Time) *RecurringBuilder {
	b.recurring.StartDate = start
	b.recurring.NextDueDate = nextDue
	return b
}

// WithEndDate sets the series end date.
func (b *RecurringBuilder) WithEndDate(end time.Time) *RecurringBuilder {
	b.recurring.EndDate = &end
	return b
}

// WithAmount sets the amount from a decimal string.
func (b *RecurringBuilder) WithAmount(amount string) *RecurringBuilder {
	b.recurring.Amount = decimal.RequireFromString(amount)
	return b
}

// Inactive marks the template as exhausted or disabled.
func (b *RecurringBuilder) Inactive() *RecurringBuilder {
	b.recurring.IsActive = false
	return b
}

// Build creates the recurring transaction in the database and returns it.
func (b *RecurringBuilder) Build(t *testing.T, db *sql.DB) model.RecurringTransaction {
	t.Helper()

	var endDate interface{}
	if b.recurring.EndDate != nil {
		endDate = b.recurring.EndDate.Format("2006-01-02")
	}

	_, err := db.Exec(
		`INSERT INTO recurring_transaction (
			id, user_id, category_id, description, amount, direction, frequency,
			anchor_day, start_date, end_date, next_due_date, is_active, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.recurring.ID,
		b.recurring.UserID,
		b.recurring.CategoryID,
		b.recurring.Description,
		b.recurring.Amount.String(),
		string(b.recurring.Direction),
		string(b.recurring.Frequency),
		b.recurring.AnchorDay,
		b.recurring.StartDate.Format("2006-01-02"),
		endDate,
		b.recurring.NextDueDate.Format("2006-01-02"),
		b.recurring.IsActive,
		b.recurring.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test recurring transaction: %v", err)
	}

	return b.recurring
}

// TransactionBuilder provides a fluent interface for creating test transactions.
type TransactionBuilder struct {
	transaction model.Transaction
}

// NewTransaction creates a TransactionBuilder with sensible defaults: an
// expense of 50 dated 2024-06-15.
func NewTransaction(userID, categoryID string) *TransactionBuilder {
	return &TransactionBuilder{
		transaction: model.Transaction{
			ID:          MakeID(),
			UserID:      userID,
			CategoryID:  categoryID,
			Date:        time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			Amount:      decimal.NewFromInt(50),
			Direction:   model.DirectionExpense,
			Description: "Test transaction",
			CreatedAt:   time.Now().UTC(),
		},
	}
}

// WithDate sets the transaction date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.transaction.Date = date
	return b
}

// WithAmount sets the amount from a decimal string.
func (b *TransactionBuilder) WithAmount(amount string) *TransactionBuilder {
	b.transaction.Amount = decimal.RequireFromString(amount)
	return b
}

// WithDirection sets the direction.
func (b *TransactionBuilder) WithDirection(direction model.Direction) *TransactionBuilder {
	b.transaction.Direction = direction
	return b
}

// FromRecurring links the transaction to a recurring template.
func (b *TransactionBuilder) FromRecurring(recurringID string) *TransactionBuilder {
	b.transaction.RecurringID = &recurringID
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO "transaction" (
			id, user_id, category_id, date, amount, direction, description,
			recurring_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.transaction.ID,
		b.transaction.UserID,
		b.transaction.CategoryID,
		b.transaction.Date.Format("2006-01-02"),
		b.transaction.Amount.String(),
		string(b.transaction.Direction),
		b.transaction.Description,
		b.transaction.RecurringID,
		b.transaction.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return b.transaction
}
