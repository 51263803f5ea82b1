package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction marks a transaction as money in or money out.
type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
)

// ValidDirections contains the allowed direction values.
var ValidDirections = map[string]bool{
	string(DirectionIncome):  true,
	string(DirectionExpense): true,
}

// Transaction represents a single dated movement of money for a user.
// Used internally for calculations and data processing. RecurringID
// links transactions materialized from a recurring template back to
// their source.
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	CategoryID  string          `json:"categoryId"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Direction   Direction       `json:"direction"`
	Description string          `json:"description"`
	RecurringID *string         `json:"recurringId,omitempty"`
	CreatedAt   time.Time       `json:"createdAt,omitempty"`
}

// TransactionResponse represents a transaction with enriched data for
// API responses. Includes the category name.
type TransactionResponse struct {
	Transaction
	CategoryName string `json:"categoryName"`
}
