package request

import "github.com/shopspring/decimal"

// CreateTransactionRequest is the payload for recording a transaction.
type CreateTransactionRequest struct {
	CategoryID  string          `json:"categoryId"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Direction   string          `json:"direction"`
	Description string          `json:"description"`
}

// CreateCategoryRequest is the payload for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// TokenRequest is the payload for issuing an access token for a user.
type TokenRequest struct {
	Email string `json:"email"`
}
