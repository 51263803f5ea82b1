package model

import "time"

// Category groups transactions for budgeting and objective tracking.
// Default categories are seeded at startup and cannot be deleted.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      Direction `json:"kind"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// User represents an account owning objectives, investments and
// transactions.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
