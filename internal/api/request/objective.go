package request

import "github.com/shopspring/decimal"

// CreateObjectiveRequest is the payload for creating an objective.
// Period defaults to the current month when omitted.
type CreateObjectiveRequest struct {
	CategoryID   *string         `json:"categoryId,omitempty"`
	Description  string          `json:"description"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	Kind         string          `json:"kind"`
	Period       string          `json:"period,omitempty"`
}

// UpdateObjectiveRequest is the payload for updating an objective.
type UpdateObjectiveRequest struct {
	CategoryID   *string         `json:"categoryId,omitempty"`
	Description  string          `json:"description"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	Kind         string          `json:"kind"`
	Period       string          `json:"period"`
	IsActive     *bool           `json:"isActive,omitempty"`
}
