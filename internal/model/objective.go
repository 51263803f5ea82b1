package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ObjectiveKind distinguishes the two objective semantics: a spending
// limit alerts when spending approaches or exceeds the target, a savings
// goal alerts when saved funds approach or reach it.
type ObjectiveKind string

const (
	ObjectiveKindSpendingLimit ObjectiveKind = "spending_limit"
	ObjectiveKindSavingsGoal   ObjectiveKind = "savings_goal"
)

// ValidObjectiveKinds contains the allowed objective kind values.
var ValidObjectiveKinds = map[string]bool{
	string(ObjectiveKindSpendingLimit): true,
	string(ObjectiveKindSavingsGoal):   true,
}

// Objective represents a user-defined savings or spending target tracked
// over a calendar month ("YYYY-MM" period token).
//
// LastNotifiedLevel and LastNotifiedPeriod make alert-crossing detection
// durable across restarts: a notification fires only when the computed
// level strictly exceeds the level already recorded for the current
// period.
type Objective struct {
	ID                 string          `json:"id"`
	UserID             string          `json:"userId"`
	CategoryID         *string         `json:"categoryId,omitempty"`
	Description        string          `json:"description"`
	TargetAmount       decimal.Decimal `json:"targetAmount"`
	Kind               ObjectiveKind   `json:"kind"`
	Period             string          `json:"period"`
	IsActive           bool            `json:"isActive"`
	LastNotifiedLevel  AlertLevel      `json:"lastNotifiedLevel"`
	LastNotifiedPeriod string          `json:"lastNotifiedPeriod,omitempty"`
	CreatedAt          time.Time       `json:"createdAt,omitempty"`
}

// ObjectiveProgress holds the derived progress values for an objective.
// Remaining may be negative when a spending limit has been exceeded;
// callers interpret the sign by objective kind.
type ObjectiveProgress struct {
	PercentAchieved decimal.Decimal `json:"percentAchieved"`
	Remaining       decimal.Decimal `json:"remaining"`
}

// ObjectiveProgressResponse is the enriched progress summary returned by
// the API for a single objective.
type ObjectiveProgressResponse struct {
	ObjectiveID     string          `json:"objectiveId"`
	Description     string          `json:"description"`
	Kind            ObjectiveKind   `json:"kind"`
	Period          string          `json:"period"`
	TargetAmount    decimal.Decimal `json:"targetAmount"`
	CurrentAmount   decimal.Decimal `json:"currentAmount"`
	PercentAchieved decimal.Decimal `json:"percentAchieved"`
	Remaining       decimal.Decimal `json:"remaining"`
	AlertStatus     AlertLevel      `json:"alertStatus"`
}
