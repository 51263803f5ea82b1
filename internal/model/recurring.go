package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the recurrence interval of a recurring transaction.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// ValidFrequencies contains the allowed frequency values.
var ValidFrequencies = map[string]bool{
	string(FrequencyDaily):   true,
	string(FrequencyWeekly):  true,
	string(FrequencyMonthly): true,
	string(FrequencyYearly):  true,
}

// RecurringTransaction is a template that materializes transactions on a
// schedule. AnchorDay is the target day-of-month (1-31) and is only
// meaningful for monthly and yearly frequencies; short months clamp it
// to their last day. NextDueDate advances on each materialization.
type RecurringTransaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	CategoryID  string          `json:"categoryId"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Direction   Direction       `json:"direction"`
	Frequency   Frequency       `json:"frequency"`
	AnchorDay   int             `json:"anchorDay"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     *time.Time      `json:"endDate,omitempty"`
	NextDueDate time.Time       `json:"nextDueDate"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt,omitempty"`
}
