package request

import "github.com/shopspring/decimal"

// CreateRecurringRequest is the payload for creating a recurring
// transaction template. AnchorDay is required for monthly and yearly
// frequencies and ignored otherwise; when omitted it defaults to the
// start date's day-of-month.
type CreateRecurringRequest struct {
	CategoryID  string          `json:"categoryId"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Direction   string          `json:"direction"`
	Frequency   string          `json:"frequency"`
	AnchorDay   int             `json:"anchorDay,omitempty"`
	StartDate   string          `json:"startDate"`
	EndDate     *string         `json:"endDate,omitempty"`
}
