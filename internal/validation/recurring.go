package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-backend/internal/api/request"
	"github.com/fintrack/fintrack-backend/internal/model"
)

// ValidateCreateRecurring validates a recurring-transaction creation request.
//
// Required fields:
//   - categoryId: must be a valid UUID
//   - amount: must be strictly positive
//   - direction: income or expense
//   - frequency: daily, weekly, monthly or yearly
//   - anchorDay: 1-31 when supplied (0 means "use the start date's day")
//   - startDate: YYYY-MM-DD; endDate, when supplied, must not precede it
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateRecurring(req request.CreateRecurringRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.CategoryID); err != nil {
		errors["categoryId"] = err.Error()
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		errors["amount"] = "amount must be positive"
	}

	if strings.TrimSpace(req.Direction) == "" {
		errors["direction"] = "direction is required"
	} else if !model.ValidDirections[req.Direction] {
		errors["direction"] = fmt.Sprintf("invalid direction: %s", req.Direction)
	}

	if strings.TrimSpace(req.Frequency) == "" {
		errors["frequency"] = "frequency is required"
	} else if !model.ValidFrequencies[req.Frequency] {
		errors["frequency"] = fmt.Sprintf("invalid frequency: %s", req.Frequency)
	}

	if req.AnchorDay < 0 || req.AnchorDay > 31 {
		errors["anchorDay"] = "anchorDay must be between 1 and 31"
	}

	var startDate time.Time
	if strings.TrimSpace(req.StartDate) == "" {
		errors["startDate"] = "startDate is required"
	} else {
		var err error
		startDate, err = time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			errors["startDate"] = err.Error()
		}
	}

	if req.EndDate != nil {
		endDate, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			errors["endDate"] = err.Error()
		} else if !startDate.IsZero() && endDate.Before(startDate) {
			errors["endDate"] = "endDate cannot be before startDate"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
