package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-backend/internal/api/request"
	"github.com/fintrack/fintrack-backend/internal/model"
)

// ValidateCreateTransaction validates a transaction creation request.
//
// Required fields:
//   - categoryId: must be a valid UUID
//   - date: must be in YYYY-MM-DD format
//   - amount: must be strictly positive (direction carries the sign)
//   - direction: income or expense
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.CategoryID); err != nil {
		errors["categoryId"] = err.Error()
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		errors["amount"] = "amount must be positive"
	}

	if strings.TrimSpace(req.Direction) == "" {
		errors["direction"] = "direction is required"
	} else if !model.ValidDirections[req.Direction] {
		errors["direction"] = fmt.Sprintf("invalid direction: %s", req.Direction)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateCreateCategory validates a category creation request.
func ValidateCreateCategory(req request.CreateCategoryRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if strings.TrimSpace(req.Kind) == "" {
		errors["kind"] = "kind is required"
	} else if !model.ValidDirections[req.Kind] {
		errors["kind"] = fmt.Sprintf("invalid kind: %s", req.Kind)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
