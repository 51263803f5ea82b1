package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-backend/internal/api/request"
	"github.com/fintrack/fintrack-backend/internal/model"
)

// ValidateCreateObjective validates an objective creation request.
//
// Required fields:
//   - targetAmount: must be strictly positive
//   - kind: must be one of: spending_limit, savings_goal
//   - period: YYYY-MM when supplied (empty defaults to current month)
//   - categoryId: must be a valid UUID when supplied
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateObjective(req request.CreateObjectiveRequest) error {
	errors := make(map[string]string)

	validateObjectiveFields(errors, req.CategoryID, req.TargetAmount, req.Kind)

	if req.Period != "" {
		if _, err := time.Parse("2006-01", req.Period); err != nil {
			errors["period"] = "period must be in YYYY-MM format"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateObjective validates an objective update request. Unlike
// creation, the period is required.
func ValidateUpdateObjective(req request.UpdateObjectiveRequest) error {
	errors := make(map[string]string)

	validateObjectiveFields(errors, req.CategoryID, req.TargetAmount, req.Kind)

	if strings.TrimSpace(req.Period) == "" {
		errors["period"] = "period is required"
	} else if _, err := time.Parse("2006-01", req.Period); err != nil {
		errors["period"] = "period must be in YYYY-MM format"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func validateObjectiveFields(errors map[string]string, categoryID *string, target decimal.Decimal, kind string) {
	if categoryID != nil {
		if err := ValidateUUID(*categoryID); err != nil {
			errors["categoryId"] = err.Error()
		}
	}

	if target.LessThanOrEqual(decimal.Zero) {
		errors["targetAmount"] = "targetAmount must be positive"
	}

	if strings.TrimSpace(kind) == "" {
		errors["kind"] = "kind is required"
	} else if !model.ValidObjectiveKinds[kind] {
		errors["kind"] = fmt.Sprintf("invalid kind: %s", kind)
	}
}
