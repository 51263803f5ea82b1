package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-backend/internal/api/request"
	"github.com/fintrack/fintrack-backend/internal/model"
)

// ValidateCreateInvestment validates an investment creation request.
//
// Required fields:
//   - symbol, name: non-empty
//   - assetType: must be one of the known asset types
//   - quantity: must be strictly positive
//   - purchasePrice: must be non-negative
//   - purchaseDate: must be in YYYY-MM-DD format
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateInvestment(req request.CreateInvestmentRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	}

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if strings.TrimSpace(req.AssetType) == "" {
		errors["assetType"] = "assetType is required"
	} else if !model.ValidAssetTypes[req.AssetType] {
		errors["assetType"] = fmt.Sprintf("invalid assetType: %s", req.AssetType)
	}

	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		errors["quantity"] = "quantity must be positive"
	}

	if req.PurchasePrice.IsNegative() {
		errors["purchasePrice"] = "purchasePrice cannot be negative"
	}

	if strings.TrimSpace(req.PurchaseDate) == "" {
		errors["purchaseDate"] = "purchaseDate is required"
	} else if _, err := time.Parse("2006-01-02", req.PurchaseDate); err != nil {
		errors["purchaseDate"] = err.Error()
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateQuote validates a quote update request. A zero quote is
// allowed (a holding can become worthless); a negative one is not.
func ValidateUpdateQuote(req request.UpdateQuoteRequest) error {
	if req.Quote.IsNegative() {
		return &Error{Fields: map[string]string{"quote": "quote cannot be negative"}}
	}
	return nil
}
