package service

import (
	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-backend/internal/apperrors"
	"github.com/fintrack/fintrack-backend/internal/model"
)

// Valuate computes the derived worth of a holding from its quantity,
// total invested cost and the latest supplied quote. Quote sourcing
// lives outside this service; the value is an input, never fetched.
//
//   - CurrentValue = quantity * quote
//   - Profit = currentValue - investedCost
//   - ReturnRate = profit / investedCost * 100, rounded to two fractional
//     digits half-up; zero when investedCost is zero (a free acquisition
//     has no meaningful return rate and must not divide by zero).
//
// Pure decimal arithmetic, no I/O. A non-positive quantity fails with
// ErrInvalidQuantity; a negative invested cost or quote with
// ErrNegativeAmount.
func Valuate(quantity, investedCost, quote decimal.Decimal) (model.InvestmentValuation, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return model.InvestmentValuation{}, apperrors.ErrInvalidQuantity
	}
	if investedCost.IsNegative() || quote.IsNegative() {
		return model.InvestmentValuation{}, apperrors.ErrNegativeAmount
	}

	currentValue := quantity.Mul(quote)
	profit := currentValue.Sub(investedCost)

	returnRate := decimal.Zero
	if !investedCost.IsZero() {
		returnRate = profit.Mul(oneHundred).DivRound(investedCost, 2)
	}

	return model.InvestmentValuation{
		CurrentValue: currentValue,
		Profit:       profit,
		ReturnRate:   returnRate,
	}, nil
}
