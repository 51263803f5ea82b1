package service

import (
	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-backend/internal/apperrors"
	"github.com/fintrack/fintrack-backend/internal/model"
)

var oneHundred = decimal.NewFromInt(100)

// CalculateProgress computes how far an objective has progressed towards
// its target amount.
//
// The calculation is pure decimal arithmetic with no I/O:
//   - PercentAchieved = current / target * 100, rounded to two fractional
//     digits half-up. Rounding happens only here, at the output boundary;
//     intermediate values are never rounded. The percentage is unbounded
//     above 100 (a spending limit can be exceeded).
//   - Remaining = target - current. Remaining may be negative; this
//     function is sign-agnostic and callers interpret the sign by
//     objective kind.
//
// Inputs are rejected, never clamped: a target of zero or less fails
// with ErrInvalidTarget, a negative current amount with
// ErrNegativeAmount.
func CalculateProgress(target, current decimal.Decimal) (model.ObjectiveProgress, error) {
	if target.LessThanOrEqual(decimal.Zero) {
		return model.ObjectiveProgress{}, apperrors.ErrInvalidTarget
	}
	if current.IsNegative() {
		return model.ObjectiveProgress{}, apperrors.ErrNegativeAmount
	}

	return model.ObjectiveProgress{
		PercentAchieved: current.Mul(oneHundred).DivRound(target, 2),
		Remaining:       target.Sub(current),
	}, nil
}
