package service

import (
	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-backend/internal/apperrors"
	"github.com/fintrack/fintrack-backend/internal/model"
)

// Alert thresholds as percentages of the target amount.
var (
	yellowThreshold = decimal.NewFromInt(80)
	fullThreshold   = decimal.NewFromInt(100)
)

// AlertLevelFor maps a percent-achieved value to the alert level for the
// given objective kind.
//
// Both kinds share the 80% warning band. At 100% they diverge: reaching
// a savings goal is ACHIEVED, exceeding a spending limit is RED. The
// switch is exhaustive over objective kinds; an unknown kind is rejected
// so that adding a kind forces an update here.
func AlertLevelFor(kind model.ObjectiveKind, percentAchieved decimal.Decimal) (model.AlertLevel, error) {
	var full model.AlertLevel

	switch kind {
	case model.ObjectiveKindSavingsGoal:
		full = model.AlertLevelAchieved
	case model.ObjectiveKindSpendingLimit:
		full = model.AlertLevelRed
	default:
		return model.AlertLevelNone, apperrors.ErrInvalidObjectiveKind
	}

	switch {
	case percentAchieved.GreaterThanOrEqual(fullThreshold):
		return full, nil
	case percentAchieved.GreaterThanOrEqual(yellowThreshold):
		return model.AlertLevelYellow, nil
	default:
		return model.AlertLevelNone, nil
	}
}

// EvaluateTransition decides whether moving from a previously recorded
// alert level to a newly computed one requires a notification.
//
// Alerting is monotonic within an objective period: an event fires only
// when the level strictly increases in rank. A level already reported is
// never re-reported, and a drop (e.g. the current amount falling back
// below 80% after a refund) produces nothing. RED and ACHIEVED share the
// top rank, so once either is recorded the period is terminal.
//
// The second return value reports whether an event fired.
func EvaluateTransition(previous, next model.AlertLevel) (model.AlertEvent, bool) {
	if next.Rank() <= previous.Rank() {
		return model.AlertEvent{}, false
	}
	return model.AlertEvent{Level: next}, true
}
