package service

import (
	"time"

	"github.com/fintrack/fintrack-backend/internal/apperrors"
	"github.com/fintrack/fintrack-backend/internal/model"
)

// NextDueDate computes when a recurring transaction is due again after
// currentDue.
//
//   - daily: currentDue + 1 day
//   - weekly: currentDue + 7 days
//   - monthly: the next calendar month, on min(anchorDay, days in that
//     month). An anchor of 31 lands on the 30th or 28th/29th of short
//     months and never overflows into the month after.
//   - yearly: the same month next year, day clamped the same way, so a
//     Feb 29 anchor resolves to Feb 28 in non-leap years.
//
// If periodEnd is set and the computed date falls after it, the series
// has no further occurrences and ErrSeriesExhausted is returned; the
// caller deactivates the series. The result is never before currentDue.
//
// Deterministic and pure; all dates are normalized to midnight UTC on
// the stdlib proleptic Gregorian calendar.
func NextDueDate(frequency model.Frequency, anchorDay int, currentDue time.Time, periodEnd *time.Time) (time.Time, error) {
	currentDue = truncateToDay(currentDue)

	var next time.Time

	switch frequency {
	case model.FrequencyDaily:
		next = currentDue.AddDate(0, 0, 1)
	case model.FrequencyWeekly:
		next = currentDue.AddDate(0, 0, 7)
	case model.FrequencyMonthly:
		if anchorDay < 1 || anchorDay > 31 {
			return time.Time{}, apperrors.ErrInvalidAnchorDay
		}
		year, month := nextMonth(currentDue.Year(), currentDue.Month())
		next = time.Date(year, month, clampDay(anchorDay, year, month), 0, 0, 0, 0, time.UTC)
	case model.FrequencyYearly:
		if anchorDay < 1 || anchorDay > 31 {
			return time.Time{}, apperrors.ErrInvalidAnchorDay
		}
		year, month := currentDue.Year()+1, currentDue.Month()
		next = time.Date(year, month, clampDay(anchorDay, year, month), 0, 0, 0, 0, time.UTC)
	default:
		return time.Time{}, apperrors.ErrInvalidFrequency
	}

	if periodEnd != nil && next.After(truncateToDay(*periodEnd)) {
		return time.Time{}, apperrors.ErrSeriesExhausted
	}

	return next, nil
}

// clampDay resolves an anchor day against the actual length of the
// target month. Month-length and leap-year handling live only here so
// every frequency branch shares one implementation.
func clampDay(day, year int, month time.Month) int {
	last := daysInMonth(year, month)
	if day > last {
		return last
	}
	return day
}

// daysInMonth returns the number of days in the given month. Day zero of
// the following month normalizes to the last day of this one.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// nextMonth advances one calendar month, rolling the year over December.
func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// truncateToDay normalizes a timestamp to midnight UTC.
func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
