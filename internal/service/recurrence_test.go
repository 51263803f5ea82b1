package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/fintrack/fintrack-backend/internal/apperrors"
	"github.com/fintrack/fintrack-backend/internal/model"
	"github.com/fintrack/fintrack-backend/internal/service"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TestNextDueDate tests the recurrence schedule arithmetic.
//
// WHY: Due dates drive automatic transaction materialization; a wrong
// date charges users on the wrong day. Month-end clamping and leap-year
// handling are the error-prone paths and get explicit coverage.
func TestNextDueDate(t *testing.T) {
	tests := []struct {
		name       string
		frequency  model.Frequency
		anchorDay  int
		currentDue time.Time
		want       time.Time
	}{
		{"daily advances one day", model.FrequencyDaily, 0, date(2024, 3, 15), date(2024, 3, 16)},
		{"daily rolls over month end", model.FrequencyDaily, 0, date(2024, 1, 31), date(2024, 2, 1)},
		{"weekly advances seven days", model.FrequencyWeekly, 0, date(2024, 3, 15), date(2024, 3, 22)},
		{"weekly rolls over year end", model.FrequencyWeekly, 0, date(2024, 12, 30), date(2025, 1, 6)},
		{"monthly keeps anchor day", model.FrequencyMonthly, 15, date(2024, 3, 15), date(2024, 4, 15)},
		{"monthly clamps to leap February", model.FrequencyMonthly, 31, date(2024, 1, 31), date(2024, 2, 29)},
		{"monthly clamps to non-leap February", model.FrequencyMonthly, 31, date(2023, 1, 31), date(2023, 2, 28)},
		{"monthly recovers anchor after clamp", model.FrequencyMonthly, 31, date(2024, 2, 29), date(2024, 3, 31)},
		{"monthly clamps 31 to 30-day month", model.FrequencyMonthly, 31, date(2024, 3, 31), date(2024, 4, 30)},
		{"monthly rolls over December", model.FrequencyMonthly, 15, date(2024, 12, 15), date(2025, 1, 15)},
		{"yearly keeps month and day", model.FrequencyYearly, 15, date(2024, 3, 15), date(2025, 3, 15)},
		{"yearly clamps Feb 29 in non-leap year", model.FrequencyYearly, 29, date(2024, 2, 29), date(2025, 2, 28)},
		{"yearly recovers Feb 29 in next leap year", model.FrequencyYearly, 29, date(2027, 2, 28), date(2028, 2, 29)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := service.NextDueDate(tt.frequency, tt.anchorDay, tt.currentDue, nil)
			if err != nil {
				t.Fatalf("NextDueDate() returned unexpected error: %v", err)
			}
			if !next.Equal(tt.want) {
				t.Errorf("Expected %s, got %s", tt.want.Format("2006-01-02"), next.Format("2006-01-02"))
			}
		})
	}

	t.Run("result is never before the current due date", func(t *testing.T) {
		current := date(2024, 1, 31)
		for i := 0; i < 24; i++ {
			next, err := service.NextDueDate(model.FrequencyMonthly, 31, current, nil)
			if err != nil {
				t.Fatalf("NextDueDate() returned unexpected error: %v", err)
			}
			if !next.After(current) {
				t.Fatalf("Due date went backwards: %s -> %s", current, next)
			}
			current = next
		}
	})

	t.Run("normalizes a timestamp with a time component", func(t *testing.T) {
		current := time.Date(2024, 3, 15, 13, 45, 30, 0, time.UTC)
		next, err := service.NextDueDate(model.FrequencyDaily, 0, current, nil)
		if err != nil {
			t.Fatalf("NextDueDate() returned unexpected error: %v", err)
		}
		if !next.Equal(date(2024, 3, 16)) {
			t.Errorf("Expected 2024-03-16 midnight, got %s", next)
		}
	})

	t.Run("returns ErrSeriesExhausted past the end date", func(t *testing.T) {
		end := date(2024, 4, 10)
		_, err := service.NextDueDate(model.FrequencyMonthly, 15, date(2024, 3, 15), &end)
		if !errors.Is(err, apperrors.ErrSeriesExhausted) {
			t.Errorf("Expected ErrSeriesExhausted, got %v", err)
		}
	})

	t.Run("end date itself is still a valid occurrence", func(t *testing.T) {
		end := date(2024, 4, 15)
		next, err := service.NextDueDate(model.FrequencyMonthly, 15, date(2024, 3, 15), &end)
		if err != nil {
			t.Fatalf("NextDueDate() returned unexpected error: %v", err)
		}
		if !next.Equal(end) {
			t.Errorf("Expected %s, got %s", end.Format("2006-01-02"), next.Format("2006-01-02"))
		}
	})

	t.Run("rejects anchor day outside 1-31 for monthly", func(t *testing.T) {
		for _, day := range []int{0, -1, 32} {
			_, err := service.NextDueDate(model.FrequencyMonthly, day, date(2024, 3, 15), nil)
			if !errors.Is(err, apperrors.ErrInvalidAnchorDay) {
				t.Errorf("anchorDay=%d: expected ErrInvalidAnchorDay, got %v", day, err)
			}
		}
	})

	t.Run("rejects anchor day outside 1-31 for yearly", func(t *testing.T) {
		_, err := service.NextDueDate(model.FrequencyYearly, 0, date(2024, 3, 15), nil)
		if !errors.Is(err, apperrors.ErrInvalidAnchorDay) {
			t.Errorf("Expected ErrInvalidAnchorDay, got %v", err)
		}
	})

	t.Run("rejects unknown frequency", func(t *testing.T) {
		_, err := service.NextDueDate("fortnightly", 1, date(2024, 3, 15), nil)
		if !errors.Is(err, apperrors.ErrInvalidFrequency) {
			t.Errorf("Expected ErrInvalidFrequency, got %v", err)
		}
	})
}
