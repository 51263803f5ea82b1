package service_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-backend/internal/apperrors"
	"github.com/fintrack/fintrack-backend/internal/service"
)

// TestCalculateProgress tests the progress calculation.
//
// WHY: Progress drives both the API display and alert evaluation. The
// arithmetic must be exact decimal math with rounding applied only at
// the output boundary, and invalid inputs must be rejected rather than
// clamped.
func TestCalculateProgress(t *testing.T) {
	t.Run("computes percent and remaining", func(t *testing.T) {
		progress, err := service.CalculateProgress(
			decimal.RequireFromString("1000"),
			decimal.RequireFromString("750"),
		)
		if err != nil {
			t.Fatalf("CalculateProgress() returned unexpected error: %v", err)
		}

		if progress.PercentAchieved.String() != "75" {
			t.Errorf("Expected percent 75, got %s", progress.PercentAchieved)
		}
		if progress.Remaining.String() != "250" {
			t.Errorf("Expected remaining 250, got %s", progress.Remaining)
		}
	})

	t.Run("rounds half-up to two decimal places", func(t *testing.T) {
		// 100 / 3 * 100 = 33.333... -> 33.33
		progress, err := service.CalculateProgress(
			decimal.RequireFromString("3"),
			decimal.RequireFromString("1"),
		)
		if err != nil {
			t.Fatalf("CalculateProgress() returned unexpected error: %v", err)
		}

		if progress.PercentAchieved.String() != "33.33" {
			t.Errorf("Expected percent 33.33, got %s", progress.PercentAchieved)
		}
	})

	t.Run("keeps exact decimal amounts that break binary floats", func(t *testing.T) {
		// 0.1 + 0.2 style values must not pick up float artifacts.
		progress, err := service.CalculateProgress(
			decimal.RequireFromString("0.3"),
			decimal.RequireFromString("0.1"),
		)
		if err != nil {
			t.Fatalf("CalculateProgress() returned unexpected error: %v", err)
		}

		if progress.PercentAchieved.String() != "33.33" {
			t.Errorf("Expected percent 33.33, got %s", progress.PercentAchieved)
		}
		if progress.Remaining.String() != "0.2" {
			t.Errorf("Expected remaining 0.2, got %s", progress.Remaining)
		}
	})

	t.Run("percent exceeds 100 when a limit is overspent", func(t *testing.T) {
		progress, err := service.CalculateProgress(
			decimal.RequireFromString("1000"),
			decimal.RequireFromString("1050"),
		)
		if err != nil {
			t.Fatalf("CalculateProgress() returned unexpected error: %v", err)
		}

		if progress.PercentAchieved.String() != "105" {
			t.Errorf("Expected percent 105, got %s", progress.PercentAchieved)
		}
		if progress.Remaining.String() != "-50" {
			t.Errorf("Expected remaining -50, got %s", progress.Remaining)
		}
	})

	t.Run("zero current is zero percent", func(t *testing.T) {
		progress, err := service.CalculateProgress(
			decimal.RequireFromString("500"),
			decimal.Zero,
		)
		if err != nil {
			t.Fatalf("CalculateProgress() returned unexpected error: %v", err)
		}

		if !progress.PercentAchieved.IsZero() {
			t.Errorf("Expected percent 0, got %s", progress.PercentAchieved)
		}
		if progress.Remaining.String() != "500" {
			t.Errorf("Expected remaining 500, got %s", progress.Remaining)
		}
	})

	t.Run("rejects zero target", func(t *testing.T) {
		_, err := service.CalculateProgress(decimal.Zero, decimal.NewFromInt(10))
		if !errors.Is(err, apperrors.ErrInvalidTarget) {
			t.Errorf("Expected ErrInvalidTarget, got %v", err)
		}
	})

	t.Run("rejects negative target", func(t *testing.T) {
		_, err := service.CalculateProgress(decimal.NewFromInt(-100), decimal.NewFromInt(10))
		if !errors.Is(err, apperrors.ErrInvalidTarget) {
			t.Errorf("Expected ErrInvalidTarget, got %v", err)
		}
	})

	t.Run("rejects negative current amount", func(t *testing.T) {
		_, err := service.CalculateProgress(decimal.NewFromInt(100), decimal.NewFromInt(-10))
		if !errors.Is(err, apperrors.ErrNegativeAmount) {
			t.Errorf("Expected ErrNegativeAmount, got %v", err)
		}
	})
}
