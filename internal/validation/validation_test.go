package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-backend/internal/api/request"
	"github.com/fintrack/fintrack-backend/internal/validation"
)

func validObjectiveRequest() request.CreateObjectiveRequest {
	return request.CreateObjectiveRequest{
		Description:  "Groceries budget",
		TargetAmount: decimal.NewFromInt(500),
		Kind:         "spending_limit",
		Period:       "2024-06",
	}
}

func TestValidateCreateObjective(t *testing.T) {
	t.Run("accepts a valid request", func(t *testing.T) {
		if err := validation.ValidateCreateObjective(validObjectiveRequest()); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("accepts an omitted period", func(t *testing.T) {
		req := validObjectiveRequest()
		req.Period = ""
		if err := validation.ValidateCreateObjective(req); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("rejects a non-positive target", func(t *testing.T) {
		req := validObjectiveRequest()
		req.TargetAmount = decimal.Zero
		assertFieldError(t, validation.ValidateCreateObjective(req), "targetAmount")
	})

	t.Run("rejects an unknown kind", func(t *testing.T) {
		req := validObjectiveRequest()
		req.Kind = "budget"
		assertFieldError(t, validation.ValidateCreateObjective(req), "kind")
	})

	t.Run("rejects a malformed period", func(t *testing.T) {
		req := validObjectiveRequest()
		req.Period = "June 2024"
		assertFieldError(t, validation.ValidateCreateObjective(req), "period")
	})

	t.Run("rejects a malformed category ID", func(t *testing.T) {
		req := validObjectiveRequest()
		badID := "not-a-uuid"
		req.CategoryID = &badID
		assertFieldError(t, validation.ValidateCreateObjective(req), "categoryId")
	})
}

func TestValidateUpdateObjective(t *testing.T) {
	t.Run("requires the period", func(t *testing.T) {
		req := request.UpdateObjectiveRequest{
			TargetAmount: decimal.NewFromInt(500),
			Kind:         "savings_goal",
		}
		assertFieldError(t, validation.ValidateUpdateObjective(req), "period")
	})
}

func TestValidateCreateInvestment(t *testing.T) {
	valid := func() request.CreateInvestmentRequest {
		return request.CreateInvestmentRequest{
			Symbol:        "VWCE",
			Name:          "Vanguard FTSE All-World",
			AssetType:     "etf",
			Quantity:      decimal.NewFromInt(10),
			PurchasePrice: decimal.NewFromInt(100),
			PurchaseDate:  "2024-01-15",
		}
	}

	t.Run("accepts a valid request", func(t *testing.T) {
		if err := validation.ValidateCreateInvestment(valid()); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("rejects an unknown asset type", func(t *testing.T) {
		req := valid()
		req.AssetType = "painting"
		assertFieldError(t, validation.ValidateCreateInvestment(req), "assetType")
	})

	t.Run("rejects a non-positive quantity", func(t *testing.T) {
		req := valid()
		req.Quantity = decimal.Zero
		assertFieldError(t, validation.ValidateCreateInvestment(req), "quantity")
	})

	t.Run("collects every failing field", func(t *testing.T) {
		err := validation.ValidateCreateInvestment(request.CreateInvestmentRequest{})
		if err == nil {
			t.Fatal("Expected error for empty request, got nil")
		}
		var vErr *validation.Error
		if !errors.As(err, &vErr) {
			t.Fatalf("Expected *validation.Error, got %T", err)
		}
		for _, field := range []string{"symbol", "name", "assetType", "quantity", "purchaseDate"} {
			if _, ok := vErr.Fields[field]; !ok {
				t.Errorf("Expected error for field %s", field)
			}
		}
	})
}

func TestValidateUpdateQuote(t *testing.T) {
	t.Run("accepts a zero quote", func(t *testing.T) {
		if err := validation.ValidateUpdateQuote(request.UpdateQuoteRequest{Quote: decimal.Zero}); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("rejects a negative quote", func(t *testing.T) {
		err := validation.ValidateUpdateQuote(request.UpdateQuoteRequest{Quote: decimal.NewFromInt(-1)})
		assertFieldError(t, err, "quote")
	})
}

func TestValidateCreateRecurring(t *testing.T) {
	valid := func() request.CreateRecurringRequest {
		return request.CreateRecurringRequest{
			CategoryID:  uuid.New().String(),
			Description: "Rent",
			Amount:      decimal.NewFromInt(1200),
			Direction:   "expense",
			Frequency:   "monthly",
			AnchorDay:   1,
			StartDate:   "2024-01-01",
		}
	}

	t.Run("accepts a valid request", func(t *testing.T) {
		if err := validation.ValidateCreateRecurring(valid()); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("accepts an omitted anchor day", func(t *testing.T) {
		req := valid()
		req.AnchorDay = 0
		if err := validation.ValidateCreateRecurring(req); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("rejects an unknown frequency", func(t *testing.T) {
		req := valid()
		req.Frequency = "fortnightly"
		assertFieldError(t, validation.ValidateCreateRecurring(req), "frequency")
	})

	t.Run("rejects an out-of-range anchor day", func(t *testing.T) {
		req := valid()
		req.AnchorDay = 32
		assertFieldError(t, validation.ValidateCreateRecurring(req), "anchorDay")
	})

	t.Run("rejects an end date before the start date", func(t *testing.T) {
		req := valid()
		end := "2023-12-31"
		req.EndDate = &end
		assertFieldError(t, validation.ValidateCreateRecurring(req), "endDate")
	})
}

func TestValidateCreateTransaction(t *testing.T) {
	valid := func() request.CreateTransactionRequest {
		return request.CreateTransactionRequest{
			CategoryID: uuid.New().String(),
			Date:       "2024-06-15",
			Amount:     decimal.NewFromInt(50),
			Direction:  "expense",
		}
	}

	t.Run("accepts a valid request", func(t *testing.T) {
		if err := validation.ValidateCreateTransaction(valid()); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		req := valid()
		req.Amount = decimal.NewFromInt(-5)
		assertFieldError(t, validation.ValidateCreateTransaction(req), "amount")
	})

	t.Run("rejects an unknown direction", func(t *testing.T) {
		req := valid()
		req.Direction = "transfer"
		assertFieldError(t, validation.ValidateCreateTransaction(req), "direction")
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		req := valid()
		req.Date = "15/06/2024"
		assertFieldError(t, validation.ValidateCreateTransaction(req), "date")
	})
}

func assertFieldError(t *testing.T, err error, field string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected validation error for %s, got nil", field)
	}
	var vErr *validation.Error
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected *validation.Error, got %T", err)
	}
	if _, ok := vErr.Fields[field]; !ok {
		t.Errorf("Expected error for field %s, got %v", field, vErr.Fields)
	}
	if !strings.Contains(err.Error(), field) {
		t.Errorf("Expected message to mention %s, got %q", field, err.Error())
	}
}
