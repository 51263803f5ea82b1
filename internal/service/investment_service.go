package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-backend/internal/api/request"
	"github.com/fintrack/fintrack-backend/internal/apperrors"
	"github.com/fintrack/fintrack-backend/internal/model"
	"github.com/fintrack/fintrack-backend/internal/repository"
)

// InvestmentService handles investment-related business logic.
type InvestmentService struct {
	investmentRepo *repository.InvestmentRepository
}

// NewInvestmentService creates a new InvestmentService with the provided repository dependency.
func NewInvestmentService(investmentRepo *repository.InvestmentRepository) *InvestmentService {
	return &InvestmentService{investmentRepo: investmentRepo}
}

// GetInvestments retrieves a user's active investments enriched with
// their current valuation at the latest supplied quote. Deactivated
// holdings are kept for history but left out of the listing.
func (s *InvestmentService) GetInvestments(userID string) ([]model.InvestmentResponse, error) {
	investments, err := s.investmentRepo.GetInvestments(userID, true)
	if err != nil {
		return nil, err
	}

	responses := make([]model.InvestmentResponse, 0, len(investments))
	for _, inv := range investments {
		valuation, err := Valuate(inv.Quantity, inv.InvestedCost, inv.LatestQuote)
		if err != nil {
			return nil, fmt.Errorf("failed to value investment %s: %w", inv.ID, err)
		}
		responses = append(responses, model.InvestmentResponse{
			Investment:          inv,
			InvestmentValuation: valuation,
		})
	}

	return responses, nil
}

// GetInvestment retrieves a single investment with its valuation. A
// holding owned by another user is reported as not found so existence
// is not leaked.
func (s *InvestmentService) GetInvestment(userID, investmentID string) (model.InvestmentResponse, error) {
	inv, err := s.investmentRepo.GetInvestment(investmentID)
	if err != nil {
		return model.InvestmentResponse{}, err
	}
	if inv.UserID != userID {
		return model.InvestmentResponse{}, apperrors.ErrInvestmentNotFound
	}

	valuation, err := Valuate(inv.Quantity, inv.InvestedCost, inv.LatestQuote)
	if err != nil {
		return model.InvestmentResponse{}, fmt.Errorf("failed to value investment %s: %w", inv.ID, err)
	}

	return model.InvestmentResponse{
		Investment:          inv,
		InvestmentValuation: valuation,
	}, nil
}

// CreateInvestment registers a new holding. The invested cost is fixed
// here as quantity * purchase price and never recomputed afterwards.
// The latest quote starts at the purchase price until the caller
// supplies one.
func (s *InvestmentService) CreateInvestment(ctx context.Context, userID string, req request.CreateInvestmentRequest) (*model.Investment, error) {
	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse purchase date: %w", err)
	}

	investment := &model.Investment{
		ID:            uuid.New().String(),
		UserID:        userID,
		Symbol:        req.Symbol,
		Name:          req.Name,
		AssetType:     req.AssetType,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		InvestedCost:  req.Quantity.Mul(req.PurchasePrice),
		LatestQuote:   req.PurchasePrice,
		PurchaseDate:  purchaseDate,
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.investmentRepo.InsertInvestment(ctx, investment); err != nil {
		return nil, fmt.Errorf("failed to create investment: %w", err)
	}

	return investment, nil
}

// UpdateQuote stores a caller-supplied market quote and returns the
// holding revalued at it.
func (s *InvestmentService) UpdateQuote(ctx context.Context, userID, investmentID string, quote decimal.Decimal) (model.InvestmentResponse, error) {
	if _, err := s.GetInvestment(userID, investmentID); err != nil {
		return model.InvestmentResponse{}, err
	}
	if err := s.investmentRepo.UpdateQuote(ctx, investmentID, quote); err != nil {
		return model.InvestmentResponse{}, err
	}
	return s.GetInvestment(userID, investmentID)
}

// DeactivateInvestment marks a user's holding as closed without
// deleting its history.
func (s *InvestmentService) DeactivateInvestment(ctx context.Context, userID, investmentID string) error {
	if _, err := s.GetInvestment(userID, investmentID); err != nil {
		return err
	}
	return s.investmentRepo.SetActive(ctx, investmentID, false)
}

// DeleteInvestment removes a user's holding.
func (s *InvestmentService) DeleteInvestment(ctx context.Context, userID, investmentID string) error {
	if _, err := s.GetInvestment(userID, investmentID); err != nil {
		return err
	}
	return s.investmentRepo.DeleteInvestment(ctx, investmentID)
}
