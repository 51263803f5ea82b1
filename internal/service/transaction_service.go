package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/fintrack-backend/internal/api/request"
	"github.com/fintrack/fintrack-backend/internal/apperrors"
	"github.com/fintrack/fintrack-backend/internal/model"
	"github.com/fintrack/fintrack-backend/internal/repository"
)

// TransactionService handles transaction-related business logic.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependency.
func NewTransactionService(transactionRepo *repository.TransactionRepository) *TransactionService {
	return &TransactionService{transactionRepo: transactionRepo}
}

// GetTransactions retrieves a user's transactions within a date range,
// enriched with category names.
func (s *TransactionService) GetTransactions(userID string, startDate, endDate time.Time) ([]model.TransactionResponse, error) {
	return s.transactionRepo.GetTransactions(userID, startDate, endDate)
}

// GetTransaction retrieves a single transaction by its ID. A
// transaction owned by another user is reported as not found so
// existence is not leaked.
func (s *TransactionService) GetTransaction(userID, transactionID string) (model.Transaction, error) {
	transaction, err := s.transactionRepo.GetTransaction(transactionID)
	if err != nil {
		return model.Transaction{}, err
	}
	if transaction.UserID != userID {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	return transaction, nil
}

// CreateTransaction records a new transaction for the user.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID string, req request.CreateTransactionRequest) (*model.Transaction, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date: %w", err)
	}

	transaction := &model.Transaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Date:        date,
		Amount:      req.Amount,
		Direction:   model.Direction(req.Direction),
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.transactionRepo.InsertTransaction(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return transaction, nil
}

// DeleteTransaction removes a user's transaction.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	if _, err := s.GetTransaction(userID, transactionID); err != nil {
		return err
	}
	return s.transactionRepo.DeleteTransaction(ctx, transactionID)
}
