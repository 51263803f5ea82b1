package service

import (
	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-backend/internal/model"
	"github.com/fintrack/fintrack-backend/internal/repository"
)

// ValueSource supplies the current amount an objective is measured
// against for its period. Implementations aggregate stored data;
// failures surface as apperrors.ErrSourceUnavailable and abort
// evaluation for that objective only.
type ValueSource interface {
	CurrentAmount(objective model.Objective) (decimal.Decimal, error)
}

// TransactionValueSource sources objective amounts from the transaction
// table. Category-scoped objectives total that category's transactions
// for the period; user-scoped savings goals total income minus expenses.
type TransactionValueSource struct {
	transactionRepo *repository.TransactionRepository
}

// NewTransactionValueSource creates a value source backed by the
// transaction repository.
func NewTransactionValueSource(transactionRepo *repository.TransactionRepository) *TransactionValueSource {
	return &TransactionValueSource{transactionRepo: transactionRepo}
}

// CurrentAmount returns the amount to compare against the objective's
// target for its period.
func (s *TransactionValueSource) CurrentAmount(objective model.Objective) (decimal.Decimal, error) {
	if objective.CategoryID != nil {
		return s.transactionRepo.SumCategoryForPeriod(objective.UserID, *objective.CategoryID, objective.Period)
	}
	return s.transactionRepo.SumNetForPeriod(objective.UserID, objective.Period)
}
