package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"github.com/fintrack/fintrack-backend/internal/notify"
	"github.com/fintrack/fintrack-backend/internal/repository"
	"github.com/fintrack/fintrack-backend/internal/service"
)

// MakeID returns a fresh UUID string.
func MakeID() string {
	return uuid.New().String()
}

// NewTestObjectiveService wires an ObjectiveService against the test
// database, using the transaction-backed value source and the given
// notifier.
func NewTestObjectiveService(t *testing.T, db *sql.DB, notifier notify.Notifier) *service.ObjectiveService {
	t.Helper()

	objectiveRepo := repository.NewObjectiveRepository(db)
	userRepo := repository.NewUserRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewObjectiveService(
		objectiveRepo,
		userRepo,
		service.NewTransactionValueSource(transactionRepo),
		notifier,
	)
}

func NewTestInvestmentService(t *testing.T, db *sql.DB) *service.InvestmentService {
	t.Helper()

	investmentRepo := repository.NewInvestmentRepository(db)

	return service.NewInvestmentService(
		investmentRepo,
	)
}

func NewTestRecurringService(t *testing.T, db *sql.DB) *service.RecurringService {
	t.Helper()

	recurringRepo := repository.NewRecurringRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewRecurringService(
		db,
		recurringRepo,
		transactionRepo,
	)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewTransactionService(
		transactionRepo,
	)
}

func NewTestCategoryService(t *testing.T, db *sql.DB) *service.CategoryService {
	t.Helper()

	categoryRepo := repository.NewCategoryRepository(db)

	return service.NewCategoryService(
		categoryRepo,
	)
}
