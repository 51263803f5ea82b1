package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-backend/internal/apperrors"
	"github.com/fintrack/fintrack-backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction
// table. Besides CRUD it implements the period aggregations that feed
// objective evaluation (the value-source queries).
type TransactionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) WithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *TransactionRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetTransactions retrieves all transactions for a user within the given
// date range, newest first, enriched with category names.
func (r *TransactionRepository) GetTransactions(userID string, startDate, endDate time.Time) ([]model.TransactionResponse, error) {
	query := `
		SELECT t.id, t.user_id, t.category_id, t.date, t.amount, t.direction,
		       t.description, t.recurring_id, t.created_at, c.name
		FROM "transaction" t
		JOIN category c ON c.id = t.category_id
		WHERE t.user_id = ?
		AND t.date >= ?
		AND t.date <= ?
		ORDER BY t.date DESC
	`

	rows, err := r.getQuerier().Query(query,
		userID,
		startDate.UTC().Format("2006-01-02"),
		endDate.UTC().Format("2006-01-02"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.TransactionResponse{}

	for rows.Next() {
		var t model.TransactionResponse
		var amountStr, dateStr, createdAtStr string

		err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.CategoryID,
			&dateStr,
			&amountStr,
			&t.Direction,
			&t.Description,
			&t.RecurringID,
			&createdAtStr,
			&t.CategoryName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}

		if t.Amount, err = ParseDecimal(amountStr); err != nil {
			return nil, err
		}
		if t.Date, err = ParseTime(dateStr); err != nil {
			return nil, err
		}
		if t.CreatedAt, err = ParseTime(createdAtStr); err != nil {
			return nil, err
		}

		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction by its ID.
// Returns apperrors.ErrTransactionNotFound if no transaction exists.
func (r *TransactionRepository) GetTransaction(transactionID string) (model.Transaction, error) {
	query := `
		SELECT id, user_id, category_id, date, amount, direction, description,
		       recurring_id, created_at
		FROM "transaction"
		WHERE id = ?
	`

	var t model.Transaction
	var amountStr, dateStr, createdAtStr string

	err := r.getQuerier().QueryRow(query, transactionID).Scan(
		&t.ID,
		&t.UserID,
		&t.CategoryID,
		&dateStr,
		&amountStr,
		&t.Direction,
		&t.Description,
		&t.RecurringID,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to query transaction table: %w", err)
	}

	if t.Amount, err = ParseDecimal(amountStr); err != nil {
		return model.Transaction{}, err
	}
	if t.Date, err = ParseTime(dateStr); err != nil {
		return model.Transaction{}, err
	}
	if t.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}

// InsertTransaction stores a new transaction.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
        INSERT INTO "transaction" (
            id, user_id, category_id, date, amount, direction, description,
            recurring_id, created_at
        )
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	_, err := r.getQuerier().ExecContext(ctx, query,
		t.ID,
		t.UserID,
		t.CategoryID,
		t.Date.UTC().Format("2006-01-02"),
		t.Amount.String(),
		string(t.Direction),
		t.Description,
		t.RecurringID,
		t.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// DeleteTransaction removes a transaction.
// Returns apperrors.ErrTransactionNotFound if no transaction exists.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM "transaction" WHERE id = ?`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}

// SumCategoryForPeriod totals a user's transactions in one category over
// a "YYYY-MM" period. This backs value sourcing for category-scoped
// objectives: spending in the category for a limit, contributions for a
// category-scoped savings goal.
func (r *TransactionRepository) SumCategoryForPeriod(userID, categoryID, period string) (decimal.Decimal, error) {
	start, end, err := PeriodBounds(period)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", apperrors.ErrSourceUnavailable, err)
	}

	query := `
		SELECT amount
		FROM "transaction"
		WHERE user_id = ?
		AND category_id = ?
		AND date >= ?
		AND date < ?
	`

	return r.sumAmounts(query,
		userID,
		categoryID,
		start.Format("2006-01-02"),
		end.Format("2006-01-02"),
	)
}

// SumNetForPeriod totals a user's income minus expenses over a "YYYY-MM"
// period. This backs value sourcing for user-scoped savings goals: what
// was saved is what came in and did not go out.
func (r *TransactionRepository) SumNetForPeriod(userID, period string) (decimal.Decimal, error) {
	start, end, err := PeriodBounds(period)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", apperrors.ErrSourceUnavailable, err)
	}

	query := `
		SELECT CASE direction WHEN 'expense' THEN '-' || amount ELSE amount END
		FROM "transaction"
		WHERE user_id = ?
		AND date >= ?
		AND date < ?
	`

	return r.sumAmounts(query,
		userID,
		start.Format("2006-01-02"),
		end.Format("2006-01-02"),
	)
}

// sumAmounts executes a query whose single column is a decimal amount
// and totals the rows in Go. Amounts are stored as TEXT, so summing in
// SQL would silently fall back to binary floats; the addition has to
// stay in decimal arithmetic.
func (r *TransactionRepository) sumAmounts(query string, args ...any) (decimal.Decimal, error) {
	rows, err := r.getQuerier().Query(query, args...)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", apperrors.ErrSourceUnavailable, err)
	}
	defer rows.Close()

	total := decimal.Zero

	for rows.Next() {
		var amountStr string
		if err := rows.Scan(&amountStr); err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: %v", apperrors.ErrSourceUnavailable, err)
		}
		amount, err := ParseDecimal(amountStr)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: %v", apperrors.ErrSourceUnavailable, err)
		}
		total = total.Add(amount)
	}

	if err := rows.Err(); err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", apperrors.ErrSourceUnavailable, err)
	}

	return total, nil
}
