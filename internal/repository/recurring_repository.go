package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fintrack/fintrack-backend/internal/apperrors"
	"github.com/fintrack/fintrack-backend/internal/model"
)

// RecurringRepository provides data access methods for the
// recurring_transaction table.
type RecurringRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewRecurringRepository creates a new RecurringRepository with the provided database connection.
func NewRecurringRepository(db *sql.DB) *RecurringRepository {
	return &RecurringRepository{db: db}
}

func (r *RecurringRepository) WithTx(tx *sql.Tx) *RecurringRepository {
	return &RecurringRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *RecurringRepository) getQuerier() interface {
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

const recurringColumns = `
	id, user_id, category_id, description, amount, direction, frequency,
	anchor_day, start_date, end_date, next_due_date, is_active, created_at
`

// GetRecurringTransactions retrieves all recurring transactions for a
// user ordered by next due date. Returns an empty slice if the user has
// none.
func (r *RecurringRepository) GetRecurringTransactions(userID string) ([]model.RecurringTransaction, error) {
	query := `SELECT ` + recurringColumns + ` FROM recurring_transaction WHERE user_id = ? ORDER BY next_due_date ASC`

	rows, err := r.getQuerier().Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring_transaction table: %w", err)
	}
	defer rows.Close()

	return scanRecurring(rows)
}

// GetDue retrieves every active recurring transaction whose next due
// date is on or before asOf, across all users. Used by the advancement
// batch.
func (r *RecurringRepository) GetDue(asOf time.Time) ([]model.RecurringTransaction, error) {
	query := `
		SELECT ` + recurringColumns + `
		FROM recurring_transaction
		WHERE is_active = 1
		AND next_due_date <= ?
		ORDER BY next_due_date ASC
	`

	rows, err := r.getQuerier().Query(query, asOf.UTC().Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring_transaction table: %w", err)
	}
	defer rows.Close()

	return scanRecurring(rows)
}

// GetRecurringTransaction retrieves a single recurring transaction by its ID.
// Returns apperrors.ErrRecurringNotFound if none exists.
func (r *RecurringRepository) GetRecurringTransaction(recurringID string) (model.RecurringTransaction, error) {
	query := `SELECT ` + recurringColumns + ` FROM recurring_transaction WHERE id = ?`

	rows, err := r.getQuerier().Query(query, recurringID)
	if err != nil {
		return model.RecurringTransaction{}, fmt.Errorf("failed to query recurring_transaction table: %w", err)
	}
	defer rows.Close()

	recurring, err := scanRecurring(rows)
	if err != nil {
		return model.RecurringTransaction{}, err
	}
	if len(recurring) == 0 {
		return model.RecurringTransaction{}, apperrors.ErrRecurringNotFound
	}
	return recurring[0], nil
}

// InsertRecurringTransaction stores a new recurring transaction template.
func (r *RecurringRepository) InsertRecurringTransaction(ctx context.Context, rt *model.RecurringTransaction) error {
	query := `
        INSERT INTO recurring_transaction (
            id, user_id, category_id, description, amount, direction, frequency,
            anchor_day, start_date, end_date, next_due_date, is_active, created_at
        )
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	var endDate any
	if rt.EndDate != nil {
		endDate = rt.EndDate.UTC().Format("2006-01-02")
	}

	_, err := r.getQuerier().ExecContext(ctx, query,
		rt.ID,
		rt.UserID,
		rt.CategoryID,
		rt.Description,
		rt.Amount.String(),
		string(rt.Direction),
		string(rt.Frequency),
		rt.AnchorDay,
		rt.StartDate.UTC().Format("2006-01-02"),
		endDate,
		rt.NextDueDate.UTC().Format("2006-01-02"),
		rt.IsActive,
		rt.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert recurring_transaction: %w", err)
	}

	return nil
}

// AdvanceNextDueDate moves a series forward to its next occurrence.
// Returns apperrors.ErrRecurringNotFound if the series does not exist.
func (r *RecurringRepository) AdvanceNextDueDate(ctx context.Context, recurringID string, next time.Time) error {
	result, err := r.getQuerier().ExecContext(ctx,
		`UPDATE recurring_transaction SET next_due_date = ? WHERE id = ?`,
		next.UTC().Format("2006-01-02"),
		recurringID,
	)
	if err != nil {
		return fmt.Errorf("failed to advance next due date: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrRecurringNotFound
	}

	return nil
}

// Deactivate marks a series as finished. Called when the scheduler
// reports the series exhausted.
func (r *RecurringRepository) Deactivate(ctx context.Context, recurringID string) error {
	result, err := r.getQuerier().ExecContext(ctx,
		`UPDATE recurring_transaction SET is_active = 0 WHERE id = ?`,
		recurringID,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate recurring_transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrRecurringNotFound
	}

	return nil
}

// DeleteRecurringTransaction removes a recurring transaction template.
// Returns apperrors.ErrRecurringNotFound if none exists.
func (r *RecurringRepository) DeleteRecurringTransaction(ctx context.Context, recurringID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM recurring_transaction WHERE id = ?`, recurringID)
	if err != nil {
		return fmt.Errorf("failed to delete recurring_transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrRecurringNotFound
	}

	return nil
}

func scanRecurring(rows *sql.Rows) ([]model.RecurringTransaction, error) {
	recurring := []model.RecurringTransaction{}

	for rows.Next() {
		var rt model.RecurringTransaction
		var amountStr, startStr, nextStr, createdAtStr string
		var endStr sql.NullString

		err := rows.Scan(
			&rt.ID,
			&rt.UserID,
			&rt.CategoryID,
			&rt.Description,
			&amountStr,
			&rt.Direction,
			&rt.Frequency,
			&rt.AnchorDay,
			&startStr,
			&endStr,
			&nextStr,
			&rt.IsActive,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recurring_transaction table results: %w", err)
		}

		if rt.Amount, err = ParseDecimal(amountStr); err != nil {
			return nil, err
		}
		if rt.StartDate, err = ParseTime(startStr); err != nil {
			return nil, err
		}
		if endStr.Valid {
			endDate, err := ParseTime(endStr.String)
			if err != nil {
				return nil, err
			}
			rt.EndDate = &endDate
		}
		if rt.NextDueDate, err = ParseTime(nextStr); err != nil {
			return nil, err
		}
		if rt.CreatedAt, err = ParseTime(createdAtStr); err != nil {
			return nil, err
		}

		recurring = append(recurring, rt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recurring_transaction table: %w", err)
	}

	return recurring, nil
}
