package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-backend/internal/apperrors"
	"github.com/fintrack/fintrack-backend/internal/model"
)

// InvestmentRepository provides data access methods for the investment table.
// Derived valuation figures are never stored; only the holding itself and
// the latest supplied quote are persisted.
type InvestmentRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewInvestmentRepository creates a new InvestmentRepository with the provided database connection.
func NewInvestmentRepository(db *sql.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

func (r *InvestmentRepository) WithTx(tx *sql.Tx) *InvestmentRepository {
	return &InvestmentRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *InvestmentRepository) getQuerier() interface {
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

const investmentColumns = `
	id, user_id, symbol, name, asset_type, quantity, purchase_price,
	invested_cost, latest_quote, purchase_date, is_active, created_at
`

// GetInvestments retrieves all investments for a user ordered by
// purchase date. Returns an empty slice if the user has none.
func (r *InvestmentRepository) GetInvestments(userID string, activeOnly bool) ([]model.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investment WHERE user_id = ?`
	if activeOnly {
		query += ` AND is_active = 1`
	}
	query += ` ORDER BY purchase_date ASC`

	rows, err := r.getQuerier().Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query investment table: %w", err)
	}
	defer rows.Close()

	return scanInvestments(rows)
}

// GetInvestment retrieves a single investment by its ID.
// Returns apperrors.ErrInvestmentNotFound if no investment exists.
func (r *InvestmentRepository) GetInvestment(investmentID string) (model.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investment WHERE id = ?`

	rows, err := r.getQuerier().Query(query, investmentID)
	if err != nil {
		return model.Investment{}, fmt.Errorf("failed to query investment table: %w", err)
	}
	defer rows.Close()

	investments, err := scanInvestments(rows)
	if err != nil {
		return model.Investment{}, err
	}
	if len(investments) == 0 {
		return model.Investment{}, apperrors.ErrInvestmentNotFound
	}
	return investments[0], nil
}

// InsertInvestment stores a new investment. InvestedCost is written once
// here and never updated afterwards.
func (r *InvestmentRepository) InsertInvestment(ctx context.Context, inv *model.Investment) error {
	query := `
        INSERT INTO investment (
            id, user_id, symbol, name, asset_type, quantity, purchase_price,
            invested_cost, latest_quote, purchase_date, is_active, created_at
        )
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	_, err := r.getQuerier().ExecContext(ctx, query,
		inv.ID,
		inv.UserID,
		inv.Symbol,
		inv.Name,
		inv.AssetType,
		inv.Quantity.String(),
		inv.PurchasePrice.String(),
		inv.InvestedCost.String(),
		inv.LatestQuote.String(),
		inv.PurchaseDate.UTC().Format("2006-01-02"),
		inv.IsActive,
		inv.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert investment: %w", err)
	}

	return nil
}

// UpdateQuote stores the latest supplied quote for an investment.
// Returns apperrors.ErrInvestmentNotFound if no investment exists.
func (r *InvestmentRepository) UpdateQuote(ctx context.Context, investmentID string, quote decimal.Decimal) error {
	result, err := r.getQuerier().ExecContext(ctx,
		`UPDATE investment SET latest_quote = ? WHERE id = ?`,
		quote.String(),
		investmentID,
	)
	if err != nil {
		return fmt.Errorf("failed to update quote: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrInvestmentNotFound
	}

	return nil
}

// SetActive flips the active flag of an investment.
// Returns apperrors.ErrInvestmentNotFound if no investment exists.
func (r *InvestmentRepository) SetActive(ctx context.Context, investmentID string, active bool) error {
	result, err := r.getQuerier().ExecContext(ctx,
		`UPDATE investment SET is_active = ? WHERE id = ?`,
		active,
		investmentID,
	)
	if err != nil {
		return fmt.Errorf("failed to update investment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrInvestmentNotFound
	}

	return nil
}

// DeleteInvestment removes an investment.
// Returns apperrors.ErrInvestmentNotFound if no investment exists.
func (r *InvestmentRepository) DeleteInvestment(ctx context.Context, investmentID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM investment WHERE id = ?`, investmentID)
	if err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrInvestmentNotFound
	}

	return nil
}

func scanInvestments(rows *sql.Rows) ([]model.Investment, error) {
	investments := []model.Investment{}

	for rows.Next() {
		var inv model.Investment
		var quantityStr, priceStr, costStr, quoteStr, dateStr, createdAtStr string

		err := rows.Scan(
			&inv.ID,
			&inv.UserID,
			&inv.Symbol,
			&inv.Name,
			&inv.AssetType,
			&quantityStr,
			&priceStr,
			&costStr,
			&quoteStr,
			&dateStr,
			&inv.IsActive,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment table results: %w", err)
		}

		if inv.Quantity, err = ParseDecimal(quantityStr); err != nil {
			return nil, err
		}
		if inv.PurchasePrice, err = ParseDecimal(priceStr); err != nil {
			return nil, err
		}
		if inv.InvestedCost, err = ParseDecimal(costStr); err != nil {
			return nil, err
		}
		if inv.LatestQuote, err = ParseDecimal(quoteStr); err != nil {
			return nil, err
		}
		if inv.PurchaseDate, err = ParseTime(dateStr); err != nil {
			return nil, err
		}
		if inv.CreatedAt, err = ParseTime(createdAtStr); err != nil {
			return nil, err
		}

		investments = append(investments, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investment table: %w", err)
	}

	return investments, nil
}
