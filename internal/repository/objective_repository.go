package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fintrack/fintrack-backend/internal/apperrors"
	"github.com/fintrack/fintrack-backend/internal/model"
)

// ObjectiveRepository provides data access methods for the objective table.
// It handles storing objectives and the alert level last notified for
// each objective period.
type ObjectiveRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewObjectiveRepository creates a new ObjectiveRepository with the provided database connection.
func NewObjectiveRepository(db *sql.DB) *ObjectiveRepository {
	return &ObjectiveRepository{db: db}
}

func (r *ObjectiveRepository) WithTx(tx *sql.Tx) *ObjectiveRepository {
	return &ObjectiveRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *ObjectiveRepository) getQuerier() interface {
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

const objectiveColumns = `
	id, user_id, category_id, description, target_amount, kind, period,
	is_active, last_notified_level, last_notified_period, created_at
`

// GetObjectives retrieves all objectives for a user, ordered by creation
// time. When activeOnly is set, inactive objectives are filtered out.
// Returns an empty slice if the user has no objectives.
func (r *ObjectiveRepository) GetObjectives(userID string, activeOnly bool) ([]model.Objective, error) {
	query := `SELECT ` + objectiveColumns + ` FROM objective WHERE user_id = ?`
	if activeOnly {
		query += ` AND is_active = 1`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.getQuerier().Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query objective table: %w", err)
	}
	defer rows.Close()

	return scanObjectives(rows)
}

// GetActiveObjectives retrieves every active objective across all users.
// Used by the periodic evaluation batch.
func (r *ObjectiveRepository) GetActiveObjectives() ([]model.Objective, error) {
	query := `SELECT ` + objectiveColumns + ` FROM objective WHERE is_active = 1 ORDER BY created_at ASC`

	rows, err := r.getQuerier().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query objective table: %w", err)
	}
	defer rows.Close()

	return scanObjectives(rows)
}

// GetObjective retrieves a single objective by its ID.
// Returns apperrors.ErrObjectiveNotFound if no objective exists.
func (r *ObjectiveRepository) GetObjective(objectiveID string) (model.Objective, error) {
	query := `SELECT ` + objectiveColumns + ` FROM objective WHERE id = ?`

	rows, err := r.getQuerier().Query(query, objectiveID)
	if err != nil {
		return model.Objective{}, fmt.Errorf("failed to query objective table: %w", err)
	}
	defer rows.Close()

	objectives, err := scanObjectives(rows)
	if err != nil {
		return model.Objective{}, err
	}
	if len(objectives) == 0 {
		return model.Objective{}, apperrors.ErrObjectiveNotFound
	}
	return objectives[0], nil
}

// InsertObjective stores a new objective.
func (r *ObjectiveRepository) InsertObjective(ctx context.Context, o *model.Objective) error {
	query := `
        INSERT INTO objective (
            id, user_id, category_id, description, target_amount, kind, period,
            is_active, last_notified_level, last_notified_period, created_at
        )
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	_, err := r.getQuerier().ExecContext(ctx, query,
		o.ID,
		o.UserID,
		o.CategoryID,
		o.Description,
		o.TargetAmount.String(),
		string(o.Kind),
		o.Period,
		o.IsActive,
		string(o.LastNotifiedLevel),
		o.LastNotifiedPeriod,
		o.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert objective: %w", err)
	}

	return nil
}

// UpdateObjective updates the mutable fields of an objective.
func (r *ObjectiveRepository) UpdateObjective(ctx context.Context, o *model.Objective) error {
	query := `
        UPDATE objective
        SET category_id = ?, description = ?, target_amount = ?, kind = ?,
            period = ?, is_active = ?
        WHERE id = ?
    `

	result, err := r.getQuerier().ExecContext(ctx, query,
		o.CategoryID,
		o.Description,
		o.TargetAmount.String(),
		string(o.Kind),
		o.Period,
		o.IsActive,
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update objective: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrObjectiveNotFound
	}

	return nil
}

// UpdateNotifiedLevel records the alert level last reported for an
// objective together with the period it belongs to. This persisted pair
// is what makes crossing detection durable: a notification fires only
// when the computed level outranks the stored one for the same period.
func (r *ObjectiveRepository) UpdateNotifiedLevel(ctx context.Context, objectiveID string, level model.AlertLevel, period string) error {
	query := `
        UPDATE objective
        SET last_notified_level = ?, last_notified_period = ?
        WHERE id = ?
    `

	result, err := r.getQuerier().ExecContext(ctx, query,
		string(level),
		period,
		objectiveID,
	)
	if err != nil {
		return fmt.Errorf("failed to update notified level: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrObjectiveNotFound
	}

	return nil
}

// DeleteObjective removes an objective.
// Returns apperrors.ErrObjectiveNotFound if no objective exists.
func (r *ObjectiveRepository) DeleteObjective(ctx context.Context, objectiveID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM objective WHERE id = ?`, objectiveID)
	if err != nil {
		return fmt.Errorf("failed to delete objective: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrObjectiveNotFound
	}

	return nil
}

func scanObjectives(rows *sql.Rows) ([]model.Objective, error) {
	objectives := []model.Objective{}

	for rows.Next() {
		var o model.Objective
		var targetStr, levelStr, createdAtStr string

		err := rows.Scan(
			&o.ID,
			&o.UserID,
			&o.CategoryID,
			&o.Description,
			&targetStr,
			&o.Kind,
			&o.Period,
			&o.IsActive,
			&levelStr,
			&o.LastNotifiedPeriod,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan objective table results: %w", err)
		}

		o.TargetAmount, err = ParseDecimal(targetStr)
		if err != nil {
			return nil, err
		}
		o.LastNotifiedLevel = model.AlertLevel(levelStr)
		o.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, err
		}

		objectives = append(objectives, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating objective table: %w", err)
	}

	return objectives, nil
}
