package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/fintrack/fintrack-backend/internal/apperrors"
	"github.com/fintrack/fintrack-backend/internal/model"
)

// CategoryRepository provides data access methods for the category table.
type CategoryRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewCategoryRepository creates a new CategoryRepository with the provided database connection.
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) WithTx(tx *sql.Tx) *CategoryRepository {
	return &CategoryRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *CategoryRepository) getQuerier() interface {
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

// GetCategories retrieves all categories ordered by name.
func (r *CategoryRepository) GetCategories() ([]model.Category, error) {
	query := `SELECT id, name, kind, is_default, created_at FROM category ORDER BY name ASC`

	rows, err := r.getQuerier().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query category table: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}

	for rows.Next() {
		var c model.Category
		var createdAtStr string

		if err := rows.Scan(&c.ID, &c.Name, &c.Kind, &c.IsDefault, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan category table results: %w", err)
		}
		if c.CreatedAt, err = ParseTime(createdAtStr); err != nil {
			return nil, err
		}

		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category table: %w", err)
	}

	return categories, nil
}

// GetCategory retrieves a single category by its ID.
// Returns apperrors.ErrCategoryNotFound if no category exists.
func (r *CategoryRepository) GetCategory(categoryID string) (model.Category, error) {
	var c model.Category
	var createdAtStr string

	err := r.getQuerier().QueryRow(
		`SELECT id, name, kind, is_default, created_at FROM category WHERE id = ?`,
		categoryID,
	).Scan(&c.ID, &c.Name, &c.Kind, &c.IsDefault, &createdAtStr)
	if err == sql.ErrNoRows {
		return model.Category{}, apperrors.ErrCategoryNotFound
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to query category table: %w", err)
	}

	if c.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.Category{}, err
	}

	return c, nil
}

// InsertCategory stores a new category.
func (r *CategoryRepository) InsertCategory(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO category (id, name, kind, is_default, created_at)
        VALUES (?, ?, ?, ?, ?)
    `

	_, err := r.getQuerier().ExecContext(ctx, query,
		c.ID,
		c.Name,
		string(c.Kind),
		c.IsDefault,
		c.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}

	return nil
}

// CountUsage returns how many transactions and objectives reference a
// category. Used to refuse deleting categories still in use.
func (r *CategoryRepository) CountUsage(categoryID string) (int, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM "transaction" WHERE category_id = ?) +
			(SELECT COUNT(*) FROM objective WHERE category_id = ?) +
			(SELECT COUNT(*) FROM recurring_transaction WHERE category_id = ?)
	`

	var count int
	if err := r.getQuerier().QueryRow(query, categoryID, categoryID, categoryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count category usage: %w", err)
	}

	return count, nil
}

// DeleteCategory removes a category.
// Returns apperrors.ErrCategoryNotFound if no category exists.
func (r *CategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM category WHERE id = ?`, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrCategoryNotFound
	}

	return nil
}

// SeedDefaults inserts the default category set if it is not present.
// Seeding is idempotent: existing names are left untouched.
func (r *CategoryRepository) SeedDefaults(ctx context.Context, defaults []model.Category) error {
	query := `
        INSERT INTO category (id, name, kind, is_default, created_at)
        SELECT ?, ?, ?, 1, ?
        WHERE NOT EXISTS (SELECT 1 FROM category WHERE name = ?)
    `

	for _, c := range defaults {
		id := c.ID
		if id == "" {
			id = uuid.New().String()
		}
		_, err := r.getQuerier().ExecContext(ctx, query,
			id,
			c.Name,
			string(c.Kind),
			c.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
			c.Name,
		)
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", c.Name, err)
		}
	}

	return nil
}
