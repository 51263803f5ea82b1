package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fintrack/fintrack-backend/internal/apperrors"
	"github.com/fintrack/fintrack-backend/internal/model"
)

// UserRepository provides data access methods for the user table.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository with the provided database connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetUser retrieves a single user by ID.
// Returns apperrors.ErrUserNotFound if no user exists.
func (r *UserRepository) GetUser(userID string) (model.User, error) {
	var u model.User
	var createdAtStr string

	err := r.db.QueryRow(
		`SELECT id, email, name, created_at FROM user WHERE id = ?`,
		userID,
	).Scan(&u.ID, &u.Email, &u.Name, &createdAtStr)
	if err == sql.ErrNoRows {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to query user table: %w", err)
	}

	if u.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.User{}, err
	}

	return u, nil
}

// GetUserByEmail retrieves a single user by email address.
// Returns apperrors.ErrUserNotFound if no user exists.
func (r *UserRepository) GetUserByEmail(email string) (model.User, error) {
	var u model.User
	var createdAtStr string

	err := r.db.QueryRow(
		`SELECT id, email, name, created_at FROM user WHERE email = ?`,
		email,
	).Scan(&u.ID, &u.Email, &u.Name, &createdAtStr)
	if err == sql.ErrNoRows {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to query user table: %w", err)
	}

	if u.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.User{}, err
	}

	return u, nil
}

// InsertUser stores a new user.
func (r *UserRepository) InsertUser(ctx context.Context, u *model.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user (id, email, name, created_at) VALUES (?, ?, ?, ?)`,
		u.ID,
		u.Email,
		u.Name,
		u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}
