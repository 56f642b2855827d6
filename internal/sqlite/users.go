package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/justestif/wellness-journal/internal/journal"
)

// UserRepository handles user database operations.
type UserRepository struct {
	conn *sql.DB
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *journal.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES (?1, ?2, ?3, ?4, ?5)
	`
	_, err := r.conn.ExecContext(ctx, query,
		user.ID.String(),
		user.Username,
		user.Email,
		user.PasswordHash,
		formatTime(user.CreatedAt),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("inserting user: %w", journal.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// Get retrieves a user by ID.
func (r *UserRepository) Get(ctx context.Context, id uuid.UUID) (*journal.User, error) {
	return r.getBy(ctx, "id", id.String())
}

// GetByEmail retrieves a user by normalized email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*journal.User, error) {
	return r.getBy(ctx, "email", email)
}

// GetByUsername retrieves a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*journal.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *UserRepository) getBy(ctx context.Context, column, value string) (*journal.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE ` + column + ` = ?1
	`
	var (
		user      journal.User
		createdAt string
	)
	err := r.conn.QueryRowContext(ctx, query, value).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, journal.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	if user.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &user, nil
}
