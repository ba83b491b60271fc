package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-api/internal/model"
)

// UserRepository handles database operations for members
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// GetByUsername retrieves a member by username (for login)
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.Member, error) {
	query := `
		SELECT id, username, password, email, full_name, role, status, created_at, updated_at
		FROM members WHERE username = $1
	`

	var m model.Member
	err := r.db.QueryRow(ctx, query, username).Scan(
		&m.ID,
		&m.Username,
		&m.Password,
		&m.Email,
		&m.FullName,
		&m.Role,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member by username: %w", err)
	}

	return &m, nil
}

// GetByID retrieves a member by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.Member, error) {
	query := `
		SELECT id, username, password, email, full_name, role, status, created_at, updated_at
		FROM members WHERE id = $1
	`

	var m model.Member
	err := r.db.QueryRow(ctx, query, id).Scan(
		&m.ID,
		&m.Username,
		&m.Password,
		&m.Email,
		&m.FullName,
		&m.Role,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return &m, nil
}
