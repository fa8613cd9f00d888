package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerlite/ledgerlite/internal/domain"
)

// UserRepository implements usecase.UserRepository against the user
// directory table.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var (
		u         domain.User
		role      string
		createdAt pgtype.Timestamptz
	)

	err := r.pool.QueryRow(ctx, `
		SELECT id, email, name, role, created_at FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Email, &u.Name, &role, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}

		return nil, err
	}

	u.Role = domain.Role(role)
	u.CreatedAt = createdAt.Time

	return &u, nil
}

// EmailsByRole returns the email addresses of every user in a role.
func (r *UserRepository) EmailsByRole(ctx context.Context, role domain.Role) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT email FROM users WHERE role = $1 ORDER BY email`, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}

		emails = append(emails, email)
	}

	return emails, rows.Err()
}
