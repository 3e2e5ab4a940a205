package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educa-hq/educa/internal/platform/db"
	"github.com/educa-hq/educa/internal/shared"
)

// Repository provides PostgreSQL backed persistence for accounts.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new account and returns the stored row.
func (r *Repository) Create(ctx context.Context, input NewUser, passwordHash string) (User, error) {
	const query = `
		INSERT INTO users (email, password_hash, name, username, job_title, locale, bio)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, email, name, username, job_title, locale, bio, is_staff, created_at, updated_at`
	var user User
	err := r.pool.QueryRow(ctx, query,
		input.Email, passwordHash, input.Name, input.Username,
		input.JobTitle, input.Locale, input.Bio,
	).Scan(
		&user.ID, &user.Email, &user.Name, &user.Username,
		&user.JobTitle, &user.Locale, &user.Bio, &user.IsStaff,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return User{}, shared.ErrDuplicate
		}
		return User{}, err
	}
	return user, nil
}

// Get fetches an account by id.
func (r *Repository) Get(ctx context.Context, id int64) (User, error) {
	const query = `
		SELECT id, email, name, username, job_title, locale, bio, is_staff, created_at, updated_at
		FROM users WHERE id = $1`
	var user User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Name, &user.Username,
		&user.JobTitle, &user.Locale, &user.Bio, &user.IsStaff,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, shared.ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

// Exist reports whether every id in the set names a stored account.
func (r *Repository) Exist(ctx context.Context, ids []int64) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	const query = `SELECT COUNT(*) FROM users WHERE id = ANY($1)`
	var count int
	if err := r.pool.QueryRow(ctx, query, ids).Scan(&count); err != nil {
		return false, err
	}
	return count == len(ids), nil
}
