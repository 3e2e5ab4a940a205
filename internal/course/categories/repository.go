package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educa-hq/educa/internal/platform/db"
	"github.com/educa-hq/educa/internal/shared"
)

// Repository provides PostgreSQL backed persistence for categories.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const columns = "id, title, slug, description, is_active"

func scan(row pgx.Row) (Category, error) {
	var c Category
	err := row.Scan(&c.ID, &c.Title, &c.Slug, &c.Description, &c.IsActive)
	return c, err
}

// Create inserts a category.
func (r *Repository) Create(ctx context.Context, input NewCategory) (Category, error) {
	const query = `
		INSERT INTO categories (title, slug, description, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + columns
	c, err := scan(r.pool.QueryRow(ctx, query, input.Title, input.Slug, input.Description, input.IsActive))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Category{}, shared.ErrDuplicate
		}
		return Category{}, err
	}
	return c, nil
}

// Get fetches a category by id.
func (r *Repository) Get(ctx context.Context, id int64) (Category, error) {
	c, err := scan(r.pool.QueryRow(ctx, "SELECT "+columns+" FROM categories WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, shared.ErrNotFound
		}
		return Category{}, err
	}
	return c, nil
}

// List returns all categories, optionally only active ones.
func (r *Repository) List(ctx context.Context, onlyActive bool) ([]Category, error) {
	query := "SELECT " + columns + " FROM categories"
	if onlyActive {
		query += " WHERE is_active"
	}
	query += " ORDER BY id"
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cats []Category
	for rows.Next() {
		c, err := scan(rows)
		if err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// Update patches the given fields.
func (r *Repository) Update(ctx context.Context, id int64, input UpdateCategory) (Category, error) {
	sets := []string{}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if input.Title != nil {
		add("title", *input.Title)
	}
	if input.Slug != nil {
		add("slug", *input.Slug)
	}
	if input.Description != nil {
		add("description", *input.Description)
	}
	if input.IsActive != nil {
		add("is_active", *input.IsActive)
	}
	if len(sets) == 0 {
		return r.Get(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE categories SET %s WHERE id = $%d RETURNING %s", strings.Join(sets, ", "), len(args), columns)
	c, err := scan(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, shared.ErrNotFound
		}
		if db.IsUniqueViolation(err) {
			return Category{}, shared.ErrDuplicate
		}
		return Category{}, err
	}
	return c, nil
}

// Delete removes a category.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Exist reports whether every id names a stored category.
func (r *Repository) Exist(ctx context.Context, ids []int64) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM categories WHERE id = ANY($1)", ids).Scan(&count); err != nil {
		return false, err
	}
	return count == len(ids), nil
}
