package modules

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educa-hq/educa/internal/shared"
)

// Repository provides PostgreSQL backed persistence for modules.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const moduleColumns = `t.id, t.course_id, t.title, t.description, t.sort_order, t.created_at, t.updated_at`

func scanModule(row pgx.Row) (Module, error) {
	var m Module
	err := row.Scan(&m.ID, &m.CourseID, &m.Title, &m.Description, &m.Order, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// Create inserts a module.
func (r *Repository) Create(ctx context.Context, input NewModule) (Module, error) {
	const query = `
		INSERT INTO modules (course_id, title, description, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id, course_id, title, description, sort_order, created_at, updated_at`
	return scanModule(r.pool.QueryRow(ctx, query, input.CourseID, input.Title, input.Description, input.Order))
}

// Get fetches a module by id.
func (r *Repository) Get(ctx context.Context, id int64) (Module, error) {
	query := fmt.Sprintf("SELECT %s FROM modules t WHERE t.id = $1", moduleColumns)
	m, err := scanModule(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Module{}, shared.ErrNotFound
		}
		return Module{}, err
	}
	return m, nil
}

// List returns modules matching the access condition and filters, ordered
// by their position within the course.
func (r *Repository) List(ctx context.Context, access string, accessArgs []any, filters ListFilters) ([]Module, error) {
	conds := []string{access}
	args := append([]any{}, accessArgs...)
	if filters.CourseID > 0 {
		args = append(args, filters.CourseID)
		conds = append(conds, fmt.Sprintf("t.course_id = $%d", len(args)))
	}
	if filters.Title != "" {
		args = append(args, "%"+filters.Title+"%")
		conds = append(conds, fmt.Sprintf("t.title ILIKE $%d", len(args)))
	}
	query := fmt.Sprintf(
		"SELECT %s FROM modules t WHERE %s ORDER BY t.course_id, t.sort_order, t.id",
		moduleColumns, strings.Join(conds, " AND "),
	)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Module{}
	for rows.Next() {
		m, err := scanModule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Update patches a module.
func (r *Repository) Update(ctx context.Context, id int64, input UpdateModule) (Module, error) {
	sets := []string{"updated_at = now()"}
	args := []any{}
	if input.Title != nil {
		args = append(args, *input.Title)
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if input.Description != nil {
		args = append(args, *input.Description)
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)))
	}
	if input.Order != nil {
		args = append(args, *input.Order)
		sets = append(sets, fmt.Sprintf("sort_order = $%d", len(args)))
	}
	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE modules SET %s WHERE id = $%d RETURNING id, course_id, title, description, sort_order, created_at, updated_at",
		strings.Join(sets, ", "), len(args),
	)
	m, err := scanModule(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Module{}, shared.ErrNotFound
		}
		return Module{}, err
	}
	return m, nil
}

// Delete removes a module.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM modules WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// BelongsToCourse reports whether the module exists under the given course.
func (r *Repository) BelongsToCourse(ctx context.Context, moduleID, courseID int64) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM modules WHERE id = $1 AND course_id = $2)",
		moduleID, courseID,
	).Scan(&ok)
	return ok, err
}
