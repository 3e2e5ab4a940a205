package contents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educa-hq/educa/internal/shared"
)

// Repository provides PostgreSQL backed persistence for lesson contents.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const contentColumns = `t.id, t.lesson_id, t.course_id, t.title, t.kind, t.url, t.created_at, t.updated_at`

func scanContent(row pgx.Row) (Content, error) {
	var c Content
	err := row.Scan(&c.ID, &c.LessonID, &c.CourseID, &c.Title, &c.Kind, &c.URL, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Create inserts a content row.
func (r *Repository) Create(ctx context.Context, courseID int64, input NewContent) (Content, error) {
	const query = `
		INSERT INTO contents (lesson_id, course_id, title, kind, url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, lesson_id, course_id, title, kind, url, created_at, updated_at`
	return scanContent(r.pool.QueryRow(ctx, query, input.LessonID, courseID, input.Title, input.Kind, input.URL))
}

// Get fetches a content row by id.
func (r *Repository) Get(ctx context.Context, id int64) (Content, error) {
	query := fmt.Sprintf("SELECT %s FROM contents t WHERE t.id = $1", contentColumns)
	c, err := scanContent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Content{}, shared.ErrNotFound
		}
		return Content{}, err
	}
	return c, nil
}

// List returns contents matching the access condition, optionally for one
// lesson.
func (r *Repository) List(ctx context.Context, access string, accessArgs []any, lessonID int64) ([]Content, error) {
	conds := []string{access}
	args := append([]any{}, accessArgs...)
	if lessonID > 0 {
		args = append(args, lessonID)
		conds = append(conds, fmt.Sprintf("t.lesson_id = $%d", len(args)))
	}
	query := fmt.Sprintf(
		"SELECT %s FROM contents t WHERE %s ORDER BY t.id",
		contentColumns, strings.Join(conds, " AND "),
	)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Content{}
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update patches a content row.
func (r *Repository) Update(ctx context.Context, id int64, input UpdateContent) (Content, error) {
	sets := []string{"updated_at = now()"}
	args := []any{}
	if input.Title != nil {
		args = append(args, *input.Title)
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if input.Kind != nil {
		args = append(args, *input.Kind)
		sets = append(sets, fmt.Sprintf("kind = $%d", len(args)))
	}
	if input.URL != nil {
		args = append(args, *input.URL)
		sets = append(sets, fmt.Sprintf("url = $%d", len(args)))
	}
	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE contents SET %s WHERE id = $%d RETURNING id, lesson_id, course_id, title, kind, url, created_at, updated_at",
		strings.Join(sets, ", "), len(args),
	)
	c, err := scanContent(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Content{}, shared.ErrNotFound
		}
		return Content{}, err
	}
	return c, nil
}

// Delete removes a content row.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM contents WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
