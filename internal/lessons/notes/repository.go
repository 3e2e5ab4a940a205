package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educa-hq/educa/internal/shared"
)

// Repository provides PostgreSQL backed persistence for notes.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const noteColumns = `id, lesson_id, course_id, creator_id, body, created_at, updated_at`

func scanNote(row pgx.Row) (Note, error) {
	var n Note
	err := row.Scan(&n.ID, &n.LessonID, &n.CourseID, &n.CreatorID, &n.Body, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

// Create inserts a note for the given creator.
func (r *Repository) Create(ctx context.Context, creatorID, courseID int64, input NewNote) (Note, error) {
	query := fmt.Sprintf(`
		INSERT INTO notes (lesson_id, course_id, creator_id, body)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`, noteColumns)
	return scanNote(r.pool.QueryRow(ctx, query, input.LessonID, courseID, creatorID, input.Body))
}

// Get fetches a note by id.
func (r *Repository) Get(ctx context.Context, id int64) (Note, error) {
	query := fmt.Sprintf("SELECT %s FROM notes WHERE id = $1", noteColumns)
	n, err := scanNote(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Note{}, shared.ErrNotFound
		}
		return Note{}, err
	}
	return n, nil
}

// List returns the given user's notes, optionally narrowed to one lesson.
func (r *Repository) List(ctx context.Context, creatorID, lessonID int64) ([]Note, error) {
	conds := []string{"creator_id = $1"}
	args := []any{creatorID}
	if lessonID > 0 {
		args = append(args, lessonID)
		conds = append(conds, fmt.Sprintf("lesson_id = $%d", len(args)))
	}
	query := fmt.Sprintf("SELECT %s FROM notes WHERE %s ORDER BY id", noteColumns, strings.Join(conds, " AND "))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Update patches a note.
func (r *Repository) Update(ctx context.Context, id int64, input UpdateNote) (Note, error) {
	sets := []string{"updated_at = now()"}
	args := []any{}
	if input.Body != nil {
		args = append(args, *input.Body)
		sets = append(sets, fmt.Sprintf("body = $%d", len(args)))
	}
	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE notes SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), noteColumns,
	)
	n, err := scanNote(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Note{}, shared.ErrNotFound
		}
		return Note{}, err
	}
	return n, nil
}

// Delete removes a note.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM notes WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
