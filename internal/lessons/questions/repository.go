package questions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educa-hq/educa/internal/shared"
)

// Repository provides PostgreSQL backed persistence for questions.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const questionColumns = `t.id, t.lesson_id, t.course_id, t.creator_id, t.title, t.body, t.created_at, t.updated_at`

func scanQuestion(row pgx.Row) (Question, error) {
	var q Question
	err := row.Scan(&q.ID, &q.LessonID, &q.CourseID, &q.CreatorID, &q.Title, &q.Body, &q.CreatedAt, &q.UpdatedAt)
	return q, err
}

// Create inserts a question for the given creator.
func (r *Repository) Create(ctx context.Context, creatorID, courseID int64, input NewQuestion) (Question, error) {
	const query = `
		INSERT INTO questions (lesson_id, course_id, creator_id, title, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, lesson_id, course_id, creator_id, title, body, created_at, updated_at`
	return scanQuestion(r.pool.QueryRow(ctx, query, input.LessonID, courseID, creatorID, input.Title, input.Body))
}

// Get fetches a question by id.
func (r *Repository) Get(ctx context.Context, id int64) (Question, error) {
	query := fmt.Sprintf("SELECT %s FROM questions t WHERE t.id = $1", questionColumns)
	q, err := scanQuestion(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Question{}, shared.ErrNotFound
		}
		return Question{}, err
	}
	return q, nil
}

// List returns questions matching the access condition and filters.
func (r *Repository) List(ctx context.Context, access string, accessArgs []any, filters ListFilters) ([]Question, error) {
	conds := []string{access}
	args := append([]any{}, accessArgs...)
	if filters.LessonID > 0 {
		args = append(args, filters.LessonID)
		conds = append(conds, fmt.Sprintf("t.lesson_id = $%d", len(args)))
	}
	if filters.CourseID > 0 {
		args = append(args, filters.CourseID)
		conds = append(conds, fmt.Sprintf("t.course_id = $%d", len(args)))
	}
	if filters.Title != "" {
		args = append(args, "%"+filters.Title+"%")
		conds = append(conds, fmt.Sprintf("t.title ILIKE $%d", len(args)))
	}
	query := fmt.Sprintf(
		"SELECT %s FROM questions t WHERE %s ORDER BY t.id",
		questionColumns, strings.Join(conds, " AND "),
	)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// Update patches a question.
func (r *Repository) Update(ctx context.Context, id int64, input UpdateQuestion) (Question, error) {
	sets := []string{"updated_at = now()"}
	args := []any{}
	if input.Title != nil {
		args = append(args, *input.Title)
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if input.Body != nil {
		args = append(args, *input.Body)
		sets = append(sets, fmt.Sprintf("body = $%d", len(args)))
	}
	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE questions SET %s WHERE id = $%d RETURNING id, lesson_id, course_id, creator_id, title, body, created_at, updated_at",
		strings.Join(sets, ", "), len(args),
	)
	q, err := scanQuestion(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Question{}, shared.ErrNotFound
		}
		return Question{}, err
	}
	return q, nil
}

// Delete removes a question.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM questions WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
