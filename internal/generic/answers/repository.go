package answers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educa-hq/educa/internal/shared"
)

// Repository provides PostgreSQL backed persistence for answers.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const answerColumns = `t.id, t.course_id, t.creator_id, t.object_model, t.object_id, t.content, t.created_at, t.updated_at`

func scanAnswer(row pgx.Row) (Answer, error) {
	var a Answer
	err := row.Scan(&a.ID, &a.CourseID, &a.CreatorID, &a.ObjectModel, &a.ObjectID, &a.Content, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// Create inserts an answer for the given creator.
func (r *Repository) Create(ctx context.Context, creatorID, courseID int64, input NewAnswer) (Answer, error) {
	const query = `
		INSERT INTO answers (course_id, creator_id, object_model, object_id, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, course_id, creator_id, object_model, object_id, content, created_at, updated_at`
	return scanAnswer(r.pool.QueryRow(ctx, query, courseID, creatorID, input.ObjectModel, input.ObjectID, input.Content))
}

// Get fetches an answer by id.
func (r *Repository) Get(ctx context.Context, id int64) (Answer, error) {
	query := fmt.Sprintf("SELECT %s FROM answers t WHERE t.id = $1", answerColumns)
	a, err := scanAnswer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Answer{}, shared.ErrNotFound
		}
		return Answer{}, err
	}
	return a, nil
}

// ListByObject returns the answers attached to one content object,
// restricted by the access condition.
func (r *Repository) ListByObject(ctx context.Context, access string, accessArgs []any, objectModel string, objectID int64) ([]Answer, error) {
	args := append([]any{}, accessArgs...)
	args = append(args, objectModel)
	modelArg := len(args)
	args = append(args, objectID)
	query := fmt.Sprintf(
		"SELECT %s FROM answers t WHERE %s AND t.object_model = $%d AND t.object_id = $%d ORDER BY t.id",
		answerColumns, access, modelArg, modelArg+1,
	)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Answer{}
	for rows.Next() {
		a, err := scanAnswer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Update patches an answer.
func (r *Repository) Update(ctx context.Context, id int64, input UpdateAnswer) (Answer, error) {
	sets := []string{"updated_at = now()"}
	args := []any{}
	if input.Content != nil {
		args = append(args, *input.Content)
		sets = append(sets, fmt.Sprintf("content = $%d", len(args)))
	}
	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE answers SET %s WHERE id = $%d RETURNING id, course_id, creator_id, object_model, object_id, content, created_at, updated_at",
		strings.Join(sets, ", "), len(args),
	)
	a, err := scanAnswer(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Answer{}, shared.ErrNotFound
		}
		return Answer{}, err
	}
	return a, nil
}

// Delete removes an answer.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM answers WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
