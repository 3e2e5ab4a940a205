package messages

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educa-hq/educa/internal/shared"
)

// Repository provides PostgreSQL backed persistence for messages.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const messageColumns = `t.id, t.course_id, t.creator_id, t.title, t.body, t.created_at, t.updated_at`

func scanMessage(row pgx.Row) (Message, error) {
	var m Message
	err := row.Scan(&m.ID, &m.CourseID, &m.CreatorID, &m.Title, &m.Body, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// Create inserts a message for the given creator.
func (r *Repository) Create(ctx context.Context, creatorID int64, input NewMessage) (Message, error) {
	const query = `
		INSERT INTO messages (course_id, creator_id, title, body)
		VALUES ($1, $2, $3, $4)
		RETURNING id, course_id, creator_id, title, body, created_at, updated_at`
	return scanMessage(r.pool.QueryRow(ctx, query, input.CourseID, creatorID, input.Title, input.Body))
}

// Get fetches a message by id.
func (r *Repository) Get(ctx context.Context, id int64) (Message, error) {
	query := fmt.Sprintf("SELECT %s FROM messages t WHERE t.id = $1", messageColumns)
	m, err := scanMessage(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Message{}, shared.ErrNotFound
		}
		return Message{}, err
	}
	return m, nil
}

// List returns messages matching the access condition and filters. The
// access condition references placeholders $1..$len(accessArgs); filter
// placeholders follow it.
func (r *Repository) List(ctx context.Context, access string, accessArgs []any, filters ListFilters) ([]Message, error) {
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
	if filters.Created != nil {
		args = append(args, filters.Created.From, filters.Created.To)
		conds = append(conds, fmt.Sprintf("t.created_at >= $%d AND t.created_at < $%d", len(args)-1, len(args)))
	}
	query := fmt.Sprintf(
		"SELECT %s FROM messages t WHERE %s ORDER BY t.id",
		messageColumns, strings.Join(conds, " AND "),
	)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Update patches a message.
func (r *Repository) Update(ctx context.Context, id int64, input UpdateMessage) (Message, error) {
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
		"UPDATE messages SET %s WHERE id = $%d RETURNING id, course_id, creator_id, title, body, created_at, updated_at",
		strings.Join(sets, ", "), len(args),
	)
	m, err := scanMessage(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Message{}, shared.ErrNotFound
		}
		return Message{}, err
	}
	return m, nil
}

// Delete removes a message.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM messages WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
