package actions

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educa-hq/educa/internal/platform/db"
	"github.com/educa-hq/educa/internal/shared"
)

// Repository provides PostgreSQL backed persistence for actions.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const actionColumns = `id, course_id, creator_id, object_model, object_id, action, created_at, updated_at`

func scanAction(row pgx.Row) (Action, error) {
	var a Action
	err := row.Scan(&a.ID, &a.CourseID, &a.CreatorID, &a.ObjectModel, &a.ObjectID, &a.Action, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// Create inserts an action for the given creator. A repeated action of
// the same kind on the same object conflicts.
func (r *Repository) Create(ctx context.Context, creatorID, courseID int64, input NewAction) (Action, error) {
	query := fmt.Sprintf(`
		INSERT INTO actions (course_id, creator_id, object_model, object_id, action)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`, actionColumns)
	a, err := scanAction(r.pool.QueryRow(ctx, query, courseID, creatorID, input.ObjectModel, input.ObjectID, input.Action))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Action{}, fmt.Errorf("%w: action already exists", shared.ErrDuplicate)
		}
		return Action{}, err
	}
	return a, nil
}

// CountByObject tallies the actions of one kind on a content object.
func (r *Repository) CountByObject(ctx context.Context, objectModel string, objectID int64, action string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM actions WHERE object_model = $1 AND object_id = $2 AND action = $3",
		objectModel, objectID, action,
	).Scan(&n)
	return n, err
}

// DeleteByObject removes the caller's actions on a content object.
func (r *Repository) DeleteByObject(ctx context.Context, creatorID int64, objectModel string, objectID int64) error {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM actions WHERE creator_id = $1 AND object_model = $2 AND object_id = $3",
		creatorID, objectModel, objectID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
