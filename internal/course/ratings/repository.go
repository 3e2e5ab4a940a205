package ratings

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

// Repository provides PostgreSQL backed persistence for ratings.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const ratingColumns = `t.id, t.course_id, t.creator_id, t.rating, t.comment, t.created_at, t.updated_at`

func scanRating(row pgx.Row) (Rating, error) {
	var rt Rating
	err := row.Scan(&rt.ID, &rt.CourseID, &rt.CreatorID, &rt.Rating, &rt.Comment, &rt.CreatedAt, &rt.UpdatedAt)
	return rt, err
}

// Create inserts a rating for the given creator.
func (r *Repository) Create(ctx context.Context, creatorID int64, input NewRating) (Rating, error) {
	query := fmt.Sprintf(`
		INSERT INTO ratings (course_id, creator_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`, strings.ReplaceAll(ratingColumns, "t.", ""))
	rt, err := scanRating(r.pool.QueryRow(ctx, query, input.CourseID, creatorID, input.Rating, input.Comment))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Rating{}, fmt.Errorf("%w: you have already rated this course", shared.ErrDuplicate)
		}
		return Rating{}, err
	}
	return rt, nil
}

// Get fetches a rating by id.
func (r *Repository) Get(ctx context.Context, id int64) (Rating, error) {
	query := fmt.Sprintf("SELECT %s FROM ratings t WHERE t.id = $1", ratingColumns)
	rt, err := scanRating(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Rating{}, shared.ErrNotFound
		}
		return Rating{}, err
	}
	return rt, nil
}

// List returns ratings narrowed by the declarative filters.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]Rating, error) {
	conds := []string{"TRUE"}
	args := []any{}
	if filters.CourseID > 0 {
		args = append(args, filters.CourseID)
		conds = append(conds, fmt.Sprintf("t.course_id = $%d", len(args)))
	}
	if filters.Comment != "" {
		args = append(args, "%"+filters.Comment+"%")
		conds = append(conds, fmt.Sprintf("t.comment ILIKE $%d", len(args)))
	}
	if filters.Rating != nil {
		args = append(args, filters.Rating.Min, filters.Rating.Max)
		conds = append(conds, fmt.Sprintf("t.rating BETWEEN $%d AND $%d", len(args)-1, len(args)))
	}
	query := fmt.Sprintf(
		"SELECT %s FROM ratings t WHERE %s ORDER BY t.id",
		ratingColumns, strings.Join(conds, " AND "),
	)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Rating{}
	for rows.Next() {
		rt, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

// Update patches a rating.
func (r *Repository) Update(ctx context.Context, id int64, input UpdateRating) (Rating, error) {
	sets := []string{"updated_at = now()"}
	args := []any{}
	if input.Rating != nil {
		args = append(args, *input.Rating)
		sets = append(sets, fmt.Sprintf("rating = $%d", len(args)))
	}
	if input.Comment != nil {
		args = append(args, *input.Comment)
		sets = append(sets, fmt.Sprintf("comment = $%d", len(args)))
	}
	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE ratings SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), strings.ReplaceAll(ratingColumns, "t.", ""),
	)
	rt, err := scanRating(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Rating{}, shared.ErrNotFound
		}
		return Rating{}, err
	}
	return rt, nil
}

// Delete removes a rating.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM ratings WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
