package lessons

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

// Repository provides PostgreSQL backed persistence for lessons and
// lesson progress relations.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const lessonColumns = `t.id, t.course_id, t.module_id, t.title, t.description, t.video_url,
	t.video_duration_in_seconds, t.sort_order, t.created_at, t.updated_at`

func scanLesson(row pgx.Row) (Lesson, error) {
	var l Lesson
	err := row.Scan(
		&l.ID, &l.CourseID, &l.ModuleID, &l.Title, &l.Description, &l.VideoURL,
		&l.VideoDurationInSeconds, &l.Order, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

// Create inserts a lesson.
func (r *Repository) Create(ctx context.Context, input NewLesson) (Lesson, error) {
	const query = `
		INSERT INTO lessons (course_id, module_id, title, description, video_url, video_duration_in_seconds, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, course_id, module_id, title, description, video_url,
			video_duration_in_seconds, sort_order, created_at, updated_at`
	return scanLesson(r.pool.QueryRow(ctx, query,
		input.CourseID, input.ModuleID, input.Title, input.Description,
		input.VideoURL, input.VideoDurationInSeconds, input.Order,
	))
}

// Get fetches a lesson by id.
func (r *Repository) Get(ctx context.Context, id int64) (Lesson, error) {
	query := fmt.Sprintf("SELECT %s FROM lessons t WHERE t.id = $1", lessonColumns)
	l, err := scanLesson(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lesson{}, shared.ErrNotFound
		}
		return Lesson{}, err
	}
	return l, nil
}

// List returns lessons matching the access condition and filters.
func (r *Repository) List(ctx context.Context, access string, accessArgs []any, filters ListFilters) ([]Lesson, error) {
	conds := []string{access}
	args := append([]any{}, accessArgs...)
	if filters.CourseID > 0 {
		args = append(args, filters.CourseID)
		conds = append(conds, fmt.Sprintf("t.course_id = $%d", len(args)))
	}
	if filters.ModuleID > 0 {
		args = append(args, filters.ModuleID)
		conds = append(conds, fmt.Sprintf("t.module_id = $%d", len(args)))
	}
	if filters.Title != "" {
		args = append(args, "%"+filters.Title+"%")
		conds = append(conds, fmt.Sprintf("t.title ILIKE $%d", len(args)))
	}
	query := fmt.Sprintf(
		"SELECT %s FROM lessons t WHERE %s ORDER BY t.module_id, t.sort_order, t.id",
		lessonColumns, strings.Join(conds, " AND "),
	)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Lesson{}
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Update patches a lesson.
func (r *Repository) Update(ctx context.Context, id int64, input UpdateLesson) (Lesson, error) {
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
	if input.VideoURL != nil {
		args = append(args, *input.VideoURL)
		sets = append(sets, fmt.Sprintf("video_url = $%d", len(args)))
	}
	if input.VideoDurationInSeconds != nil {
		args = append(args, *input.VideoDurationInSeconds)
		sets = append(sets, fmt.Sprintf("video_duration_in_seconds = $%d", len(args)))
	}
	if input.Order != nil {
		args = append(args, *input.Order)
		sets = append(sets, fmt.Sprintf("sort_order = $%d", len(args)))
	}
	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE lessons SET %s WHERE id = $%d
		RETURNING id, course_id, module_id, title, description, video_url,
			video_duration_in_seconds, sort_order, created_at, updated_at`,
		strings.Join(sets, ", "), len(args),
	)
	l, err := scanLesson(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lesson{}, shared.ErrNotFound
		}
		return Lesson{}, err
	}
	return l, nil
}

// Delete removes a lesson.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM lessons WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

const relationColumns = `id, lesson_id, creator_id, done, created_at, updated_at`

func scanRelation(row pgx.Row) (Relation, error) {
	var rel Relation
	err := row.Scan(&rel.ID, &rel.LessonID, &rel.CreatorID, &rel.Done, &rel.CreatedAt, &rel.UpdatedAt)
	return rel, err
}

// CreateRelation starts progress tracking on a lesson for the given user.
func (r *Repository) CreateRelation(ctx context.Context, lessonID, creatorID int64) (Relation, error) {
	query := fmt.Sprintf(`
		INSERT INTO lesson_relations (lesson_id, creator_id)
		VALUES ($1, $2)
		RETURNING %s`, relationColumns)
	rel, err := scanRelation(r.pool.QueryRow(ctx, query, lessonID, creatorID))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Relation{}, fmt.Errorf("%w: lesson relation already exists", shared.ErrDuplicate)
		}
		return Relation{}, err
	}
	return rel, nil
}

// GetRelation fetches the caller's relation for a lesson.
func (r *Repository) GetRelation(ctx context.Context, lessonID, creatorID int64) (Relation, error) {
	query := fmt.Sprintf("SELECT %s FROM lesson_relations WHERE lesson_id = $1 AND creator_id = $2", relationColumns)
	rel, err := scanRelation(r.pool.QueryRow(ctx, query, lessonID, creatorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Relation{}, shared.ErrNotFound
		}
		return Relation{}, err
	}
	return rel, nil
}

// ListRelations returns every relation of the given user.
func (r *Repository) ListRelations(ctx context.Context, creatorID int64) ([]Relation, error) {
	query := fmt.Sprintf("SELECT %s FROM lesson_relations WHERE creator_id = $1 ORDER BY id", relationColumns)
	rows, err := r.pool.Query(ctx, query, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Relation{}
	for rows.Next() {
		rel, err := scanRelation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rel)
	}
	return out, rows.Err()
}

// UpdateRelation flips the done flag on the caller's relation.
func (r *Repository) UpdateRelation(ctx context.Context, lessonID, creatorID int64, done bool) (Relation, error) {
	query := fmt.Sprintf(`
		UPDATE lesson_relations SET done = $3, updated_at = now()
		WHERE lesson_id = $1 AND creator_id = $2
		RETURNING %s`, relationColumns)
	rel, err := scanRelation(r.pool.QueryRow(ctx, query, lessonID, creatorID, done))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Relation{}, shared.ErrNotFound
		}
		return Relation{}, err
	}
	return rel, nil
}

// DeleteRelation removes the caller's relation for a lesson.
func (r *Repository) DeleteRelation(ctx context.Context, lessonID, creatorID int64) error {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM lesson_relations WHERE lesson_id = $1 AND creator_id = $2", lessonID, creatorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
