package course

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

// Repository provides PostgreSQL backed persistence for courses.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const courseColumns = `t.id, t.title, t.description, t.slug, t.language, t.requirements,
	t.what_you_will_learn, t.level, t.created_at, t.updated_at,
	COALESCE((SELECT array_agg(ci.user_id ORDER BY ci.user_id) FROM course_instructors ci WHERE ci.course_id = t.id), '{}'),
	COALESCE((SELECT array_agg(cc.category_id ORDER BY cc.category_id) FROM course_categories cc WHERE cc.course_id = t.id), '{}')`

func scanCourse(row pgx.Row) (Course, error) {
	var c Course
	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.Slug, &c.Language, &c.Requirements,
		&c.WhatYouWillLearn, &c.Level, &c.CreatedAt, &c.UpdatedAt,
		&c.Instructors, &c.Categories,
	)
	return c, err
}

// Create inserts a course with its instructor and category sets in one
// transaction.
func (r *Repository) Create(ctx context.Context, input NewCourse, instructors, categories []int64) (Course, error) {
	var created Course
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		const insert = `
			INSERT INTO courses (title, description, slug, language, requirements, what_you_will_learn, level)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`
		var id int64
		if err := tx.QueryRow(ctx, insert,
			input.Title, input.Description, input.Slug, input.Language,
			input.Requirements, input.WhatYouWillLearn, input.Level,
		).Scan(&id); err != nil {
			if db.IsUniqueViolation(err) {
				return shared.ErrDuplicate
			}
			return err
		}
		if err := replaceMembers(ctx, tx, "course_instructors", "user_id", id, instructors); err != nil {
			return err
		}
		if err := replaceMembers(ctx, tx, "course_categories", "category_id", id, categories); err != nil {
			return err
		}
		created.ID = id
		return nil
	})
	if err != nil {
		return Course{}, err
	}
	return r.Get(ctx, created.ID)
}

func replaceMembers(ctx context.Context, tx pgx.Tx, table, column string, courseID int64, ids []int64) error {
	if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE course_id = $1", table), courseID); err != nil {
		return err
	}
	for _, id := range ids {
		insert := fmt.Sprintf(
			"INSERT INTO %s (course_id, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			table, column,
		)
		if _, err := tx.Exec(ctx, insert, courseID, id); err != nil {
			return err
		}
	}
	return nil
}

// Get fetches a course by id with its instructor and category sets.
func (r *Repository) Get(ctx context.Context, id int64) (Course, error) {
	query := fmt.Sprintf("SELECT %s FROM courses t WHERE t.id = $1", courseColumns)
	c, err := scanCourse(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Course{}, shared.ErrNotFound
		}
		return Course{}, err
	}
	return c, nil
}

// List returns courses narrowed by the declarative filters.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]Course, error) {
	conds := []string{"TRUE"}
	args := []any{}
	if len(filters.Categories) > 0 {
		args = append(args, filters.Categories)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM course_categories cc WHERE cc.course_id = t.id AND cc.category_id = ANY($%d))", len(args)))
	}
	if filters.Language != "" {
		args = append(args, filters.Language)
		conds = append(conds, fmt.Sprintf("t.language = $%d", len(args)))
	}
	if filters.Level != "" {
		args = append(args, filters.Level)
		conds = append(conds, fmt.Sprintf("t.level = $%d", len(args)))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		conds = append(conds, fmt.Sprintf("(t.title ILIKE $%d OR t.description ILIKE $%d)", len(args), len(args)))
	}
	query := fmt.Sprintf(
		"SELECT %s FROM courses t WHERE %s ORDER BY t.id",
		courseColumns, strings.Join(conds, " AND "),
	)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var courses []Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// Update patches the given fields and optionally replaces the member sets.
func (r *Repository) Update(ctx context.Context, id int64, input UpdateCourse) (Course, error) {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		sets := []string{"updated_at = now()"}
		args := []any{}
		add := func(column string, value any) {
			args = append(args, value)
			sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
		}
		if input.Title != nil {
			add("title", *input.Title)
		}
		if input.Description != nil {
			add("description", *input.Description)
		}
		if input.Language != nil {
			add("language", *input.Language)
		}
		if input.Requirements != nil {
			add("requirements", *input.Requirements)
		}
		if input.WhatYouWillLearn != nil {
			add("what_you_will_learn", *input.WhatYouWillLearn)
		}
		if input.Level != nil {
			add("level", *input.Level)
		}
		args = append(args, id)
		query := fmt.Sprintf("UPDATE courses SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		if input.Instructors != nil {
			if err := replaceMembers(ctx, tx, "course_instructors", "user_id", id, input.Instructors); err != nil {
				return err
			}
		}
		if input.Categories != nil {
			if err := replaceMembers(ctx, tx, "course_categories", "category_id", id, input.Categories); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Course{}, err
	}
	return r.Get(ctx, id)
}

// Delete removes a course and everything cascading from it.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM courses WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

const relationColumns = "id, course_id, creator_id, done, created_at, updated_at"

func scanRelation(row pgx.Row) (Relation, error) {
	var rel Relation
	err := row.Scan(&rel.ID, &rel.CourseID, &rel.CreatorID, &rel.Done, &rel.CreatedAt, &rel.UpdatedAt)
	return rel, err
}

// CreateRelation enrolls a user in a course. A second enrollment for the
// same pair violates the unique constraint and maps to a conflict.
func (r *Repository) CreateRelation(ctx context.Context, courseID, creatorID int64) (Relation, error) {
	const query = `
		INSERT INTO course_relations (course_id, creator_id)
		VALUES ($1, $2)
		RETURNING ` + relationColumns
	rel, err := scanRelation(r.pool.QueryRow(ctx, query, courseID, creatorID))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Relation{}, fmt.Errorf("%w: you are already enrolled in this course", shared.ErrDuplicate)
		}
		return Relation{}, err
	}
	return rel, nil
}

// GetRelation fetches the caller's enrollment for a course.
func (r *Repository) GetRelation(ctx context.Context, courseID, creatorID int64) (Relation, error) {
	const query = `SELECT ` + relationColumns + ` FROM course_relations WHERE course_id = $1 AND creator_id = $2`
	rel, err := scanRelation(r.pool.QueryRow(ctx, query, courseID, creatorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Relation{}, shared.ErrNotFound
		}
		return Relation{}, err
	}
	return rel, nil
}

// ListRelations returns every enrollment of the caller.
func (r *Repository) ListRelations(ctx context.Context, creatorID int64) ([]Relation, error) {
	const query = `SELECT ` + relationColumns + ` FROM course_relations WHERE creator_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var relations []Relation
	for rows.Next() {
		rel, err := scanRelation(rows)
		if err != nil {
			return nil, err
		}
		relations = append(relations, rel)
	}
	return relations, rows.Err()
}

// UpdateRelation flips the done flag on the caller's enrollment.
func (r *Repository) UpdateRelation(ctx context.Context, courseID, creatorID int64, done bool) (Relation, error) {
	const query = `
		UPDATE course_relations SET done = $3, updated_at = now()
		WHERE course_id = $1 AND creator_id = $2
		RETURNING ` + relationColumns
	rel, err := scanRelation(r.pool.QueryRow(ctx, query, courseID, creatorID, done))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Relation{}, shared.ErrNotFound
		}
		return Relation{}, err
	}
	return rel, nil
}

// DeleteRelation removes the caller's enrollment.
func (r *Repository) DeleteRelation(ctx context.Context, courseID, creatorID int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM course_relations WHERE course_id = $1 AND creator_id = $2", courseID, creatorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GetStats returns the maintained aggregates for a course.
func (r *Repository) GetStats(ctx context.Context, courseID int64) (Stats, error) {
	const query = `
		SELECT course_id, enrolled_count, avg_rating, lesson_count, refreshed_at
		FROM course_stats WHERE course_id = $1`
	var s Stats
	err := r.pool.QueryRow(ctx, query, courseID).Scan(
		&s.CourseID, &s.EnrolledCount, &s.AverageRating, &s.LessonCount, &s.RefreshedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Stats{}, shared.ErrNotFound
		}
		return Stats{}, err
	}
	return s, nil
}

// RefreshStats recomputes and upserts the aggregates for a course.
func (r *Repository) RefreshStats(ctx context.Context, courseID int64) (Stats, error) {
	const query = `
		INSERT INTO course_stats (course_id, enrolled_count, avg_rating, lesson_count, refreshed_at)
		SELECT c.id,
			(SELECT COUNT(*) FROM course_relations cr WHERE cr.course_id = c.id),
			COALESCE((SELECT AVG(rt.rating) FROM ratings rt WHERE rt.course_id = c.id), 0),
			(SELECT COUNT(*) FROM lessons l WHERE l.course_id = c.id),
			now()
		FROM courses c WHERE c.id = $1
		ON CONFLICT (course_id) DO UPDATE SET
			enrolled_count = EXCLUDED.enrolled_count,
			avg_rating = EXCLUDED.avg_rating,
			lesson_count = EXCLUDED.lesson_count,
			refreshed_at = EXCLUDED.refreshed_at
		RETURNING course_id, enrolled_count, avg_rating, lesson_count, refreshed_at`
	var s Stats
	err := r.pool.QueryRow(ctx, query, courseID).Scan(
		&s.CourseID, &s.EnrolledCount, &s.AverageRating, &s.LessonCount, &s.RefreshedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Stats{}, shared.ErrNotFound
		}
		return Stats{}, err
	}
	return s, nil
}
