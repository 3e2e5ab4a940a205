package quizzes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educa-hq/educa/internal/shared"
)

// Repository provides PostgreSQL backed persistence for quizzes, their
// questions and completion relations.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const quizColumns = `t.id, t.course_id, t.module_id, t.title, t.description, t.sort_order,
	t.is_published, t.pass_percent, t.created_at, t.updated_at`

func scanQuiz(row pgx.Row) (Quiz, error) {
	var q Quiz
	err := row.Scan(
		&q.ID, &q.CourseID, &q.ModuleID, &q.Title, &q.Description, &q.Order,
		&q.IsPublished, &q.PassPercent, &q.CreatedAt, &q.UpdatedAt,
	)
	return q, err
}

const questionColumns = `id, quiz_id, course_id, question, feedback, answers, time_in_minutes,
	correct_response, created_at, updated_at`

func scanQuestion(row pgx.Row) (Question, error) {
	var q Question
	err := row.Scan(
		&q.ID, &q.QuizID, &q.CourseID, &q.Question, &q.Feedback, &q.Answers,
		&q.TimeInMinutes, &q.CorrectResponse, &q.CreatedAt, &q.UpdatedAt,
	)
	return q, err
}

// Create inserts a quiz.
func (r *Repository) Create(ctx context.Context, input NewQuiz) (Quiz, error) {
	const query = `
		INSERT INTO quizzes (course_id, module_id, title, description, is_published, pass_percent)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, course_id, module_id, title, description, sort_order,
			is_published, pass_percent, created_at, updated_at`
	q, err := scanQuiz(r.pool.QueryRow(ctx, query,
		input.CourseID, input.ModuleID, input.Title, input.Description,
		input.IsPublished, input.PassPercent,
	))
	if err != nil {
		return Quiz{}, err
	}
	q.Questions = []Question{}
	return q, nil
}

// Get fetches a quiz with its questions.
func (r *Repository) Get(ctx context.Context, id int64) (Quiz, error) {
	query := fmt.Sprintf("SELECT %s FROM quizzes t WHERE t.id = $1", quizColumns)
	q, err := scanQuiz(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Quiz{}, shared.ErrNotFound
		}
		return Quiz{}, err
	}
	if q.Questions, err = r.listQuestions(ctx, q.ID); err != nil {
		return Quiz{}, err
	}
	return q, nil
}

// List returns quizzes matching the access condition, optionally narrowed
// to one course, each with its questions attached.
func (r *Repository) List(ctx context.Context, access string, accessArgs []any, courseID int64) ([]Quiz, error) {
	conds := []string{access}
	args := append([]any{}, accessArgs...)
	if courseID > 0 {
		args = append(args, courseID)
		conds = append(conds, fmt.Sprintf("t.course_id = $%d", len(args)))
	}
	query := fmt.Sprintf(
		"SELECT %s FROM quizzes t WHERE %s ORDER BY t.module_id, t.sort_order, t.id",
		quizColumns, strings.Join(conds, " AND "),
	)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Quiz{}
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Questions, err = r.listQuestions(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Update patches a quiz.
func (r *Repository) Update(ctx context.Context, id int64, input UpdateQuiz) (Quiz, error) {
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
	if input.IsPublished != nil {
		args = append(args, *input.IsPublished)
		sets = append(sets, fmt.Sprintf("is_published = $%d", len(args)))
	}
	if input.PassPercent != nil {
		args = append(args, *input.PassPercent)
		sets = append(sets, fmt.Sprintf("pass_percent = $%d", len(args)))
	}
	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE quizzes SET %s WHERE id = $%d
		RETURNING id, course_id, module_id, title, description, sort_order,
			is_published, pass_percent, created_at, updated_at`,
		strings.Join(sets, ", "), len(args),
	)
	q, err := scanQuiz(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Quiz{}, shared.ErrNotFound
		}
		return Quiz{}, err
	}
	if q.Questions, err = r.listQuestions(ctx, q.ID); err != nil {
		return Quiz{}, err
	}
	return q, nil
}

// Delete removes a quiz.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM quizzes WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *Repository) listQuestions(ctx context.Context, quizID int64) ([]Question, error) {
	query := fmt.Sprintf("SELECT %s FROM quiz_questions WHERE quiz_id = $1 ORDER BY id", questionColumns)
	rows, err := r.pool.Query(ctx, query, quizID)
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

// CreateQuestion inserts a question, denormalizing the quiz's course id.
func (r *Repository) CreateQuestion(ctx context.Context, courseID int64, input NewQuestion) (Question, error) {
	query := fmt.Sprintf(`
		INSERT INTO quiz_questions (quiz_id, course_id, question, feedback, answers, time_in_minutes, correct_response)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`, questionColumns)
	return scanQuestion(r.pool.QueryRow(ctx, query,
		input.QuizID, courseID, input.Question, input.Feedback,
		input.Answers, input.TimeInMinutes, input.CorrectResponse,
	))
}

// GetQuestion fetches a question scoped to its quiz.
func (r *Repository) GetQuestion(ctx context.Context, quizID, questionID int64) (Question, error) {
	query := fmt.Sprintf("SELECT %s FROM quiz_questions WHERE id = $1 AND quiz_id = $2", questionColumns)
	q, err := scanQuestion(r.pool.QueryRow(ctx, query, questionID, quizID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Question{}, shared.ErrNotFound
		}
		return Question{}, err
	}
	return q, nil
}

// UpdateQuestion patches a question scoped to its quiz.
func (r *Repository) UpdateQuestion(ctx context.Context, quizID, questionID int64, input UpdateQuestion) (Question, error) {
	sets := []string{"updated_at = now()"}
	args := []any{}
	if input.Question != nil {
		args = append(args, *input.Question)
		sets = append(sets, fmt.Sprintf("question = $%d", len(args)))
	}
	if input.Feedback != nil {
		args = append(args, *input.Feedback)
		sets = append(sets, fmt.Sprintf("feedback = $%d", len(args)))
	}
	if input.Answers != nil {
		args = append(args, *input.Answers)
		sets = append(sets, fmt.Sprintf("answers = $%d", len(args)))
	}
	if input.TimeInMinutes != nil {
		args = append(args, *input.TimeInMinutes)
		sets = append(sets, fmt.Sprintf("time_in_minutes = $%d", len(args)))
	}
	if input.CorrectResponse != nil {
		args = append(args, *input.CorrectResponse)
		sets = append(sets, fmt.Sprintf("correct_response = $%d", len(args)))
	}
	args = append(args, questionID, quizID)
	query := fmt.Sprintf(
		"UPDATE quiz_questions SET %s WHERE id = $%d AND quiz_id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args)-1, len(args), questionColumns,
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

// DeleteQuestion removes a question scoped to its quiz.
func (r *Repository) DeleteQuestion(ctx context.Context, quizID, questionID int64) error {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM quiz_questions WHERE id = $1 AND quiz_id = $2", questionID, quizID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

const relationColumns = `id, quiz_id, creator_id, done, created_at, updated_at`

func scanRelation(row pgx.Row) (Relation, error) {
	var rel Relation
	err := row.Scan(&rel.ID, &rel.QuizID, &rel.CreatorID, &rel.Done, &rel.CreatedAt, &rel.UpdatedAt)
	return rel, err
}

// GetOrCreateRelation returns the user's relation for a quiz, creating it
// on first contact.
func (r *Repository) GetOrCreateRelation(ctx context.Context, quizID, creatorID int64) (Relation, error) {
	query := fmt.Sprintf(`
		INSERT INTO quiz_relations (quiz_id, creator_id)
		VALUES ($1, $2)
		ON CONFLICT (quiz_id, creator_id) DO UPDATE SET quiz_id = EXCLUDED.quiz_id
		RETURNING %s`, relationColumns)
	return scanRelation(r.pool.QueryRow(ctx, query, quizID, creatorID))
}

// MarkRelationDone flags the user's relation as completed.
func (r *Repository) MarkRelationDone(ctx context.Context, quizID, creatorID int64) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE quiz_relations SET done = TRUE, updated_at = now() WHERE quiz_id = $1 AND creator_id = $2",
		quizID, creatorID)
	return err
}

// ListRelations returns every relation of the given user, optionally for
// one quiz.
func (r *Repository) ListRelations(ctx context.Context, creatorID, quizID int64) ([]Relation, error) {
	conds := []string{"creator_id = $1"}
	args := []any{creatorID}
	if quizID > 0 {
		args = append(args, quizID)
		conds = append(conds, fmt.Sprintf("quiz_id = $%d", len(args)))
	}
	query := fmt.Sprintf("SELECT %s FROM quiz_relations WHERE %s ORDER BY id",
		relationColumns, strings.Join(conds, " AND "))
	rows, err := r.pool.Query(ctx, query, args...)
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

// DeleteRelation removes the user's relation for a quiz.
func (r *Repository) DeleteRelation(ctx context.Context, quizID, creatorID int64) error {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM quiz_relations WHERE quiz_id = $1 AND creator_id = $2", quizID, creatorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
