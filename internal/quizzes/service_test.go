package quizzes

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educa-hq/educa/internal/authz"
	"github.com/educa-hq/educa/internal/shared"
)

type stubRow struct {
	err    error
	values []any
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("expected %d destinations, got %d", len(r.values), len(dest))
	}
	for i, v := range r.values {
		switch d := dest[i].(type) {
		case *int64:
			*d = v.(int64)
		case *bool:
			*d = v.(bool)
		default:
			return fmt.Errorf("unsupported destination %T", d)
		}
	}
	return nil
}

type stubQuerier struct {
	row stubRow
}

func (s *stubQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return s.row
}

// enrolledGate resolves any object as visible to an enrolled principal.
func enrolledGate(courseID int64) *authz.Gate {
	return authz.NewGate(&stubQuerier{row: stubRow{values: []any{int64(1), courseID, int64(0), false, true}}})
}

type stubStore struct {
	Store
	quiz         Quiz
	relationDone bool
	markedDone   bool
}

func (s *stubStore) Get(context.Context, int64) (Quiz, error) { return s.quiz, nil }

func (s *stubStore) GetOrCreateRelation(_ context.Context, quizID, creatorID int64) (Relation, error) {
	return Relation{ID: 1, QuizID: quizID, CreatorID: creatorID, Done: s.relationDone}, nil
}

func (s *stubStore) MarkRelationDone(context.Context, int64, int64) error {
	s.markedDone = true
	return nil
}

func gradingFixture(passPercent int32) *stubStore {
	return &stubStore{quiz: Quiz{
		ID:          1,
		CourseID:    7,
		PassPercent: passPercent,
		Questions: []Question{
			{ID: 10, CorrectResponse: 0},
			{ID: 11, CorrectResponse: 2},
			{ID: 12, CorrectResponse: 1},
			{ID: 13, CorrectResponse: 3},
		},
	}}
}

func principal(id int64) *shared.Principal {
	return &shared.Principal{ID: id, Email: "user@example.com"}
}

func TestCheckPerfectScorePassesAndCompletes(t *testing.T) {
	store := gradingFixture(70)
	svc := NewService(store, enrolledGate(7))

	result, err := svc.Check(context.Background(), principal(3), 1, map[int64]int32{10: 0, 11: 2, 12: 1, 13: 3})
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, float64(100), result.CorrectPercent)
	assert.Empty(t, result.WrongQuestions)
	assert.True(t, store.markedDone)
}

func TestCheckBelowPassPercentFails(t *testing.T) {
	store := gradingFixture(70)
	svc := NewService(store, enrolledGate(7))

	// Two of four right is 50%.
	result, err := svc.Check(context.Background(), principal(3), 1, map[int64]int32{10: 0, 11: 2, 12: 0, 13: 0})
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Equal(t, float64(50), result.CorrectPercent)
	assert.ElementsMatch(t, []int64{12, 13}, result.WrongQuestions)
	assert.False(t, store.markedDone)
}

func TestCheckExactPassPercentPasses(t *testing.T) {
	store := gradingFixture(75)
	svc := NewService(store, enrolledGate(7))

	result, err := svc.Check(context.Background(), principal(3), 1, map[int64]int32{10: 0, 11: 2, 12: 1, 13: 0})
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, float64(75), result.CorrectPercent)
	assert.True(t, store.markedDone)
}

func TestCheckWrongResponseCountIsInvalid(t *testing.T) {
	svc := NewService(gradingFixture(70), enrolledGate(7))

	_, err := svc.Check(context.Background(), principal(3), 1, map[int64]int32{10: 0})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestCheckQuizWithoutQuestionsIsInvalid(t *testing.T) {
	// An empty submission matches an empty question set; grading must
	// reject it instead of dividing by zero.
	store := &stubStore{quiz: Quiz{ID: 1, CourseID: 7, PassPercent: 70}}
	svc := NewService(store, enrolledGate(7))

	_, err := svc.Check(context.Background(), principal(3), 1, map[int64]int32{})
	require.ErrorIs(t, err, shared.ErrValidation)
	assert.False(t, store.markedDone)
}

func TestCheckUnknownQuestionIsInvalid(t *testing.T) {
	svc := NewService(gradingFixture(70), enrolledGate(7))

	_, err := svc.Check(context.Background(), principal(3), 1, map[int64]int32{10: 0, 11: 2, 12: 1, 99: 0})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestCheckCompletedQuizConflicts(t *testing.T) {
	store := gradingFixture(70)
	store.relationDone = true
	svc := NewService(store, enrolledGate(7))

	_, err := svc.Check(context.Background(), principal(3), 1, map[int64]int32{10: 0, 11: 2, 12: 1, 13: 3})
	require.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestCheckMissingQuizIsNotFound(t *testing.T) {
	gate := authz.NewGate(&stubQuerier{row: stubRow{err: pgx.ErrNoRows}})
	svc := NewService(gradingFixture(70), gate)

	_, err := svc.Check(context.Background(), principal(3), 99, map[int64]int32{})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCheckNotEnrolledIsForbidden(t *testing.T) {
	gate := authz.NewGate(&stubQuerier{row: stubRow{values: []any{int64(1), int64(7), int64(0), false, false}}})
	svc := NewService(gradingFixture(70), gate)

	_, err := svc.Check(context.Background(), principal(3), 1, map[int64]int32{10: 0, 11: 2, 12: 1, 13: 3})
	require.ErrorIs(t, err, shared.ErrForbidden)
}

func TestCreateQuestionRejectsOutOfRangeCorrectResponse(t *testing.T) {
	// Instructor resolving the quiz.
	gate := authz.NewGate(&stubQuerier{row: stubRow{values: []any{int64(1), int64(7), int64(0), true}}})
	svc := NewService(&stubStore{}, gate)

	_, err := svc.CreateQuestion(context.Background(), principal(3), NewQuestion{
		QuizID:          1,
		Question:        "pick one",
		Answers:         []string{"a", "b"},
		CorrectResponse: 2,
	})
	require.ErrorIs(t, err, shared.ErrValidation)
}
