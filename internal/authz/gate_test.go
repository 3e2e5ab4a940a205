package authz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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
			d64, ok := v.(int64)
			if !ok {
				return fmt.Errorf("destination %d wants int64", i)
			}
			*d = d64
		case *bool:
			b, ok := v.(bool)
			if !ok {
				return fmt.Errorf("destination %d wants bool", i)
			}
			*d = b
		default:
			return fmt.Errorf("unsupported destination %T", d)
		}
	}
	return nil
}

type stubQuerier struct {
	row     stubRow
	lastSQL string
	args    []any
}

func (s *stubQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	s.lastSQL = sql
	s.args = args
	return s.row
}

func principal(id int64) *shared.Principal {
	return &shared.Principal{ID: id, Email: "user@example.com"}
}

func TestSingleSQLReferencesCourseColumnPerResource(t *testing.T) {
	q := newQuery(Lesson, "$1")
	IsCourseInstructor{}.Compose(q, false)
	sql := q.singleSQL()
	assert.Contains(t, sql, "FROM lessons t WHERE t.id = $2")
	assert.Contains(t, sql, "ci.course_id = t.course_id")

	q = newQuery(Course, "$1")
	IsCourseInstructor{}.Compose(q, false)
	assert.Contains(t, q.singleSQL(), "ci.course_id = t.id")
}

func TestSingleSQLAlwaysReferencesPrincipalPlaceholder(t *testing.T) {
	// Prepared statements fail on parameters the SQL never mentions, so
	// every rendered lookup must use $1 even when no rule annotates.
	compositions := []struct {
		name  string
		rules []Rule
	}{
		{"no rules", nil},
		{"creator only", []Rule{IsCreator{}}},
		{"instructor", []Rule{IsCourseInstructor{}}},
		{"enrolled", []Rule{IsEnrolled{}}},
		{"any of creator and instructor", []Rule{Any{IsCreator{}, IsCourseInstructor{}}}},
	}
	for _, tc := range compositions {
		q := newQuery(Rating, "$1")
		for _, rule := range tc.rules {
			rule.Compose(q, false)
		}
		assert.Containsf(t, q.singleSQL(), "$1", "%s must reference the principal placeholder", tc.name)
	}
}

func TestResolveCreatorOnlyBindsBothArgs(t *testing.T) {
	db := &stubQuerier{row: stubRow{values: []any{int64(9), int64(7), int64(1)}}}
	g := NewGate(db)

	_, err := g.Resolve(context.Background(), Rating, principal(1), 9, IsCreator{})
	require.NoError(t, err)
	assert.Contains(t, db.lastSQL, "$1")
	assert.Equal(t, []any{int64(1), int64(9)}, db.args)
}

func TestEnrolledReusesInstructorAnnotation(t *testing.T) {
	q := newQuery(Rating, "$1")
	IsCourseInstructor{}.Compose(q, false)
	IsEnrolled{}.Compose(q, false)
	require.Len(t, q.annotations, 2)
	assert.Equal(t, FlagInstructor, q.annotations[0].alias)
	assert.Equal(t, FlagEnrolled, q.annotations[1].alias)
}

func TestResolveNotFoundBeatsForbidden(t *testing.T) {
	querier := &stubQuerier{row: stubRow{err: pgx.ErrNoRows}}
	gate := NewGate(querier)

	_, err := gate.Resolve(context.Background(), Lesson, principal(9), 42, IsCourseInstructor{})
	assert.True(t, errors.Is(err, shared.ErrNotFound))
	assert.False(t, errors.Is(err, shared.ErrForbidden))
	assert.Equal(t, []any{int64(9), int64(42)}, querier.args)
}

func TestResolveForbiddenForNonInstructor(t *testing.T) {
	querier := &stubQuerier{row: stubRow{values: []any{int64(42), int64(7), int64(0), false}}}
	gate := NewGate(querier)

	_, err := gate.Resolve(context.Background(), Lesson, principal(9), 42, IsCourseInstructor{})
	require.True(t, errors.Is(err, shared.ErrForbidden))
	assert.Contains(t, err.Error(), "only course instructors")
}

func TestResolveInstructorPasses(t *testing.T) {
	querier := &stubQuerier{row: stubRow{values: []any{int64(42), int64(7), int64(0), true}}}
	gate := NewGate(querier)

	obj, err := gate.Resolve(context.Background(), Lesson, principal(9), 42, IsCourseInstructor{})
	require.NoError(t, err)
	assert.Equal(t, int64(42), obj.ID)
	assert.Equal(t, int64(7), obj.CourseID)
	assert.True(t, obj.Flag(FlagInstructor))
}

func TestEnrolledAcceptsInstructor(t *testing.T) {
	// instructor flag true, enrolled flag false: access equivalent to enrollment.
	querier := &stubQuerier{row: stubRow{values: []any{int64(1), int64(7), int64(0), true, false}}}
	gate := NewGate(querier)

	_, err := gate.Resolve(context.Background(), Lesson, principal(9), 1, IsEnrolled{})
	assert.NoError(t, err)
}

func TestEnrolledRejectsOutsider(t *testing.T) {
	querier := &stubQuerier{row: stubRow{values: []any{int64(1), int64(7), int64(0), false, false}}}
	gate := NewGate(querier)

	_, err := gate.Resolve(context.Background(), Lesson, principal(9), 1, IsEnrolled{})
	require.True(t, errors.Is(err, shared.ErrForbidden))
	assert.Contains(t, err.Error(), "enrolled")
}

func TestRulesCheckedInOrderFailFast(t *testing.T) {
	// creator check fails before the enrolled check could pass.
	querier := &stubQuerier{row: stubRow{values: []any{int64(1), int64(7), int64(5), true, true}}}
	gate := NewGate(querier)

	_, err := gate.Resolve(context.Background(), Rating, principal(9), 1, IsCreator{}, IsEnrolled{})
	require.True(t, errors.Is(err, shared.ErrForbidden))
	assert.Contains(t, err.Error(), "creator")
}

func TestCreatorPasses(t *testing.T) {
	querier := &stubQuerier{row: stubRow{values: []any{int64(1), int64(7), int64(9)}}}
	gate := NewGate(querier)

	obj, err := gate.Resolve(context.Background(), Rating, principal(9), 1, IsCreator{})
	require.NoError(t, err)
	assert.Equal(t, int64(9), obj.CreatorID)
}

func TestResolveOptionalSkipsWithoutID(t *testing.T) {
	gate := NewGate(&stubQuerier{})

	obj, err := gate.ResolveOptional(context.Background(), Course, principal(9), 0, IsCourseInstructor{})
	require.NoError(t, err)
	assert.Nil(t, obj)
}

func TestListPredicateEnrolled(t *testing.T) {
	pred, args := ListPredicate(Lesson, principal(9), 1, IsEnrolled{})
	assert.Equal(t, []any{int64(9)}, args)
	assert.Contains(t, pred, " OR ")
	assert.Contains(t, pred, "ci.course_id = t.course_id")
	assert.Contains(t, pred, "cr.course_id = t.course_id")
	assert.True(t, strings.Contains(pred, "$1"))
}

func TestListPredicateCreator(t *testing.T) {
	pred, args := ListPredicate(Rating, principal(9), 3, IsCreator{})
	assert.Equal(t, "t.creator_id = $3", pred)
	assert.Equal(t, []any{int64(9)}, args)
}

func TestListPredicateNoRules(t *testing.T) {
	pred, args := ListPredicate(Course, principal(9), 1)
	assert.Equal(t, "TRUE", pred)
	assert.Nil(t, args)
}

func TestListPredicateUnauthenticated(t *testing.T) {
	pred, args := ListPredicate(Course, nil, 1, IsEnrolled{})
	assert.Equal(t, "FALSE", pred)
	assert.Nil(t, args)
}

func TestRequireAdmin(t *testing.T) {
	assert.True(t, errors.Is(RequireAdmin(nil), shared.ErrUnauthorized))
	assert.True(t, errors.Is(RequireAdmin(principal(1)), shared.ErrForbidden))
	assert.NoError(t, RequireAdmin(&shared.Principal{ID: 1, IsStaff: true}))
}

func TestRequireAuthenticated(t *testing.T) {
	assert.True(t, errors.Is(RequireAuthenticated(nil), shared.ErrUnauthorized))
	assert.NoError(t, RequireAuthenticated(principal(1)))
}

func TestAnyPassesWhenOneRulePasses(t *testing.T) {
	// Creator check fails, instructor flag is set.
	db := &stubQuerier{row: stubRow{values: []any{int64(9), int64(7), int64(8), true}}}
	gate := NewGate(db)

	obj, err := gate.Resolve(context.Background(), Answer, principal(3), 9, Any{IsCreator{}, IsCourseInstructor{}})
	require.NoError(t, err)
	assert.True(t, obj.Flag(FlagInstructor))
}

func TestAnyFailsWhenEveryRuleFails(t *testing.T) {
	db := &stubQuerier{row: stubRow{values: []any{int64(9), int64(7), int64(8), false}}}
	gate := NewGate(db)

	_, err := gate.Resolve(context.Background(), Answer, principal(3), 9, Any{IsCreator{}, IsCourseInstructor{}})
	assert.True(t, errors.Is(err, shared.ErrForbidden))
}

func TestAnyListPredicateJoinsWithOr(t *testing.T) {
	pred, args := ListPredicate(Answer, principal(9), 1, Any{IsCreator{}, IsCourseInstructor{}})
	assert.Equal(t, []any{int64(9)}, args)
	assert.Contains(t, pred, "t.creator_id = $1 OR ")
	assert.Contains(t, pred, "ci.user_id = $1")
}
