package actions

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educa-hq/educa/internal/authz"
	"github.com/educa-hq/educa/internal/generic"
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
	row     stubRow
	queried bool
}

func (s *stubQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	s.queried = true
	return s.row
}

type stubStore struct {
	created   *Action
	createErr error
}

func (s *stubStore) Create(_ context.Context, creatorID, courseID int64, input NewAction) (Action, error) {
	if s.createErr != nil {
		return Action{}, s.createErr
	}
	a := Action{ID: 1, CourseID: courseID, CreatorID: creatorID, ObjectModel: input.ObjectModel, ObjectID: input.ObjectID, Action: input.Action}
	s.created = &a
	return a, nil
}

func (s *stubStore) CountByObject(context.Context, string, int64, string) (int64, error) {
	return 3, nil
}

func (s *stubStore) DeleteByObject(context.Context, int64, string, int64) error { return nil }

func principal(id int64) *shared.Principal {
	return &shared.Principal{ID: id, Email: "user@example.com"}
}

func TestCreateRejectsUnknownModelBeforeLookup(t *testing.T) {
	q := &stubQuerier{row: stubRow{err: pgx.ErrNoRows}}
	svc := NewService(&stubStore{}, authz.NewGate(q), generic.NewRegistry(generic.ActionTargets()))

	_, err := svc.Create(context.Background(), principal(3), NewAction{ObjectModel: "course", ObjectID: 1, Action: Like})
	require.ErrorIs(t, err, shared.ErrValidation)
	assert.False(t, q.queried, "unknown model must be rejected before any id lookup")
}

func TestCreateMissingObjectIsNotFound(t *testing.T) {
	q := &stubQuerier{row: stubRow{err: pgx.ErrNoRows}}
	svc := NewService(&stubStore{}, authz.NewGate(q), generic.NewRegistry(generic.ActionTargets()))

	_, err := svc.Create(context.Background(), principal(3), NewAction{ObjectModel: "rating", ObjectID: 99, Action: Like})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreateTakesCourseFromResolvedObject(t *testing.T) {
	// Rating 5 in course 7, principal enrolled.
	q := &stubQuerier{row: stubRow{values: []any{int64(5), int64(7), int64(8), false, true}}}
	store := &stubStore{}
	svc := NewService(store, authz.NewGate(q), generic.NewRegistry(generic.ActionTargets()))

	a, err := svc.Create(context.Background(), principal(3), NewAction{ObjectModel: "Rating", ObjectID: 5, Action: Dislike})
	require.NoError(t, err)
	assert.Equal(t, int64(7), a.CourseID)
	assert.Equal(t, "rating", a.ObjectModel, "folded registry name wins over caller casing")
}

func TestCreateDuplicateConflicts(t *testing.T) {
	q := &stubQuerier{row: stubRow{values: []any{int64(5), int64(7), int64(8), false, true}}}
	store := &stubStore{createErr: fmt.Errorf("%w: action already exists", shared.ErrDuplicate)}
	svc := NewService(store, authz.NewGate(q), generic.NewRegistry(generic.ActionTargets()))

	_, err := svc.Create(context.Background(), principal(3), NewAction{ObjectModel: "rating", ObjectID: 5, Action: Like})
	require.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestCountRejectsInvalidAction(t *testing.T) {
	svc := NewService(&stubStore{}, authz.NewGate(&stubQuerier{}), generic.NewRegistry(generic.ActionTargets()))

	_, err := svc.Count(context.Background(), principal(3), "rating", 5, "meh")
	require.ErrorIs(t, err, shared.ErrValidation)
}
