package answers

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
	created *Answer
	deleted []int64
}

func (s *stubStore) Create(_ context.Context, creatorID, courseID int64, input NewAnswer) (Answer, error) {
	a := Answer{ID: 1, CourseID: courseID, CreatorID: creatorID, ObjectModel: input.ObjectModel, ObjectID: input.ObjectID, Content: input.Content}
	s.created = &a
	return a, nil
}

func (s *stubStore) Get(context.Context, int64) (Answer, error) { return Answer{}, nil }

func (s *stubStore) ListByObject(context.Context, string, []any, string, int64) ([]Answer, error) {
	return nil, nil
}

func (s *stubStore) Update(_ context.Context, id int64, _ UpdateAnswer) (Answer, error) {
	return Answer{ID: id}, nil
}

func (s *stubStore) Delete(_ context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func principal(id int64) *shared.Principal {
	return &shared.Principal{ID: id, Email: "user@example.com"}
}

func newService(q *stubQuerier, store *stubStore) *Service {
	return NewService(store, authz.NewGate(q), generic.NewRegistry(generic.AnswerTargets()))
}

func TestCreateRejectsUnknownModelBeforeLookup(t *testing.T) {
	q := &stubQuerier{row: stubRow{err: pgx.ErrNoRows}}
	svc := newService(q, &stubStore{})

	_, err := svc.Create(context.Background(), principal(3), NewAnswer{ObjectModel: "answer", ObjectID: 1, Content: "hi"})
	require.ErrorIs(t, err, shared.ErrValidation)
	assert.False(t, q.queried, "unknown model must be rejected before any id lookup")
}

func TestCreateOnMessageRequiresEnrollment(t *testing.T) {
	// Message 4 in course 7; principal neither enrolled nor instructor.
	q := &stubQuerier{row: stubRow{values: []any{int64(4), int64(7), int64(8), false, false}}}
	svc := newService(q, &stubStore{})

	_, err := svc.Create(context.Background(), principal(3), NewAnswer{ObjectModel: "message", ObjectID: 4, Content: "hi"})
	require.ErrorIs(t, err, shared.ErrForbidden)
}

func TestCreateAttachesToResolvedCourse(t *testing.T) {
	q := &stubQuerier{row: stubRow{values: []any{int64(4), int64(7), int64(8), false, true}}}
	store := &stubStore{}
	svc := newService(q, store)

	a, err := svc.Create(context.Background(), principal(3), NewAnswer{ObjectModel: "Message", ObjectID: 4, Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), a.CourseID)
	assert.Equal(t, "message", a.ObjectModel)
}

func TestDeleteAllowsCreator(t *testing.T) {
	// Answer 9 in course 7, created by the caller, who is not an instructor.
	q := &stubQuerier{row: stubRow{values: []any{int64(9), int64(7), int64(3), false}}}
	store := &stubStore{}
	svc := newService(q, store)

	require.NoError(t, svc.Delete(context.Background(), principal(3), 9))
	assert.Equal(t, []int64{9}, store.deleted)
}

func TestDeleteAllowsInstructor(t *testing.T) {
	// Answer created by user 8; caller instructs the course.
	q := &stubQuerier{row: stubRow{values: []any{int64(9), int64(7), int64(8), true}}}
	store := &stubStore{}
	svc := newService(q, store)

	require.NoError(t, svc.Delete(context.Background(), principal(3), 9))
	assert.Equal(t, []int64{9}, store.deleted)
}

func TestDeleteRejectsBystander(t *testing.T) {
	q := &stubQuerier{row: stubRow{values: []any{int64(9), int64(7), int64(8), false}}}
	svc := newService(q, &stubStore{})

	err := svc.Delete(context.Background(), principal(3), 9)
	require.ErrorIs(t, err, shared.ErrForbidden)
}

func TestListByObjectValidatesModel(t *testing.T) {
	svc := newService(&stubQuerier{}, &stubStore{})

	_, err := svc.ListByObject(context.Background(), principal(3), "course", 1)
	require.ErrorIs(t, err, shared.ErrValidation)
}
