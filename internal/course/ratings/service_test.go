package ratings

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

type stubStore struct {
	created   *Rating
	createErr error
	deleted   []int64
}

func (s *stubStore) Create(_ context.Context, creatorID int64, input NewRating) (Rating, error) {
	if s.createErr != nil {
		return Rating{}, s.createErr
	}
	rt := Rating{ID: 1, CourseID: input.CourseID, CreatorID: creatorID, Rating: input.Rating, Comment: input.Comment}
	s.created = &rt
	return rt, nil
}

func (s *stubStore) Get(context.Context, int64) (Rating, error) { return Rating{}, nil }

func (s *stubStore) List(context.Context, ListFilters) ([]Rating, error) { return nil, nil }

func (s *stubStore) Update(_ context.Context, id int64, input UpdateRating) (Rating, error) {
	rt := Rating{ID: id, CourseID: 7}
	if input.Rating != nil {
		rt.Rating = *input.Rating
	}
	return rt, nil
}

func (s *stubStore) Delete(_ context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubEnqueuer struct {
	courses []int64
}

func (s *stubEnqueuer) EnqueueStatsRefresh(_ context.Context, courseID int64) error {
	s.courses = append(s.courses, courseID)
	return nil
}

func principal(id int64) *shared.Principal {
	return &shared.Principal{ID: id, Email: "user@example.com"}
}

func TestCreateRequiresEnrollment(t *testing.T) {
	// Course row exists; principal is neither instructor nor enrolled.
	gate := authz.NewGate(&stubQuerier{row: stubRow{values: []any{int64(7), int64(7), int64(0), false, false}}})
	store := &stubStore{}
	svc := NewService(nil, store, gate, nil)

	_, err := svc.Create(context.Background(), principal(3), NewRating{CourseID: 7, Rating: 4})
	require.ErrorIs(t, err, shared.ErrForbidden)
	assert.Nil(t, store.created)
}

func TestCreateMissingCourseIsNotFound(t *testing.T) {
	gate := authz.NewGate(&stubQuerier{row: stubRow{err: pgx.ErrNoRows}})
	svc := NewService(nil, &stubStore{}, gate, nil)

	_, err := svc.Create(context.Background(), principal(3), NewRating{CourseID: 99, Rating: 4})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreateEnrolledEnqueuesStatsRefresh(t *testing.T) {
	gate := authz.NewGate(&stubQuerier{row: stubRow{values: []any{int64(7), int64(7), int64(0), false, true}}})
	store := &stubStore{}
	stats := &stubEnqueuer{}
	svc := NewService(nil, store, gate, stats)

	rt, err := svc.Create(context.Background(), principal(3), NewRating{CourseID: 7, Rating: 5, Comment: "great"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), rt.CreatorID)
	assert.Equal(t, []int64{7}, stats.courses)
}

func TestCreateDuplicateSurfacesConflict(t *testing.T) {
	gate := authz.NewGate(&stubQuerier{row: stubRow{values: []any{int64(7), int64(7), int64(0), false, true}}})
	store := &stubStore{createErr: fmt.Errorf("%w: you have already rated this course", shared.ErrDuplicate)}
	svc := NewService(nil, store, gate, nil)

	_, err := svc.Create(context.Background(), principal(3), NewRating{CourseID: 7, Rating: 5})
	require.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestUpdateRejectsNonCreator(t *testing.T) {
	// Rating 12 belongs to user 8, caller is user 3.
	gate := authz.NewGate(&stubQuerier{row: stubRow{values: []any{int64(12), int64(7), int64(8)}}})
	svc := NewService(nil, &stubStore{}, gate, nil)

	v := 2.0
	_, err := svc.Update(context.Background(), principal(3), 12, UpdateRating{Rating: &v})
	require.ErrorIs(t, err, shared.ErrForbidden)
}

func TestDeleteByCreatorRefreshesStats(t *testing.T) {
	gate := authz.NewGate(&stubQuerier{row: stubRow{values: []any{int64(12), int64(7), int64(3)}}})
	store := &stubStore{}
	stats := &stubEnqueuer{}
	svc := NewService(nil, store, gate, stats)

	require.NoError(t, svc.Delete(context.Background(), principal(3), 12))
	assert.Equal(t, []int64{12}, store.deleted)
	assert.Equal(t, []int64{7}, stats.courses)
}
