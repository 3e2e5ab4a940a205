package course

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
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
	Store

	course      Course
	getErr      error
	updated     *UpdateCourse
	relationErr error
}

func (s *stubStore) Get(context.Context, int64) (Course, error) {
	if s.getErr != nil {
		return Course{}, s.getErr
	}
	return s.course, nil
}

func (s *stubStore) Update(_ context.Context, id int64, input UpdateCourse) (Course, error) {
	s.updated = &input
	c := s.course
	c.ID = id
	return c, nil
}

func (s *stubStore) CreateRelation(_ context.Context, courseID, creatorID int64) (Relation, error) {
	if s.relationErr != nil {
		return Relation{}, s.relationErr
	}
	return Relation{ID: 1, CourseID: courseID, CreatorID: creatorID}, nil
}

type okValidator struct{}

func (okValidator) ValidateIDs(context.Context, []int64) error { return nil }

func principalMiddleware(p *shared.Principal) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(shared.ContextWithPrincipal(r.Context(), p)))
		})
	}
}

func newTestRouter(store *stubStore, gateRow stubRow) http.Handler {
	gate := authz.NewGate(&stubQuerier{row: gateRow})
	svc := NewService(nil, store, gate, okValidator{}, okValidator{}, nil)
	h := NewHandler(nil, svc, NewStatsReader(nil, nil), principalMiddleware(&shared.Principal{ID: 1}))
	r := chi.NewRouter()
	r.Route("/course", h.MountRoutes)
	return r
}

func TestPatchUnknownCourseIs404NotForbidden(t *testing.T) {
	store := &stubStore{}
	router := newTestRouter(store, stubRow{err: pgx.ErrNoRows})

	req := httptest.NewRequest(http.MethodPatch, "/course/42", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Nil(t, store.updated)
}

func TestPatchAsNonInstructorIs403(t *testing.T) {
	store := &stubStore{}
	router := newTestRouter(store, stubRow{values: []any{int64(42), int64(42), int64(0), false}})

	req := httptest.NewRequest(http.MethodPatch, "/course/42", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, store.updated)
}

func TestPatchAsInstructorSucceeds(t *testing.T) {
	store := &stubStore{course: Course{ID: 42, Title: "Go"}}
	router := newTestRouter(store, stubRow{values: []any{int64(42), int64(42), int64(0), true}})

	req := httptest.NewRequest(http.MethodPatch, "/course/42", strings.NewReader(`{"title":"Go 2"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, store.updated)
	assert.Equal(t, "Go 2", *store.updated.Title)
}

func TestEnrollTwiceIs409(t *testing.T) {
	store := &stubStore{
		course:      Course{ID: 42},
		relationErr: fmt.Errorf("%w: already enrolled", shared.ErrDuplicate),
	}
	router := newTestRouter(store, stubRow{})

	req := httptest.NewRequest(http.MethodPost, "/course/relation/", strings.NewReader(`{"course_id":42}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestEnrollUnknownCourseIs404(t *testing.T) {
	store := &stubStore{getErr: fmt.Errorf("%w: no course matches the given query", shared.ErrNotFound)}
	router := newTestRouter(store, stubRow{})

	req := httptest.NewRequest(http.MethodPost, "/course/relation/", strings.NewReader(`{"course_id":42}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMalformedIDIs404(t *testing.T) {
	store := &stubStore{}
	router := newTestRouter(store, stubRow{})

	req := httptest.NewRequest(http.MethodGet, "/course/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
