package answers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/educa-hq/educa/internal/authz"
	"github.com/educa-hq/educa/internal/generic"
	"github.com/educa-hq/educa/internal/shared"
)

func newTestRouter(db *stubQuerier) http.Handler {
	svc := NewService(&stubStore{}, authz.NewGate(db), generic.NewRegistry(generic.AnswerTargets()))
	authmw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(shared.ContextWithPrincipal(r.Context(), principal(1))))
		})
	}
	h := NewHandler(svc, authmw)
	r := chi.NewRouter()
	r.Route("/generic/answer", h.MountRoutes)
	return r
}

func TestListUnknownModelRejectedBeforeIDParsing(t *testing.T) {
	db := &stubQuerier{}
	router := newTestRouter(db)

	// The model name fails registry validation first, so even a
	// malformed id yields a validation error, not a missing resource.
	req := httptest.NewRequest(http.MethodGet, "/generic/answer/widget/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, db.queried)
}

func TestListKnownModelWithMalformedIDIs404(t *testing.T) {
	db := &stubQuerier{}
	router := newTestRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/generic/answer/message/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, db.queried)
}
