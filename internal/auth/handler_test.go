package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/educa-hq/educa/internal/shared"
)

type stubRepo struct {
	users map[string]*User
}

func (s *stubRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

func newTestService(t *testing.T) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &stubRepo{users: map[string]*User{
		"ana@example.com": {ID: 1, Email: "ana@example.com", Name: "Ana", PasswordHash: string(hash)},
	}}
	return NewService(repo, NewTokenIssuer("secret"), NewDenylist(client)), mr
}

func postToken(t *testing.T, handler *Handler, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"email": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handler.handleToken(rr, req)
	return rr
}

func TestTokenEndpointIssuesBearer(t *testing.T) {
	service, _ := newTestService(t)
	handler := NewHandler(nil, service)

	rr := postToken(t, handler, "ana@example.com", "hunter2hunter2")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `"access_token"`)
	assert.Contains(t, body, `"token_type":"bearer"`)
}

func TestTokenEndpointRejectsBadPassword(t *testing.T) {
	service, _ := newTestService(t)
	handler := NewHandler(nil, service)

	rr := postToken(t, handler, "ana@example.com", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestTokenEndpointRejectsUnknownUser(t *testing.T) {
	service, _ := newTestService(t)
	handler := NewHandler(nil, service)

	rr := postToken(t, handler, "bob@example.com", "hunter2hunter2")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestTokenEndpointRejectsMalformedEmail(t *testing.T) {
	service, _ := newTestService(t)
	handler := NewHandler(nil, service)

	rr := postToken(t, handler, "not-an-email", "hunter2hunter2")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMiddlewareSetsPrincipal(t *testing.T) {
	service, _ := newTestService(t)
	token, err := service.Authenticate(context.Background(), "ana@example.com", "hunter2hunter2")
	require.NoError(t, err)

	var got *shared.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = shared.PrincipalFromContext(r.Context())
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	service.Middleware(true)(next).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID)
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	service, _ := newTestService(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	service.Middleware(true)(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "could not validate credentials")
}

func TestRevokedTokenIsRejected(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()
	token, err := service.Authenticate(ctx, "ana@example.com", "hunter2hunter2")
	require.NoError(t, err)

	_, claims, err := service.Verify(ctx, token)
	require.NoError(t, err)
	require.NoError(t, service.Revoke(ctx, claims))

	_, _, err = service.Verify(ctx, token)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}
