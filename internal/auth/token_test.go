package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educa-hq/educa/internal/shared"
)

func TestTokenRoundtrip(t *testing.T) {
	issuer := NewTokenIssuer("secret")
	user := &User{ID: 1, Email: "ana@example.com", Name: "Ana"}

	raw, err := issuer.Issue(user)
	require.NoError(t, err)

	claims, err := issuer.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Subject)
	assert.Equal(t, "Ana", claims.Name)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenExpiry(t *testing.T) {
	issuer := NewTokenIssuer("secret")
	issuer.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }

	raw, err := issuer.Issue(&User{Email: "ana@example.com"})
	require.NoError(t, err)

	// Still valid just before the 30-day mark, rejected after it.
	issuer.now = func() time.Time { return time.Date(2026, 1, 30, 23, 0, 0, 0, time.UTC) }
	_, err = issuer.Parse(raw)
	assert.NoError(t, err)

	issuer.now = func() time.Time { return time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) }
	_, err = issuer.Parse(raw)
	assert.True(t, errors.Is(err, shared.ErrUnauthorized))
}

func TestTokenBadSignature(t *testing.T) {
	raw, err := NewTokenIssuer("secret-a").Issue(&User{Email: "ana@example.com"})
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-b").Parse(raw)
	assert.True(t, errors.Is(err, shared.ErrUnauthorized))
}

func TestTokenGarbage(t *testing.T) {
	_, err := NewTokenIssuer("secret").Parse("not-a-token")
	assert.True(t, errors.Is(err, shared.ErrUnauthorized))
}
