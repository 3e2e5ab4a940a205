package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/educa-hq/educa/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo     Repository
	issuer   *TokenIssuer
	denylist *Denylist
}

// NewService constructs a new Service.
func NewService(repo Repository, issuer *TokenIssuer, denylist *Denylist) *Service {
	return &Service{repo: repo, issuer: issuer, denylist: denylist}
}

// Authenticate validates email/password credentials and issues a token.
func (s *Service) Authenticate(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", shared.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", shared.ErrUnauthorized
	}
	return s.issuer.Issue(user)
}

// Verify parses a bearer token, rejects revoked ones and loads the
// principal it names.
func (s *Service) Verify(ctx context.Context, raw string) (*shared.Principal, *Claims, error) {
	claims, err := s.issuer.Parse(raw)
	if err != nil {
		return nil, nil, err
	}
	if s.denylist != nil {
		revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, nil, err
		}
		if revoked {
			return nil, nil, shared.ErrUnauthorized
		}
	}
	user, err := s.repo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, nil, shared.ErrUnauthorized
	}
	principal := &shared.Principal{
		ID:      user.ID,
		Email:   user.Email,
		Name:    user.Name,
		IsStaff: user.IsStaff,
	}
	return principal, claims, nil
}

// Revoke denylists the token until it would have expired anyway.
func (s *Service) Revoke(ctx context.Context, claims *Claims) error {
	if s.denylist == nil || claims == nil {
		return nil
	}
	ttl := TokenTTL
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	return s.denylist.Revoke(ctx, claims.ID, ttl)
}
