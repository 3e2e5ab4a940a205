package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/educa-hq/educa/internal/platform/httpx"
	"github.com/educa-hq/educa/internal/shared"
)

type claimsContextKey struct{}

// ClaimsFromContext extracts the verified token claims from context.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsContextKey{}).(*Claims)
	return claims
}

// Middleware resolves the bearer token into a request principal. When
// required is false the request proceeds anonymously on missing
// credentials; an invalid or revoked token is rejected either way.
func (s *Service) Middleware(required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				if required {
					httpx.RespondError(w, shared.ErrUnauthorized)
					return
				}
				next.ServeHTTP(w, r)
				return
			}
			principal, claims, err := s.Verify(r.Context(), raw)
			if err != nil {
				httpx.RespondError(w, shared.ErrUnauthorized)
				return
			}
			ctx := shared.ContextWithPrincipal(r.Context(), principal)
			ctx = context.WithValue(ctx, claimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
