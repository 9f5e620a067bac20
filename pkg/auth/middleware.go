package auth

import (
	"net/http"
	"slices"
	"strings"

	"github.com/ghuser/vitrina/pkg/httpx"
	"github.com/ghuser/vitrina/pkg/logger"
)

// RequireAuth is a chi middleware that enforces authentication via a bearer token.
// It verifies the Authorization header, rejects revoked tokens and injects the
// Principal into the request context.
// Returns 401 Unauthorized if the token is missing, invalid, expired or revoked.
//
// After this middleware, handlers can safely call auth.PrincipalFromCtx(r.Context()).
func RequireAuth(tokens *TokenIssuer, revoked RevocationStore, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			p, exp, err := tokens.Parse(raw)
			if err != nil {
				log.WarnContext(r.Context(), "invalid bearer token", "error", err)
				httpx.JSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			if revoked != nil {
				isRevoked, err := revoked.IsRevoked(r.Context(), p.TokenID)
				if err != nil {
					log.ErrorContext(r.Context(), "revocation check failed", "error", err)
					httpx.JSONError(w, http.StatusServiceUnavailable, "authentication unavailable")
					return
				}
				if isRevoked {
					httpx.JSONError(w, http.StatusUnauthorized, "token revoked")
					return
				}
			}

			p.Expires = exp
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireRole rejects authenticated requests whose principal holds none of roles.
// Must run after RequireAuth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := PrincipalFromCtx(r.Context())
			if err != nil {
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if !slices.Contains(roles, p.Role) {
				httpx.JSONError(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
