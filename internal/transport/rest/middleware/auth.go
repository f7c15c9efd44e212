package middleware

import (
	"context"
	"net/http"
	"strings"

	"uptimebar/internal/domain"
)

type ctxKey int

const principalKey ctxKey = iota

// TokenVerifier resolves a bearer credential into a principal.
type TokenVerifier interface {
	PrincipalFromToken(token string) (domain.Principal, error)
}

// Auth resolves the request credential, either the Authorization bearer
// header or the access_token cookie set by the login handler, and attaches
// the principal to the request context.
func Auth(verifier TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				http.Error(w, "missing or invalid token", http.StatusUnauthorized)
				return
			}

			principal, err := verifier.PrincipalFromToken(token)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route to the given roles. Run it after Auth.
func RequireRole(roles ...domain.Role) Middleware {
	allowed := make(map[domain.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFrom(r.Context())
			if !ok || !allowed[principal.Role] {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func PrincipalFrom(ctx context.Context) (domain.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(domain.Principal)
	return principal, ok
}

// BearerToken extracts the request credential: Authorization header first,
// then the session cookie.
func BearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}

	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}
