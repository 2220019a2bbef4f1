package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/meridian-pos/meridian-pos/internal/platform/httpx"
)

// Middleware gates routes behind a valid bearer token.
type Middleware struct {
	Service *Service
	Logger  *slog.Logger
}

// RequireAuth rejects requests without a valid Authorization header and
// stores the resolved principal in the request context.
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := BearerToken(r)
		if token == "" {
			httpx.RespondError(w, ErrInvalidToken)
			return
		}
		principal, err := m.Service.Validate(r.Context(), token)
		if err != nil {
			if m.Logger != nil {
				m.Logger.Warn("token validation failed", slog.String("path", r.URL.Path))
			}
			httpx.RespondError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), principal)))
	})
}

// BearerToken extracts the token from the Authorization header, or "" when
// the header is missing or not a bearer scheme.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
