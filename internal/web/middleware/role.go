package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/JonMunkholm/quimbayaeval/internal/core"
)

// DenyFunc writes the response for a request the role gate rejected. err
// wraps core.ErrUnauthenticated or core.ErrForbidden.
type DenyFunc func(w http.ResponseWriter, r *http.Request, err error)

// RequireRole returns middleware that admits only signed-in users whose role
// is one of roles. With no roles any signed-in user passes.
func RequireRole(deny DenyFunc, roles ...core.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := core.UserFromContext(r.Context())
			if !ok {
				deny(w, r, fmt.Errorf("%s %s: %w", r.Method, r.URL.Path, core.ErrUnauthenticated))
				return
			}
			if len(roles) > 0 && !slices.Contains(roles, u.Role) {
				slog.Warn("role gate: access denied",
					"path", r.URL.Path,
					"role", u.Role,
					"allowed", roles,
				)
				deny(w, r, fmt.Errorf("role %s on %s: %w", u.Role, r.URL.Path, core.ErrForbidden))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
