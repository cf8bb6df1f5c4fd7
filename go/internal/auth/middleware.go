package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/mcdev12/bpl/go/internal/httpx"
)

type contextKey struct{}

// DefaultPublicPaths are reachable without a session
var DefaultPublicPaths = []string{"/login", "/logout", "/health"}

// Middleware rejects requests without a valid session token. The token is
// read from the session cookie or an "Authorization: Bearer" header.
// Browser navigations are redirected to /login, everything else gets 401.
func Middleware(sessions *Sessions, publicPaths []string) func(http.Handler) http.Handler {
	public := make(map[string]bool, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if public[r.URL.Path] || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := sessions.Verify(tokenFrom(r))
			if err != nil {
				if wantsHTML(r) {
					http.Redirect(w, r, "/login", http.StatusSeeOther)
					return
				}
				httpx.WriteStatus(w, http.StatusUnauthorized, "authentication required")
				return
			}

			ctx := context.WithValue(r.Context(), contextKey{}, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Username returns the logged-in user of a request that passed Middleware.
func Username(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(contextKey{}).(string)
	return name, ok
}

func tokenFrom(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

func wantsHTML(r *http.Request) bool {
	return r.Method == http.MethodGet && strings.Contains(r.Header.Get("Accept"), "text/html")
}
