package middleware

import (
	"net/http"
	"strings"
)

// originPolicy answers whether a request Origin may hit the API. An entry of
// "*" opens the allowlist; the matched origin is still echoed back so
// credentials-bearing frontends work.
type originPolicy struct {
	any     bool
	origins map[string]bool
}

func newOriginPolicy(allowedOrigins []string) originPolicy {
	p := originPolicy{origins: make(map[string]bool)}
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		switch origin {
		case "":
		case "*":
			p.any = true
		default:
			p.origins[origin] = true
		}
	}
	return p
}

func (p originPolicy) allows(origin string) bool {
	return origin != "" && (p.any || p.origins[origin])
}

// CORS provides allowlist-based CORS for the buyer dashboard and
// marketplace frontends.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	policy := newOriginPolicy(allowedOrigins)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""

			if policy.allows(origin) {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
				h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
				h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				h.Set("Access-Control-Max-Age", "600")
			}
			if preflight && origin != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
