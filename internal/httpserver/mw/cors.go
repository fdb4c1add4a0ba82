package mw

import (
	"net/http"
	"strings"

	"github.com/theboringdotapp/newsletter-builder/internal/credentials"
)

var corsAllowedHeaders = strings.Join([]string{
	"Content-Type",
	credentials.HeaderAuthorization,
	credentials.HeaderOwner,
	credentials.HeaderRepo,
	credentials.HeaderBranch,
	credentials.HeaderKitToken,
	credentials.HeaderModelKey,
}, ", ")

// CORS lets the browser client send credential headers. "*" in origins
// allows any origin; an empty list disables CORS headers entirely.
// Preflight requests are answered with 204 and never reach the router.
func CORS(origins []string) func(http.Handler) http.Handler {
	anyOrigin := false
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			anyOrigin = true
		}
		allowed[strings.TrimRight(o, "/")] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || (!anyOrigin && !allowed[origin]) {
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Add("Vary", "Origin")
			if anyOrigin {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
			}
			h.Set("Access-Control-Expose-Headers", "Content-Disposition, Retry-After, X-Request-Id")

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
				h.Set("Access-Control-Allow-Headers", corsAllowedHeaders)
				h.Set("Access-Control-Max-Age", "600")
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
