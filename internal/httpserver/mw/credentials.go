package mw

import (
	"net/http"

	"github.com/theboringdotapp/newsletter-builder/internal/credentials"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/respond"
	"github.com/theboringdotapp/newsletter-builder/internal/logger"
)

// RequireRepository rejects requests without usable repository credentials
// before any handler runs, so no remote call is ever made on their behalf.
// Valid credentials are stored in the request context.
func RequireRepository(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			repo, err := credentials.FromRequest(r).Repository()
			if err != nil {
				log.Debug("rejected request without repository credentials",
					logger.String("path", r.URL.Path),
					logger.Error(err))
				respond.Error(w, log, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(credentials.WithRepository(r.Context(), repo)))
		})
	}
}
