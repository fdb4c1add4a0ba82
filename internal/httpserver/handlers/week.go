package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/theboringdotapp/newsletter-builder/internal/domain"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/deps"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/respond"
)

type weekResponse struct {
	Week string `json:"week"`
}

// Week returns the edition key of today, or of ?date=YYYY-MM-DD.
func Week(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := d.Now()
		if raw := r.URL.Query().Get("date"); raw != "" {
			t, err := time.ParseInLocation(time.DateOnly, raw, now.Location())
			if err != nil {
				respond.Error(w, d.Logger, fmt.Errorf("date %q: %w", raw, domain.ErrInvalidInput))
				return
			}
			now = t
		}
		respond.JSON(w, http.StatusOK, weekResponse{Week: domain.WeekKey(now)})
	}
}
