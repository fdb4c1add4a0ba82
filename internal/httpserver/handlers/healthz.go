package handlers

import (
	"net/http"
	"time"

	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/deps"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/respond"
	"github.com/theboringdotapp/newsletter-builder/internal/version"
)

type healthzResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	version.Info
}

// Healthz is the liveness probe. It carries the build information.
func Healthz(d deps.Deps) http.HandlerFunc {
	start := d.StartTime
	return func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, healthzResponse{
			Status:        "ok",
			Info:          d.Build,
			UptimeSeconds: time.Since(start).Seconds(),
		})
	}
}
