package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/deps"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/respond"
)

type componentStatus struct {
	OK         bool   `json:"ok"`
	Source     string `json:"source,omitempty"`
	LastReload string `json:"last_reload,omitempty"`
	Mode       string `json:"mode,omitempty"`
	Impact     string `json:"impact,omitempty"`
	Error      string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of the shared components.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"prompts": checkPrompts(d),
			"redis":   checkRedis(r.Context(), d),
		}
		respond.JSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	if p, ok := components["prompts"]; ok && !p.OK {
		return "critical"
	}
	if rd, ok := components["redis"]; ok && !rd.OK {
		return "degraded" // summaries are recomputed on every call
	}
	return "optimal"
}

func checkPrompts(d deps.Deps) componentStatus {
	if d.Prompts == nil {
		return componentStatus{OK: false, Error: "prompt registry not initialized"}
	}
	last := "never"
	if t := d.Prompts.LastReload(); !t.IsZero() {
		last = t.Format(time.DateTime)
	}
	return componentStatus{OK: true, Source: d.Prompts.Source(), LastReload: last}
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     true,
			Mode:   "disabled",
			Impact: "summary-cache-disabled",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "summary-cache-unavailable",
			Error:  err.Error(),
		}
	}
	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "summary-cache-enabled",
	}
}
