package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/deps"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/handlers"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/mw"
)

func init() { Register(registerGenerate) }

// Both endpoints call the model and draw from the same per-caller budget.
func registerGenerate(r chi.Router, d deps.Deps) {
	limited := r.With(mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.RateLimitBurst,
		RefillPerIPPerMin: d.RateLimitRefill,
		MaxEntries:        10000,
		TrustProxy:        d.TrustProxy,
	}))
	limited.Post("/api/generate", handlers.Generate(d))
	limited.Post("/api/summarize", handlers.Summarize(d))
}
