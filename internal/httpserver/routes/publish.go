package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/deps"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/handlers"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/mw"
)

func init() { Register(registerPublish) }

func registerPublish(r chi.Router, d deps.Deps) {
	r.With(mw.RequireRepository(d.Logger)).Post("/api/publish", handlers.Publish(d))
	r.Get("/api/publish/drafts", handlers.ListDrafts(d))
	r.Post("/api/publish/export", handlers.ExportBroadcast(d))
}
