package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/deps"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/handlers"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/mw"
)

func init() { Register(registerLinks) }

func registerLinks(r chi.Router, d deps.Deps) {
	links := r.With(mw.RequireRepository(d.Logger))
	links.Get("/api/links", handlers.ListLinks(d))
	links.Post("/api/links", handlers.AppendLink(d))
	links.Put("/api/links", handlers.ReplaceLinks(d))
}
