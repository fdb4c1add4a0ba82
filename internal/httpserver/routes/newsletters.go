package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/deps"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/handlers"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/mw"
)

func init() { Register(registerNewsletters) }

func registerNewsletters(r chi.Router, d deps.Deps) {
	nl := r.With(mw.RequireRepository(d.Logger))
	nl.Post("/api/newsletters", handlers.SaveNewsletter(d))
	nl.Get("/api/newsletters/{week}", handlers.GetNewsletter(d))

	r.Get("/api/week", handlers.Week(d))
}
