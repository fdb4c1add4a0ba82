package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/theboringdotapp/newsletter-builder/internal/domain"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/deps"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/respond"
	"github.com/theboringdotapp/newsletter-builder/internal/logger"
)

// SaveNewsletter stores an edition, replacing any previous one for the
// same week. An empty week means the current one.
func SaveNewsletter(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var data domain.NewsletterData
		if err := respond.Decode(r, &data); err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		if data.Week == "" {
			data.Week = domain.WeekKey(d.Now())
		}

		s, err := openStore(d, r)
		if err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		if err := s.SaveNewsletter(r.Context(), data); err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		d.Logger.Info("newsletter saved",
			logger.String("week", data.Week),
			logger.Int("links", len(data.Links)),
			logger.Int("thoughts", len(data.Thoughts)))
		respond.JSON(w, http.StatusCreated, data)
	}
}

// GetNewsletter returns the edition of {week}, 404 when none was saved.
func GetNewsletter(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		week := chi.URLParam(r, "week")

		s, err := openStore(d, r)
		if err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		data, err := s.GetNewsletter(r.Context(), week)
		if err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		if data == nil {
			respond.Error(w, d.Logger, domain.NotFoundError{Resource: fmt.Sprintf("newsletter %s", week)})
			return
		}
		respond.JSON(w, http.StatusOK, data)
	}
}
