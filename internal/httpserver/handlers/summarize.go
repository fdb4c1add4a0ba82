package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/theboringdotapp/newsletter-builder/internal/credentials"
	"github.com/theboringdotapp/newsletter-builder/internal/domain"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/deps"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/respond"
	"github.com/theboringdotapp/newsletter-builder/internal/summarize"
)

type summarizeRequest struct {
	URL string `json:"url"`
}

// Summarize proposes a title, description and category for a URL.
func Summarize(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := credentials.FromRequest(r).ModelKey()
		if err != nil {
			respond.Error(w, d.Logger, err)
			return
		}

		var req summarizeRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		if strings.TrimSpace(req.URL) == "" {
			respond.Error(w, d.Logger, fmt.Errorf("url is required: %w", domain.ErrInvalidInput))
			return
		}

		model, err := d.Models(key)
		if err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		s := summarize.New(d.Fetcher, model, d.Prompts.Get(), d.SummaryCache, d.Logger)

		summary, err := s.Summarize(r.Context(), req.URL)
		if err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		respond.JSON(w, http.StatusOK, summary)
	}
}
