package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/theboringdotapp/newsletter-builder/internal/domain"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/deps"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/respond"
	"github.com/theboringdotapp/newsletter-builder/internal/logger"
)

type replaceLinksRequest struct {
	Links []domain.SavedLink `json:"links"`
	Year  int                `json:"year,omitempty"`
	Month int                `json:"month,omitempty"`
}

// ListLinks returns the links of ?year=&month= (current month by default).
func ListLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := optionalInt(r, "year")
		if err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		month, err := optionalInt(r, "month")
		if err != nil {
			respond.Error(w, d.Logger, err)
			return
		}

		s, err := openStore(d, r)
		if err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		links, err := s.Links(r.Context(), year, month)
		if err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		respond.JSON(w, http.StatusOK, links)
	}
}

// AppendLink saves one link in the current month. The client may omit the
// id, savedAt and category.
func AppendLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var link domain.SavedLink
		if err := respond.Decode(r, &link); err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		link.URL = strings.TrimSpace(link.URL)
		if !isWebURL(link.URL) {
			respond.Error(w, d.Logger, fmt.Errorf("url %q must be an absolute http(s) URL: %w", link.URL, domain.ErrInvalidInput))
			return
		}

		s, err := openStore(d, r)
		if err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		link.FillDefaults(s.Now())

		links, err := s.AppendLink(r.Context(), link)
		if err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		d.Logger.Info("link saved",
			logger.String("id", link.ID),
			logger.String("category", string(link.Category)),
			logger.Int("month_total", len(links)))
		respond.JSON(w, http.StatusCreated, link)
	}
}

// ReplaceLinks overwrites a month's collection with the request's links.
func ReplaceLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req replaceLinksRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		if req.Links == nil {
			respond.Error(w, d.Logger, fmt.Errorf("links is required: %w", domain.ErrInvalidInput))
			return
		}

		s, err := openStore(d, r)
		if err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		if err := s.ReplaceLinks(r.Context(), req.Links, req.Year, req.Month); err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		respond.JSON(w, http.StatusOK, req.Links)
	}
}

func optionalInt(r *http.Request, name string) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not a number: %w", name, v, domain.ErrInvalidInput)
	}
	return n, nil
}

func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
