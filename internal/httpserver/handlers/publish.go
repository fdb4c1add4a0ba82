package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/theboringdotapp/newsletter-builder/internal/credentials"
	"github.com/theboringdotapp/newsletter-builder/internal/domain"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/deps"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/respond"
	"github.com/theboringdotapp/newsletter-builder/internal/logger"
	"github.com/theboringdotapp/newsletter-builder/internal/publish"
)

type publishRequest struct {
	Week        string `json:"week"`
	Subject     string `json:"subject"`
	PreviewText string `json:"previewText"`
	Content     string `json:"content"` // export only: skips the repository read
}

// edition is what gets sent to Kit.
type edition struct {
	week        string
	subject     string
	content     string
	previewText string
}

// Publish creates a Kit draft from a saved newsletter.
func Publish(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := credentials.FromRequest(r).KitToken()
		if err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		var req publishRequest
		if err := decodeOptional(r, &req); err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		req.Content = "" // a draft is always made from the saved edition

		ed, err := resolveEdition(d, r, req)
		if err != nil {
			respond.Error(w, d.Logger, err)
			return
		}

		client, err := d.Publishers(token)
		if err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		draft, err := client.CreateDraft(r.Context(), ed.subject, ed.content, ed.previewText)
		if err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		d.Logger.Info("kit draft created",
			logger.String("week", ed.week),
			logger.String("subject", ed.subject))
		respond.JSON(w, http.StatusCreated, draft)
	}
}

// ListDrafts passes Kit's broadcast listing through.
func ListDrafts(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := credentials.FromRequest(r).KitToken()
		if err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		client, err := d.Publishers(token)
		if err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		drafts, err := client.ListDrafts(r.Context())
		if err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		respond.JSON(w, http.StatusOK, drafts)
	}
}

// ExportBroadcast returns the Kit payload as a downloadable file, without
// calling Kit. Content comes from the request, or from the saved edition
// of week when the request has none.
func ExportBroadcast(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req publishRequest
		if err := decodeOptional(r, &req); err != nil {
			respond.Error(w, d.Logger, err)
			return
		}

		ed, err := resolveEdition(d, r, req)
		if err != nil {
			respond.Error(w, d.Logger, err)
			return
		}

		payload, err := publish.Export(publish.NewBroadcast(ed.subject, ed.content, ed.previewText, d.KitTemplateID, d.Now()))
		if err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="kit-broadcast-%s.json"`, ed.week))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(payload)
	}
}

// resolveEdition fills the subject, content and preview text of req.
// The saved newsletter is read only when req carries no content.
func resolveEdition(d deps.Deps, r *http.Request, req publishRequest) (edition, error) {
	ed := edition{
		week:        strings.TrimSpace(req.Week),
		subject:     strings.TrimSpace(req.Subject),
		content:     req.Content,
		previewText: strings.TrimSpace(req.PreviewText),
	}
	if ed.week == "" {
		ed.week = domain.WeekKey(d.Now())
	}
	if !domain.ValidWeekKey(ed.week) {
		return edition{}, fmt.Errorf("week %q: %w", ed.week, domain.ErrInvalidInput)
	}

	if ed.content == "" {
		s, err := openStore(d, r)
		if err != nil {
			return edition{}, err
		}
		data, err := s.GetNewsletter(r.Context(), ed.week)
		if err != nil {
			return edition{}, err
		}
		if data == nil {
			return edition{}, domain.NotFoundError{Resource: "newsletter " + ed.week}
		}
		if strings.TrimSpace(data.GeneratedContent) == "" {
			return edition{}, fmt.Errorf("newsletter %s has no generated content: %w", ed.week, domain.ErrInvalidInput)
		}
		ed.content = data.GeneratedContent
		if ed.subject == "" {
			ed.subject = data.Title
		}
	}

	if ed.subject == "" {
		ed.subject = "Newsletter " + ed.week
	}
	if ed.previewText == "" {
		ed.previewText = publish.PreviewText(ed.content, publish.DefaultPreviewLength)
	}
	return ed, nil
}

// decodeOptional accepts an empty body as the zero value.
func decodeOptional(r *http.Request, v any) error {
	if r.ContentLength == 0 {
		return nil
	}
	return respond.Decode(r, v)
}
