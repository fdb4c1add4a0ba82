package handlers

import (
	"net/http"

	"github.com/theboringdotapp/newsletter-builder/internal/credentials"
	"github.com/theboringdotapp/newsletter-builder/internal/domain"
	"github.com/theboringdotapp/newsletter-builder/internal/generate"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/deps"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/respond"
)

type generateRequest struct {
	Links             []domain.SavedLink `json:"links"`
	Thoughts          []domain.Thought   `json:"thoughts"`
	RawThoughts       string             `json:"rawThoughts"` // split into thoughts, one per paragraph
	CustomPrompt      string             `json:"customPrompt"`
	ExtraInstructions string             `json:"extraInstructions"`
}

// Generate writes a newsletter body and title from the selected links and
// thoughts. Nothing is persisted.
func Generate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := credentials.FromRequest(r).ModelKey()
		if err != nil {
			respond.Error(w, d.Logger, err)
			return
		}

		var req generateRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		thoughts := req.Thoughts
		if req.RawThoughts != "" {
			thoughts = append(thoughts, domain.ParseThoughts(req.RawThoughts, d.Now())...)
		}

		model, err := d.Models(key)
		if err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		pipeline := generate.New(model, d.Prompts.Get(), d.Now, d.Logger)

		res, err := pipeline.Generate(r.Context(), generate.Request{
			Links:             req.Links,
			Thoughts:          thoughts,
			CustomPrompt:      req.CustomPrompt,
			ExtraInstructions: req.ExtraInstructions,
		})
		if err != nil {
			respond.Error(w, d.Logger, err)
			return
		}
		respond.JSON(w, http.StatusOK, res)
	}
}
