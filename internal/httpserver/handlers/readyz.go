package handlers

import (
	"net/http"

	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/deps"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/respond"
)

type readyzResponse struct {
	Ready bool `json:"ready"`
}

// Readyz reports whether requests can be served. Redis is an optional
// cache and does not count.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ready := d.Prompts != nil && d.Stores != nil && d.Models != nil && d.Publishers != nil
		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(w, status, readyzResponse{Ready: ready})
	}
}
