package handlers

import (
	"net/http"

	"github.com/theboringdotapp/newsletter-builder/internal/credentials"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/deps"
	"github.com/theboringdotapp/newsletter-builder/internal/store"
)

// openStore builds the caller's document store. Routes behind
// mw.RequireRepository find the credentials in the context; others
// resolve them from the headers.
func openStore(d deps.Deps, r *http.Request) (*store.Store, error) {
	repo, ok := credentials.RepositoryFrom(r.Context())
	if !ok {
		var err error
		if repo, err = credentials.FromRequest(r).Repository(); err != nil {
			return nil, err
		}
	}
	return d.Stores(repo)
}
