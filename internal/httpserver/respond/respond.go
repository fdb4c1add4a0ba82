// Package respond writes JSON bodies and maps domain errors to HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/theboringdotapp/newsletter-builder/internal/credentials"
	"github.com/theboringdotapp/newsletter-builder/internal/domain"
	"github.com/theboringdotapp/newsletter-builder/internal/logger"
)

// MaxBodyBytes bounds request bodies. Newsletters with long generated HTML
// fit comfortably.
const MaxBodyBytes = 4 << 20

type errorBody struct {
	Error string `json:"error"`
}

// JSON writes v with status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes {"error": ...} with the status matching err.
// Server-side failures are logged, caller mistakes are not.
func Error(w http.ResponseWriter, log logger.Logger, err error) {
	status := Status(err)
	if status >= http.StatusInternalServerError && log != nil {
		log.Error("request failed", logger.Int("status", status), logger.Error(err))
	}
	JSON(w, status, errorBody{Error: err.Error()})
}

// Status maps an error to the HTTP status returned to the caller.
func Status(err error) int {
	var (
		cfgErr      domain.ConfigurationError
		upstreamErr domain.UpstreamServiceError
	)
	switch {
	case errors.As(err, &cfgErr):
		if cfgErr.Field == credentials.HeaderAuthorization {
			return http.StatusUnauthorized
		}
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.As(err, &upstreamErr):
		if upstreamErr.StatusCode >= 400 && upstreamErr.StatusCode <= 599 {
			return upstreamErr.StatusCode
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Decode reads a JSON request body into v. Malformed bodies are reported
// as domain.ErrInvalidInput.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("request body is empty: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("malformed JSON body: %v: %w", err, domain.ErrInvalidInput)
	}
	return nil
}
