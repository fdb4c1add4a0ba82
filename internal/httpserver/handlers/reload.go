package handlers

import (
	"context"
	"net/http"

	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/deps"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/respond"
	"github.com/theboringdotapp/newsletter-builder/internal/logger"
)

type summaryFlusher interface {
	Flush(ctx context.Context) (int, error)
}

type reloadResponse struct {
	Triggered        bool `json:"triggered"`
	SummariesFlushed *int `json:"summaries_flushed,omitempty"`
}

// Reload triggers a manual prompt reload. With ?flush=summaries the summary
// cache is emptied too.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp reloadResponse

		select {
		case d.ReloadTrigger <- struct{}{}:
			resp.Triggered = true
			d.Logger.Info("manual prompt reload triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
		default:
			d.Logger.Warn("prompt reload already in progress",
				logger.String("remote_ip", r.RemoteAddr))
		}

		if r.URL.Query().Get("flush") == "summaries" {
			if f, ok := d.SummaryCache.(summaryFlusher); ok {
				n, err := f.Flush(r.Context())
				if err != nil {
					respond.Error(w, d.Logger, err)
					return
				}
				d.Logger.Info("summary cache flushed", logger.Int("keys", n))
				resp.SummariesFlushed = &n
			}
		}

		status := http.StatusAccepted
		if !resp.Triggered {
			status = http.StatusTooManyRequests
		}
		respond.JSON(w, status, resp)
	}
}
