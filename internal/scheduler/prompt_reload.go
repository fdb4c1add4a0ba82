package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/theboringdotapp/newsletter-builder/internal/logger"
	"github.com/theboringdotapp/newsletter-builder/internal/prompts"
)

// PromptReloader handles periodic reloading of the prompt override file.
type PromptReloader struct {
	loader        *prompts.Loader
	registry      *prompts.Registry
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewPromptReloader creates a new prompt reloader.
func NewPromptReloader(
	loader *prompts.Loader,
	registry *prompts.Registry,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *PromptReloader {
	return &PromptReloader{
		loader:        loader,
		registry:      registry,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the prompts once, then reloads them on every tick and on
// every manual trigger. Only the initial load can fail Start: later
// failures keep the last good set.
func (pr *PromptReloader) Start(ctx context.Context) error {
	// Load immediately on start
	if err := pr.Reload(); err != nil {
		return fmt.Errorf("initial reload failed: %w", err)
	}

	// A zero interval disables periodic reloads, manual triggers still work.
	var tick <-chan time.Time
	var ticker *time.Ticker
	if pr.interval > 0 {
		ticker = time.NewTicker(pr.interval)
		tick = ticker.C
	}

	go func() {
		if ticker != nil {
			defer ticker.Stop()
		}
		for {
			select {
			case <-tick:
				if err := pr.Reload(); err != nil {
					pr.logger.Error("failed to reload prompts",
						logger.Error(err))
				}
			case <-pr.manualTrigger:
				pr.logger.Info("manual reload triggered")
				if err := pr.Reload(); err != nil {
					pr.logger.Error("failed to reload prompts",
						logger.Error(err))
				}
			case <-pr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader.
func (pr *PromptReloader) Stop() {
	close(pr.stopCh)
}

// Reload reads the override file and swaps the registry's set.
func (pr *PromptReloader) Reload() error {
	set, err := pr.loader.Load()
	if err != nil {
		return err
	}

	source := pr.loader.Path()
	if source == "" {
		source = "builtin"
	}
	pr.registry.Update(set, source)
	pr.logger.Info("prompts loaded", logger.String("source", source))
	return nil
}
