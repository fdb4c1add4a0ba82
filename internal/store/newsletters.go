package store

import (
	"context"
	"fmt"

	"github.com/theboringdotapp/newsletter-builder/internal/domain"
)

// SaveNewsletter writes data under its week, replacing any previous
// edition for that week.
func (s *Store) SaveNewsletter(ctx context.Context, data domain.NewsletterData) error {
	if !domain.ValidWeekKey(data.Week) {
		return fmt.Errorf("week %q: %w", data.Week, domain.ErrInvalidInput)
	}
	if data.Links == nil {
		data.Links = []domain.SavedLink{}
	}
	if data.Thoughts == nil {
		data.Thoughts = []domain.Thought{}
	}
	return s.Write(ctx, NewsletterPath(data.Week), data)
}

// GetNewsletter returns the edition saved under week, or nil if there is none.
func (s *Store) GetNewsletter(ctx context.Context, week string) (*domain.NewsletterData, error) {
	if !domain.ValidWeekKey(week) {
		return nil, fmt.Errorf("week %q: %w", week, domain.ErrInvalidInput)
	}
	var data *domain.NewsletterData
	if _, err := s.Read(ctx, NewsletterPath(week), &data); err != nil {
		return nil, err
	}
	return data, nil
}
