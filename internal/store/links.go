package store

import (
	"context"
	"fmt"
	"time"

	"github.com/theboringdotapp/newsletter-builder/internal/domain"
)

// Links returns the links saved during the given month, oldest first.
// A month with no file yields an empty, non-nil slice.
func (s *Store) Links(ctx context.Context, year, month int) ([]domain.SavedLink, error) {
	year, month, err := s.resolveMonth(year, month)
	if err != nil {
		return nil, err
	}
	links := []domain.SavedLink{}
	if _, err := s.Read(ctx, LinksPath(year, month), &links); err != nil {
		return nil, err
	}
	if links == nil {
		links = []domain.SavedLink{}
	}
	return links, nil
}

// AppendLink adds link at the end of the current month's collection and
// returns the collection as written.
//
// The whole monthly file is read then rewritten. Two concurrent appends to
// the same month can lose one of the links (last write wins).
func (s *Store) AppendLink(ctx context.Context, link domain.SavedLink) ([]domain.SavedLink, error) {
	now := s.Now()
	path := LinksPath(now.Year(), int(now.Month()))

	links := []domain.SavedLink{}
	if _, err := s.Read(ctx, path, &links); err != nil {
		return nil, err
	}
	links = append(links, link)

	if err := s.Write(ctx, path, links); err != nil {
		return nil, err
	}
	return links, nil
}

// ReplaceLinks overwrites a month's collection with links, without merging.
// Zero year or month default to the current date.
func (s *Store) ReplaceLinks(ctx context.Context, links []domain.SavedLink, year, month int) error {
	year, month, err := s.resolveMonth(year, month)
	if err != nil {
		return err
	}
	if links == nil {
		links = []domain.SavedLink{}
	}
	return s.Write(ctx, LinksPath(year, month), links)
}

func (s *Store) resolveMonth(year, month int) (int, int, error) {
	now := s.Now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if year < 1970 || year > 9999 {
		return 0, 0, fmt.Errorf("year %d: %w", year, domain.ErrInvalidInput)
	}
	if month < int(time.January) || month > int(time.December) {
		return 0, 0, fmt.Errorf("month %d: %w", month, domain.ErrInvalidInput)
	}
	return year, month, nil
}
