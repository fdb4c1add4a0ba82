package domain

import (
	"strconv"
	"time"
)

// SavedLink represents a bookmarked resource waiting to be featured
// in a newsletter edition.
// Links are stored month by month, see store.LinksPath.
type SavedLink struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is an opaque identifier generated by the client.
	// Timestamp-derived, not guaranteed to be globally unique.
	ID string `json:"id"`

	// URL is the absolute resource URL.
	URL string `json:"url"`

	// ─────────────────────────────
	// Metadata (may be AI-generated)
	// ─────────────────────────────

	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category"`

	// SavedAt is an RFC 3339 timestamp set at creation and never mutated.
	SavedAt string `json:"savedAt"`

	// ─────────────────────────────
	// Edition state
	// ─────────────────────────────

	// Selected marks inclusion in the next newsletter draft.
	Selected bool `json:"selected"`
}

// FillDefaults completes the fields a client may omit when saving a link.
// Existing values are never overwritten.
func (l *SavedLink) FillDefaults(now time.Time) {
	if l.ID == "" {
		l.ID = strconv.FormatInt(now.UnixMilli(), 10)
	}
	if l.SavedAt == "" {
		l.SavedAt = now.UTC().Format(time.RFC3339)
	}
	if !l.Category.Valid() {
		l.Category = Categorize(l.URL)
	}
}

// SelectedLinks returns the links flagged for the next edition, in order.
func SelectedLinks(links []SavedLink) []SavedLink {
	out := make([]SavedLink, 0, len(links))
	for _, l := range links {
		if l.Selected {
			out = append(out, l)
		}
	}
	return out
}
