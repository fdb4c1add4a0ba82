package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/theboringdotapp/newsletter-builder/internal/domain"
)

// File is a document as returned by the backend.
type File struct {
	Content []byte // decoded content
	SHA     string // conflict token of the current revision
}

// Backend is the remote version-controlled file API the store sits on.
//
// GetFile returns a domain.NotFoundError when path does not exist.
// PutFile creates path when sha is empty and updates it otherwise; the
// backend rejects the write when sha no longer matches the current revision.
type Backend interface {
	GetFile(ctx context.Context, path string) (*File, error)
	PutFile(ctx context.Context, path string, content []byte, sha, message string) error
}

// Store treats backend files as whole-value JSON documents.
// It holds no state besides its collaborators: two Stores on the same
// backend see each other's writes, and concurrent writers to the same
// path race (last write wins).
type Store struct {
	backend Backend
	now     func() time.Time
	loc     *time.Location
}

// Option customizes a Store.
type Option func(*Store)

// WithClock sets the clock used to pick the current month.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLocation sets the time zone used to pick the current month.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) { s.loc = loc }
}

// New creates a document store on top of backend.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		now:     time.Now,
		loc:     time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the store's current time in its configured location.
func (s *Store) Now() time.Time {
	return s.now().In(s.loc)
}

// Read decodes the document at path into v.
// A missing document is not an error: found is false and v is left untouched.
func (s *Store) Read(ctx context.Context, path string, v any) (found bool, err error) {
	f, err := s.backend.GetFile(ctx, path)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(f.Content, v); err != nil {
		return false, fmt.Errorf("read %s: %w", path, domain.ParseError{Input: path, Err: err})
	}
	return true, nil
}

// Version returns the conflict token of the document at path, or "" when
// the document does not exist yet. It is the first half of Write.
func (s *Store) Version(ctx context.Context, path string) (string, error) {
	f, err := s.backend.GetFile(ctx, path)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("version %s: %w", path, err)
	}
	return f.SHA, nil
}

// WriteVersion serializes v as indented JSON and stores it at path,
// presenting sha as the revision being replaced ("" to create).
func (s *Store) WriteVersion(ctx context.Context, path string, v any, sha string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := s.backend.PutFile(ctx, path, data, sha, CommitMessage(path)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Write replaces the document at path with v, creating it if needed.
// The read-then-write pair is not atomic.
func (s *Store) Write(ctx context.Context, path string, v any) error {
	sha, err := s.Version(ctx, path)
	if err != nil {
		return err
	}
	return s.WriteVersion(ctx, path, v, sha)
}

// CommitMessage is the message attached to every document write.
func CommitMessage(path string) string {
	return "Update " + path
}
