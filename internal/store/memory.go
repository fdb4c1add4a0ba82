package store

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"sync"

	"github.com/theboringdotapp/newsletter-builder/internal/domain"
)

// MemoryBackend is an in-process Backend that enforces conflict tokens the
// way the remote repository does. Used by tests and local development.
type MemoryBackend struct {
	mu      sync.RWMutex
	files   map[string]File
	gets    int
	puts    int
	commits []string
}

// NewMemoryBackend creates an empty backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{files: make(map[string]File)}
}

// GetFile implements Backend.
func (m *MemoryBackend) GetFile(ctx context.Context, path string) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++

	f, ok := m.files[path]
	if !ok {
		return nil, domain.NotFoundError{Resource: path}
	}
	content := make([]byte, len(f.Content))
	copy(content, f.Content)
	return &File{Content: content, SHA: f.SHA}, nil
}

// PutFile implements Backend. A missing or stale sha on an existing file,
// or a sha on a missing one, is rejected with a 409 like the remote API.
func (m *MemoryBackend) PutFile(ctx context.Context, path string, content []byte, sha, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++

	current, exists := m.files[path]
	if (exists && sha != current.SHA) || (!exists && sha != "") {
		return domain.UpstreamServiceError{
			Service:    "github",
			StatusCode: http.StatusConflict,
			Detail:     path + " does not match " + sha,
		}
	}

	stored := make([]byte, len(content))
	copy(stored, content)
	sum := sha1.Sum(append([]byte("blob "+path+"\x00"), stored...))
	m.files[path] = File{Content: stored, SHA: hex.EncodeToString(sum[:])}
	m.commits = append(m.commits, message)
	return nil
}

// Calls returns how many reads and writes reached the backend.
func (m *MemoryBackend) Calls() (gets, puts int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gets, m.puts
}

// Commits returns the commit messages of accepted writes, in order.
func (m *MemoryBackend) Commits() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.commits...)
}

// Raw returns the stored bytes at path.
func (m *MemoryBackend) Raw(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[path]
	return f.Content, ok
}
