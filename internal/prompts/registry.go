package prompts

import (
	"sync"
	"time"
)

// Registry holds the prompt set currently in use.
// The reloader swaps it, request handlers only read it.
type Registry struct {
	mu         sync.RWMutex
	set        Set
	source     string
	lastReload time.Time
}

// NewRegistry creates a registry serving the built-in prompt set.
func NewRegistry() *Registry {
	return &Registry{set: Default(), source: "builtin"}
}

// Get returns a copy of the current prompt set.
func (r *Registry) Get() Set {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s := r.set
	s.Formatting = append([]string(nil), r.set.Formatting...)
	return s
}

// Update replaces the current set. source names where it came from.
func (r *Registry) Update(s Set, source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set = s
	r.source = source
	r.lastReload = time.Now()
}

// Source returns where the current set was loaded from.
func (r *Registry) Source() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.source
}

// LastReload returns the time of the last Update, zero if never reloaded.
func (r *Registry) LastReload() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastReload
}
