package crawler

import (
	"sync"

	"github.com/fuzumoe/linktorch-search/internal/search"
)

// Live is a search that a worker is currently running.
type Live struct {
	Session *search.Session
	Results *search.MemorySink
}

// Registry tracks live searches so other goroutines can poll or stop them.
// A stop that arrives before the worker registers is remembered and applied
// on registration.
type Registry struct {
	mu      sync.RWMutex
	live    map[string]*Live
	stopped map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		live:    make(map[string]*Live),
		stopped: make(map[string]struct{}),
	}
}

// Register publishes l under id, applying any pending stop.
func (r *Registry) Register(id string, l *Live) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.live[id] = l
	if _, ok := r.stopped[id]; ok {
		delete(r.stopped, id)
		l.Session.RequestStop()
	}
}

// Unregister removes id and any stop still pending for it.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.live, id)
	delete(r.stopped, id)
}

// Get returns the live search for id.
func (r *Registry) Get(id string) (*Live, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.live[id]
	return l, ok
}

// RequestStop stops the live search for id and reports whether it was live.
// Otherwise the stop is kept until id registers or is unregistered.
func (r *Registry) RequestStop(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.live[id]; ok {
		l.Session.RequestStop()
		return true
	}
	r.stopped[id] = struct{}{}
	return false
}

// Len returns the number of live searches.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.live)
}
