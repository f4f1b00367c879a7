// Package session keeps one booking store per logged-in user.  A store
// is opened at login and dropped at logout; nothing outlives the process.
package session

import (
	"sync"

	"github.com/iliyamo/matchday-tickets/internal/booking"
)

// Registry maps user ids to their booking stores.
type Registry struct {
	mu     sync.RWMutex
	stores map[string]*booking.Store
	opts   []booking.Option
}

// NewRegistry returns an empty registry.  opts are applied to every
// store it opens.
func NewRegistry(opts ...booking.Option) *Registry {
	return &Registry{stores: make(map[string]*booking.Store), opts: opts}
}

// Open returns the store of userID, creating it on first use.
func (r *Registry) Open(userID string) *booking.Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.stores[userID]
	if !ok {
		st = booking.NewStore(r.opts...)
		r.stores[userID] = st
	}
	return st
}

// Get returns the store of userID if a session is open.
func (r *Registry) Get(userID string) (*booking.Store, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.stores[userID]
	return st, ok
}

// Close drops the store of userID together with its history.
func (r *Registry) Close(userID string) {
	r.mu.Lock()
	delete(r.stores, userID)
	r.mu.Unlock()
}

// All returns every open store.
func (r *Registry) All() []*booking.Store {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*booking.Store, 0, len(r.stores))
	for _, st := range r.stores {
		out = append(out, st)
	}
	return out
}
