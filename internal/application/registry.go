// Package application orchestrates the core: it holds the profile
// registry, materializes profiles from raw API payloads, and drives the
// statistics, ranking, recommendation and chart engines. It is the caller
// role the chat layer talks to; nothing here calls back into any chat
// protocol.
package application

import (
	"sync"

	"github.com/cf-tools/cf-insight/internal/domain/profile"
	"github.com/cf-tools/cf-insight/internal/domain/shared"
)

// Registry is the in-memory map of registered profiles, keyed by the
// external chat-platform user id. It remembers registration order so
// leaderboard tie-breaks are reproducible.
//
// Concurrency discipline: the mutex protects the map itself; profile
// contents follow a single-writer-per-handle rule. A refresh in flight
// for a handle must not race a read of that handle's cached sequences,
// which the orchestration layer guarantees by never running two logical
// operations for one user concurrently.
type Registry struct {
	mu       sync.RWMutex
	profiles map[int64]*profile.UserProfile
	order    []int64
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{profiles: make(map[int64]*profile.UserProfile)}
}

// Get returns the profile registered for a user id.
func (r *Registry) Get(userID int64) (*profile.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, shared.NewDomainError("application", "Registry.Get",
			shared.ErrNotFound, "user is not registered")
	}
	return p, nil
}

// Put registers or replaces the profile for a user id.
func (r *Registry) Put(userID int64, p *profile.UserProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.profiles[userID]; !exists {
		r.order = append(r.order, userID)
	}
	r.profiles[userID] = p
}

// Contains reports whether a user id is registered.
func (r *Registry) Contains(userID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.profiles[userID]
	return ok
}

// Remove unregisters a user; the profile and its cached sequences are
// discarded with it.
func (r *Registry) Remove(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.profiles[userID]; !exists {
		return
	}
	delete(r.profiles, userID)
	for i, id := range r.order {
		if id == userID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// All returns the registered profiles in registration order.
func (r *Registry) All() []*profile.UserProfile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*profile.UserProfile, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.profiles[id])
	}
	return out
}

// Len returns the number of registered profiles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.profiles)
}

// ReplaceAll swaps the whole registry content atomically. Used by bulk
// sync, which builds the complete new state first so a mid-way failure
// never leaves a partial overwrite behind.
func (r *Registry) ReplaceAll(profiles map[int64]*profile.UserProfile, order []int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles = profiles
	r.order = order
}
