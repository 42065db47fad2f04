package codeforces

import (
	"context"
	"sync"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// FETCH PACER - fixed spacing between per-user requests
// ══════════════════════════════════════════════════════════════════════════════

// Pacer enforces a fixed minimum pause between consecutive fetches. It is
// a deliberate rate-limiting contract toward the Codeforces API: bulk
// per-user operations stay sequential and paced so a leaderboard rebuild
// never turns into a request burst. This is intentional backpressure, not
// an optimization to remove.
type Pacer struct {
	mu          sync.Mutex
	minInterval time.Duration
	next        time.Time
}

// PacerConfig contains configuration for the fetch pacer.
type PacerConfig struct {
	// MinInterval is the minimum time between consecutive requests.
	MinInterval time.Duration
}

// DefaultPacerConfig returns conservative defaults safe for an unofficial
// API consumer.
func DefaultPacerConfig() PacerConfig {
	return PacerConfig{
		MinInterval: 500 * time.Millisecond,
	}
}

// NewPacer creates a Pacer with the given configuration. A non-positive
// interval disables pacing.
func NewPacer(config PacerConfig) *Pacer {
	return &Pacer{minInterval: config.MinInterval}
}

// MinInterval returns the configured pause between requests.
func (p *Pacer) MinInterval() time.Duration {
	return p.minInterval
}

// Wait blocks until the next request slot, or until the context is
// canceled. Each call reserves a slot, so concurrent callers are spaced
// out in arrival order.
func (p *Pacer) Wait(ctx context.Context) error {
	if p.minInterval <= 0 {
		return ctx.Err()
	}

	p.mu.Lock()
	now := time.Now()
	var wait time.Duration
	if p.next.After(now) {
		wait = p.next.Sub(now)
		p.next = p.next.Add(p.minInterval)
	} else {
		p.next = now.Add(p.minInterval)
	}
	p.mu.Unlock()

	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Reset clears the pacing state, allowing an immediate next request.
func (p *Pacer) Reset() {
	p.mu.Lock()
	p.next = time.Time{}
	p.mu.Unlock()
}
