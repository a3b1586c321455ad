package platform

import (
	"context"
	"sync"
	"time"

	"civic-audit/internal/signal"
)

// Profile is one politician profile as the audit engine sees it: just
// the refresh and enrichment state, nothing presentational.
type Profile struct {
	ID              string
	State           string
	LastRefreshedAt time.Time
	Enriched        bool
}

// Catalog is an in-memory profile catalog implementing
// signal.ProfileSource. It stands in for the platform's relational
// store; collectors only ever see the interface.
type Catalog struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

func NewCatalog() *Catalog {
	return &Catalog{
		profiles: make(map[string]Profile),
	}
}

// Put inserts or replaces a profile.
func (c *Catalog) Put(p Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profiles[p.ID] = p
}

func (c *Catalog) PendingEnrichment(ctx context.Context, scope signal.Scope) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	count := 0
	for _, p := range c.profiles {
		if !p.Enriched && inScope(p.State, scope) {
			count++
		}
	}
	return count, nil
}

func (c *Catalog) StaleCount(ctx context.Context, olderThan time.Duration, scope signal.Scope) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-olderThan)

	c.mu.RLock()
	defer c.mu.RUnlock()

	count := 0
	for _, p := range c.profiles {
		if p.LastRefreshedAt.Before(cutoff) && inScope(p.State, scope) {
			count++
		}
	}
	return count, nil
}

func (c *Catalog) count(scope signal.Scope) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	count := 0
	for _, p := range c.profiles {
		if inScope(p.State, scope) {
			count++
		}
	}
	return count
}

func inScope(state string, scope signal.Scope) bool {
	return scope.State == "" || scope.State == state
}
