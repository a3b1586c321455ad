package platform

import (
	"context"
	"sync"
	"time"
)

// Board is an in-memory job board implementing signal.JobBoard. The
// platform's schedulers stamp it after each successful run.
type Board struct {
	mu   sync.RWMutex
	last map[string]time.Time
}

func NewBoard() *Board {
	return &Board{
		last: make(map[string]time.Time),
	}
}

// MarkSuccess records a successful completion of a job.
func (b *Board) MarkSuccess(job string, at time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last[job] = at
}

func (b *Board) LastSuccess(ctx context.Context, job string) (time.Time, bool, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, false, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	t, ok := b.last[job]
	return t, ok, nil
}
