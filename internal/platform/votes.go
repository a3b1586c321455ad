package platform

import (
	"context"
	"sync"
	"time"

	"civic-audit/internal/signal"
)

// Vote is one vote record with its anomaly flag. The flag is set by
// the platform's own rate analysis; the audit engine only counts it.
type Vote struct {
	ID        string
	ProfileID string
	State     string
	Anomalous bool
	CastAt    time.Time
}

// Ledger is an in-memory vote ledger implementing signal.VoteSource.
type Ledger struct {
	mu    sync.RWMutex
	votes []Vote
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Record appends one vote. The ledger itself is append-only.
func (l *Ledger) Record(v Vote) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.votes = append(l.votes, v)
}

func (l *Ledger) AnomalyCount(ctx context.Context, scope signal.Scope) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	count := 0
	for _, v := range l.votes {
		if v.Anomalous && inScope(v.State, scope) {
			count++
		}
	}
	return count, nil
}

func (l *Ledger) count(scope signal.Scope) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	count := 0
	for _, v := range l.votes {
		if inScope(v.State, scope) {
			count++
		}
	}
	return count
}
