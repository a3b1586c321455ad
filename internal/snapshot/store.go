package snapshot

import "sync"

// Store is the append-only snapshot history. The recorder is the only
// writer; every other consumer is read-only.
type Store interface {
	Append(s Snapshot) error
	Recent(n int) []Snapshot
	LatestScores(n int) []int
	Len() int
}

// MemoryStore keeps the snapshot history in memory.
//
// Design principles:
// - Safe for concurrent access using RWMutex
// - Strictly append-only: no update or delete operation exists
// - Readers get copies, never the backing slice
type MemoryStore struct {
	mu    sync.RWMutex
	snaps []Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append adds one snapshot to the end of the history.
func (m *MemoryStore) Append(s Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snaps = append(m.snaps, s)
	return nil
}

// Recent returns up to n snapshots, newest first.
func (m *MemoryStore) Recent(n int) []Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if n > len(m.snaps) {
		n = len(m.snaps)
	}
	out := make([]Snapshot, 0, n)
	for i := len(m.snaps) - 1; i >= len(m.snaps)-n; i-- {
		out = append(out, m.snaps[i])
	}
	return out
}

// LatestScores returns the health scores of up to n most recent
// snapshots, oldest first, for stability smoothing.
func (m *MemoryStore) LatestScores(n int) []int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if n > len(m.snaps) {
		n = len(m.snaps)
	}
	out := make([]int, 0, n)
	for _, s := range m.snaps[len(m.snaps)-n:] {
		out = append(out, s.HealthScore)
	}
	return out
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.snaps)
}
