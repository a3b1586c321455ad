package snapshot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"civic-audit/internal/audit"
	"civic-audit/internal/logs"
	"civic-audit/internal/metrics"
	"civic-audit/internal/score"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ---------------- Fakes ---------------- */

type fakeAssembler struct {
	mu     sync.Mutex
	score  int
	block  chan struct{} // when set, Assemble waits until closed
	calls  int
}

func (f *fakeAssembler) Assemble(ctx context.Context) audit.Report {
	f.mu.Lock()
	f.calls++
	sc := f.score
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	return audit.Report{
		HealthScore: sc,
		RiskLevel:   score.RiskLow,
		GeneratedAt: time.Now().UTC(),
	}
}

type failingStore struct {
	*MemoryStore
	failing bool
}

func (f *failingStore) Append(s Snapshot) error {
	if f.failing {
		return errors.New("storage unavailable")
	}
	return f.MemoryStore.Append(s)
}

func newRecorder(assembler Assembler, store Store, reg *metrics.Registry) *Recorder {
	return NewRecorder(
		assembler,
		store,
		time.Hour,
		logs.NewLogger(100, logs.DEBUG),
		reg,
		nil,
	)
}

/* ---------------- Tests ---------------- */

func TestRecorder_RunOnce_AppendsHashStampedSnapshot(t *testing.T) {
	store := NewMemoryStore()
	reg := metrics.NewRegistry()
	recorder := newRecorder(&fakeAssembler{score: 88}, store, reg)

	recorder.runOnce(context.Background())

	require.Equal(t, 1, store.Len())
	snap := store.Recent(1)[0]
	assert.NotEmpty(t, snap.ID)
	assert.Len(t, snap.Hash, 64)
	assert.Equal(t, 88, snap.HealthScore)
	assert.Equal(t, score.RiskLow, snap.RiskLevel)

	snapMetrics := reg.Snapshot()
	assert.Equal(t, int64(1), snapMetrics[string(metrics.SnapshotsWrittenTotal)])
}

func TestRecorder_StorageFailureSkipsTickWithoutPartialWrite(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore(), failing: true}
	reg := metrics.NewRegistry()
	recorder := newRecorder(&fakeAssembler{score: 88}, store, reg)

	recorder.runOnce(context.Background())
	assert.Equal(t, 0, store.Len())

	snapMetrics := reg.Snapshot()
	assert.Equal(t, int64(1), snapMetrics[string(metrics.SnapshotFailuresTotal)])

	// next tick after recovery writes exactly one row
	store.failing = false
	recorder.runOnce(context.Background())
	assert.Equal(t, 1, store.Len())
}

func TestRecorder_NTicksYieldNSnapshots(t *testing.T) {
	store := NewMemoryStore()
	recorder := newRecorder(&fakeAssembler{score: 90}, store, metrics.NewRegistry())

	for i := 0; i < 5; i++ {
		recorder.runOnce(context.Background())
	}

	assert.Equal(t, 5, store.Len())
}

func TestRecorder_OverlappingTickIsSkippedNotQueued(t *testing.T) {
	store := NewMemoryStore()
	reg := metrics.NewRegistry()

	block := make(chan struct{})
	assembler := &fakeAssembler{score: 90, block: block}
	recorder := newRecorder(assembler, store, reg)

	go recorder.runOnce(context.Background())

	// let the first run reach the assembler before ticking again
	assert.Eventually(t, func() bool {
		assembler.mu.Lock()
		defer assembler.mu.Unlock()
		return assembler.calls == 1
	}, time.Second, time.Millisecond)

	recorder.runOnce(context.Background())

	snapMetrics := reg.Snapshot()
	assert.Equal(t, int64(1), snapMetrics[string(metrics.SnapshotOverlapSkipsTotal)])

	close(block)

	assert.Eventually(t, func() bool {
		return store.Len() == 1
	}, time.Second, time.Millisecond)
}

func TestRecorder_Start_RecordsPeriodically(t *testing.T) {
	store := NewMemoryStore()
	recorder := NewRecorder(
		&fakeAssembler{score: 90},
		store,
		5*time.Millisecond,
		logs.NewLogger(100, logs.DEBUG),
		metrics.NewRegistry(),
		nil,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go recorder.Start(ctx)

	assert.Eventually(t, func() bool {
		return store.Len() >= 2
	}, time.Second, 5*time.Millisecond)
}
