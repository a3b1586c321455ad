package snapshot

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"civic-audit/internal/audit"
	"civic-audit/internal/logs"
	"civic-audit/internal/metrics"
)

// Assembler is the recorder's view of the audit engine.
type Assembler interface {
	Assemble(ctx context.Context) audit.Report
}

// Recorder persists a hash-stamped snapshot of the audit report on a
// fixed schedule. It owns all write access to the snapshot store.
type Recorder struct {
	assembler Assembler
	store     Store
	interval  time.Duration
	logger    *logs.Logger
	metrics   *metrics.Registry
	forwarder *Forwarder // optional archive mirror, may be nil

	inFlight atomic.Bool
}

func NewRecorder(
	assembler Assembler,
	store Store,
	interval time.Duration,
	logger *logs.Logger,
	reg *metrics.Registry,
	forwarder *Forwarder,
) *Recorder {
	return &Recorder{
		assembler: assembler,
		store:     store,
		interval:  interval,
		logger:    logger,
		metrics:   reg,
		forwarder: forwarder,
	}
}

// Start runs the recording loop until the context is cancelled.
// It blocks and should typically be run in a separate goroutine.
func (r *Recorder) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			go r.runOnce(ctx)
		case <-ctx.Done():
			r.logger.Debug("recorder", "snapshot recorder stopped")
			return
		}
	}
}

// runOnce performs a single recording cycle. A tick that arrives while
// the previous run is still in flight is skipped, not queued. A failed
// append is skipped entirely; no partial snapshot is ever written.
func (r *Recorder) runOnce(ctx context.Context) {
	if !r.inFlight.CompareAndSwap(false, true) {
		r.metrics.Inc(metrics.SnapshotOverlapSkipsTotal)
		r.logger.Warn("recorder", "previous run still in flight, skipping tick")
		return
	}
	defer r.inFlight.Store(false)

	report := r.assembler.Assemble(ctx)

	hash, err := Hash(report)
	if err != nil {
		r.metrics.Inc(metrics.SnapshotFailuresTotal)
		r.logger.Error("recorder", "report serialization failed: "+err.Error())
		return
	}

	snap := Snapshot{
		ID:          uuid.NewString(),
		Hash:        hash,
		HealthScore: report.HealthScore,
		RiskLevel:   report.RiskLevel,
		CreatedAt:   report.GeneratedAt,
	}

	if err := r.store.Append(snap); err != nil {
		r.metrics.Inc(metrics.SnapshotFailuresTotal)
		r.logger.Error("recorder", "snapshot append failed: "+err.Error())
		return
	}

	r.metrics.Inc(metrics.SnapshotsWrittenTotal)
	r.logger.Info("recorder", "snapshot recorded: "+snap.ID)

	if r.forwarder != nil {
		go r.forwarder.Forward(snap)
	}
}
