package metrics

import "sync"

// MetricKey is a strongly typed counter identifier.
type MetricKey string

// Counter keys for the audit engine's own observability. These track
// the engine, not the platform it audits — the platform's state flows
// through collector signals instead.
const (
	AuditsTotal            MetricKey = "audits_total"
	CollectorTimeoutsTotal MetricKey = "collector_timeouts_total"
	CollectorFailuresTotal MetricKey = "collector_failures_total"

	SnapshotsWrittenTotal     MetricKey = "snapshots_written_total"
	SnapshotFailuresTotal     MetricKey = "snapshot_failures_total"
	SnapshotOverlapSkipsTotal MetricKey = "snapshot_overlap_skips_total"

	ArchiveForwardsTotal        MetricKey = "archive_forwards_total"
	ArchiveForwardFailuresTotal MetricKey = "archive_forward_failures_total"
)

// Registry stores all counters.
type Registry struct {
	mu       sync.Mutex
	counters map[MetricKey]int64
}

func NewRegistry() *Registry {
	return &Registry{
		counters: make(map[MetricKey]int64),
	}
}

// Inc increments a counter by 1.
func (r *Registry) Inc(key MetricKey) {
	r.Add(key, 1)
}

// Add increments a counter by delta.
func (r *Registry) Add(key MetricKey, delta int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[key] += delta
}
