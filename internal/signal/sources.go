package signal

import (
	"context"
	"time"
)

// Job names tracked on the platform's job board.
const (
	JobDataRefresh  = "data_refresh"
	JobAIEnrichment = "ai_enrichment"
)

// Core entities whose row counts the database probe reports.
var CoreEntities = []string{"profiles", "votes", "claims"}

// The interfaces below are the audit engine's entire view of the
// surrounding platform. All of them are read-only; the engine never
// mutates a collaborator.

// DatabaseSource exposes relational-store connectivity and row counts.
type DatabaseSource interface {
	Ping(ctx context.Context) error
	CountRows(ctx context.Context, entity string, scope Scope) (int, error)
}

// JobBoard exposes last-successful-run timestamps for scheduled jobs.
// ok is false when the job has never completed.
type JobBoard interface {
	LastSuccess(ctx context.Context, job string) (t time.Time, ok bool, err error)
}

// ProfileSource exposes enrichment-backlog and staleness counts for
// the profile catalog.
type ProfileSource interface {
	PendingEnrichment(ctx context.Context, scope Scope) (int, error)
	StaleCount(ctx context.Context, olderThan time.Duration, scope Scope) (int, error)
}

// VoteSource exposes the count of statistically anomalous vote records.
type VoteSource interface {
	AnomalyCount(ctx context.Context, scope Scope) (int, error)
}

// VectorSource exposes a reachability check for the vector index.
type VectorSource interface {
	Ping(ctx context.Context) error
}
