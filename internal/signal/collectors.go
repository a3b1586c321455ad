package signal

import (
	"context"
	"time"
)

// Collector is one read-only probe of an external subsystem.
//
// Collect never panics and never returns an error: a probe that cannot
// reach its subsystem degrades to the Unavailable sentinel so a single
// outage cannot abort the audit.
type Collector interface {
	Name() Name
	Collect(ctx context.Context, scope Scope) Signal
}

/* ---------------- database ---------------- */

// DatabaseCollector checks relational-store connectivity and reports
// row counts for the core entities.
type DatabaseCollector struct {
	db       DatabaseSource
	entities []string
}

func NewDatabaseCollector(db DatabaseSource) *DatabaseCollector {
	return &DatabaseCollector{db: db, entities: CoreEntities}
}

func (c *DatabaseCollector) Name() Name { return Database }

func (c *DatabaseCollector) Collect(ctx context.Context, scope Scope) Signal {
	if err := c.db.Ping(ctx); err != nil {
		return Unavailable(Database)
	}

	sig := Signal{
		Name:      Database,
		Available: true,
		Extra:     make(map[string]int64, len(c.entities)),
	}
	for _, entity := range c.entities {
		n, err := c.db.CountRows(ctx, entity, scope)
		if err != nil {
			return Unavailable(Database)
		}
		sig.Extra["rows_"+entity] = int64(n)
		sig.Count += n
	}
	return sig
}

/* ---------------- scheduled jobs ---------------- */

// JobCollector reports the last successful run of one scheduled job.
type JobCollector struct {
	board JobBoard
	name  Name
	job   string
}

func NewRefreshJobCollector(board JobBoard) *JobCollector {
	return &JobCollector{board: board, name: RefreshJob, job: JobDataRefresh}
}

func NewEnrichmentJobCollector(board JobBoard) *JobCollector {
	return &JobCollector{board: board, name: EnrichmentJob, job: JobAIEnrichment}
}

func (c *JobCollector) Name() Name { return c.name }

func (c *JobCollector) Collect(ctx context.Context, _ Scope) Signal {
	t, ok, err := c.board.LastSuccess(ctx, c.job)
	if err != nil {
		return Unavailable(c.name)
	}

	sig := Signal{Name: c.name, Available: true}
	if ok {
		sig.LastRunAt = &t
	}
	// ok=false means the job has never completed; LastRunAt stays nil
	// and the scorer treats the job as overdue.
	return sig
}

/* ---------------- count probes ---------------- */

// BacklogCollector counts profiles still pending AI enrichment.
type BacklogCollector struct {
	profiles ProfileSource
}

func NewBacklogCollector(profiles ProfileSource) *BacklogCollector {
	return &BacklogCollector{profiles: profiles}
}

func (c *BacklogCollector) Name() Name { return AIBacklog }

func (c *BacklogCollector) Collect(ctx context.Context, scope Scope) Signal {
	n, err := c.profiles.PendingEnrichment(ctx, scope)
	if err != nil {
		return Unavailable(AIBacklog)
	}
	return Signal{Name: AIBacklog, Available: true, Count: n}
}

// StaleCollector counts profiles not refreshed within the staleness
// window.
type StaleCollector struct {
	profiles ProfileSource
	window   time.Duration
}

func NewStaleCollector(profiles ProfileSource, window time.Duration) *StaleCollector {
	return &StaleCollector{profiles: profiles, window: window}
}

func (c *StaleCollector) Name() Name { return StaleProfiles }

func (c *StaleCollector) Collect(ctx context.Context, scope Scope) Signal {
	n, err := c.profiles.StaleCount(ctx, c.window, scope)
	if err != nil {
		return Unavailable(StaleProfiles)
	}
	return Signal{Name: StaleProfiles, Available: true, Count: n}
}

// AnomalyCollector counts vote records flagged as statistically
// anomalous by the vote ledger.
type AnomalyCollector struct {
	votes VoteSource
}

func NewAnomalyCollector(votes VoteSource) *AnomalyCollector {
	return &AnomalyCollector{votes: votes}
}

func (c *AnomalyCollector) Name() Name { return VoteAnomalies }

func (c *AnomalyCollector) Collect(ctx context.Context, scope Scope) Signal {
	n, err := c.votes.AnomalyCount(ctx, scope)
	if err != nil {
		return Unavailable(VoteAnomalies)
	}
	return Signal{Name: VoteAnomalies, Available: true, Count: n}
}

/* ---------------- vector index ---------------- */

// VectorCollector checks vector-index reachability.
type VectorCollector struct {
	index VectorSource
}

func NewVectorCollector(index VectorSource) *VectorCollector {
	return &VectorCollector{index: index}
}

func (c *VectorCollector) Name() Name { return VectorIndex }

func (c *VectorCollector) Collect(ctx context.Context, _ Scope) Signal {
	if err := c.index.Ping(ctx); err != nil {
		return Unavailable(VectorIndex)
	}
	return Signal{Name: VectorIndex, Available: true}
}
