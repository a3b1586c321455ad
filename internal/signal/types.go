package signal

import "time"

// Name identifies one monitored subsystem.
type Name string

const (
	Database      Name = "database"
	RefreshJob    Name = "refresh_job"
	EnrichmentJob Name = "enrichment_job"
	AIBacklog     Name = "ai_backlog"
	StaleProfiles Name = "stale_profiles"
	VoteAnomalies Name = "vote_anomalies"
	VectorIndex   Name = "vector_index"
)

// All lists every subsystem a full audit is expected to cover.
var All = []Name{
	Database,
	RefreshJob,
	EnrichmentJob,
	AIBacklog,
	StaleProfiles,
	VoteAnomalies,
	VectorIndex,
}

// Scope optionally narrows count-based probes to one state.
// The zero value means platform-wide.
type Scope struct {
	State string
}

// Signal is one subsystem's bounded status reading for a single audit.
// Signals are ephemeral: recomputed on every audit, never persisted.
type Signal struct {
	Name      Name
	Available bool
	LastRunAt *time.Time
	Count     int
	Extra     map[string]int64
}

// Unavailable is the sentinel for a probe that could not reach its
// subsystem. Downstream scoring treats it as worst case, never as an
// error.
func Unavailable(name Name) Signal {
	return Signal{Name: name}
}

// Set indexes one audit's signals by subsystem.
type Set map[Name]Signal
