package issue

// Severity tags an issue for triage ordering.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Rank orders severities; higher is more urgent.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	default:
		return 1
	}
}

// Issue codes. Each rule owns exactly one code, so a report can never
// contain duplicates.
const (
	CodeDatabaseUnreachable    = "database_unreachable"
	CodeRefreshJobOverdue      = "refresh_job_overdue"
	CodeEnrichmentJobOverdue   = "enrichment_job_overdue"
	CodeAIBacklogHigh          = "ai_backlog_high"
	CodeStaleProfilesHigh      = "stale_profiles_high"
	CodeVoteAnomaliesDetected  = "vote_anomalies_detected"
	CodeVectorIndexUnreachable = "vector_index_unreachable"
)

// Issue is a discrete, human-triageable problem statement,
// independent of the aggregate health score.
type Issue struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}
