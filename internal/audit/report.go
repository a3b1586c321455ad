package audit

import (
	"time"

	"civic-audit/internal/issue"
	"civic-audit/internal/score"
)

// StateHealth is one region's score from the same scoring function
// applied to that region's collector subset.
type StateHealth struct {
	State       string `json:"state"`
	HealthScore int    `json:"healthScore"`
}

// Stats are the derived metrics shown on the admin dashboard.
// HealthDrift is nil when no prior snapshot exists.
type Stats struct {
	PendingAI           int           `json:"pendingAI"`
	VoteAnomalies       int           `json:"voteAnomalies"`
	StaleProfiles       int           `json:"staleProfiles"`
	GovernanceStability int           `json:"governanceStability"`
	ProjectedStability  int           `json:"projectedStability"`
	HealthDrift         *int          `json:"healthDrift"`
	StateHealth         []StateHealth `json:"stateHealth,omitempty"`
}

// Report is one complete audit result. It is immutable once returned:
// callers receive a fresh value per invocation and never a shared one.
type Report struct {
	HealthScore  int             `json:"healthScore"`
	RiskLevel    score.RiskLevel `json:"riskLevel"`
	Issues       []issue.Issue   `json:"issues"`
	CannotAssess []string        `json:"cannotAssess,omitempty"`
	Stats        Stats           `json:"stats"`
	GeneratedAt  time.Time       `json:"generatedAt"`
}
