package issue

import (
	"fmt"
	"time"

	"civic-audit/internal/config"
	"civic-audit/internal/signal"
)

// RuleResult is the outcome of evaluating one rule.
//
// CannotAssess is set when the rule's input signal was unavailable:
// "couldn't check" is reported separately from "problem found" so
// operators can tell the two apart.
type RuleResult struct {
	Triggered    bool
	Issue        Issue
	CannotAssess string
}

// Rule inspects one audit's signals. Each rule fires at most once.
type Rule func(signals signal.Set, cfg config.Config, now time.Time) RuleResult

/* ---------- RULES ---------- */

// An unreachable database is itself the finding, so availability rules
// never produce a cannot-assess note.
func DatabaseRule(signals signal.Set, _ config.Config, _ time.Time) RuleResult {
	sig, ok := signals[signal.Database]
	if ok && sig.Available {
		return RuleResult{}
	}
	return RuleResult{
		Triggered: true,
		Issue: Issue{
			Code:     CodeDatabaseUnreachable,
			Severity: SeverityHigh,
			Message:  "Core database is unreachable",
		},
	}
}

func VectorIndexRule(signals signal.Set, _ config.Config, _ time.Time) RuleResult {
	sig, ok := signals[signal.VectorIndex]
	if ok && sig.Available {
		return RuleResult{}
	}
	return RuleResult{
		Triggered: true,
		Issue: Issue{
			Code:     CodeVectorIndexUnreachable,
			Severity: SeverityMedium,
			Message:  "Vector index is unreachable; semantic search is degraded",
		},
	}
}

func RefreshJobRule(signals signal.Set, cfg config.Config, now time.Time) RuleResult {
	return jobRule(signals, signal.RefreshJob, cfg.Schedule.RefreshJobInterval.Std(), now,
		CodeRefreshJobOverdue, "data-refresh")
}

func EnrichmentJobRule(signals signal.Set, cfg config.Config, now time.Time) RuleResult {
	return jobRule(signals, signal.EnrichmentJob, cfg.Schedule.EnrichJobInterval.Std(), now,
		CodeEnrichmentJobOverdue, "AI-enrichment")
}

func jobRule(signals signal.Set, name signal.Name, interval time.Duration, now time.Time, code, label string) RuleResult {
	sig, ok := signals[name]
	if !ok || !sig.Available {
		return RuleResult{CannotAssess: "cannot assess " + label + " job recency: job board unreachable"}
	}
	if sig.LastRunAt == nil {
		return RuleResult{
			Triggered: true,
			Issue: Issue{
				Code:     code,
				Severity: SeverityMedium,
				Message:  fmt.Sprintf("The %s job has never completed", label),
			},
		}
	}
	overdue := now.Sub(*sig.LastRunAt)
	if overdue <= interval {
		return RuleResult{}
	}
	return RuleResult{
		Triggered: true,
		Issue: Issue{
			Code:     code,
			Severity: SeverityMedium,
			Message:  fmt.Sprintf("The %s job last succeeded %dh ago", label, int(overdue.Hours())),
		},
	}
}

// AI backlog: severity scales with how far past the threshold the
// backlog has grown.
func BacklogRule(signals signal.Set, cfg config.Config, _ time.Time) RuleResult {
	sig, ok := signals[signal.AIBacklog]
	if !ok || !sig.Available {
		return RuleResult{CannotAssess: "cannot assess AI-enrichment backlog: profile catalog unreachable"}
	}
	threshold := cfg.Scoring.BacklogThreshold
	if sig.Count <= threshold {
		return RuleResult{}
	}

	severity := SeverityMedium
	if sig.Count > 3*threshold {
		severity = SeverityHigh
	}
	return RuleResult{
		Triggered: true,
		Issue: Issue{
			Code:     CodeAIBacklogHigh,
			Severity: severity,
			Message:  fmt.Sprintf("%d profiles pending AI enrichment (threshold %d)", sig.Count, threshold),
		},
	}
}

func StaleProfilesRule(signals signal.Set, cfg config.Config, _ time.Time) RuleResult {
	sig, ok := signals[signal.StaleProfiles]
	if !ok || !sig.Available {
		return RuleResult{CannotAssess: "cannot assess profile staleness: profile catalog unreachable"}
	}
	threshold := cfg.Scoring.StaleThreshold
	if sig.Count <= threshold {
		return RuleResult{}
	}

	severity := SeverityLow
	if sig.Count > 3*threshold {
		severity = SeverityMedium
	}
	return RuleResult{
		Triggered: true,
		Issue: Issue{
			Code:     CodeStaleProfilesHigh,
			Severity: severity,
			Message:  fmt.Sprintf("%d profiles have not been refreshed within the staleness window", sig.Count),
		},
	}
}

func VoteAnomaliesRule(signals signal.Set, cfg config.Config, _ time.Time) RuleResult {
	sig, ok := signals[signal.VoteAnomalies]
	if !ok || !sig.Available {
		return RuleResult{CannotAssess: "cannot assess vote anomalies: vote ledger unreachable"}
	}
	if sig.Count == 0 {
		return RuleResult{}
	}

	severity := SeverityMedium
	if sig.Count*cfg.Scoring.AnomalyPenalty >= cfg.Scoring.AnomalyPenaltyCap {
		severity = SeverityHigh
	}
	return RuleResult{
		Triggered: true,
		Issue: Issue{
			Code:     CodeVoteAnomaliesDetected,
			Severity: severity,
			Message:  fmt.Sprintf("%d vote records flagged as statistically anomalous", sig.Count),
		},
	}
}
