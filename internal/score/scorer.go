package score

import (
	"time"

	"civic-audit/internal/config"
	"civic-audit/internal/signal"
)

// RiskLevel classifies a health score into a coarse band.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Rank orders risk levels for comparisons; higher is worse.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskHigh:
		return 3
	case RiskMedium:
		return 2
	default:
		return 1
	}
}

// Scorer reduces one audit's collector signals to a health score.
//
// Scoring is a pure function of its inputs: identical signals, clock
// reading, and prior scores always produce identical output. All
// arithmetic is integer arithmetic.
type Scorer struct {
	policy    config.ScoringPolicy
	bands     config.RiskBands
	schedule  config.SchedulePolicy
	stability config.StabilityPolicy
}

func NewScorer(cfg config.Config) *Scorer {
	return &Scorer{
		policy:    cfg.Scoring,
		bands:     cfg.Bands,
		schedule:  cfg.Schedule,
		stability: cfg.Stability,
	}
}

// Score starts from a 100-point baseline, applies the named deductions
// for every adverse condition, and clamps to [0,100]. An unavailable
// signal is scored as the worst case for its factor, never skipped.
// now is passed in so the same signal set always scores identically.
func (s *Scorer) Score(signals signal.Set, now time.Time) int {
	score := 100

	score -= s.fixedPenalty(signals, signal.Database, s.policy.DatabaseDownPenalty)
	score -= s.jobPenalty(signals, signal.RefreshJob, s.schedule.RefreshJobInterval.Std(), now)
	score -= s.jobPenalty(signals, signal.EnrichmentJob, s.schedule.EnrichJobInterval.Std(), now)
	score -= s.scaledPenalty(signals, signal.AIBacklog,
		s.policy.BacklogThreshold, s.policy.BacklogPenaltyDivisor, s.policy.BacklogPenaltyCap)
	score -= s.scaledPenalty(signals, signal.StaleProfiles,
		s.policy.StaleThreshold, s.policy.StalePenaltyDivisor, s.policy.StalePenaltyCap)
	score -= s.anomalyPenalty(signals)
	score -= s.fixedPenalty(signals, signal.VectorIndex, s.policy.VectorIndexDownPenalty)

	return clamp(score)
}

// Risk maps a score onto its band. Lower score never yields lower risk.
func (s *Scorer) Risk(score int) RiskLevel {
	switch {
	case score < s.bands.HighBelow:
		return RiskHigh
	case score < s.bands.MediumBelow:
		return RiskMedium
	default:
		return RiskLow
	}
}

// fixedPenalty applies the full penalty when the subsystem is down or
// could not be probed.
func (s *Scorer) fixedPenalty(signals signal.Set, name signal.Name, penalty int) int {
	sig, ok := signals[name]
	if !ok || !sig.Available {
		return penalty
	}
	return 0
}

// jobPenalty fires when the job board is unreachable, the job never
// completed, or the last success is older than its expected interval.
func (s *Scorer) jobPenalty(signals signal.Set, name signal.Name, interval time.Duration, now time.Time) int {
	sig, ok := signals[name]
	if !ok || !sig.Available || sig.LastRunAt == nil {
		return s.policy.JobOverduePenalty
	}
	if now.Sub(*sig.LastRunAt) > interval {
		return s.policy.JobOverduePenalty
	}
	return 0
}

// scaledPenalty grows with how far the count exceeds its threshold,
// capped. Unavailable counts score as the cap.
func (s *Scorer) scaledPenalty(signals signal.Set, name signal.Name, threshold, divisor, limit int) int {
	sig, ok := signals[name]
	if !ok || !sig.Available {
		return limit
	}
	if sig.Count <= threshold {
		return 0
	}
	penalty := (sig.Count - threshold) / divisor
	if penalty < 1 {
		penalty = 1
	}
	if penalty > limit {
		penalty = limit
	}
	return penalty
}

// anomalyPenalty is a fixed deduction per flagged vote record, capped.
func (s *Scorer) anomalyPenalty(signals signal.Set) int {
	sig, ok := signals[signal.VoteAnomalies]
	if !ok || !sig.Available {
		return s.policy.AnomalyPenaltyCap
	}
	penalty := sig.Count * s.policy.AnomalyPenalty
	if penalty > s.policy.AnomalyPenaltyCap {
		penalty = s.policy.AnomalyPenaltyCap
	}
	return penalty
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
