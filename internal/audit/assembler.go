package audit

import (
	"context"
	"time"

	"civic-audit/internal/config"
	"civic-audit/internal/issue"
	"civic-audit/internal/logs"
	"civic-audit/internal/metrics"
	"civic-audit/internal/score"
	"civic-audit/internal/signal"
)

// ScoreHistory is the assembler's read-only view of the snapshot
// store, used for drift and stability smoothing.
type ScoreHistory interface {
	LatestScores(n int) []int
}

// Assembler orchestrates collectors, scorer, and detector into one
// immutable report. It is side-effect-free: it never writes a
// snapshot, so concurrent ad-hoc audits cannot race.
type Assembler struct {
	collectors []signal.Collector
	scorer     *score.Scorer
	detector   *issue.Detector
	history    ScoreHistory
	cfg        config.Config
	logger     *logs.Logger
	metrics    *metrics.Registry
}

func NewAssembler(
	collectors []signal.Collector,
	scorer *score.Scorer,
	detector *issue.Detector,
	history ScoreHistory,
	cfg config.Config,
	logger *logs.Logger,
	reg *metrics.Registry,
) *Assembler {
	return &Assembler{
		collectors: collectors,
		scorer:     scorer,
		detector:   detector,
		history:    history,
		cfg:        cfg,
		logger:     logger,
		metrics:    reg,
	}
}

// Assemble runs a full audit and always returns a well-formed report.
// Collector failures degrade to unavailable signals and surface as
// penalties and cannot-assess notes, never as an error. Cancelling ctx
// abandons in-flight probes; collectors never mutate state, so an
// abandoned audit has no side effects.
func (a *Assembler) Assemble(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout.AuditCeiling.Std())
	defer cancel()

	signals := a.collect(ctx, signal.Scope{})
	now := time.Now().UTC()
	prior := a.history.LatestScores(a.cfg.Stability.TrailingSnapshots)

	healthScore := a.scorer.Score(signals, now)
	issues, notes := a.detector.Detect(signals, now)
	governance, projected := a.scorer.Stability(healthScore, prior)

	a.metrics.Inc(metrics.AuditsTotal)

	return Report{
		HealthScore:  healthScore,
		RiskLevel:    a.scorer.Risk(healthScore),
		Issues:       issues,
		CannotAssess: notes,
		Stats: Stats{
			PendingAI:           availableCount(signals, signal.AIBacklog),
			VoteAnomalies:       availableCount(signals, signal.VoteAnomalies),
			StaleProfiles:       availableCount(signals, signal.StaleProfiles),
			GovernanceStability: governance,
			ProjectedStability:  projected,
			HealthDrift:         score.Drift(healthScore, prior),
			StateHealth:         a.stateHealth(ctx, now),
		},
		GeneratedAt: now,
	}
}

// collect fans out every collector concurrently. Each probe runs under
// its own timeout, so one stalled subsystem cannot hold the audit past
// the overall ceiling.
func (a *Assembler) collect(ctx context.Context, scope signal.Scope) signal.Set {
	results := make(chan signal.Signal, len(a.collectors))

	for _, c := range a.collectors {
		go func(c signal.Collector) {
			probeCtx, cancel := context.WithTimeout(ctx, a.cfg.Timeout.CollectorTimeout.Std())
			defer cancel()

			done := make(chan signal.Signal, 1)
			go func() { done <- c.Collect(probeCtx, scope) }()

			select {
			case sig := <-done:
				results <- sig
			case <-probeCtx.Done():
				// A misbehaving source may ignore its context; the
				// audit moves on and discards its late result.
				a.metrics.Inc(metrics.CollectorTimeoutsTotal)
				a.logger.Warn("assembler", "collector timed out: "+string(c.Name()))
				results <- signal.Unavailable(c.Name())
			}
		}(c)
	}

	set := make(signal.Set, len(a.collectors))
	for range a.collectors {
		sig := <-results
		if !sig.Available {
			a.metrics.Inc(metrics.CollectorFailuresTotal)
		}
		set[sig.Name] = sig
	}
	return set
}

// stateHealth re-runs the collectors scoped to each configured region
// and scores the regional signal set with the same scoring function.
func (a *Assembler) stateHealth(ctx context.Context, now time.Time) []StateHealth {
	if len(a.cfg.Regions) == 0 {
		return nil
	}

	out := make([]StateHealth, 0, len(a.cfg.Regions))
	for _, region := range a.cfg.Regions {
		scoped := a.collect(ctx, signal.Scope{State: region})
		out = append(out, StateHealth{
			State:       region,
			HealthScore: a.scorer.Score(scoped, now),
		})
	}
	return out
}

// availableCount reports a signal's count, or zero when the signal was
// unavailable (the gap is surfaced via cannot-assess, not fabricated).
func availableCount(signals signal.Set, name signal.Name) int {
	sig, ok := signals[name]
	if !ok || !sig.Available {
		return 0
	}
	return sig.Count
}
