package issue

import (
	"sort"
	"time"

	"civic-audit/internal/config"
	"civic-audit/internal/logs"
	"civic-audit/internal/signal"
)

// Detector evaluates the rule set over one audit's signals.
type Detector struct {
	cfg    config.Config
	logger *logs.Logger
	rules  []Rule
}

func NewDetector(cfg config.Config, logger *logs.Logger) *Detector {
	return &Detector{
		cfg:    cfg,
		logger: logger,
		rules: []Rule{
			DatabaseRule,
			RefreshJobRule,
			EnrichmentJobRule,
			BacklogRule,
			StaleProfilesRule,
			VoteAnomaliesRule,
			VectorIndexRule,
		},
	}
}

// Detect returns triggered issues sorted severity-descending, plus the
// cannot-assess notes for signals that could not be evaluated. The
// sort is stable over a fixed rule order, so output is deterministic.
func (d *Detector) Detect(signals signal.Set, now time.Time) ([]Issue, []string) {
	issues := []Issue{}
	var notes []string

	for _, rule := range d.rules {
		result := rule(signals, d.cfg, now)

		if result.CannotAssess != "" {
			notes = append(notes, result.CannotAssess)
			d.logger.Warn("detector", result.CannotAssess)
			continue
		}
		if result.Triggered {
			issues = append(issues, result.Issue)
		}
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Severity.Rank() > issues[j].Severity.Rank()
	})
	return issues, notes
}
