package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML configs can use "12h" syntax.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped standard-library duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// ScoringPolicy holds the named deductions applied by the health scorer.
// All penalties are points subtracted from the 100-point baseline.
type ScoringPolicy struct {
	DatabaseDownPenalty    int `yaml:"database_down_penalty"`
	JobOverduePenalty      int `yaml:"job_overdue_penalty"`
	VectorIndexDownPenalty int `yaml:"vector_index_down_penalty"`

	// Vote anomalies: fixed penalty per flagged record, capped.
	AnomalyPenalty    int `yaml:"anomaly_penalty"`
	AnomalyPenaltyCap int `yaml:"anomaly_penalty_cap"`

	// AI enrichment backlog: scaled penalty above the threshold, capped.
	BacklogThreshold      int `yaml:"backlog_threshold"`
	BacklogPenaltyDivisor int `yaml:"backlog_penalty_divisor"`
	BacklogPenaltyCap     int `yaml:"backlog_penalty_cap"`

	// Stale profiles: scaled penalty above the threshold, capped.
	StaleThreshold      int `yaml:"stale_threshold"`
	StalePenaltyDivisor int `yaml:"stale_penalty_divisor"`
	StalePenaltyCap     int `yaml:"stale_penalty_cap"`
}

// RiskBands maps a health score onto a risk level.
// Scores below HighBelow are high risk, below MediumBelow medium,
// everything else low.
type RiskBands struct {
	HighBelow   int `yaml:"high_below"`
	MediumBelow int `yaml:"medium_below"`
}

// StabilityPolicy controls how the stability stats blend the current
// score with prior snapshot scores.
type StabilityPolicy struct {
	TrailingSnapshots int `yaml:"trailing_snapshots"` // prior scores considered
	CurrentWeight     int `yaml:"current_weight"`     // weight of the live score, out of 10
}

// SchedulePolicy defines the expected cadence of the platform's
// background jobs and the profile staleness window.
type SchedulePolicy struct {
	RefreshJobInterval Duration `yaml:"refresh_job_interval"`
	EnrichJobInterval  Duration `yaml:"enrich_job_interval"`
	StalenessWindow    Duration `yaml:"staleness_window"`
}

// TimeoutPolicy bounds audit latency.
type TimeoutPolicy struct {
	CollectorTimeout Duration `yaml:"collector_timeout"` // per probe
	AuditCeiling     Duration `yaml:"audit_ceiling"`     // whole audit
}

// RecorderPolicy controls the scheduled snapshot recorder.
type RecorderPolicy struct {
	Interval   Duration `yaml:"interval"`
	ArchiveURL string   `yaml:"archive_url"` // optional external mirror
}

type Config struct {
	Scoring   ScoringPolicy   `yaml:"scoring"`
	Bands     RiskBands       `yaml:"bands"`
	Stability StabilityPolicy `yaml:"stability"`
	Schedule  SchedulePolicy  `yaml:"schedule"`
	Timeout   TimeoutPolicy   `yaml:"timeout"`
	Recorder  RecorderPolicy  `yaml:"recorder"`

	// Regions enables the per-state health breakdown when non-empty.
	Regions []string `yaml:"regions"`

	AdminToken string `yaml:"admin_token"`
	ListenAddr string `yaml:"listen_addr"`
}

// Default returns the tuned baseline configuration. The exact weights
// are operational tuning knobs, not contractual values.
func Default() Config {
	return Config{
		Scoring: ScoringPolicy{
			DatabaseDownPenalty:    40,
			JobOverduePenalty:      10,
			VectorIndexDownPenalty: 10,
			AnomalyPenalty:         2,
			AnomalyPenaltyCap:      20,
			BacklogThreshold:       100,
			BacklogPenaltyDivisor:  20,
			BacklogPenaltyCap:      20,
			StaleThreshold:         50,
			StalePenaltyDivisor:    10,
			StalePenaltyCap:        15,
		},
		Bands: RiskBands{
			HighBelow:   40,
			MediumBelow: 70,
		},
		Stability: StabilityPolicy{
			TrailingSnapshots: 5,
			CurrentWeight:     7,
		},
		Schedule: SchedulePolicy{
			RefreshJobInterval: Duration(24 * time.Hour),
			EnrichJobInterval:  Duration(24 * time.Hour),
			StalenessWindow:    Duration(7 * 24 * time.Hour),
		},
		Timeout: TimeoutPolicy{
			CollectorTimeout: Duration(3 * time.Second),
			AuditCeiling:     Duration(10 * time.Second),
		},
		Recorder: RecorderPolicy{
			Interval: Duration(24 * time.Hour),
		},
		ListenAddr: ":8080",
	}
}

// Load reads a YAML config file over the defaults.
// A missing path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the scorer cannot operate on.
func (c Config) Validate() error {
	if c.Bands.HighBelow <= 0 || c.Bands.MediumBelow <= c.Bands.HighBelow {
		return errors.New("config: risk bands must satisfy 0 < high_below < medium_below")
	}
	if c.Bands.MediumBelow > 100 {
		return errors.New("config: medium_below must not exceed 100")
	}
	if c.Stability.CurrentWeight < 0 || c.Stability.CurrentWeight > 10 {
		return errors.New("config: current_weight must be between 0 and 10")
	}
	if c.Timeout.CollectorTimeout <= 0 || c.Timeout.AuditCeiling <= 0 {
		return errors.New("config: timeouts must be positive")
	}
	if c.Recorder.Interval <= 0 {
		return errors.New("config: recorder interval must be positive")
	}
	for _, p := range []int{
		c.Scoring.DatabaseDownPenalty,
		c.Scoring.JobOverduePenalty,
		c.Scoring.VectorIndexDownPenalty,
		c.Scoring.AnomalyPenalty,
	} {
		if p < 0 || p > 100 {
			return errors.New("config: penalties must be between 0 and 100")
		}
	}
	if c.Scoring.BacklogPenaltyDivisor <= 0 || c.Scoring.StalePenaltyDivisor <= 0 {
		return errors.New("config: penalty divisors must be positive")
	}
	return nil
}
