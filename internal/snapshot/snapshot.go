package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"civic-audit/internal/audit"
	"civic-audit/internal/score"
)

// Snapshot is a permanent historical fact: one audit report condensed
// to its score, risk level, and a tamper-evident digest. Snapshots are
// never updated or deleted after creation.
type Snapshot struct {
	ID          string          `json:"id"`
	Hash        string          `json:"hash"`
	HealthScore int             `json:"healthScore"`
	RiskLevel   score.RiskLevel `json:"riskLevel"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Hash returns the content-addressed SHA-256 digest of a report.
// Serialization follows the report's fixed JSON field order, so the
// same report contents always reproduce the same digest and any field
// change produces a different one.
func Hash(r audit.Report) (string, error) {
	canonical, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
