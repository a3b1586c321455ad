package snapshot

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"civic-audit/internal/logs"
	"civic-audit/internal/metrics"
)

// Forwarder mirrors freshly recorded snapshots to an external archive
// endpoint. Forwarding is fire-and-forget: a failed mirror is logged
// and counted but never blocks or fails the recorder, and the local
// store remains the source of truth.
type Forwarder struct {
	archiveURL string
	client     *http.Client
	logger     *logs.Logger
	metrics    *metrics.Registry
}

func NewForwarder(
	archiveURL string,
	logger *logs.Logger,
	reg *metrics.Registry,
) *Forwarder {
	return &Forwarder{
		archiveURL: archiveURL,
		client:     &http.Client{Timeout: 5 * time.Second},
		logger:     logger,
		metrics:    reg,
	}
}

// Forward posts one snapshot to the archive.
func (f *Forwarder) Forward(snap Snapshot) {
	body, err := json.Marshal(snap)
	if err != nil {
		f.metrics.Inc(metrics.ArchiveForwardFailuresTotal)
		f.logger.Error("forwarder", "failed to marshal snapshot "+snap.ID)
		return
	}

	resp, err := f.client.Post(f.archiveURL, "application/json", bytes.NewReader(body))
	if err != nil {
		f.metrics.Inc(metrics.ArchiveForwardFailuresTotal)
		f.logger.Warn("forwarder", "archive unreachable: "+err.Error())
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.metrics.Inc(metrics.ArchiveForwardFailuresTotal)
		f.logger.Warn("forwarder", "unexpected archive response for snapshot "+snap.ID+": "+resp.Status)
		return
	}

	f.metrics.Inc(metrics.ArchiveForwardsTotal)
	f.logger.Debug("forwarder", "snapshot "+snap.ID+" mirrored to archive")
}
