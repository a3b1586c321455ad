package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"civic-audit/internal/audit"
	"civic-audit/internal/config"
	"civic-audit/internal/issue"
	"civic-audit/internal/logs"
	"civic-audit/internal/metrics"
	"civic-audit/internal/score"
	"civic-audit/internal/signal"
	"civic-audit/internal/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCollector struct {
	sig signal.Signal
}

func (s *staticCollector) Name() signal.Name { return s.sig.Name }

func (s *staticCollector) Collect(_ context.Context, _ signal.Scope) signal.Signal {
	return s.sig
}

func newTestHandler(t *testing.T, snapStore snapshot.Store) *Handler {
	t.Helper()

	cfg := config.Default()
	logger := logs.NewLogger(100, logs.DEBUG)
	reg := metrics.NewRegistry()

	collectors := make([]signal.Collector, 0, len(signal.All))
	for _, name := range signal.All {
		sig := signal.Signal{Name: name, Available: true}
		if name == signal.RefreshJob || name == signal.EnrichmentJob {
			ran := time.Now().Add(-time.Hour)
			sig.LastRunAt = &ran
		}
		collectors = append(collectors, &staticCollector{sig: sig})
	}

	assembler := audit.NewAssembler(
		collectors,
		score.NewScorer(cfg),
		issue.NewDetector(cfg, logger),
		snapStore,
		cfg,
		logger,
		reg,
	)
	return NewHandler(assembler, snapStore, reg, logger)
}

func TestGetAudit_ReturnsFreshReport(t *testing.T) {
	handler := newTestHandler(t, snapshot.NewMemoryStore())

	req := httptest.NewRequest(http.MethodGet, "/admin/audit", nil)
	rr := httptest.NewRecorder()
	handler.GetAudit(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var report audit.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	assert.Equal(t, 100, report.HealthScore)
	assert.Equal(t, score.RiskLow, report.RiskLevel)
	assert.NotNil(t, report.Issues)
}

func TestGetSnapshots_NewestFirstWithLimit(t *testing.T) {
	store := snapshot.NewMemoryStore()
	for i, s := range []int{90, 80, 70} {
		require.NoError(t, store.Append(snapshot.Snapshot{
			ID:          string(rune('a' + i)),
			HealthScore: s,
			CreatedAt:   time.Now().Add(time.Duration(i) * time.Hour),
		}))
	}
	handler := newTestHandler(t, store)

	req := httptest.NewRequest(http.MethodGet, "/admin/snapshots?limit=2", nil)
	rr := httptest.NewRecorder()
	handler.GetSnapshots(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var snaps []snapshot.Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snaps))
	require.Len(t, snaps, 2)
	assert.Equal(t, 70, snaps[0].HealthScore)
	assert.Equal(t, 80, snaps[1].HealthScore)
}

func TestGetSnapshots_RejectsBadLimit(t *testing.T) {
	handler := newTestHandler(t, snapshot.NewMemoryStore())

	req := httptest.NewRequest(http.MethodGet, "/admin/snapshots?limit=nope", nil)
	rr := httptest.NewRecorder()
	handler.GetSnapshots(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t, snapshot.NewMemoryStore())
	mux := http.NewServeMux()
	h := RegisterRoutes(mux, handler, "")

	req := httptest.NewRequest(http.MethodPost, "/admin/audit", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
