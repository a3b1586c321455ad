package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"civic-audit/internal/audit"
	"civic-audit/internal/logs"
	"civic-audit/internal/metrics"
	"civic-audit/internal/snapshot"
)

const defaultSnapshotLimit = 30

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	assembler *audit.Assembler
	snapshots snapshot.Store
	metrics   *metrics.Registry
	logger    *logs.Logger
}

func NewHandler(
	assembler *audit.Assembler,
	snapshots snapshot.Store,
	reg *metrics.Registry,
	logger *logs.Logger,
) *Handler {
	return &Handler{
		assembler: assembler,
		snapshots: snapshots,
		metrics:   reg,
		logger:    logger,
	}
}

/* ---------------- GET /admin/audit ---------------- */

// GetAudit computes a fresh report per call. The assembler degrades
// gracefully on collector failures, so this handler never returns an
// error response.
func (h *Handler) GetAudit(w http.ResponseWriter, r *http.Request) {
	report := h.assembler.Assemble(r.Context())

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(report)
}

/* ---------------- GET /admin/snapshots ---------------- */

func (h *Handler) GetSnapshots(w http.ResponseWriter, r *http.Request) {
	limit := defaultSnapshotLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.snapshots.Recent(limit))
}

/* ---------------- GET /admin/logs ---------------- */

func (h *Handler) GetLogs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.logger.GetLast(100))
}

/* ---------------- GET /metrics ---------------- */

func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.metrics.Snapshot())
}
