package api

import "net/http"

func RegisterRoutes(mux *http.ServeMux, h *Handler, adminToken string) http.Handler {
	// Admin read APIs
	mux.HandleFunc("/admin/audit", getOnly(h.GetAudit))
	mux.HandleFunc("/admin/snapshots", getOnly(h.GetSnapshots))
	mux.HandleFunc("/admin/logs", getOnly(h.GetLogs))

	// Observability APIs
	mux.HandleFunc("/metrics", getOnly(h.GetMetrics))

	// Middlewares
	return Chain(
		mux,
		RecoveryMiddleware,
		LoggingMiddleware,
		AdminAuthMiddleware(adminToken),
	)
}

func getOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}
