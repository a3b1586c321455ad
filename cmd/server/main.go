package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"civic-audit/internal/api"
	"civic-audit/internal/audit"
	"civic-audit/internal/config"
	"civic-audit/internal/issue"
	"civic-audit/internal/logs"
	"civic-audit/internal/metrics"
	"civic-audit/internal/platform"
	"civic-audit/internal/score"
	"civic-audit/internal/signal"
	"civic-audit/internal/snapshot"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	vectorURL := flag.String("vector-url", "http://localhost:6333", "vector index base URL")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	// Root context
	ctx := context.Background()

	// Logger + metrics
	logger := logs.NewLogger(1000, logs.DEBUG)
	metricsRegistry := metrics.NewRegistry()

	// Platform stores (the external collaborators, in-memory here)
	catalog := platform.NewCatalog()
	ledger := platform.NewLedger()
	board := platform.NewBoard()
	warehouse := platform.NewWarehouse(catalog, ledger)

	seed(catalog, ledger, board, warehouse)

	// Collectors
	vectorIndex := signal.NewHTTPVectorIndex(*vectorURL, cfg.Timeout.CollectorTimeout.Std())
	collectors := []signal.Collector{
		signal.NewDatabaseCollector(warehouse),
		signal.NewRefreshJobCollector(board),
		signal.NewEnrichmentJobCollector(board),
		signal.NewBacklogCollector(catalog),
		signal.NewStaleCollector(catalog, cfg.Schedule.StalenessWindow.Std()),
		signal.NewAnomalyCollector(ledger),
		signal.NewVectorCollector(vectorIndex),
	}

	// Audit engine
	snapStore := snapshot.NewMemoryStore()
	scorer := score.NewScorer(cfg)
	detector := issue.NewDetector(cfg, logger)
	assembler := audit.NewAssembler(
		collectors,
		scorer,
		detector,
		snapStore,
		cfg,
		logger,
		metricsRegistry,
	)

	// Snapshot recorder
	var forwarder *snapshot.Forwarder
	if cfg.Recorder.ArchiveURL != "" {
		forwarder = snapshot.NewForwarder(cfg.Recorder.ArchiveURL, logger, metricsRegistry)
	}
	recorder := snapshot.NewRecorder(
		assembler,
		snapStore,
		cfg.Recorder.Interval.Std(),
		logger,
		metricsRegistry,
		forwarder,
	)
	go recorder.Start(ctx)

	// API
	handler := api.NewHandler(assembler, snapStore, metricsRegistry, logger)
	mux := http.NewServeMux()
	httpHandler := api.RegisterRoutes(mux, handler, cfg.AdminToken)

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: httpHandler,
	}

	logger.Info("server", "listening on "+cfg.ListenAddr)

	if err := server.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

// seed loads a handful of demo records so a fresh binary produces a
// meaningful first audit.
func seed(
	catalog *platform.Catalog,
	ledger *platform.Ledger,
	board *platform.Board,
	warehouse *platform.Warehouse,
) {
	now := time.Now()

	catalog.Put(platform.Profile{
		ID: "p-1", State: "KA", LastRefreshedAt: now.Add(-2 * time.Hour), Enriched: true,
	})
	catalog.Put(platform.Profile{
		ID: "p-2", State: "MH", LastRefreshedAt: now.Add(-12 * time.Hour), Enriched: false,
	})
	catalog.Put(platform.Profile{
		ID: "p-3", State: "KA", LastRefreshedAt: now.Add(-30 * 24 * time.Hour), Enriched: true,
	})

	ledger.Record(platform.Vote{
		ID: "v-1", ProfileID: "p-1", State: "KA", CastAt: now.Add(-time.Hour),
	})
	ledger.Record(platform.Vote{
		ID: "v-2", ProfileID: "p-2", State: "MH", Anomalous: true, CastAt: now.Add(-time.Minute),
	})

	board.MarkSuccess(signal.JobDataRefresh, now.Add(-6*time.Hour))
	board.MarkSuccess(signal.JobAIEnrichment, now.Add(-8*time.Hour))

	warehouse.AddClaims(42)
}
