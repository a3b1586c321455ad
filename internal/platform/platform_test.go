package platform

import (
	"context"
	"testing"
	"time"

	"civic-audit/internal/signal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog() *Catalog {
	now := time.Now()
	catalog := NewCatalog()
	catalog.Put(Profile{ID: "p-1", State: "KA", LastRefreshedAt: now, Enriched: true})
	catalog.Put(Profile{ID: "p-2", State: "KA", LastRefreshedAt: now.Add(-48 * time.Hour), Enriched: false})
	catalog.Put(Profile{ID: "p-3", State: "MH", LastRefreshedAt: now.Add(-72 * time.Hour), Enriched: false})
	return catalog
}

func TestCatalog_PendingEnrichment(t *testing.T) {
	catalog := seedCatalog()

	n, err := catalog.PendingEnrichment(context.Background(), signal.Scope{})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = catalog.PendingEnrichment(context.Background(), signal.Scope{State: "MH"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCatalog_StaleCount(t *testing.T) {
	catalog := seedCatalog()

	n, err := catalog.StaleCount(context.Background(), 24*time.Hour, signal.Scope{})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = catalog.StaleCount(context.Background(), 100*time.Hour, signal.Scope{})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestLedger_AnomalyCount(t *testing.T) {
	ledger := NewLedger()
	ledger.Record(Vote{ID: "v-1", State: "KA"})
	ledger.Record(Vote{ID: "v-2", State: "KA", Anomalous: true})
	ledger.Record(Vote{ID: "v-3", State: "MH", Anomalous: true})

	n, err := ledger.AnomalyCount(context.Background(), signal.Scope{})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = ledger.AnomalyCount(context.Background(), signal.Scope{State: "KA"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBoard_LastSuccess(t *testing.T) {
	board := NewBoard()

	_, ok, err := board.LastSuccess(context.Background(), signal.JobDataRefresh)
	require.NoError(t, err)
	assert.False(t, ok)

	ran := time.Now().Add(-time.Hour)
	board.MarkSuccess(signal.JobDataRefresh, ran)

	got, ok, err := board.LastSuccess(context.Background(), signal.JobDataRefresh)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Equal(ran))
}

func TestWarehouse_CountRowsAndOutage(t *testing.T) {
	catalog := seedCatalog()
	ledger := NewLedger()
	ledger.Record(Vote{ID: "v-1", State: "KA"})

	warehouse := NewWarehouse(catalog, ledger)
	warehouse.AddClaims(9)

	n, err := warehouse.CountRows(context.Background(), "profiles", signal.Scope{})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = warehouse.CountRows(context.Background(), "votes", signal.Scope{State: "KA"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = warehouse.CountRows(context.Background(), "claims", signal.Scope{})
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	_, err = warehouse.CountRows(context.Background(), "unknown", signal.Scope{})
	assert.Error(t, err)

	warehouse.SetHealthy(false)
	assert.Error(t, warehouse.Ping(context.Background()))
	_, err = warehouse.CountRows(context.Background(), "profiles", signal.Scope{})
	assert.Error(t, err)
}

func TestCatalog_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := seedCatalog().PendingEnrichment(ctx, signal.Scope{})
	assert.Error(t, err)
}
