package platform

import (
	"context"
	"errors"
	"sync/atomic"

	"civic-audit/internal/signal"
)

var errWarehouseDown = errors.New("warehouse unavailable")

// Warehouse aggregates the platform stores behind the relational-store
// view the audit engine probes (connectivity plus row counts for the
// core entities). The healthy flag allows outage drills without
// tearing down the backing stores.
type Warehouse struct {
	catalog *Catalog
	ledger  *Ledger
	claims  atomic.Int64
	healthy atomic.Bool
}

func NewWarehouse(catalog *Catalog, ledger *Ledger) *Warehouse {
	w := &Warehouse{catalog: catalog, ledger: ledger}
	w.healthy.Store(true)
	return w
}

// SetHealthy toggles simulated connectivity.
func (w *Warehouse) SetHealthy(healthy bool) {
	w.healthy.Store(healthy)
}

// AddClaims bumps the claim row count.
func (w *Warehouse) AddClaims(n int64) {
	w.claims.Add(n)
}

func (w *Warehouse) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !w.healthy.Load() {
		return errWarehouseDown
	}
	return nil
}

func (w *Warehouse) CountRows(ctx context.Context, entity string, scope signal.Scope) (int, error) {
	if err := w.Ping(ctx); err != nil {
		return 0, err
	}

	switch entity {
	case "profiles":
		return w.catalog.count(scope), nil
	case "votes":
		return w.ledger.count(scope), nil
	case "claims":
		return int(w.claims.Load()), nil
	default:
		return 0, errors.New("unknown entity: " + entity)
	}
}
