// Package cache implementa el segundo nivel del camino de lectura de stock:
// el último valor conocido por artículo, usado solo cuando el almacén
// autoritativo no responde y siempre marcado como stale para el caller.
package cache

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CachedStock último valor conocido de stock de un artículo.
type CachedStock struct {
	Quantity        int64           `json:"quantity"`
	AverageUnitCost decimal.Decimal `json:"average_unit_cost"`
	CachedAt        time.Time       `json:"cached_at"`
}

// StockCache puerto de la caché de último valor conocido.
type StockCache interface {
	Get(ctx context.Context, itemID string) (*CachedStock, bool, error)
	Set(ctx context.Context, itemID string, value *CachedStock, ttl time.Duration) error
}

// NoopStockCache deshabilita la caché (sin Redis configurado): las lecturas
// van siempre al almacén autoritativo y no hay fallback.
type NoopStockCache struct{}

func (NoopStockCache) Get(_ context.Context, _ string) (*CachedStock, bool, error) {
	return nil, false, nil
}

func (NoopStockCache) Set(_ context.Context, _ string, _ *CachedStock, _ time.Duration) error {
	return nil
}
