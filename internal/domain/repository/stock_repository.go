package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/floreria-ops/internal/domain/entity"
)

// CriticalStockResult es una fila del listado de stock crítico (stock + nombre del artículo).
type CriticalStockResult struct {
	ItemID            string
	Name              string
	Quantity          int64
	CriticalThreshold int64
	AverageUnitCost   decimal.Decimal
}

// StockRepository define el puerto para consultar/actualizar el stock por artículo.
// Usado dentro de transacciones para garantizar consistencia.
// Get/GetForUpdate devuelven (nil, nil) cuando el artículo no tiene fila de stock.
type StockRepository interface {
	Get(itemID string) (*entity.StockItem, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE) dentro de la tx.
	GetForUpdate(itemID string) (*entity.StockItem, error)
	Upsert(stock *entity.StockItem) error
	UpdateThreshold(itemID string, threshold int64) error
	ListCritical(limit, offset int) ([]CriticalStockResult, error)
}
