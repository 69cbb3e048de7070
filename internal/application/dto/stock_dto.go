package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/stock/movements.
// quantity es la magnitud: siempre positiva salvo ADJUSTMENT, que admite signo.
// is_package solo aplica a flores: quantity pasa a ser cantidad de paquetes y
// package_cost (si viene) es el costo por paquete.
type RegisterMovementRequest struct {
	ItemID      string           `json:"item_id"`
	Type        string           `json:"type"` // PURCHASE, SALE, SHRINKAGE, ADJUSTMENT
	Quantity    int64            `json:"quantity"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
	PackageCost *decimal.Decimal `json:"package_cost,omitempty"`
	IsPackage   bool             `json:"is_package,omitempty"`
	Reference   string           `json:"reference,omitempty"`
}

// BatchMovementRequest body para POST /api/stock/movements/batch.
// La secuencia completa se aplica todo-o-nada.
type BatchMovementRequest struct {
	Movements []RegisterMovementRequest `json:"movements"`
}

// StockResponse estado actual de stock de un artículo.
// stale=true indica lectura del último valor conocido (caché) porque el
// almacén autoritativo no respondió.
type StockResponse struct {
	ItemID          string          `json:"item_id"`
	Quantity        int64           `json:"quantity"`
	AverageUnitCost decimal.Decimal `json:"average_unit_cost"`
	Stale           bool            `json:"stale"`
}

// KardexEntryDTO una entrada del kardex en respuestas de historial.
type KardexEntryDTO struct {
	ID             string           `json:"id"`
	Type           string           `json:"type"`
	QuantityChange int64            `json:"quantity_change"`
	QuantityAfter  int64            `json:"quantity_after"`
	UnitCost       *decimal.Decimal `json:"unit_cost,omitempty"`
	Reference      string           `json:"reference,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// CriticalStockDTO fila del listado de stock crítico.
type CriticalStockDTO struct {
	ItemID            string          `json:"item_id"`
	Name              string          `json:"name"`
	Quantity          int64           `json:"quantity"`
	CriticalThreshold int64           `json:"critical_threshold"`
	AverageUnitCost   decimal.Decimal `json:"average_unit_cost"`
}
