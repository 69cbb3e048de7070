package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem representa el stock actual de un artículo (1:1 con CatalogItem).
// Quantity es entera (tallos/unidades discretas) y nunca negativa;
// AverageUnitCost es el costo promedio ponderado y solo cambia en compras con costo.
type StockItem struct {
	ItemID            string
	Quantity          int64
	AverageUnitCost   decimal.Decimal
	CriticalThreshold int64
	UpdatedAt         time.Time
}
