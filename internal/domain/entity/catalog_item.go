package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de artículo. El tipo es un discriminante explícito del catálogo;
// nunca se infiere del texto del ID.
const (
	ItemKindFlower  = "flower"  // flor: se compra por paquete, se vende por tallo
	ItemKindProduct = "product" // producto: se compra y se vende por unidad
)

// CatalogItem representa la definición estática de un artículo del catálogo.
// Solo lectura para el ledger de stock.
type CatalogItem struct {
	ID               string
	Name             string
	Kind             string          // flower | product
	SalePrice        decimal.Decimal // precio de venta por unidad/tallo
	PackageSize      int64           // solo flower: tallos por paquete
	ShrinkageUnits   int64           // solo flower: merma (tallos perdidos por paquete)
	DeclaredUnitCost decimal.Decimal // solo product: costo unitario declarado
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsValidKind informa si el valor es un tipo de artículo conocido.
func IsValidKind(kind string) bool {
	return kind == ItemKindFlower || kind == ItemKindProduct
}
