// Package costing implementa el motor de costeo (servicio de dominio, puro y sin estado):
// rendimiento efectivo por paquete, conversión paquete→unidad y costo promedio ponderado.
package costing

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/floreria-ops/internal/domain/entity"
)

// EffectiveUnitsPerPackage devuelve los tallos aprovechables por paquete
// (PackageSize - ShrinkageUnits). ok=false cuando el rendimiento es <= 0 o el
// artículo no es una flor: el dato se muestra como "N/A", no es un error, y
// nunca bloquea el registro físico de inventario.
func EffectiveUnitsPerPackage(item *entity.CatalogItem) (int64, bool) {
	if item.Kind != entity.ItemKindFlower {
		return 0, false
	}
	yield := item.PackageSize - item.ShrinkageUnits
	if yield <= 0 {
		return 0, false
	}
	return yield, true
}

// PackageUnitCost convierte el costo de un paquete a costo por tallo:
// packageCost / (PackageSize - ShrinkageUnits). ok=false si el rendimiento es N/A.
func PackageUnitCost(item *entity.CatalogItem, packageCost decimal.Decimal) (decimal.Decimal, bool) {
	yield, ok := EffectiveUnitsPerPackage(item)
	if !ok {
		return decimal.Zero, false
	}
	return packageCost.Div(decimal.NewFromInt(yield)), true
}

// UnitCost devuelve el costo unitario de referencia del catálogo:
// flor → costo de paquete prorrateado por el rendimiento efectivo;
// producto → costo unitario declarado, directo.
func UnitCost(item *entity.CatalogItem, packageCost decimal.Decimal) (decimal.Decimal, bool) {
	if item.Kind == entity.ItemKindProduct {
		return item.DeclaredUnitCost, true
	}
	return PackageUnitCost(item, packageCost)
}

// WeightedAverage recalcula el costo promedio ponderado tras una compra:
// NuevoCosto = ((StockActual*CostoActual) + (CantEntrada*CostoEntrada)) / (StockActual + CantEntrada).
// Con stock en cero el promedio pasa a ser exactamente el costo entrante.
func WeightedAverage(oldQty int64, oldAvg decimal.Decimal, incomingQty int64, incomingCost decimal.Decimal) decimal.Decimal {
	if oldQty <= 0 {
		return incomingCost
	}
	total := oldQty + incomingQty
	if total <= 0 {
		return decimal.Zero
	}
	num := decimal.NewFromInt(oldQty).Mul(oldAvg).
		Add(decimal.NewFromInt(incomingQty).Mul(incomingCost))
	return num.Div(decimal.NewFromInt(total))
}
