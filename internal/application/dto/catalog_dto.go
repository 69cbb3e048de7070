package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	Name              string          `json:"name"`
	Kind              string          `json:"kind"` // flower | product
	SalePrice         decimal.Decimal `json:"sale_price"`
	PackageSize       int64           `json:"package_size,omitempty"`
	ShrinkageUnits    int64           `json:"shrinkage_units,omitempty"`
	DeclaredUnitCost  decimal.Decimal `json:"declared_unit_cost,omitempty"`
	CriticalThreshold int64           `json:"critical_threshold,omitempty"`
}

// UpdateItemRequest body para PUT /api/items/:id.
type UpdateItemRequest struct {
	Name              string           `json:"name,omitempty"`
	SalePrice         *decimal.Decimal `json:"sale_price,omitempty"`
	PackageSize       *int64           `json:"package_size,omitempty"`
	ShrinkageUnits    *int64           `json:"shrinkage_units,omitempty"`
	DeclaredUnitCost  *decimal.Decimal `json:"declared_unit_cost,omitempty"`
	CriticalThreshold *int64           `json:"critical_threshold,omitempty"`
}

// CatalogItemDTO artículo del catálogo en respuestas.
// effective_units es nil cuando el rendimiento por paquete es "N/A"
// (merma >= paquete o artículo sin paquete).
type CatalogItemDTO struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Kind             string          `json:"kind"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	PackageSize      int64           `json:"package_size,omitempty"`
	ShrinkageUnits   int64           `json:"shrinkage_units,omitempty"`
	DeclaredUnitCost decimal.Decimal `json:"declared_unit_cost,omitempty"`
	EffectiveUnits   *int64          `json:"effective_units,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// CreateExpenseRequest body para POST /api/expenses.
type CreateExpenseRequest struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Period string          `json:"period"` // YYYY-MM
}
