package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido. entregado y cancelado son terminales.
const (
	OrderStatusPendiente = "pendiente"
	OrderStatusEnArmado  = "en_armado"
	OrderStatusEntregado = "entregado"
	OrderStatusCancelado = "cancelado"
)

// IsValidOrderStatus informa si el valor es un estado conocido.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPendiente, OrderStatusEnArmado, OrderStatusEntregado, OrderStatusCancelado:
		return true
	}
	return false
}

// CanTransition valida la máquina de estados:
// pendiente → en_armado → entregado; pendiente|en_armado → cancelado.
func CanTransition(from, to string) bool {
	switch from {
	case OrderStatusPendiente:
		return to == OrderStatusEnArmado || to == OrderStatusCancelado
	case OrderStatusEnArmado:
		return to == OrderStatusEntregado || to == OrderStatusCancelado
	}
	// entregado y cancelado son terminales
	return false
}

// Order representa un pedido de cliente con sus líneas.
type Order struct {
	ID        string
	ClientID  string
	Status    string
	Total     decimal.Decimal
	Items     []OrderItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal informa si el pedido ya no admite transiciones.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusEntregado || o.Status == OrderStatusCancelado
}

// OrderItem es una línea de pedido. UnitCost queda congelado al crear el pedido
// (costo promedio del ledger en ese momento) y nunca se recalcula; de ahí sale el COGS.
// ItemID vacío = línea ad-hoc sin vínculo con el stock.
type OrderItem struct {
	ID       string
	OrderID  string
	ItemID   string // vacío para líneas ad-hoc
	Name     string
	Quantity int64
	Price    decimal.Decimal // precio de venta unitario
	UnitCost decimal.Decimal // costo congelado a la creación
}

// HasStockLink informa si la línea afecta al inventario.
func (i *OrderItem) HasStockLink() bool {
	return i.ItemID != ""
}
