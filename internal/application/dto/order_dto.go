package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de pedido. item_id vacío = línea ad-hoc sin vínculo
// con el stock; en ese caso name es obligatorio y unit_cost (opcional) se
// congela tal cual, con 0 por defecto.
type OrderItemRequest struct {
	ItemID   string           `json:"item_id,omitempty"`
	Name     string           `json:"name,omitempty"`
	Quantity int64            `json:"quantity"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	ClientID string             `json:"client_id"`
	Items    []OrderItemRequest `json:"items"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderRequest body para PUT /api/orders/:id (campos no-estado; no toca el ledger).
type UpdateOrderRequest struct {
	ClientID string `json:"client_id"`
}

// OrderItemDTO línea de pedido en respuestas. unit_cost es el costo congelado.
type OrderItemDTO struct {
	ID       string          `json:"id"`
	ItemID   string          `json:"item_id,omitempty"`
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// OrderDTO pedido completo en respuestas.
type OrderDTO struct {
	ID        string          `json:"id"`
	ClientID  string          `json:"client_id"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	Items     []OrderItemDTO  `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
