package repository

import (
	"time"

	"github.com/tu-usuario/floreria-ops/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia de pedidos (cabecera + líneas).
// Las líneas son inmutables después de la creación: el costo congelado
// (OrderItem.UnitCost) nunca se recalcula.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	List(limit, offset int) ([]*entity.Order, error)
	// ListByRange devuelve pedidos (con líneas) creados dentro del rango, para agregación financiera.
	ListByRange(from, to time.Time) ([]*entity.Order, error)
	UpdateStatus(id, status string) error
	// UpdateClient reasigna el cliente de la cabecera; no toca líneas ni ledger.
	UpdateClient(id, clientID string) error
}
