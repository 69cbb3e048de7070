package repository

import (
	"time"

	"github.com/tu-usuario/floreria-ops/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del kardex.
// Es append-only: Create es la única escritura; no existe update ni delete.
// Solo el ledger invoca Create, siempre dentro de la misma transacción que
// actualiza el stock.
type MovementRepository interface {
	Create(movement *entity.StockMovement) error
	// ListByItem devuelve el kardex de un artículo en orden ascendente por fecha,
	// con rango opcional y paginación (secuencia reiniciable).
	ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
