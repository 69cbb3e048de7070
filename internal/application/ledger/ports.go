package ledger

import (
	"context"

	"github.com/tu-usuario/floreria-ops/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que stock y kardex se actualicen
// en la misma unidad atómica: ningún observador ve uno sin el otro.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.MovementRepository,
	) error) error
}
