package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/floreria-ops/internal/domain/repository"
)

// OrderTxRunner ejecuta una función dentro de una transacción con los repos
// de stock, kardex y pedidos atados a esa tx. Crear o cancelar un pedido y
// sus movimientos de stock es una sola unidad atómica.
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.MovementRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// StockLedger operaciones del ledger que la liquidación de pedidos ejecuta
// dentro de su propia transacción. Implementado por ledger.UseCase.
type StockLedger interface {
	RegisterSaleInTx(
		stockRepo repository.StockRepository,
		movRepo repository.MovementRepository,
		itemID string,
		quantity int64,
		unitCost decimal.Decimal,
		reference, actorID string,
		now time.Time,
	) error
	RegisterCancellationInTx(
		stockRepo repository.StockRepository,
		movRepo repository.MovementRepository,
		itemID string,
		quantity int64,
		unitCost decimal.Decimal,
		reference, actorID string,
		now time.Time,
	) error
}
