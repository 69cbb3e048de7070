package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/floreria-ops/internal/application/ledger"
	"github.com/tu-usuario/floreria-ops/internal/application/orders"
	"github.com/tu-usuario/floreria-ops/internal/application/usecase"
	"github.com/tu-usuario/floreria-ops/internal/domain/repository"
)

// Ensure TxRunner implements the application-level runners.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ orders.OrderTxRunner = (*TxRunner)(nil)
var _ usecase.CatalogTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL:
// repos atados a la tx, Commit si todo ok, Rollback si algo falla.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run transacción del ledger: stock + kardex en la misma unidad atómica.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockRepository(tx), NewMovementRepository(tx)); err != nil {
		return mapTxError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapTxError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// RunOrder transacción de liquidación de pedidos: pedido + movimientos de
// stock todo-o-nada.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.MovementRepository,
	orderRepo repository.OrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockRepository(tx), NewMovementRepository(tx), NewOrderRepository(tx)); err != nil {
		return mapTxError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapTxError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// RunCatalog transacción de alta de catálogo: artículo + fila de stock en cero.
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(
	catalogRepo repository.CatalogRepository,
	stockRepo repository.StockRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCatalogRepository(tx), NewStockRepository(tx)); err != nil {
		return mapTxError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapTxError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}
