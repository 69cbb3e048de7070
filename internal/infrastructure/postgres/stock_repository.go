package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/floreria-ops/internal/domain"
	"github.com/tu-usuario/floreria-ops/internal/domain/entity"
	"github.com/tu-usuario/floreria-ops/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `item_id, quantity, average_unit_cost, critical_threshold, updated_at`

func scanStock(row pgx.Row) (*entity.StockItem, error) {
	var s entity.StockItem
	err := row.Scan(&s.ItemID, &s.Quantity, &s.AverageUnitCost, &s.CriticalThreshold, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Get obtiene el stock actual de un artículo; (nil, nil) si no hay fila.
func (r *StockRepo) Get(itemID string) (*entity.StockItem, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_items WHERE item_id = $1`
	s, err := scanStock(r.q.QueryRow(context.Background(), query, itemID))
	if err != nil {
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE) para
// serializar las actualizaciones por artículo dentro de la tx.
func (r *StockRepo) GetForUpdate(itemID string) (*entity.StockItem, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_items WHERE item_id = $1 FOR UPDATE`
	s, err := scanStock(r.q.QueryRow(context.Background(), query, itemID))
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return s, nil
}

// Upsert inserta o actualiza la fila de stock de un artículo.
func (r *StockRepo) Upsert(stock *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (item_id, quantity, average_unit_cost, critical_threshold, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (item_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, average_unit_cost = EXCLUDED.average_unit_cost, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		stock.ItemID, stock.Quantity, stock.AverageUnitCost, stock.CriticalThreshold,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// UpdateThreshold actualiza el umbral crítico sin tocar cantidad ni costo.
func (r *StockRepo) UpdateThreshold(itemID string, threshold int64) error {
	query := `UPDATE stock_items SET critical_threshold = $2, updated_at = now() WHERE item_id = $1`
	tag, err := r.q.Exec(context.Background(), query, itemID, threshold)
	if err != nil {
		return fmt.Errorf("update threshold: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListCritical lista artículos en o por debajo de su umbral crítico.
func (r *StockRepo) ListCritical(limit, offset int) ([]repository.CriticalStockResult, error) {
	query := `
		SELECT s.item_id, c.name, s.quantity, s.critical_threshold, s.average_unit_cost
		FROM stock_items s
		JOIN catalog_items c ON c.id = s.item_id
		WHERE s.critical_threshold > 0 AND s.quantity <= s.critical_threshold
		ORDER BY s.quantity ASC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list critical stock: %w", err)
	}
	defer rows.Close()
	var list []repository.CriticalStockResult
	for rows.Next() {
		var row repository.CriticalStockResult
		if err := rows.Scan(&row.ItemID, &row.Name, &row.Quantity, &row.CriticalThreshold, &row.AverageUnitCost); err != nil {
			return nil, fmt.Errorf("scan critical stock: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
