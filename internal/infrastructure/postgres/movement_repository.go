package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/floreria-ops/internal/domain/entity"
	"github.com/tu-usuario/floreria-ops/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del kardex sobre PostgreSQL (usable con pool o tx).
// La tabla es insert-only; no hay update ni delete.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste una entrada del kardex.
func (r *MovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, item_id, type, quantity_change, quantity_after, unit_cost, reference, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ItemID, movement.Type,
		movement.QuantityChange, movement.QuantityAfter, movement.UnitCost,
		movement.Reference, movement.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByItem devuelve el kardex de un artículo en orden ascendente por fecha,
// con rango opcional y paginación.
func (r *MovementRepo) ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, item_id, type, quantity_change, quantity_after, unit_cost, reference, created_at, created_by
		FROM stock_movements WHERE item_id = $1`
	args := []any{itemID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at ASC, id ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements by item: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var reference *string
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.ItemID, &m.Type, &m.QuantityChange, &m.QuantityAfter,
			&m.UnitCost, &reference, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if reference != nil {
			m.Reference = *reference
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
