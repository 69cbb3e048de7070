package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/floreria-ops/internal/domain"
	"github.com/tu-usuario/floreria-ops/internal/domain/entity"
	"github.com/tu-usuario/floreria-ops/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste cabecera y líneas del pedido.
func (r *OrderRepo) Create(order *entity.Order) error {
	ctx := context.Background()
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	headerQuery := `
		INSERT INTO orders (id, client_id, status, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	clientID := (*string)(nil)
	if order.ClientID != "" {
		clientID = &order.ClientID
	}
	_, err := r.q.Exec(ctx, headerQuery,
		order.ID, clientID, order.Status, order.Total, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, item_id, name, quantity, price, unit_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i := range order.Items {
		line := &order.Items[i]
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		line.OrderID = order.ID
		itemID := (*string)(nil)
		if line.ItemID != "" {
			itemID = &line.ItemID
		}
		if _, err := r.q.Exec(ctx, itemQuery,
			line.ID, line.OrderID, itemID, line.Name, line.Quantity, line.Price, line.UnitCost,
		); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el pedido con sus líneas; (nil, nil) si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	ctx := context.Background()
	query := `
		SELECT id, client_id, status, total, created_at, updated_at
		FROM orders WHERE id = $1`
	order, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, nil
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// List lista pedidos recientes primero, con sus líneas.
func (r *OrderRepo) List(limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT id, client_id, status, total, created_at, updated_at
		FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryOrders(query, limit, offset)
}

// ListByRange lista pedidos creados dentro del rango [from, to], con sus líneas.
func (r *OrderRepo) ListByRange(from, to time.Time) ([]*entity.Order, error) {
	query := `
		SELECT id, client_id, status, total, created_at, updated_at
		FROM orders WHERE created_at >= $1 AND created_at <= $2
		ORDER BY created_at ASC`
	return r.queryOrders(query, from, to)
}

// UpdateStatus actualiza el estado del pedido.
func (r *OrderRepo) UpdateStatus(id, status string) error {
	query := `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateClient reasigna el cliente del pedido (vacío lo desasocia).
func (r *OrderRepo) UpdateClient(id, clientID string) error {
	query := `UPDATE orders SET client_id = $2, updated_at = now() WHERE id = $1`
	arg := (*string)(nil)
	if clientID != "" {
		arg = &clientID
	}
	tag, err := r.q.Exec(context.Background(), query, id, arg)
	if err != nil {
		return fmt.Errorf("update order client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var clientID *string
	err := row.Scan(&o.ID, &clientID, &o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if clientID != nil {
		o.ClientID = *clientID
	}
	return &o, nil
}

func (r *OrderRepo) queryOrders(query string, args ...any) ([]*entity.Order, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		var clientID *string
		if err := rows.Scan(&o.ID, &clientID, &o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if clientID != nil {
			o.ClientID = *clientID
		}
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		if err := r.loadItems(ctx, o); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *OrderRepo) loadItems(ctx context.Context, order *entity.Order) error {
	query := `
		SELECT id, order_id, item_id, name, quantity, price, unit_cost
		FROM order_items WHERE order_id = $1 ORDER BY name`
	rows, err := r.q.Query(ctx, query, order.ID)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var line entity.OrderItem
		var itemID *string
		if err := rows.Scan(&line.ID, &line.OrderID, &itemID, &line.Name,
			&line.Quantity, &line.Price, &line.UnitCost); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if itemID != nil {
			line.ItemID = *itemID
		}
		order.Items = append(order.Items, line)
	}
	return rows.Err()
}
