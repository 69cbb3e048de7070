package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/floreria-ops/internal/domain"
	"github.com/tu-usuario/floreria-ops/internal/domain/entity"
	"github.com/tu-usuario/floreria-ops/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

func (r *ClientRepo) Create(client *entity.Client) error {
	if client.ID == "" {
		client.ID = uuid.New().String()
	}
	query := `
		INSERT INTO clients (id, name, phone, address, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.Phone, client.Address, client.Notes,
		client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	query := `
		SELECT id, name, phone, address, notes, created_at, updated_at
		FROM clients WHERE id = $1`
	var c entity.Client
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Phone, &c.Address, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

func (r *ClientRepo) Update(client *entity.Client) error {
	query := `
		UPDATE clients SET name = $2, phone = $3, address = $4, notes = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.Phone, client.Address, client.Notes, client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	query := `
		SELECT id, name, phone, address, notes, created_at, updated_at
		FROM clients ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
