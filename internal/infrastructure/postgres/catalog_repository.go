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

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo implementación de CatalogRepository sobre PostgreSQL (usable con pool o tx).
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// Create persiste un artículo del catálogo.
func (r *CatalogRepo) Create(item *entity.CatalogItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO catalog_items (id, name, kind, sale_price, package_size, shrinkage_units, declared_unit_cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Kind, item.SalePrice,
		item.PackageSize, item.ShrinkageUnits, item.DeclaredUnitCost,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert catalog item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID; (nil, nil) si no existe.
func (r *CatalogRepo) GetByID(id string) (*entity.CatalogItem, error) {
	query := `
		SELECT id, name, kind, sale_price, package_size, shrinkage_units, declared_unit_cost, created_at, updated_at
		FROM catalog_items WHERE id = $1`
	var item entity.CatalogItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&item.ID, &item.Name, &item.Kind, &item.SalePrice,
		&item.PackageSize, &item.ShrinkageUnits, &item.DeclaredUnitCost,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalog item: %w", err)
	}
	return &item, nil
}

// Update actualiza la definición de un artículo.
func (r *CatalogRepo) Update(item *entity.CatalogItem) error {
	query := `
		UPDATE catalog_items
		SET name = $2, sale_price = $3, package_size = $4, shrinkage_units = $5, declared_unit_cost = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.SalePrice,
		item.PackageSize, item.ShrinkageUnits, item.DeclaredUnitCost, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update catalog item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista el catálogo ordenado por nombre.
func (r *CatalogRepo) List(limit, offset int) ([]*entity.CatalogItem, error) {
	query := `
		SELECT id, name, kind, sale_price, package_size, shrinkage_units, declared_unit_cost, created_at, updated_at
		FROM catalog_items ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
	}
	defer rows.Close()
	var list []*entity.CatalogItem
	for rows.Next() {
		var item entity.CatalogItem
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Kind, &item.SalePrice,
			&item.PackageSize, &item.ShrinkageUnits, &item.DeclaredUnitCost,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}
