package repository

import "github.com/tu-usuario/floreria-ops/internal/domain/entity"

// CatalogRepository define el puerto de persistencia del catálogo de artículos.
// El ledger lo consume en modo solo lectura.
type CatalogRepository interface {
	Create(item *entity.CatalogItem) error
	GetByID(id string) (*entity.CatalogItem, error)
	Update(item *entity.CatalogItem) error
	List(limit, offset int) ([]*entity.CatalogItem, error)
}
