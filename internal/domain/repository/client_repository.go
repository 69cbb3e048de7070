package repository

import "github.com/tu-usuario/floreria-ops/internal/domain/entity"

// ClientRepository define el puerto de persistencia para clientes.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	Update(client *entity.Client) error
	List(limit, offset int) ([]*entity.Client, error)
}
