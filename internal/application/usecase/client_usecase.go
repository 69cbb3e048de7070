package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/floreria-ops/internal/application/dto"
	"github.com/tu-usuario/floreria-ops/internal/domain"
	"github.com/tu-usuario/floreria-ops/internal/domain/entity"
	"github.com/tu-usuario/floreria-ops/internal/domain/repository"
)

// ClientUseCase CRUD de clientes (captura de datos simple).
type ClientUseCase struct {
	clientRepo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(clientRepo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{clientRepo: clientRepo}
}

// CreateClient crea un cliente.
func (uc *ClientUseCase) CreateClient(ctx context.Context, in dto.CreateClientRequest) (*entity.Client, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		Address:   in.Address,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return client, nil
}

// GetClient devuelve un cliente por ID.
func (uc *ClientUseCase) GetClient(ctx context.Context, id string) (*entity.Client, error) {
	client, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return client, nil
}

// UpdateClient reemplaza los datos de contacto del cliente.
func (uc *ClientUseCase) UpdateClient(ctx context.Context, id string, in dto.CreateClientRequest) (*entity.Client, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	client.Name = in.Name
	client.Phone = in.Phone
	client.Address = in.Address
	client.Notes = in.Notes
	client.UpdatedAt = time.Now()
	if err := uc.clientRepo.Update(client); err != nil {
		return nil, err
	}
	return client, nil
}

// ListClients lista clientes paginados.
func (uc *ClientUseCase) ListClients(ctx context.Context, limit, offset int) ([]*entity.Client, error) {
	return uc.clientRepo.List(limit, offset)
}
