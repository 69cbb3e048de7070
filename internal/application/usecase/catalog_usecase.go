package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/floreria-ops/internal/application/dto"
	"github.com/tu-usuario/floreria-ops/internal/domain"
	"github.com/tu-usuario/floreria-ops/internal/domain/costing"
	"github.com/tu-usuario/floreria-ops/internal/domain/entity"
	"github.com/tu-usuario/floreria-ops/internal/domain/repository"
)

// CatalogTxRunner transacción para crear un artículo junto a su fila de stock
// en cero (el ciclo de vida del StockItem nace con el CatalogItem).
type CatalogTxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		catalogRepo repository.CatalogRepository,
		stockRepo repository.StockRepository,
	) error) error
}

// CatalogUseCase CRUD del catálogo de artículos.
type CatalogUseCase struct {
	txRunner    CatalogTxRunner
	catalogRepo repository.CatalogRepository
	stockRepo   repository.StockRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(txRunner CatalogTxRunner, catalogRepo repository.CatalogRepository, stockRepo repository.StockRepository) *CatalogUseCase {
	return &CatalogUseCase{txRunner: txRunner, catalogRepo: catalogRepo, stockRepo: stockRepo}
}

// CreateItem crea el artículo y su stock inicial (cantidad 0, costo 0) en una
// sola transacción.
func (uc *CatalogUseCase) CreateItem(ctx context.Context, in dto.CreateItemRequest) (*entity.CatalogItem, error) {
	if in.Name == "" || !entity.IsValidKind(in.Kind) {
		return nil, domain.ErrInvalidInput
	}
	if in.SalePrice.IsNegative() || in.DeclaredUnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.PackageSize < 0 || in.ShrinkageUnits < 0 || in.CriticalThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	item := &entity.CatalogItem{
		ID:               uuid.New().String(),
		Name:             in.Name,
		Kind:             in.Kind,
		SalePrice:        in.SalePrice,
		PackageSize:      in.PackageSize,
		ShrinkageUnits:   in.ShrinkageUnits,
		DeclaredUnitCost: in.DeclaredUnitCost,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	err := uc.txRunner.RunCatalog(ctx, func(catalogRepo repository.CatalogRepository, stockRepo repository.StockRepository) error {
		if err := catalogRepo.Create(item); err != nil {
			return err
		}
		return stockRepo.Upsert(&entity.StockItem{
			ItemID:            item.ID,
			Quantity:          0,
			AverageUnitCost:   decimal.Zero,
			CriticalThreshold: in.CriticalThreshold,
			UpdatedAt:         now,
		})
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem devuelve un artículo por ID.
func (uc *CatalogUseCase) GetItem(ctx context.Context, id string) (*entity.CatalogItem, error) {
	item, err := uc.catalogRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// ListItems lista el catálogo paginado.
func (uc *CatalogUseCase) ListItems(ctx context.Context, limit, offset int) ([]*entity.CatalogItem, error) {
	return uc.catalogRepo.List(limit, offset)
}

// UpdateItem actualiza la definición del artículo. El tipo (Kind) es inmutable
// y el costo promedio del ledger no se toca: solo lo mueven las compras.
func (uc *CatalogUseCase) UpdateItem(ctx context.Context, id string, in dto.UpdateItemRequest) (*entity.CatalogItem, error) {
	item, err := uc.catalogRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		item.Name = in.Name
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.SalePrice = *in.SalePrice
	}
	if in.PackageSize != nil {
		if *in.PackageSize < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.PackageSize = *in.PackageSize
	}
	if in.ShrinkageUnits != nil {
		if *in.ShrinkageUnits < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.ShrinkageUnits = *in.ShrinkageUnits
	}
	if in.DeclaredUnitCost != nil {
		if in.DeclaredUnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.DeclaredUnitCost = *in.DeclaredUnitCost
	}
	item.UpdatedAt = time.Now()
	if err := uc.catalogRepo.Update(item); err != nil {
		return nil, err
	}
	if in.CriticalThreshold != nil {
		if *in.CriticalThreshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		if err := uc.stockRepo.UpdateThreshold(id, *in.CriticalThreshold); err != nil {
			return nil, err
		}
	}
	return item, nil
}

// ToItemDTO arma la vista del artículo con el rendimiento efectivo por
// paquete; nil = "N/A" (dato incompleto, nunca un error).
func ToItemDTO(item *entity.CatalogItem) dto.CatalogItemDTO {
	out := dto.CatalogItemDTO{
		ID:               item.ID,
		Name:             item.Name,
		Kind:             item.Kind,
		SalePrice:        item.SalePrice,
		PackageSize:      item.PackageSize,
		ShrinkageUnits:   item.ShrinkageUnits,
		DeclaredUnitCost: item.DeclaredUnitCost,
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
	}
	if units, ok := costing.EffectiveUnitsPerPackage(item); ok {
		out.EffectiveUnits = &units
	}
	return out
}
