package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/floreria-ops/internal/application/dto"
	"github.com/tu-usuario/floreria-ops/internal/domain"
	"github.com/tu-usuario/floreria-ops/internal/domain/costing"
	"github.com/tu-usuario/floreria-ops/internal/domain/entity"
	"github.com/tu-usuario/floreria-ops/internal/domain/repository"
	"github.com/tu-usuario/floreria-ops/internal/infrastructure/cache"
)

// Tiempo de vida del último valor conocido en la caché de stock.
const stockCacheTTL = 24 * time.Hour

// UseCase es el Stock Ledger: único escritor del kardex. Aplica movimientos
// individuales o en lote de forma transaccional, con bloqueo de fila
// (SELECT FOR UPDATE) y Commit/Rollback. Mantiene cantidad y costo promedio
// por artículo, y registra exactamente una entrada de kardex por mutación.
type UseCase struct {
	txRunner     TxRunner
	catalogRepo  repository.CatalogRepository
	stockRepo    repository.StockRepository
	movementRepo repository.MovementRepository
	cache        cache.StockCache
}

// NewUseCase construye el ledger. stockRepo y movementRepo son los repos
// fuera de transacción (lecturas); las escrituras pasan por txRunner.
func NewUseCase(
	txRunner TxRunner,
	catalogRepo repository.CatalogRepository,
	stockRepo repository.StockRepository,
	movementRepo repository.MovementRepository,
	stockCache cache.StockCache,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		catalogRepo:  catalogRepo,
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		cache:        stockCache,
	}
}

// MovementInput entrada para aplicar un movimiento de stock.
// Quantity es la magnitud: positiva para PURCHASE/SALE/SHRINKAGE; ADJUSTMENT
// admite cualquier signo. Con IsPackage (solo flores) Quantity es cantidad de
// paquetes y el delta efectivo es Quantity × (paquete − merma).
type MovementInput struct {
	ItemID      string
	Type        string
	Quantity    int64
	UnitCost    *decimal.Decimal
	PackageCost *decimal.Decimal
	IsPackage   bool
	Reference   string
	ActorID     string
}

// resolvedMovement es un movimiento validado con su delta en unidades y el
// costo unitario entrante ya prorrateado (variante cerrada por tipo,
// validada en la frontera del ledger antes de tocar estado).
type resolvedMovement struct {
	itemID       string
	movementType string
	delta        int64
	incomingCost *decimal.Decimal // solo PURCHASE con costo
	reference    string
	actorID      string
}

// resolve valida el input contra el catálogo y deriva el delta con signo.
// No toca estado: todo lo rechazable se rechaza aquí.
func (uc *UseCase) resolve(input MovementInput) (*resolvedMovement, error) {
	switch input.Type {
	case entity.MovementTypePURCHASE, entity.MovementTypeSALE, entity.MovementTypeSHRINKAGE:
		if input.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	case entity.MovementTypeADJUSTMENT:
		if input.Quantity == 0 {
			return nil, domain.ErrInvalidInput
		}
	default:
		// CANCELLATION solo lo emite la liquidación de pedidos, nunca esta API
		return nil, domain.ErrInvalidInput
	}

	item, err := uc.catalogRepo.GetByID(input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	delta := input.Quantity
	if input.IsPackage {
		// Solo flores se mueven por paquete, y el rendimiento debe ser positivo.
		yield, ok := costing.EffectiveUnitsPerPackage(item)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		delta = input.Quantity * yield
	}
	switch input.Type {
	case entity.MovementTypeSALE, entity.MovementTypeSHRINKAGE:
		delta = -delta
	}

	r := &resolvedMovement{
		itemID:       input.ItemID,
		movementType: input.Type,
		delta:        delta,
		reference:    input.Reference,
		actorID:      input.ActorID,
	}

	// Costo entrante: solo compras lo llevan. Una compra sin costo es válida
	// (corrección de cantidad) y deja el promedio intacto.
	if input.Type == entity.MovementTypePURCHASE {
		switch {
		case input.UnitCost != nil:
			if input.UnitCost.IsNegative() {
				return nil, domain.ErrInvalidInput
			}
			r.incomingCost = input.UnitCost
		case input.IsPackage && input.PackageCost != nil:
			if input.PackageCost.IsNegative() {
				return nil, domain.ErrInvalidInput
			}
			unitCost, ok := costing.PackageUnitCost(item, *input.PackageCost)
			if !ok {
				return nil, domain.ErrInvalidInput
			}
			r.incomingCost = &unitCost
		}
	}
	return r, nil
}

// apply muta el stock ya bloqueado y registra la entrada de kardex.
// Rechaza (no recorta) cualquier delta que deje la cantidad negativa.
func apply(
	stockRepo repository.StockRepository,
	movRepo repository.MovementRepository,
	stock *entity.StockItem,
	r *resolvedMovement,
	now time.Time,
) error {
	newQty := stock.Quantity + r.delta
	if newQty < 0 {
		return domain.ErrInsufficientStock
	}

	// El promedio ponderado solo cambia en compras que traen costo.
	if r.movementType == entity.MovementTypePURCHASE && r.incomingCost != nil && r.delta > 0 {
		stock.AverageUnitCost = costing.WeightedAverage(stock.Quantity, stock.AverageUnitCost, r.delta, *r.incomingCost)
	}

	movementCost := r.incomingCost
	switch r.movementType {
	case entity.MovementTypeSALE, entity.MovementTypeSHRINKAGE, entity.MovementTypeCANCELLATION:
		if movementCost == nil {
			avg := stock.AverageUnitCost
			movementCost = &avg
		}
	}

	stock.Quantity = newQty
	stock.UpdatedAt = now
	if err := stockRepo.Upsert(stock); err != nil {
		return err
	}
	return movRepo.Create(&entity.StockMovement{
		ItemID:         r.itemID,
		Type:           r.movementType,
		QuantityChange: r.delta,
		QuantityAfter:  newQty,
		UnitCost:       movementCost,
		Reference:      r.reference,
		CreatedAt:      now,
		CreatedBy:      r.actorID,
	})
}

// ApplyMovement valida y aplica un movimiento en una transacción propia.
func (uc *UseCase) ApplyMovement(ctx context.Context, input MovementInput) error {
	r, err := uc.resolve(input)
	if err != nil {
		return err
	}
	now := time.Now()
	err = uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository, movRepo repository.MovementRepository) error {
		stock, err := stockRepo.GetForUpdate(r.itemID)
		if err != nil {
			return err
		}
		if stock == nil {
			stock = &entity.StockItem{ItemID: r.itemID, AverageUnitCost: decimal.Zero}
		}
		return apply(stockRepo, movRepo, stock, r, now)
	})
	if err != nil {
		return err
	}
	uc.refreshCache(ctx, r.itemID)
	return nil
}

// ApplyBatch aplica una secuencia ordenada de movimientos todo-o-nada:
// se valida todo antes de abrir la transacción, se bloquean las filas en
// orden ascendente de artículo y, si cualquier movimiento falla, se hace
// rollback completo sin registrar nada.
func (uc *UseCase) ApplyBatch(ctx context.Context, inputs []MovementInput) error {
	if len(inputs) == 0 {
		return domain.ErrInvalidInput
	}
	resolved := make([]*resolvedMovement, 0, len(inputs))
	for _, in := range inputs {
		r, err := uc.resolve(in)
		if err != nil {
			return err
		}
		resolved = append(resolved, r)
	}

	itemIDs := make([]string, 0, len(resolved))
	seen := make(map[string]bool, len(resolved))
	for _, r := range resolved {
		if !seen[r.itemID] {
			seen[r.itemID] = true
			itemIDs = append(itemIDs, r.itemID)
		}
	}
	// Orden ascendente de bloqueo: dos lotes concurrentes sobre el mismo
	// conjunto de artículos no pueden quedar en deadlock.
	sort.Strings(itemIDs)

	now := time.Now()
	err := uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository, movRepo repository.MovementRepository) error {
		locked := make(map[string]*entity.StockItem, len(itemIDs))
		for _, id := range itemIDs {
			stock, err := stockRepo.GetForUpdate(id)
			if err != nil {
				return err
			}
			if stock == nil {
				stock = &entity.StockItem{ItemID: id, AverageUnitCost: decimal.Zero}
			}
			locked[id] = stock
		}
		for _, r := range resolved {
			if err := apply(stockRepo, movRepo, locked[r.itemID], r, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, id := range itemIDs {
		uc.refreshCache(ctx, id)
	}
	return nil
}

// RegisterSaleInTx descuenta stock por una línea de venta usando los repos de
// la transacción del caller (liquidación de pedidos). unitCost es el costo
// congelado que queda registrado en el kardex; reference suele ser el ID del pedido.
func (uc *UseCase) RegisterSaleInTx(
	stockRepo repository.StockRepository,
	movRepo repository.MovementRepository,
	itemID string,
	quantity int64,
	unitCost decimal.Decimal,
	reference, actorID string,
	now time.Time,
) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	stock, err := stockRepo.GetForUpdate(itemID)
	if err != nil {
		return err
	}
	if stock == nil {
		stock = &entity.StockItem{ItemID: itemID, AverageUnitCost: decimal.Zero}
	}
	return apply(stockRepo, movRepo, stock, &resolvedMovement{
		itemID:       itemID,
		movementType: entity.MovementTypeSALE,
		delta:        -quantity,
		incomingCost: &unitCost,
		reference:    reference,
		actorID:      actorID,
	}, now)
}

// RegisterCancellationInTx restaura stock por la reversa de una línea cancelada,
// al costo que quedó congelado en la línea original.
func (uc *UseCase) RegisterCancellationInTx(
	stockRepo repository.StockRepository,
	movRepo repository.MovementRepository,
	itemID string,
	quantity int64,
	unitCost decimal.Decimal,
	reference, actorID string,
	now time.Time,
) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	stock, err := stockRepo.GetForUpdate(itemID)
	if err != nil {
		return err
	}
	if stock == nil {
		stock = &entity.StockItem{ItemID: itemID, AverageUnitCost: decimal.Zero}
	}
	return apply(stockRepo, movRepo, stock, &resolvedMovement{
		itemID:       itemID,
		movementType: entity.MovementTypeCANCELLATION,
		delta:        quantity,
		incomingCost: &unitCost,
		reference:    reference,
		actorID:      actorID,
	}, now)
}

// GetCurrentStock lee el stock comprometido más reciente. Si el almacén
// autoritativo no responde, cae al último valor conocido en caché con
// stale=true explícito; nunca un fallback silencioso.
func (uc *UseCase) GetCurrentStock(ctx context.Context, itemID string) (*dto.StockResponse, error) {
	stock, err := uc.stockRepo.Get(itemID)
	if err == nil {
		if stock == nil {
			item, cerr := uc.catalogRepo.GetByID(itemID)
			if cerr != nil {
				return nil, cerr
			}
			if item == nil {
				return nil, domain.ErrNotFound
			}
			stock = &entity.StockItem{ItemID: itemID, AverageUnitCost: decimal.Zero}
		}
		resp := &dto.StockResponse{
			ItemID:          itemID,
			Quantity:        stock.Quantity,
			AverageUnitCost: stock.AverageUnitCost,
		}
		_ = uc.cache.Set(ctx, itemID, &cache.CachedStock{
			Quantity:        stock.Quantity,
			AverageUnitCost: stock.AverageUnitCost,
			CachedAt:        time.Now(),
		}, stockCacheTTL)
		return resp, nil
	}

	cached, ok, cacheErr := uc.cache.Get(ctx, itemID)
	if cacheErr != nil || !ok {
		return nil, err // error original del almacén autoritativo
	}
	return &dto.StockResponse{
		ItemID:          itemID,
		Quantity:        cached.Quantity,
		AverageUnitCost: cached.AverageUnitCost,
		Stale:           true,
	}, nil
}

// ListKardex devuelve el historial de movimientos de un artículo en orden
// ascendente por fecha (auditoría y evolución de costos).
func (uc *UseCase) ListKardex(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	item, err := uc.catalogRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movementRepo.ListByItem(itemID, from, to, limit, offset)
}

// ListCritical devuelve los artículos en o por debajo de su umbral crítico.
func (uc *UseCase) ListCritical(ctx context.Context, limit, offset int) ([]repository.CriticalStockResult, error) {
	return uc.stockRepo.ListCritical(limit, offset)
}

// refreshCache actualiza el último valor conocido tras un commit (best effort).
func (uc *UseCase) refreshCache(ctx context.Context, itemID string) {
	stock, err := uc.stockRepo.Get(itemID)
	if err != nil || stock == nil {
		return
	}
	_ = uc.cache.Set(ctx, itemID, &cache.CachedStock{
		Quantity:        stock.Quantity,
		AverageUnitCost: stock.AverageUnitCost,
		CachedAt:        time.Now(),
	}, stockCacheTTL)
}
