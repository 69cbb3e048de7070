package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/floreria-ops/internal/application/dto"
	"github.com/tu-usuario/floreria-ops/internal/domain"
	"github.com/tu-usuario/floreria-ops/internal/domain/entity"
	"github.com/tu-usuario/floreria-ops/internal/domain/repository"
)

// UseCase liquida pedidos contra el Stock Ledger: congela el costo unitario
// al crear, descuenta stock por venta, lo restaura en la cancelación y hace
// cumplir la máquina de estados del pedido.
type UseCase struct {
	txRunner    OrderTxRunner
	ledger      StockLedger
	catalogRepo repository.CatalogRepository
	clientRepo  repository.ClientRepository
	orderRepo   repository.OrderRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner OrderTxRunner,
	ledger StockLedger,
	catalogRepo repository.CatalogRepository,
	clientRepo repository.ClientRepository,
	orderRepo repository.OrderRepository,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		ledger:      ledger,
		catalogRepo: catalogRepo,
		clientRepo:  clientRepo,
		orderRepo:   orderRepo,
	}
}

// CreateOrder crea un pedido en estado pendiente. Por cada línea con vínculo
// de stock lee el costo promedio comprometido en ese momento (fallback al
// costo declarado del catálogo si no hay fila de stock), lo congela en la
// línea y aplica la venta; todo en una sola transacción. Las líneas ad-hoc
// no tocan el ledger y congelan el costo provisto o 0.
func (uc *UseCase) CreateOrder(ctx context.Context, actorID string, in dto.CreateOrderRequest) (*entity.Order, error) {
	if in.ClientID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	// Validación de líneas y catálogo fuera de la tx (solo lectura).
	itemsByID := make(map[string]*entity.CatalogItem)
	for i := range in.Items {
		line := &in.Items[i]
		if line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if line.Price != nil && line.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if line.ItemID == "" {
			if line.Name == "" {
				return nil, domain.ErrInvalidInput
			}
			continue
		}
		item, err := uc.catalogRepo.GetByID(line.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		itemsByID[line.ItemID] = item
	}

	now := time.Now()
	order := &entity.Order{
		ID:        uuid.New().String(),
		ClientID:  in.ClientID,
		Status:    entity.OrderStatusPendiente,
		CreatedAt: now,
		UpdatedAt: now,
	}

	total := decimal.Zero
	for _, line := range in.Items {
		name := line.Name
		price := decimal.Zero
		if line.Price != nil {
			price = *line.Price
		}
		if item, ok := itemsByID[line.ItemID]; ok && line.ItemID != "" {
			if name == "" {
				name = item.Name
			}
			if line.Price == nil {
				price = item.SalePrice
			}
		}
		unitCost := decimal.Zero
		if line.UnitCost != nil {
			unitCost = *line.UnitCost
		}
		order.Items = append(order.Items, entity.OrderItem{
			ID:       uuid.New().String(),
			OrderID:  order.ID,
			ItemID:   line.ItemID,
			Name:     name,
			Quantity: line.Quantity,
			Price:    price,
			UnitCost: unitCost, // las líneas con stock lo sobreescriben dentro de la tx
		})
		total = total.Add(price.Mul(decimal.NewFromInt(line.Quantity)))
	}
	order.Total = total

	err = uc.txRunner.RunOrder(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.MovementRepository,
		orderRepo repository.OrderRepository,
	) error {
		for i := range order.Items {
			line := &order.Items[i]
			if !line.HasStockLink() {
				continue
			}
			// Costo comprometido al momento de la venta, leído bajo bloqueo de
			// fila; nunca un valor cacheado.
			stock, err := stockRepo.GetForUpdate(line.ItemID)
			if err != nil {
				return err
			}
			if stock != nil {
				line.UnitCost = stock.AverageUnitCost
			} else {
				line.UnitCost = itemsByID[line.ItemID].DeclaredUnitCost
			}
			if err := uc.ledger.RegisterSaleInTx(
				stockRepo, movRepo,
				line.ItemID, line.Quantity, line.UnitCost,
				order.ID, actorID, now,
			); err != nil {
				return err
			}
		}
		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// CancelOrder transiciona el pedido a cancelado y aplica una reversa de stock
// por cada línea original con vínculo, al costo congelado de la línea. Una
// sola transacción, independiente en el tiempo de la venta original.
func (uc *UseCase) CancelOrder(ctx context.Context, id, actorID string) (*entity.Order, error) {
	var cancelled *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.MovementRepository,
		orderRepo repository.OrderRepository,
	) error {
		order, err := orderRepo.GetByID(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !entity.CanTransition(order.Status, entity.OrderStatusCancelado) {
			return domain.ErrInvalidTransition
		}
		now := time.Now()
		for _, line := range order.Items {
			if !line.HasStockLink() {
				continue
			}
			if err := uc.ledger.RegisterCancellationInTx(
				stockRepo, movRepo,
				line.ItemID, line.Quantity, line.UnitCost,
				order.ID, actorID, now,
			); err != nil {
				return err
			}
		}
		if err := orderRepo.UpdateStatus(id, entity.OrderStatusCancelado); err != nil {
			return err
		}
		order.Status = entity.OrderStatusCancelado
		order.UpdatedAt = now
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// UpdateStatus aplica la máquina de estados. Una transición a cancelado
// delega en CancelOrder (dispara la reversa de stock); el resto no toca el
// ledger.
func (uc *UseCase) UpdateStatus(ctx context.Context, id, newStatus, actorID string) (*entity.Order, error) {
	if !entity.IsValidOrderStatus(newStatus) {
		return nil, domain.ErrInvalidInput
	}
	if newStatus == entity.OrderStatusCancelado {
		return uc.CancelOrder(ctx, id, actorID)
	}
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransition(order.Status, newStatus) {
		return nil, domain.ErrInvalidTransition
	}
	if err := uc.orderRepo.UpdateStatus(id, newStatus); err != nil {
		return nil, err
	}
	order.Status = newStatus
	order.UpdatedAt = time.Now()
	return order, nil
}

// UpdateOrder actualiza campos no-estado de la cabecera (reasignación de
// cliente). No toca líneas, costos congelados ni el ledger.
func (uc *UseCase) UpdateOrder(ctx context.Context, id string, in dto.UpdateOrderRequest) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if in.ClientID == "" || in.ClientID == order.ClientID {
		return order, nil
	}
	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.orderRepo.UpdateClient(id, in.ClientID); err != nil {
		return nil, err
	}
	order.ClientID = in.ClientID
	return order, nil
}

// GetOrder devuelve un pedido con sus líneas.
func (uc *UseCase) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// ListOrders lista pedidos paginados.
func (uc *UseCase) ListOrders(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	return uc.orderRepo.List(limit, offset)
}
