// Package memory provee una implementación en memoria de los puertos de
// persistencia. La usan los tests de los casos de uso y sirve como modo
// demo sin PostgreSQL.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/floreria-ops/internal/domain"
	"github.com/tu-usuario/floreria-ops/internal/domain/entity"
	"github.com/tu-usuario/floreria-ops/internal/domain/repository"
)

// data estado interno del store. Los métodos de data no toman locks:
// el caller (wrapper de repo o tx runner) es responsable de la exclusión.
type data struct {
	catalog   map[string]entity.CatalogItem
	stock     map[string]entity.StockItem
	movements []entity.StockMovement
	orders    map[string]entity.Order
	clients   map[string]entity.Client
	expenses  map[string]entity.FixedExpense
}

func newData() *data {
	return &data{
		catalog:  make(map[string]entity.CatalogItem),
		stock:    make(map[string]entity.StockItem),
		orders:   make(map[string]entity.Order),
		clients:  make(map[string]entity.Client),
		expenses: make(map[string]entity.FixedExpense),
	}
}

// clone copia profunda del estado. Las transacciones trabajan sobre la copia
// y el commit es un swap de punteros; el rollback descarta la copia.
func (d *data) clone() *data {
	c := &data{
		catalog:   make(map[string]entity.CatalogItem, len(d.catalog)),
		stock:     make(map[string]entity.StockItem, len(d.stock)),
		movements: make([]entity.StockMovement, len(d.movements)),
		orders:    make(map[string]entity.Order, len(d.orders)),
		clients:   make(map[string]entity.Client, len(d.clients)),
		expenses:  make(map[string]entity.FixedExpense, len(d.expenses)),
	}
	for k, v := range d.catalog {
		c.catalog[k] = v
	}
	for k, v := range d.stock {
		c.stock[k] = v
	}
	copy(c.movements, d.movements)
	for k, v := range d.orders {
		v.Items = append([]entity.OrderItem(nil), v.Items...)
		c.orders[k] = v
	}
	for k, v := range d.clients {
		c.clients[k] = v
	}
	for k, v := range d.expenses {
		c.expenses[k] = v
	}
	return c
}

// Store almacén en memoria. Expone repositorios y tx runners sobre el mismo
// estado compartido, protegido por un único mutex.
type Store struct {
	mu sync.Mutex
	d  *data
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{d: newData()}
}

// ── Repositorios fuera de transacción ────────────────────────────────────────

func (s *Store) Catalog() repository.CatalogRepository   { return &catalogRepo{s: s} }
func (s *Store) Stock() repository.StockRepository       { return &stockRepo{s: s} }
func (s *Store) Movements() repository.MovementRepository { return &movementRepo{s: s} }
func (s *Store) Orders() repository.OrderRepository      { return &orderRepo{s: s} }
func (s *Store) Clients() repository.ClientRepository    { return &clientRepo{s: s} }
func (s *Store) Expenses() repository.ExpenseRepository  { return &expenseRepo{s: s} }

// ── Tx runners ───────────────────────────────────────────────────────────────

// Run emula la transacción del ledger: los repos operan sobre una copia del
// estado; si fn falla la copia se descarta.
func (s *Store) Run(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.MovementRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.d.clone()
	if err := fn(&stockRepo{d: work}, &movementRepo{d: work}); err != nil {
		return err
	}
	s.d = work
	return nil
}

// RunOrder emula la transacción de liquidación de pedidos.
func (s *Store) RunOrder(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.MovementRepository,
	orderRepo repository.OrderRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.d.clone()
	if err := fn(&stockRepo{d: work}, &movementRepo{d: work}, &orderRepo{d: work}); err != nil {
		return err
	}
	s.d = work
	return nil
}

// RunCatalog emula la transacción de alta de catálogo.
func (s *Store) RunCatalog(_ context.Context, fn func(
	catalogRepo repository.CatalogRepository,
	stockRepo repository.StockRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.d.clone()
	if err := fn(&catalogRepo{d: work}, &stockRepo{d: work}); err != nil {
		return err
	}
	s.d = work
	return nil
}

// view ejecuta fn sobre el estado actual. Si el repo está atado a una tx
// (d != nil) el lock ya lo tiene el runner; si no, lo toma aquí.
func view(s *Store, d *data, fn func(d *data) error) error {
	if d != nil {
		return fn(d)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.d)
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// ── Catálogo ─────────────────────────────────────────────────────────────────

type catalogRepo struct {
	s *Store
	d *data
}

func (r *catalogRepo) Create(item *entity.CatalogItem) error {
	return view(r.s, r.d, func(d *data) error {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		if _, ok := d.catalog[item.ID]; ok {
			return domain.ErrDuplicate
		}
		d.catalog[item.ID] = *item
		return nil
	})
}

func (r *catalogRepo) GetByID(id string) (*entity.CatalogItem, error) {
	var out *entity.CatalogItem
	err := view(r.s, r.d, func(d *data) error {
		if item, ok := d.catalog[id]; ok {
			out = &item
		}
		return nil
	})
	return out, err
}

func (r *catalogRepo) Update(item *entity.CatalogItem) error {
	return view(r.s, r.d, func(d *data) error {
		if _, ok := d.catalog[item.ID]; !ok {
			return domain.ErrNotFound
		}
		d.catalog[item.ID] = *item
		return nil
	})
}

func (r *catalogRepo) List(limit, offset int) ([]*entity.CatalogItem, error) {
	var out []*entity.CatalogItem
	err := view(r.s, r.d, func(d *data) error {
		items := make([]entity.CatalogItem, 0, len(d.catalog))
		for _, item := range d.catalog {
			items = append(items, item)
		}
		sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
		for _, item := range paginate(items, limit, offset) {
			item := item
			out = append(out, &item)
		}
		return nil
	})
	return out, err
}

// ── Stock ────────────────────────────────────────────────────────────────────

type stockRepo struct {
	s *Store
	d *data
}

func (r *stockRepo) Get(itemID string) (*entity.StockItem, error) {
	var out *entity.StockItem
	err := view(r.s, r.d, func(d *data) error {
		if s, ok := d.stock[itemID]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria equivale a Get: el mutex del store ya serializa.
func (r *stockRepo) GetForUpdate(itemID string) (*entity.StockItem, error) {
	return r.Get(itemID)
}

func (r *stockRepo) Upsert(stock *entity.StockItem) error {
	return view(r.s, r.d, func(d *data) error {
		s := *stock
		if prev, ok := d.stock[s.ItemID]; ok {
			s.CriticalThreshold = prev.CriticalThreshold
		}
		s.UpdatedAt = time.Now()
		d.stock[s.ItemID] = s
		return nil
	})
}

func (r *stockRepo) UpdateThreshold(itemID string, threshold int64) error {
	return view(r.s, r.d, func(d *data) error {
		s, ok := d.stock[itemID]
		if !ok {
			return domain.ErrNotFound
		}
		s.CriticalThreshold = threshold
		s.UpdatedAt = time.Now()
		d.stock[itemID] = s
		return nil
	})
}

func (r *stockRepo) ListCritical(limit, offset int) ([]repository.CriticalStockResult, error) {
	var out []repository.CriticalStockResult
	err := view(r.s, r.d, func(d *data) error {
		var rowsAll []repository.CriticalStockResult
		for id, s := range d.stock {
			if s.CriticalThreshold <= 0 || s.Quantity > s.CriticalThreshold {
				continue
			}
			row := repository.CriticalStockResult{
				ItemID:            id,
				Quantity:          s.Quantity,
				CriticalThreshold: s.CriticalThreshold,
				AverageUnitCost:   s.AverageUnitCost,
			}
			if item, ok := d.catalog[id]; ok {
				row.Name = item.Name
			}
			rowsAll = append(rowsAll, row)
		}
		sort.Slice(rowsAll, func(i, j int) bool { return rowsAll[i].Quantity < rowsAll[j].Quantity })
		out = paginate(rowsAll, limit, offset)
		return nil
	})
	return out, err
}

// ── Kardex ───────────────────────────────────────────────────────────────────

type movementRepo struct {
	s *Store
	d *data
}

func (r *movementRepo) Create(movement *entity.StockMovement) error {
	return view(r.s, r.d, func(d *data) error {
		if movement.ID == "" {
			movement.ID = uuid.New().String()
		}
		d.movements = append(d.movements, *movement)
		return nil
	})
}

func (r *movementRepo) ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := view(r.s, r.d, func(d *data) error {
		var matched []entity.StockMovement
		for _, m := range d.movements {
			if m.ItemID != itemID {
				continue
			}
			if from != nil && m.CreatedAt.Before(*from) {
				continue
			}
			if to != nil && m.CreatedAt.After(*to) {
				continue
			}
			matched = append(matched, m)
		}
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		})
		for _, m := range paginate(matched, limit, offset) {
			m := m
			out = append(out, &m)
		}
		return nil
	})
	return out, err
}

// ── Pedidos ──────────────────────────────────────────────────────────────────

type orderRepo struct {
	s *Store
	d *data
}

func (r *orderRepo) Create(order *entity.Order) error {
	return view(r.s, r.d, func(d *data) error {
		if order.ID == "" {
			order.ID = uuid.New().String()
		}
		stored := *order
		stored.Items = make([]entity.OrderItem, len(order.Items))
		for i := range order.Items {
			line := order.Items[i]
			if line.ID == "" {
				line.ID = uuid.New().String()
			}
			line.OrderID = order.ID
			stored.Items[i] = line
			order.Items[i] = line
		}
		d.orders[order.ID] = stored
		return nil
	})
}

func (r *orderRepo) GetByID(id string) (*entity.Order, error) {
	var out *entity.Order
	err := view(r.s, r.d, func(d *data) error {
		if o, ok := d.orders[id]; ok {
			o.Items = append([]entity.OrderItem(nil), o.Items...)
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *orderRepo) List(limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	err := view(r.s, r.d, func(d *data) error {
		orders := make([]entity.Order, 0, len(d.orders))
		for _, o := range d.orders {
			o.Items = append([]entity.OrderItem(nil), o.Items...)
			orders = append(orders, o)
		}
		sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
		for _, o := range paginate(orders, limit, offset) {
			o := o
			out = append(out, &o)
		}
		return nil
	})
	return out, err
}

func (r *orderRepo) ListByRange(from, to time.Time) ([]*entity.Order, error) {
	var out []*entity.Order
	err := view(r.s, r.d, func(d *data) error {
		var orders []entity.Order
		for _, o := range d.orders {
			if o.CreatedAt.Before(from) || o.CreatedAt.After(to) {
				continue
			}
			o.Items = append([]entity.OrderItem(nil), o.Items...)
			orders = append(orders, o)
		}
		sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.Before(orders[j].CreatedAt) })
		for _, o := range orders {
			o := o
			out = append(out, &o)
		}
		return nil
	})
	return out, err
}

func (r *orderRepo) UpdateStatus(id, status string) error {
	return view(r.s, r.d, func(d *data) error {
		o, ok := d.orders[id]
		if !ok {
			return domain.ErrNotFound
		}
		o.Status = status
		o.UpdatedAt = time.Now()
		d.orders[id] = o
		return nil
	})
}

func (r *orderRepo) UpdateClient(id, clientID string) error {
	return view(r.s, r.d, func(d *data) error {
		o, ok := d.orders[id]
		if !ok {
			return domain.ErrNotFound
		}
		o.ClientID = clientID
		o.UpdatedAt = time.Now()
		d.orders[id] = o
		return nil
	})
}

// ── Clientes ─────────────────────────────────────────────────────────────────

type clientRepo struct {
	s *Store
	d *data
}

func (r *clientRepo) Create(client *entity.Client) error {
	return view(r.s, r.d, func(d *data) error {
		if client.ID == "" {
			client.ID = uuid.New().String()
		}
		d.clients[client.ID] = *client
		return nil
	})
}

func (r *clientRepo) GetByID(id string) (*entity.Client, error) {
	var out *entity.Client
	err := view(r.s, r.d, func(d *data) error {
		if c, ok := d.clients[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *clientRepo) Update(client *entity.Client) error {
	return view(r.s, r.d, func(d *data) error {
		if _, ok := d.clients[client.ID]; !ok {
			return domain.ErrNotFound
		}
		d.clients[client.ID] = *client
		return nil
	})
}

func (r *clientRepo) List(limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	err := view(r.s, r.d, func(d *data) error {
		clients := make([]entity.Client, 0, len(d.clients))
		for _, c := range d.clients {
			clients = append(clients, c)
		}
		sort.Slice(clients, func(i, j int) bool { return clients[i].Name < clients[j].Name })
		for _, c := range paginate(clients, limit, offset) {
			c := c
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

// ── Gastos fijos ─────────────────────────────────────────────────────────────

type expenseRepo struct {
	s *Store
	d *data
}

func (r *expenseRepo) Create(expense *entity.FixedExpense) error {
	return view(r.s, r.d, func(d *data) error {
		if expense.ID == "" {
			expense.ID = uuid.New().String()
		}
		d.expenses[expense.ID] = *expense
		return nil
	})
}

func (r *expenseRepo) GetByID(id string) (*entity.FixedExpense, error) {
	var out *entity.FixedExpense
	err := view(r.s, r.d, func(d *data) error {
		if e, ok := d.expenses[id]; ok {
			out = &e
		}
		return nil
	})
	return out, err
}

func (r *expenseRepo) Delete(id string) error {
	return view(r.s, r.d, func(d *data) error {
		if _, ok := d.expenses[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.expenses, id)
		return nil
	})
}

func (r *expenseRepo) List(limit, offset int) ([]*entity.FixedExpense, error) {
	var out []*entity.FixedExpense
	err := view(r.s, r.d, func(d *data) error {
		expenses := make([]entity.FixedExpense, 0, len(d.expenses))
		for _, e := range d.expenses {
			expenses = append(expenses, e)
		}
		sort.Slice(expenses, func(i, j int) bool {
			if expenses[i].Period != expenses[j].Period {
				return expenses[i].Period > expenses[j].Period
			}
			return expenses[i].Name < expenses[j].Name
		})
		for _, e := range paginate(expenses, limit, offset) {
			e := e
			out = append(out, &e)
		}
		return nil
	})
	return out, err
}

func (r *expenseRepo) ListByPeriodRange(fromPeriod, toPeriod string) ([]*entity.FixedExpense, error) {
	var out []*entity.FixedExpense
	err := view(r.s, r.d, func(d *data) error {
		var expenses []entity.FixedExpense
		for _, e := range d.expenses {
			if e.Period < fromPeriod || e.Period > toPeriod {
				continue
			}
			expenses = append(expenses, e)
		}
		sort.Slice(expenses, func(i, j int) bool {
			if expenses[i].Period != expenses[j].Period {
				return expenses[i].Period < expenses[j].Period
			}
			return expenses[i].Name < expenses[j].Name
		})
		for _, e := range expenses {
			e := e
			out = append(out, &e)
		}
		return nil
	})
	return out, err
}
