package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/floreria-ops/internal/application/dto"
	"github.com/tu-usuario/floreria-ops/internal/application/usecase"
	"github.com/tu-usuario/floreria-ops/internal/domain"
	"github.com/tu-usuario/floreria-ops/internal/domain/entity"
	"github.com/tu-usuario/floreria-ops/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newCatalogUC(t *testing.T) (*usecase.CatalogUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return usecase.NewCatalogUseCase(store, store.Catalog(), store.Stock()), store
}

func TestCreateItem_NaceConStockEnCero(t *testing.T) {
	uc, store := newCatalogUC(t)

	item, err := uc.CreateItem(context.Background(), dto.CreateItemRequest{
		Name: "Rosa roja", Kind: entity.ItemKindFlower,
		SalePrice: dec("5"), PackageSize: 24, ShrinkageUnits: 2,
		CriticalThreshold: 10,
	})
	require.NoError(t, err)
	require.NotEmpty(t, item.ID)

	stock, err := store.Stock().Get(item.ID)
	require.NoError(t, err)
	require.NotNil(t, stock, "el artículo debe nacer con fila de stock")
	assert.Equal(t, int64(0), stock.Quantity)
	assert.True(t, stock.AverageUnitCost.IsZero())
	assert.Equal(t, int64(10), stock.CriticalThreshold)
}

func TestCreateItem_Validaciones(t *testing.T) {
	uc, _ := newCatalogUC(t)
	ctx := context.Background()

	cases := []dto.CreateItemRequest{
		{Name: "", Kind: entity.ItemKindFlower},
		{Name: "Rosa", Kind: "planta"},
		{Name: "Rosa", Kind: entity.ItemKindFlower, SalePrice: dec("-1")},
		{Name: "Rosa", Kind: entity.ItemKindFlower, PackageSize: -1},
		{Name: "Jarrón", Kind: entity.ItemKindProduct, DeclaredUnitCost: dec("-3")},
	}
	for _, in := range cases {
		_, err := uc.CreateItem(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "input %+v", in)
	}
}

func TestUpdateItem_ParcheYUmbral(t *testing.T) {
	uc, store := newCatalogUC(t)
	ctx := context.Background()

	item, err := uc.CreateItem(ctx, dto.CreateItemRequest{
		Name: "Rosa", Kind: entity.ItemKindFlower, SalePrice: dec("5"), PackageSize: 24,
	})
	require.NoError(t, err)

	newPrice := dec("6.50")
	threshold := int64(15)
	updated, err := uc.UpdateItem(ctx, item.ID, dto.UpdateItemRequest{
		SalePrice: &newPrice, CriticalThreshold: &threshold,
	})
	require.NoError(t, err)
	assert.True(t, newPrice.Equal(updated.SalePrice))
	// Los campos no enviados no cambian.
	assert.Equal(t, "Rosa", updated.Name)
	assert.Equal(t, int64(24), updated.PackageSize)

	stock, err := store.Stock().Get(item.ID)
	require.NoError(t, err)
	assert.Equal(t, threshold, stock.CriticalThreshold)

	_, err = uc.UpdateItem(ctx, "no-existe", dto.UpdateItemRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestToItemDTO_RendimientoNA(t *testing.T) {
	// Flor con rendimiento positivo: effective_units presente.
	rosa := &entity.CatalogItem{ID: "rosa", Kind: entity.ItemKindFlower, PackageSize: 24, ShrinkageUnits: 2}
	out := usecase.ToItemDTO(rosa)
	require.NotNil(t, out.EffectiveUnits)
	assert.Equal(t, int64(22), *out.EffectiveUnits)

	// Merma total: N/A se representa como nil, no como cero ni error.
	rosa.ShrinkageUnits = 30
	out = usecase.ToItemDTO(rosa)
	assert.Nil(t, out.EffectiveUnits)

	jarron := &entity.CatalogItem{ID: "jarron", Kind: entity.ItemKindProduct}
	assert.Nil(t, usecase.ToItemDTO(jarron).EffectiveUnits)
}

func TestExpenseUseCase_PeriodoValido(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewExpenseUseCase(store.Expenses())
	ctx := context.Background()

	_, err := uc.CreateExpense(ctx, dto.CreateExpenseRequest{Name: "Arriendo", Amount: dec("100"), Period: "2026-13"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	expense, err := uc.CreateExpense(ctx, dto.CreateExpenseRequest{Name: "Arriendo", Amount: dec("100"), Period: "2026-08"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteExpense(ctx, expense.ID))
	assert.ErrorIs(t, uc.DeleteExpense(ctx, expense.ID), domain.ErrNotFound)
}

func TestClientUseCase_CRUD(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewClientUseCase(store.Clients())
	ctx := context.Background()

	_, err := uc.CreateClient(ctx, dto.CreateClientRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	client, err := uc.CreateClient(ctx, dto.CreateClientRequest{Name: "María", Phone: "300123"})
	require.NoError(t, err)

	updated, err := uc.UpdateClient(ctx, client.ID, dto.CreateClientRequest{Name: "María P.", Address: "Calle 1"})
	require.NoError(t, err)
	assert.Equal(t, "María P.", updated.Name)
	assert.Equal(t, "Calle 1", updated.Address)

	_, err = uc.UpdateClient(ctx, "no-existe", dto.CreateClientRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.ListClients(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
