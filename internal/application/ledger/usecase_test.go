package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/floreria-ops/internal/application/ledger"
	"github.com/tu-usuario/floreria-ops/internal/domain"
	"github.com/tu-usuario/floreria-ops/internal/domain/entity"
	"github.com/tu-usuario/floreria-ops/internal/domain/repository"
	"github.com/tu-usuario/floreria-ops/internal/infrastructure/cache"
	"github.com/tu-usuario/floreria-ops/internal/infrastructure/memory"
)

func newLedger(t *testing.T) (*ledger.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := ledger.NewUseCase(store, store.Catalog(), store.Stock(), store.Movements(), cache.NoopStockCache{})
	return uc, store
}

func seedItem(t *testing.T, store *memory.Store, item entity.CatalogItem) {
	t.Helper()
	require.NoError(t, store.Catalog().Create(&item))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestApplyMovement_CompraActualizaPromedioPonderado(t *testing.T) {
	uc, store := newLedger(t)
	seedItem(t, store, entity.CatalogItem{ID: "rosa", Name: "Rosa roja", Kind: entity.ItemKindFlower})
	ctx := context.Background()

	cost1 := dec("2")
	require.NoError(t, uc.ApplyMovement(ctx, ledger.MovementInput{
		ItemID: "rosa", Type: entity.MovementTypePURCHASE, Quantity: 10, UnitCost: &cost1,
	}))

	cost2 := dec("4")
	require.NoError(t, uc.ApplyMovement(ctx, ledger.MovementInput{
		ItemID: "rosa", Type: entity.MovementTypePURCHASE, Quantity: 10, UnitCost: &cost2,
	}))

	stock, err := store.Stock().Get("rosa")
	require.NoError(t, err)
	require.NotNil(t, stock)
	assert.Equal(t, int64(20), stock.Quantity)
	// (10*2 + 10*4) / 20 = 3
	assert.True(t, dec("3").Equal(stock.AverageUnitCost), "promedio esperado 3, obtenido %s", stock.AverageUnitCost)
}

func TestApplyMovement_PrimeraCompraFijaElPromedio(t *testing.T) {
	uc, store := newLedger(t)
	seedItem(t, store, entity.CatalogItem{ID: "jarron", Name: "Jarrón", Kind: entity.ItemKindProduct})

	cost := dec("7.50")
	require.NoError(t, uc.ApplyMovement(context.Background(), ledger.MovementInput{
		ItemID: "jarron", Type: entity.MovementTypePURCHASE, Quantity: 5, UnitCost: &cost,
	}))

	stock, err := store.Stock().Get("jarron")
	require.NoError(t, err)
	assert.True(t, cost.Equal(stock.AverageUnitCost))
}

func TestApplyMovement_CompraSinCostoNoTocaPromedio(t *testing.T) {
	uc, store := newLedger(t)
	seedItem(t, store, entity.CatalogItem{ID: "rosa", Name: "Rosa", Kind: entity.ItemKindFlower})
	ctx := context.Background()

	cost := dec("2")
	require.NoError(t, uc.ApplyMovement(ctx, ledger.MovementInput{
		ItemID: "rosa", Type: entity.MovementTypePURCHASE, Quantity: 10, UnitCost: &cost,
	}))
	// Corrección de cantidad sin costo: el promedio queda intacto.
	require.NoError(t, uc.ApplyMovement(ctx, ledger.MovementInput{
		ItemID: "rosa", Type: entity.MovementTypePURCHASE, Quantity: 5,
	}))

	stock, err := store.Stock().Get("rosa")
	require.NoError(t, err)
	assert.Equal(t, int64(15), stock.Quantity)
	assert.True(t, dec("2").Equal(stock.AverageUnitCost))
}

func TestApplyMovement_CompraPorPaqueteProrratea(t *testing.T) {
	uc, store := newLedger(t)
	// Paquete de 24 con merma 2: rendimiento 22 tallos.
	seedItem(t, store, entity.CatalogItem{
		ID: "rosa", Name: "Rosa", Kind: entity.ItemKindFlower,
		PackageSize: 24, ShrinkageUnits: 2,
	})

	packageCost := dec("40")
	require.NoError(t, uc.ApplyMovement(context.Background(), ledger.MovementInput{
		ItemID: "rosa", Type: entity.MovementTypePURCHASE,
		Quantity: 2, IsPackage: true, PackageCost: &packageCost,
	}))

	stock, err := store.Stock().Get("rosa")
	require.NoError(t, err)
	assert.Equal(t, int64(44), stock.Quantity)
	expected := dec("40").Div(dec("22"))
	assert.True(t, expected.Equal(stock.AverageUnitCost), "esperado %s, obtenido %s", expected, stock.AverageUnitCost)
}

func TestApplyMovement_PaqueteSinRendimientoEsInvalido(t *testing.T) {
	uc, store := newLedger(t)
	// Merma >= paquete: rendimiento N/A, el movimiento por paquete se rechaza.
	seedItem(t, store, entity.CatalogItem{
		ID: "rosa", Name: "Rosa", Kind: entity.ItemKindFlower,
		PackageSize: 24, ShrinkageUnits: 24,
	})

	err := uc.ApplyMovement(context.Background(), ledger.MovementInput{
		ItemID: "rosa", Type: entity.MovementTypePURCHASE, Quantity: 1, IsPackage: true,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyMovement_VentaInsuficienteNoDejaRastro(t *testing.T) {
	uc, store := newLedger(t)
	seedItem(t, store, entity.CatalogItem{ID: "rosa", Name: "Rosa", Kind: entity.ItemKindFlower})
	ctx := context.Background()

	cost := dec("2")
	require.NoError(t, uc.ApplyMovement(ctx, ledger.MovementInput{
		ItemID: "rosa", Type: entity.MovementTypePURCHASE, Quantity: 3, UnitCost: &cost,
	}))

	err := uc.ApplyMovement(ctx, ledger.MovementInput{
		ItemID: "rosa", Type: entity.MovementTypeSALE, Quantity: 5,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Rollback completo: ni la cantidad cambió ni se escribió kardex.
	stock, err := store.Stock().Get("rosa")
	require.NoError(t, err)
	assert.Equal(t, int64(3), stock.Quantity)

	movements, err := store.Movements().ListByItem("rosa", nil, nil, 100, 0)
	require.NoError(t, err)
	assert.Len(t, movements, 1)
}

func TestApplyMovement_TiposYMagnitudesInvalidas(t *testing.T) {
	uc, store := newLedger(t)
	seedItem(t, store, entity.CatalogItem{ID: "rosa", Name: "Rosa", Kind: entity.ItemKindFlower})
	ctx := context.Background()

	cases := []ledger.MovementInput{
		{ItemID: "rosa", Type: "CANCELLATION", Quantity: 1}, // reservado a la liquidación de pedidos
		{ItemID: "rosa", Type: "REGALO", Quantity: 1},
		{ItemID: "rosa", Type: entity.MovementTypePURCHASE, Quantity: 0},
		{ItemID: "rosa", Type: entity.MovementTypeSALE, Quantity: -2},
		{ItemID: "rosa", Type: entity.MovementTypeADJUSTMENT, Quantity: 0},
	}
	for _, in := range cases {
		assert.ErrorIs(t, uc.ApplyMovement(ctx, in), domain.ErrInvalidInput, "input %+v", in)
	}

	err := uc.ApplyMovement(ctx, ledger.MovementInput{
		ItemID: "no-existe", Type: entity.MovementTypePURCHASE, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyMovement_AjusteAdmiteAmbosSignos(t *testing.T) {
	uc, store := newLedger(t)
	seedItem(t, store, entity.CatalogItem{ID: "rosa", Name: "Rosa", Kind: entity.ItemKindFlower})
	ctx := context.Background()

	require.NoError(t, uc.ApplyMovement(ctx, ledger.MovementInput{
		ItemID: "rosa", Type: entity.MovementTypeADJUSTMENT, Quantity: 10, Reference: "conteo físico",
	}))
	require.NoError(t, uc.ApplyMovement(ctx, ledger.MovementInput{
		ItemID: "rosa", Type: entity.MovementTypeADJUSTMENT, Quantity: -4,
	}))

	stock, err := store.Stock().Get("rosa")
	require.NoError(t, err)
	assert.Equal(t, int64(6), stock.Quantity)
}

func TestApplyBatch_TodoONada(t *testing.T) {
	uc, store := newLedger(t)
	seedItem(t, store, entity.CatalogItem{ID: "rosa", Name: "Rosa", Kind: entity.ItemKindFlower})
	seedItem(t, store, entity.CatalogItem{ID: "tulipan", Name: "Tulipán", Kind: entity.ItemKindFlower})
	ctx := context.Background()

	cost := dec("2")
	require.NoError(t, uc.ApplyMovement(ctx, ledger.MovementInput{
		ItemID: "tulipan", Type: entity.MovementTypePURCHASE, Quantity: 3, UnitCost: &cost,
	}))

	// La primera compra del lote sería válida, pero la venta del segundo
	// artículo excede el stock: nada del lote debe aplicarse.
	err := uc.ApplyBatch(ctx, []ledger.MovementInput{
		{ItemID: "rosa", Type: entity.MovementTypePURCHASE, Quantity: 50, UnitCost: &cost},
		{ItemID: "tulipan", Type: entity.MovementTypeSALE, Quantity: 10},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	rosa, err := store.Stock().Get("rosa")
	require.NoError(t, err)
	assert.Nil(t, rosa, "la compra del lote fallido no debe persistir")

	tulipan, err := store.Stock().Get("tulipan")
	require.NoError(t, err)
	assert.Equal(t, int64(3), tulipan.Quantity)
}

func TestApplyBatch_SecuenciaSobreElMismoArticulo(t *testing.T) {
	uc, store := newLedger(t)
	seedItem(t, store, entity.CatalogItem{ID: "rosa", Name: "Rosa", Kind: entity.ItemKindFlower})
	ctx := context.Background()

	cost := dec("2")
	require.NoError(t, uc.ApplyBatch(ctx, []ledger.MovementInput{
		{ItemID: "rosa", Type: entity.MovementTypePURCHASE, Quantity: 10, UnitCost: &cost},
		{ItemID: "rosa", Type: entity.MovementTypeSALE, Quantity: 4},
		{ItemID: "rosa", Type: entity.MovementTypeSHRINKAGE, Quantity: 1},
	}))

	stock, err := store.Stock().Get("rosa")
	require.NoError(t, err)
	assert.Equal(t, int64(5), stock.Quantity)

	// Invariante del kardex: la suma de los deltas reproduce la cantidad final
	// y cada entrada registra la cantidad resultante en su momento.
	movements, err := store.Movements().ListByItem("rosa", nil, nil, 100, 0)
	require.NoError(t, err)
	require.Len(t, movements, 3)
	var sum int64
	for _, m := range movements {
		sum += m.QuantityChange
		assert.Equal(t, sum, m.QuantityAfter)
	}
	assert.Equal(t, stock.Quantity, sum)

	// Las salidas registran el promedio vigente como costo.
	require.NotNil(t, movements[1].UnitCost)
	assert.True(t, dec("2").Equal(*movements[1].UnitCost))
}

func TestApplyBatch_Vacio(t *testing.T) {
	uc, _ := newLedger(t)
	assert.ErrorIs(t, uc.ApplyBatch(context.Background(), nil), domain.ErrInvalidInput)
}

func TestGetCurrentStock_ArticuloSinMovimientos(t *testing.T) {
	uc, store := newLedger(t)
	seedItem(t, store, entity.CatalogItem{ID: "rosa", Name: "Rosa", Kind: entity.ItemKindFlower})

	out, err := uc.GetCurrentStock(context.Background(), "rosa")
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.Quantity)
	assert.False(t, out.Stale)

	_, err = uc.GetCurrentStock(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// failingStockRepo simula un almacén autoritativo caído.
type failingStockRepo struct {
	repository.StockRepository
}

var errDown = errors.New("db down")

func (failingStockRepo) Get(string) (*entity.StockItem, error) { return nil, errDown }

// fakeCache caché precargada para el fallback de lectura.
type fakeCache struct {
	value *cache.CachedStock
}

func (f *fakeCache) Get(_ context.Context, _ string) (*cache.CachedStock, bool, error) {
	if f.value == nil {
		return nil, false, nil
	}
	return f.value, true, nil
}

func (f *fakeCache) Set(_ context.Context, _ string, v *cache.CachedStock, _ time.Duration) error {
	f.value = v
	return nil
}

func TestGetCurrentStock_FallbackStale(t *testing.T) {
	store := memory.NewStore()
	c := &fakeCache{value: &cache.CachedStock{Quantity: 7, AverageUnitCost: dec("2"), CachedAt: time.Now()}}
	uc := ledger.NewUseCase(store, store.Catalog(), failingStockRepo{}, store.Movements(), c)

	out, err := uc.GetCurrentStock(context.Background(), "rosa")
	require.NoError(t, err)
	assert.True(t, out.Stale, "lectura de caché debe marcarse stale explícitamente")
	assert.Equal(t, int64(7), out.Quantity)
}

func TestGetCurrentStock_SinCacheDevuelveElErrorOriginal(t *testing.T) {
	store := memory.NewStore()
	uc := ledger.NewUseCase(store, store.Catalog(), failingStockRepo{}, store.Movements(), cache.NoopStockCache{})

	_, err := uc.GetCurrentStock(context.Background(), "rosa")
	assert.ErrorIs(t, err, errDown)
}

func TestListKardex_RangoYPaginacion(t *testing.T) {
	uc, store := newLedger(t)
	seedItem(t, store, entity.CatalogItem{ID: "rosa", Name: "Rosa", Kind: entity.ItemKindFlower})
	ctx := context.Background()

	cost := dec("1")
	for i := 0; i < 5; i++ {
		require.NoError(t, uc.ApplyMovement(ctx, ledger.MovementInput{
			ItemID: "rosa", Type: entity.MovementTypePURCHASE, Quantity: 1, UnitCost: &cost,
		}))
	}

	page, err := uc.ListKardex(ctx, "rosa", nil, nil, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := uc.ListKardex(ctx, "rosa", nil, nil, 10, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 3)

	_, err = uc.ListKardex(ctx, "no-existe", nil, nil, 10, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListCritical(t *testing.T) {
	uc, store := newLedger(t)
	seedItem(t, store, entity.CatalogItem{ID: "rosa", Name: "Rosa", Kind: entity.ItemKindFlower})
	seedItem(t, store, entity.CatalogItem{ID: "tulipan", Name: "Tulipán", Kind: entity.ItemKindFlower})
	ctx := context.Background()

	cost := dec("2")
	require.NoError(t, uc.ApplyMovement(ctx, ledger.MovementInput{
		ItemID: "rosa", Type: entity.MovementTypePURCHASE, Quantity: 3, UnitCost: &cost,
	}))
	require.NoError(t, uc.ApplyMovement(ctx, ledger.MovementInput{
		ItemID: "tulipan", Type: entity.MovementTypePURCHASE, Quantity: 50, UnitCost: &cost,
	}))
	require.NoError(t, store.Stock().UpdateThreshold("rosa", 5))
	require.NoError(t, store.Stock().UpdateThreshold("tulipan", 5))

	rows, err := uc.ListCritical(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "rosa", rows[0].ItemID)
	assert.Equal(t, "Rosa", rows[0].Name)
}
