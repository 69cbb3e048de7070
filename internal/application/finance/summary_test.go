package finance_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/floreria-ops/internal/application/finance"
	"github.com/tu-usuario/floreria-ops/internal/domain"
	"github.com/tu-usuario/floreria-ops/internal/domain/entity"
	"github.com/tu-usuario/floreria-ops/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func order(status string, lines ...entity.OrderItem) *entity.Order {
	return &entity.Order{Status: status, Items: lines}
}

func line(qty int64, price, unitCost string) entity.OrderItem {
	return entity.OrderItem{Quantity: qty, Price: dec(price), UnitCost: dec(unitCost)}
}

func TestSummarize_Totales(t *testing.T) {
	orders := []*entity.Order{
		// Ingresos 3*5 + 1*20 = 35; COGS 3*2 + 1*8 = 14
		order(entity.OrderStatusEntregado, line(3, "5", "2"), line(1, "20", "8")),
		// pendiente también cuenta: solo cancelado queda fuera
		order(entity.OrderStatusPendiente, line(2, "10", "4")),
	}
	expenses := []*entity.FixedExpense{
		{Amount: dec("10")},
		{Amount: dec("5.50")},
	}

	s := finance.Summarize(orders, expenses)
	assert.True(t, dec("55").Equal(s.TotalRevenue), "revenue %s", s.TotalRevenue)
	assert.True(t, dec("22").Equal(s.TotalCOGS), "cogs %s", s.TotalCOGS)
	assert.True(t, dec("15.50").Equal(s.FixedExpensesTotal))
	assert.True(t, dec("17.50").Equal(s.NetProfit))
	// 17.50 / 55 * 100
	expectedMargin := dec("17.50").Div(dec("55")).Mul(dec("100"))
	assert.True(t, expectedMargin.Equal(s.MarginPercent))
}

func TestSummarize_CanceladosQuedanFuera(t *testing.T) {
	orders := []*entity.Order{
		order(entity.OrderStatusEntregado, line(1, "10", "3")),
		order(entity.OrderStatusCancelado, line(100, "999", "500")),
	}

	s := finance.Summarize(orders, nil)
	assert.True(t, dec("10").Equal(s.TotalRevenue))
	assert.True(t, dec("3").Equal(s.TotalCOGS))
}

func TestSummarize_SinIngresosMargenCero(t *testing.T) {
	s := finance.Summarize(nil, []*entity.FixedExpense{{Amount: dec("100")}})
	assert.True(t, s.TotalRevenue.IsZero())
	assert.True(t, dec("-100").Equal(s.NetProfit))
	assert.True(t, s.MarginPercent.IsZero(), "sin ingresos el margen es 0, no división por cero")
}

func TestGetSummary_FiltraPorRango(t *testing.T) {
	store := memory.NewStore()
	uc := finance.NewUseCase(store.Orders(), store.Expenses())
	ctx := context.Background()

	in := func(day string) time.Time {
		ts, err := time.Parse("2006-01-02", day)
		require.NoError(t, err)
		return ts
	}
	mk := func(id, day string, status string, l entity.OrderItem) {
		require.NoError(t, store.Orders().Create(&entity.Order{
			ID: id, ClientID: "maria", Status: status,
			Items: []entity.OrderItem{l}, CreatedAt: in(day),
		}))
	}
	mk("o1", "2026-03-05", entity.OrderStatusEntregado, line(2, "10", "4"))
	mk("o2", "2026-03-20", entity.OrderStatusCancelado, line(1, "50", "25"))
	mk("o3", "2026-04-02", entity.OrderStatusEntregado, line(1, "100", "60"))

	require.NoError(t, store.Expenses().Create(&entity.FixedExpense{ID: "e1", Name: "Arriendo", Amount: dec("7"), Period: "2026-03"}))
	require.NoError(t, store.Expenses().Create(&entity.FixedExpense{ID: "e2", Name: "Arriendo", Amount: dec("9"), Period: "2026-04"}))

	s, err := uc.GetSummary(ctx, "2026-03-01", "2026-03-31")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", s.Period.StartDate)
	assert.Equal(t, "2026-03-31", s.Period.EndDate)
	assert.True(t, dec("20").Equal(s.TotalRevenue), "solo o1: o2 cancelado, o3 fuera de rango")
	assert.True(t, dec("8").Equal(s.TotalCOGS))
	assert.True(t, dec("7").Equal(s.FixedExpensesTotal))
	assert.True(t, dec("5").Equal(s.NetProfit))
}

func TestGetSummary_FechasInvalidas(t *testing.T) {
	store := memory.NewStore()
	uc := finance.NewUseCase(store.Orders(), store.Expenses())
	ctx := context.Background()

	_, err := uc.GetSummary(ctx, "03/01/2026", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetSummary(ctx, "2026-03-31", "2026-03-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
