package finance

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/floreria-ops/internal/application/dto"
	"github.com/tu-usuario/floreria-ops/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Summarize es el fold puro del agregador financiero: recorre pedidos y
// gastos fijos y produce ingresos, COGS, utilidad neta y margen del período.
// Los pedidos cancelados quedan fuera de todos los totales. El COGS usa el
// costo congelado de cada línea, nunca el costo vivo del catálogo o del ledger.
func Summarize(orders []*entity.Order, expenses []*entity.FixedExpense) dto.FinancialSummaryDTO {
	var revenue, cogs, expensesTotal decimal.Decimal

	for _, order := range orders {
		if order.Status == entity.OrderStatusCancelado {
			continue
		}
		for _, line := range order.Items {
			qty := decimal.NewFromInt(line.Quantity)
			revenue = revenue.Add(line.Price.Mul(qty))
			cogs = cogs.Add(line.UnitCost.Mul(qty))
		}
	}
	for _, expense := range expenses {
		expensesTotal = expensesTotal.Add(expense.Amount)
	}

	net := revenue.Sub(cogs).Sub(expensesTotal)
	margin := decimal.Zero
	if revenue.GreaterThan(decimal.Zero) {
		margin = net.Div(revenue).Mul(hundred)
	}

	return dto.FinancialSummaryDTO{
		TotalRevenue:       revenue,
		TotalCOGS:          cogs,
		FixedExpensesTotal: expensesTotal,
		NetProfit:          net,
		MarginPercent:      margin,
	}
}
