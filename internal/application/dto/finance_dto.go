package dto

import "github.com/shopspring/decimal"

// FinancialSummaryDTO resumen financiero de un período. Derivado, nunca fuente
// de verdad: siempre reproducible recalculando sobre pedidos + gastos fijos.
type FinancialSummaryDTO struct {
	Period             PeriodDTO       `json:"period"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	TotalCOGS          decimal.Decimal `json:"total_cogs"`
	FixedExpensesTotal decimal.Decimal `json:"fixed_expenses_total"`
	NetProfit          decimal.Decimal `json:"net_profit"`
	MarginPercent      decimal.Decimal `json:"margin_percent"`
}

// PeriodDTO rango de fechas del reporte.
type PeriodDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}
