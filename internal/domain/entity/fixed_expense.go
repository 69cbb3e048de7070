package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FixedExpense representa un gasto fijo del negocio asignado a un período mensual.
type FixedExpense struct {
	ID        string
	Name      string
	Amount    decimal.Decimal
	Period    string // YYYY-MM
	CreatedAt time.Time
}
