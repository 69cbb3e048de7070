package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del kardex.
const (
	MovementTypePURCHASE     = "PURCHASE"     // compra (entrada)
	MovementTypeSALE         = "SALE"         // venta (salida)
	MovementTypeSHRINKAGE    = "SHRINKAGE"    // merma (salida)
	MovementTypeADJUSTMENT   = "ADJUSTMENT"   // ajuste manual (cualquier signo)
	MovementTypeCANCELLATION = "CANCELLATION" // reversa por cancelación de pedido (entrada)
)

// IsValidMovementType informa si el valor es un tipo de movimiento conocido.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypePURCHASE, MovementTypeSALE, MovementTypeSHRINKAGE,
		MovementTypeADJUSTMENT, MovementTypeCANCELLATION:
		return true
	}
	return false
}

// StockMovement es una entrada inmutable del kardex: registra un cambio de stock
// con el saldo posterior. Nunca se actualiza ni se borra; solo lo escribe el ledger.
type StockMovement struct {
	ID             string
	ItemID         string
	Type           string
	QuantityChange int64            // con signo: positivo entrada, negativo salida
	QuantityAfter  int64            // saldo del artículo después de aplicar el movimiento
	UnitCost       *decimal.Decimal // costo unitario asociado al movimiento (nil si no aplica)
	Reference      string           // pedido, nota de ajuste, etc.
	CreatedAt      time.Time
	CreatedBy      string // actor que originó el movimiento
}
