package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/floreria-ops/internal/domain/entity"
)

// Matriz completa de la máquina de estados de pedidos.
func TestCanTransition(t *testing.T) {
	allowed := map[[2]string]bool{
		{entity.OrderStatusPendiente, entity.OrderStatusEnArmado}:  true,
		{entity.OrderStatusPendiente, entity.OrderStatusCancelado}: true,
		{entity.OrderStatusEnArmado, entity.OrderStatusEntregado}:  true,
		{entity.OrderStatusEnArmado, entity.OrderStatusCancelado}:  true,
	}
	statuses := []string{
		entity.OrderStatusPendiente, entity.OrderStatusEnArmado,
		entity.OrderStatusEntregado, entity.OrderStatusCancelado,
	}
	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[[2]string{from, to}]
			assert.Equal(t, want, entity.CanTransition(from, to), "%s → %s", from, to)
		}
	}
}

func TestOrderIsTerminal(t *testing.T) {
	assert.False(t, (&entity.Order{Status: entity.OrderStatusPendiente}).IsTerminal())
	assert.False(t, (&entity.Order{Status: entity.OrderStatusEnArmado}).IsTerminal())
	assert.True(t, (&entity.Order{Status: entity.OrderStatusEntregado}).IsTerminal())
	assert.True(t, (&entity.Order{Status: entity.OrderStatusCancelado}).IsTerminal())
}

func TestIsValidMovementType(t *testing.T) {
	for _, mt := range []string{"PURCHASE", "SALE", "SHRINKAGE", "ADJUSTMENT", "CANCELLATION"} {
		assert.True(t, entity.IsValidMovementType(mt), mt)
	}
	assert.False(t, entity.IsValidMovementType("purchase"))
	assert.False(t, entity.IsValidMovementType("REGALO"))
}

func TestIsValidKindAndStatus(t *testing.T) {
	assert.True(t, entity.IsValidKind(entity.ItemKindFlower))
	assert.True(t, entity.IsValidKind(entity.ItemKindProduct))
	assert.False(t, entity.IsValidKind("planta"))

	assert.True(t, entity.IsValidOrderStatus("pendiente"))
	assert.False(t, entity.IsValidOrderStatus("empacado"))
}
