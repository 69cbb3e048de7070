package repository

import "github.com/tu-usuario/floreria-ops/internal/domain/entity"

// ExpenseRepository define el puerto de persistencia para gastos fijos.
type ExpenseRepository interface {
	Create(expense *entity.FixedExpense) error
	GetByID(id string) (*entity.FixedExpense, error)
	Delete(id string) error
	List(limit, offset int) ([]*entity.FixedExpense, error)
	// ListByPeriodRange devuelve gastos con período entre fromPeriod y toPeriod
	// (YYYY-MM, inclusive; el orden lexicográfico coincide con el cronológico).
	ListByPeriodRange(fromPeriod, toPeriod string) ([]*entity.FixedExpense, error)
}
