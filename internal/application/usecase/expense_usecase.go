package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/floreria-ops/internal/application/dto"
	"github.com/tu-usuario/floreria-ops/internal/domain"
	"github.com/tu-usuario/floreria-ops/internal/domain/entity"
	"github.com/tu-usuario/floreria-ops/internal/domain/repository"
)

// ExpenseUseCase CRUD de gastos fijos; el agregador financiero los consume por período.
type ExpenseUseCase struct {
	expenseRepo repository.ExpenseRepository
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(expenseRepo repository.ExpenseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{expenseRepo: expenseRepo}
}

// CreateExpense registra un gasto fijo en un período YYYY-MM.
func (uc *ExpenseUseCase) CreateExpense(ctx context.Context, in dto.CreateExpenseRequest) (*entity.FixedExpense, error) {
	if in.Name == "" || in.Amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if _, err := time.Parse("2006-01", in.Period); err != nil {
		return nil, domain.ErrInvalidInput
	}
	expense := &entity.FixedExpense{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Amount:    in.Amount,
		Period:    in.Period,
		CreatedAt: time.Now(),
	}
	if err := uc.expenseRepo.Create(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpenses lista gastos paginados.
func (uc *ExpenseUseCase) ListExpenses(ctx context.Context, limit, offset int) ([]*entity.FixedExpense, error) {
	return uc.expenseRepo.List(limit, offset)
}

// DeleteExpense elimina un gasto fijo.
func (uc *ExpenseUseCase) DeleteExpense(ctx context.Context, id string) error {
	expense, err := uc.expenseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if expense == nil {
		return domain.ErrNotFound
	}
	return uc.expenseRepo.Delete(id)
}
