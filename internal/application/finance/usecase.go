package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/floreria-ops/internal/application/dto"
	"github.com/tu-usuario/floreria-ops/internal/domain"
	"github.com/tu-usuario/floreria-ops/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// UseCase recalcula el resumen financiero bajo demanda leyendo pedidos y
// gastos fijos del período; nunca confía en un valor cacheado como fuente de verdad.
type UseCase struct {
	orderRepo   repository.OrderRepository
	expenseRepo repository.ExpenseRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(orderRepo repository.OrderRepository, expenseRepo repository.ExpenseRepository) *UseCase {
	return &UseCase{orderRepo: orderRepo, expenseRepo: expenseRepo}
}

// GetSummary calcula el resumen del rango [startDate, endDate] (YYYY-MM-DD).
// Sin fechas, usa el mes en curso.
func (uc *UseCase) GetSummary(ctx context.Context, startDate, endDate string) (*dto.FinancialSummaryDTO, error) {
	from, to, err := parsePeriod(startDate, endDate)
	if err != nil {
		return nil, err
	}

	orders, err := uc.orderRepo.ListByRange(from, to)
	if err != nil {
		return nil, fmt.Errorf("resumen: pedidos: %w", err)
	}
	expenses, err := uc.expenseRepo.ListByPeriodRange(from.Format("2006-01"), to.Format("2006-01"))
	if err != nil {
		return nil, fmt.Errorf("resumen: gastos fijos: %w", err)
	}

	summary := Summarize(orders, expenses)
	summary.Period = dto.PeriodDTO{
		StartDate: from.Format(dateLayout),
		EndDate:   to.Format(dateLayout),
	}
	return &summary, nil
}

// parsePeriod interpreta el rango pedido; por defecto el mes en curso.
// El límite superior es inclusivo: se extiende al final del día.
func parsePeriod(startDate, endDate string) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	if startDate != "" {
		parsed, err := time.Parse(dateLayout, startDate)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidInput
		}
		from = parsed
	}
	if endDate != "" {
		parsed, err := time.Parse(dateLayout, endDate)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidInput
		}
		to = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	return from, to, nil
}
