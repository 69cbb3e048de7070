package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/floreria-ops/internal/domain"
	"github.com/tu-usuario/floreria-ops/internal/domain/entity"
	"github.com/tu-usuario/floreria-ops/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementación de ExpenseRepository sobre PostgreSQL.
type ExpenseRepo struct {
	q Querier
}

func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

func (r *ExpenseRepo) Create(expense *entity.FixedExpense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	query := `
		INSERT INTO fixed_expenses (id, name, amount, period, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		expense.ID, expense.Name, expense.Amount, expense.Period, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepo) GetByID(id string) (*entity.FixedExpense, error) {
	query := `SELECT id, name, amount, period, created_at FROM fixed_expenses WHERE id = $1`
	var e entity.FixedExpense
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.Name, &e.Amount, &e.Period, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return &e, nil
}

func (r *ExpenseRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM fixed_expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ExpenseRepo) List(limit, offset int) ([]*entity.FixedExpense, error) {
	query := `
		SELECT id, name, amount, period, created_at
		FROM fixed_expenses ORDER BY period DESC, name LIMIT $1 OFFSET $2`
	return r.queryExpenses(query, limit, offset)
}

// ListByPeriodRange lista gastos cuyo periodo (YYYY-MM) cae dentro del rango.
// El formato ordena lexicográficamente, así que BETWEEN es suficiente.
func (r *ExpenseRepo) ListByPeriodRange(fromPeriod, toPeriod string) ([]*entity.FixedExpense, error) {
	query := `
		SELECT id, name, amount, period, created_at
		FROM fixed_expenses WHERE period BETWEEN $1 AND $2 ORDER BY period, name`
	return r.queryExpenses(query, fromPeriod, toPeriod)
}

func (r *ExpenseRepo) queryExpenses(query string, args ...any) ([]*entity.FixedExpense, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.FixedExpense
	for rows.Next() {
		var e entity.FixedExpense
		if err := rows.Scan(&e.ID, &e.Name, &e.Amount, &e.Period, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
