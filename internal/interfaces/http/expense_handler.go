package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/floreria-ops/internal/application/dto"
	"github.com/tu-usuario/floreria-ops/internal/application/usecase"
)

// ExpenseHandler maneja las peticiones HTTP de gastos fijos.
type ExpenseHandler struct {
	uc *usecase.ExpenseUseCase
}

// NewExpenseHandler construye el handler.
func NewExpenseHandler(uc *usecase.ExpenseUseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar gasto fijo de un período
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "Gasto (period en formato YYYY-MM)"
// @Success      201   {object}  entity.FixedExpense
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	expense, err := h.uc.CreateExpense(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(expense)
}

// List godoc
// @Summary      Listar gastos fijos
// @Tags         expenses
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {array}  entity.FixedExpense
// @Router       /api/expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.uc.ListExpenses(c.Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Delete godoc
// @Summary      Eliminar gasto fijo
// @Tags         expenses
// @Param        id  path  string  true  "ID del gasto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteExpense(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
