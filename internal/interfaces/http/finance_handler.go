package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/floreria-ops/internal/application/finance"
)

// FinanceHandler maneja las peticiones HTTP del resumen financiero.
type FinanceHandler struct {
	uc *finance.UseCase
}

// NewFinanceHandler construye el handler.
func NewFinanceHandler(uc *finance.UseCase) *FinanceHandler {
	return &FinanceHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen financiero del período
// @Description  Ingresos, COGS, gastos fijos, utilidad neta y margen. Los pedidos cancelados no cuentan. Sin fechas: mes calendario actual.
// @Tags         finance
// @Produce      json
// @Param        start_date  query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        end_date    query  string  false  "Fecha final YYYY-MM-DD (inclusive)"
// @Success      200  {object}  dto.FinancialSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/finance/summary [get]
func (h *FinanceHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
