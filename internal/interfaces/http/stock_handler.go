package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/floreria-ops/internal/application/dto"
	"github.com/tu-usuario/floreria-ops/internal/application/ledger"
	"github.com/tu-usuario/floreria-ops/internal/domain/entity"
)

// StockHandler maneja las peticiones HTTP del ledger de stock.
type StockHandler struct {
	uc *ledger.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *ledger.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

func toMovementInput(in dto.RegisterMovementRequest, actor string) ledger.MovementInput {
	return ledger.MovementInput{
		ItemID:      in.ItemID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		UnitCost:    in.UnitCost,
		PackageCost: in.PackageCost,
		IsPackage:   in.IsPackage,
		Reference:   in.Reference,
		ActorID:     actor,
	}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.ApplyMovement(c.Context(), toMovementInput(in, actorID(c))); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetCurrentStock(c.Context(), in.ItemID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RegisterBatch godoc
// @Summary      Registrar lote de movimientos (todo-o-nada)
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchMovementRequest  true  "Lote de movimientos"
// @Success      201
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements/batch [post]
func (h *StockHandler) RegisterBatch(c *fiber.Ctx) error {
	var in dto.BatchMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Movements) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "movements no puede estar vacío"})
	}
	actor := actorID(c)
	inputs := make([]ledger.MovementInput, 0, len(in.Movements))
	for _, m := range in.Movements {
		inputs = append(inputs, toMovementInput(m, actor))
	}
	if err := h.uc.ApplyBatch(c.Context(), inputs); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// GetStock godoc
// @Summary      Consultar stock actual de un artículo
// @Tags         stock
// @Produce      json
// @Param        itemId  path  string  true  "ID del artículo"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{itemId} [get]
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	out, err := h.uc.GetCurrentStock(c.Context(), c.Params("itemId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Kardex godoc
// @Summary      Historial de movimientos (kardex) de un artículo
// @Tags         stock
// @Produce      json
// @Param        itemId  path   string  true   "ID del artículo"
// @Param        from    query  string  false  "Fecha inicial (RFC3339 o YYYY-MM-DD)"
// @Param        to      query  string  false  "Fecha final (RFC3339 o YYYY-MM-DD)"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.KardexEntryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/{itemId}/kardex [get]
func (h *StockHandler) Kardex(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	from, ok := parseDateQuery(c.Query("from"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido"})
	}
	to, ok := parseDateQuery(c.Query("to"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido"})
	}
	movements, err := h.uc.ListKardex(c.Context(), c.Params("itemId"), from, to, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.KardexEntryDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, toKardexDTO(m))
	}
	return c.JSON(out)
}

// Critical godoc
// @Summary      Artículos en o bajo su umbral crítico
// @Tags         stock
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {array}  dto.CriticalStockDTO
// @Router       /api/stock/critical [get]
func (h *StockHandler) Critical(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	rows, err := h.uc.ListCritical(c.Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.CriticalStockDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CriticalStockDTO{
			ItemID:            r.ItemID,
			Name:              r.Name,
			Quantity:          r.Quantity,
			CriticalThreshold: r.CriticalThreshold,
			AverageUnitCost:   r.AverageUnitCost,
		})
	}
	return c.JSON(out)
}

func toKardexDTO(m *entity.StockMovement) dto.KardexEntryDTO {
	return dto.KardexEntryDTO{
		ID:             m.ID,
		Type:           m.Type,
		QuantityChange: m.QuantityChange,
		QuantityAfter:  m.QuantityAfter,
		UnitCost:       m.UnitCost,
		Reference:      m.Reference,
		CreatedAt:      m.CreatedAt,
	}
}

// parseDateQuery acepta RFC3339 o fecha simple YYYY-MM-DD; vacío = sin filtro.
func parseDateQuery(raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, true
	}
	return nil, false
}
