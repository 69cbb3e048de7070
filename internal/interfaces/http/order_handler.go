package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/floreria-ops/internal/application/dto"
	"github.com/tu-usuario/floreria-ops/internal/application/orders"
	"github.com/tu-usuario/floreria-ops/internal/domain/entity"
)

// OrderHandler maneja las peticiones HTTP de pedidos.
type OrderHandler struct {
	uc *orders.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido (congela costos y descuenta stock)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Pedido"
// @Success      201   {object}  dto.OrderDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.CreateOrder(c.Context(), actorID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderDTO(order))
}

// GetByID godoc
// @Summary      Obtener pedido por ID
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toOrderDTO(order))
}

// List godoc
// @Summary      Listar pedidos (recientes primero)
// @Tags         orders
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {array}  dto.OrderDTO
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.uc.ListOrders(c.Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.OrderDTO, 0, len(list))
	for _, order := range list {
		out = append(out, toOrderDTO(order))
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido
// @Description  Transiciones válidas: pendiente→en_armado|cancelado, en_armado→entregado|cancelado. Cancelar repone el stock de las líneas vinculadas al costo congelado.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.OrderDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in.Status, actorID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toOrderDTO(order))
}

// Cancel godoc
// @Summary      Cancelar pedido
// @Description  Atajo de PATCH /status con estado cancelado: repone el stock de las líneas vinculadas al costo congelado.
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	order, err := h.uc.CancelOrder(c.Context(), c.Params("id"), actorID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toOrderDTO(order))
}

// Update godoc
// @Summary      Actualizar datos no-estado del pedido (cliente)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.OrderDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.UpdateOrder(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toOrderDTO(order))
}

func toOrderDTO(order *entity.Order) dto.OrderDTO {
	out := dto.OrderDTO{
		ID:        order.ID,
		ClientID:  order.ClientID,
		Status:    order.Status,
		Total:     order.Total,
		Items:     make([]dto.OrderItemDTO, 0, len(order.Items)),
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
	for _, line := range order.Items {
		out.Items = append(out.Items, dto.OrderItemDTO{
			ID:       line.ID,
			ItemID:   line.ItemID,
			Name:     line.Name,
			Quantity: line.Quantity,
			Price:    line.Price,
			UnitCost: line.UnitCost,
		})
	}
	return out
}
