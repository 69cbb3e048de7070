package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/floreria-ops/internal/application/dto"
	"github.com/tu-usuario/floreria-ops/internal/application/usecase"
)

// ClientHandler maneja las peticiones HTTP de clientes.
type ClientHandler struct {
	uc *usecase.ClientUseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *usecase.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClientRequest  true  "Cliente"
// @Success      201   {object}  entity.Client
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	client, err := h.uc.CreateClient(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// GetByID godoc
// @Summary      Obtener cliente por ID
// @Tags         clients
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  entity.Client
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	client, err := h.uc.GetClient(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(client)
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.CreateClientRequest  true  "Datos del cliente"
// @Success      200   {object}  entity.Client
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	client, err := h.uc.UpdateClient(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(client)
}

// List godoc
// @Summary      Listar clientes
// @Tags         clients
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {array}  entity.Client
// @Router       /api/clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.uc.ListClients(c.Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
