package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/floreria-ops/internal/application/dto"
	"github.com/tu-usuario/floreria-ops/internal/application/usecase"
)

// CatalogHandler maneja las peticiones HTTP del catálogo de artículos.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// Create godoc
// @Summary      Crear artículo del catálogo (nace con stock en cero)
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Artículo"
// @Success      201   {object}  dto.CatalogItemDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.CreateItem(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(usecase.ToItemDTO(item))
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         catalog
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.CatalogItemDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *CatalogHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.uc.GetItem(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(usecase.ToItemDTO(item))
}

// List godoc
// @Summary      Listar catálogo
// @Tags         catalog
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {array}  dto.CatalogItemDTO
// @Router       /api/items [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	items, err := h.uc.ListItems(c.Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.CatalogItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, usecase.ToItemDTO(item))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar artículo
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del artículo"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CatalogItemDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.UpdateItem(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(usecase.ToItemDTO(item))
}
