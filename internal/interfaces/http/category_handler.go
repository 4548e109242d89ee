package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/catalog-api/internal/application/dto"
	"github.com/tu-usuario/catalog-api/internal/application/usecase"
	"github.com/tu-usuario/catalog-api/internal/application/validation"
)

// CategoryHandler lectura pública y administración de categorías.
type CategoryHandler struct {
	uc       *usecase.CategoryUseCase
	validate *validation.Validator
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, validate *validation.Validator) *CategoryHandler {
	return &CategoryHandler{uc: uc, validate: validate}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Produce      json
// @Param        page             query  int     false  "Página"  default(1)
// @Param        limit            query  int     false  "Tamaño de página"  default(10)
// @Param        search           query  string  false  "Busca en nombre y descripción"
// @Param        includeInactive  query  bool    false  "Incluir inactivas"
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	var q dto.ListCategoriesQuery
	if err := c.QueryParser(&q); err != nil {
		return respondBadBody(c)
	}
	if details := h.validate.Struct(q); details != nil {
		return respondValidation(c, details)
	}
	items, meta, err := h.uc.List(q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{
		Data: fiber.Map{"categories": items, "pagination": meta},
	})
}

// Tree godoc
// @Summary      Árbol de categorías activas
// @Tags         categories
// @Produce      json
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/categories/tree [get]
func (h *CategoryHandler) Tree(c *fiber.Ctx) error {
	items, err := h.uc.Tree()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Data: fiber.Map{"categories": items}})
}

// GetByID godoc
// @Summary      Obtener categoría por ID
// @Tags         categories
// @Produce      json
// @Param        id  path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Data: fiber.Map{"category": out}})
}

// GetBySlug godoc
// @Summary      Obtener categoría por slug
// @Tags         categories
// @Produce      json
// @Param        slug  path  string  true  "Slug de la categoría"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories/slug/{slug} [get]
func (h *CategoryHandler) GetBySlug(c *fiber.Ctx) error {
	out, err := h.uc.GetBySlug(c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Data: fiber.Map{"category": out}})
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if details := h.validate.Struct(in); details != nil {
		return respondValidation(c, details)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{
		Message: "Category created successfully",
		Data:    fiber.Map{"category": out},
	})
}

// Update godoc
// @Summary      Actualizar categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if details := h.validate.Struct(in); details != nil {
		return respondValidation(c, details)
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{
		Message: "Category updated successfully",
		Data:    fiber.Map{"category": out},
	})
}

// Delete godoc
// @Summary      Eliminar categoría
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Message: "Category deleted successfully"})
}

// ToggleStatus godoc
// @Summary      Activar/desactivar categoría
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/toggle-status [patch]
func (h *CategoryHandler) ToggleStatus(c *fiber.Ctx) error {
	out, err := h.uc.ToggleStatus(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	msg := "Category activated successfully"
	if !out.IsActive {
		msg = "Category deactivated successfully"
	}
	return c.JSON(dto.SuccessResponse{Message: msg, Data: fiber.Map{"category": out}})
}
