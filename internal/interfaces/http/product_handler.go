package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/recipe"
)

// ProductHandler maneja las peticiones HTTP de la carta y sus recetas (protegido).
type ProductHandler struct {
	uc *recipe.CatalogUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *recipe.CatalogUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.CreateProduct(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Solo productos activos"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListProducts(c.Context(), c.QueryBool("active", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Recipe godoc
// @Summary      Receta del producto
// @Description  Líneas de receta con el costo promedio vigente de cada insumo.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {array}   dto.RecipeLineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/recipe [get]
func (h *ProductHandler) Recipe(c *fiber.Ctx) error {
	breakdown, err := h.uc.RecipeCostBreakdown(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(breakdown.Lines)
}

// SetRecipeLine godoc
// @Summary      Fijar cantidad de un insumo en la receta
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id            path  string                    true  "ID del producto"
// @Param        ingredientId  path  string                    true  "ID del insumo"
// @Param        body          body  dto.SetRecipeLineRequest  true  "quantity_per_unit"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/recipe/{ingredientId} [put]
func (h *ProductHandler) SetRecipeLine(c *fiber.Ctx) error {
	var in dto.SetRecipeLineRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.SetRecipeLine(c.Context(), c.Params("id"), c.Params("ingredientId"), in.QuantityPerUnit); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "receta actualizada"})
}

// RemoveRecipeLine godoc
// @Summary      Quitar un insumo de la receta
// @Tags         products
// @Security     Bearer
// @Param        id            path  string  true  "ID del producto"
// @Param        ingredientId  path  string  true  "ID del insumo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/recipe/{ingredientId} [delete]
func (h *ProductHandler) RemoveRecipeLine(c *fiber.Ctx) error {
	if err := h.uc.RemoveRecipeLine(c.Context(), c.Params("id"), c.Params("ingredientId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RecipeCost godoc
// @Summary      CMV unitario y margen de contribución
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {object}  dto.RecipeCostResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/recipe-cost [get]
func (h *ProductHandler) RecipeCost(c *fiber.Ctx) error {
	out, err := h.uc.RecipeCostBreakdown(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
