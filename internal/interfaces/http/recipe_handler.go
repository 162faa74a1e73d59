package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Panaderia-api/internal/application/catalog"
	"github.com/jhoicas/Panaderia-api/internal/application/dto"
)

// RecipeHandler recetas (una por producto).
type RecipeHandler struct {
	uc *catalog.UseCase
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(uc *catalog.UseCase) *RecipeHandler {
	return &RecipeHandler{uc: uc}
}

// Upsert godoc
// @Summary      Crear o reemplazar la receta de un producto
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertRecipeRequest  true  "Receta completa con ítems"
// @Success      200   {object}  entity.Recipe
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/recipes [post]
func (h *RecipeHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := dto.Validate(in); err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	out, err := h.uc.UpsertRecipe(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByProduct godoc
// @Summary      Receta de un producto
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  entity.Recipe
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/recipes/product/{productId} [get]
func (h *RecipeHandler) GetByProduct(c *fiber.Ctx) error {
	out, err := h.uc.GetRecipeByProduct(c.UserContext(), c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar recetas
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Recipe
// @Router       /api/recipes [get]
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListRecipes(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
