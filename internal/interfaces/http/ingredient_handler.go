package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Panaderia-api/internal/application/catalog"
	costingapp "github.com/jhoicas/Panaderia-api/internal/application/costing"
	"github.com/jhoicas/Panaderia-api/internal/application/dto"
	"github.com/jhoicas/Panaderia-api/internal/application/inventory"
)

// IngredientHandler insumos: alta/edición (admin) y listado con saldos.
type IngredientHandler struct {
	catalogUC   *catalog.UseCase
	inventoryUC *inventory.UseCase
	costingUC   *costingapp.UseCase
}

// NewIngredientHandler construye el handler.
func NewIngredientHandler(catalogUC *catalog.UseCase, inventoryUC *inventory.UseCase, costingUC *costingapp.UseCase) *IngredientHandler {
	return &IngredientHandler{catalogUC: catalogUC, inventoryUC: inventoryUC, costingUC: costingUC}
}

// Create godoc
// @Summary      Crear insumo
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIngredientRequest  true  "Datos del insumo"
// @Success      201   {object}  entity.Ingredient
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ingredients [post]
func (h *IngredientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := dto.Validate(in); err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	out, err := h.catalogUC.CreateIngredient(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar insumo
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del insumo"
// @Param        body  body  dto.UpdateIngredientRequest  true  "Datos a actualizar"
// @Success      200   {object}  entity.Ingredient
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id} [put]
func (h *IngredientHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateIngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := dto.Validate(in); err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	out, err := h.catalogUC.UpdateIngredient(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar insumos con saldo derivado y alerta de stock mínimo
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.IngredientResponse
// @Router       /api/ingredients [get]
func (h *IngredientHandler) List(c *fiber.Ctx) error {
	out, err := h.inventoryUC.ListIngredients(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AverageCost godoc
// @Summary      Costo promedio ponderado de un insumo
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del insumo"
// @Success      200  {object}  map[string]any
// @Router       /api/ingredients/{id}/average-cost [get]
func (h *IngredientHandler) AverageCost(c *fiber.Ctx) error {
	id := c.Params("id")
	avg, err := h.costingUC.AverageCost(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ingredient_id": id, "average_cost": avg})
}
