package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Panaderia-api/internal/application/catalog"
	"github.com/jhoicas/Panaderia-api/internal/application/dto"
)

// OverheadHandler costos indirectos del período (solo admin).
type OverheadHandler struct {
	uc *catalog.UseCase
}

// NewOverheadHandler construye el handler.
func NewOverheadHandler(uc *catalog.UseCase) *OverheadHandler {
	return &OverheadHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar costos indirectos del mes en curso
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOverheadRequest  true  "Rubros y unidades producidas"
// @Success      201   {object}  entity.OverheadConfig
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/overhead [post]
func (h *OverheadHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOverheadRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := dto.Validate(in); err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	out, err := h.uc.CreateOverhead(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetCurrent godoc
// @Summary      Configuración de overhead vigente
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.OverheadConfig
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settings/overhead [get]
func (h *OverheadHandler) GetCurrent(c *fiber.Ctx) error {
	out, err := h.uc.CurrentOverhead(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
