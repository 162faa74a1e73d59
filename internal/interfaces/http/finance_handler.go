package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Panaderia-api/internal/application/dto"
	"github.com/jhoicas/Panaderia-api/internal/application/finance"
)

// FinanceHandler gastos, libro de caja, cierre diario y reportes.
type FinanceHandler struct {
	uc *finance.UseCase
}

// NewFinanceHandler construye el handler.
func NewFinanceHandler(uc *finance.UseCase) *FinanceHandler {
	return &FinanceHandler{uc: uc}
}

// CreateExpense godoc
// @Summary      Registrar gasto (crea su asiento OUT de caja emparejado)
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "Gasto"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *FinanceHandler) CreateExpense(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := dto.Validate(in); err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	out, err := h.uc.CreateExpense(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListExpenses godoc
// @Summary      Listar gastos recientes
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(100)
// @Success      200  {array}  dto.ExpenseResponse
// @Router       /api/expenses [get]
func (h *FinanceHandler) ListExpenses(c *fiber.Ctx) error {
	out, err := h.uc.ListExpenses(c.UserContext(), c.QueryInt("limit", 100))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListCashbook godoc
// @Summary      Listar asientos de caja (opcionalmente filtrados por día)
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        date   query  string  false  "Día (YYYY-MM-DD)"
// @Param        limit  query  int     false  "Límite"  default(200)
// @Success      200  {array}  dto.CashbookEntryResponse
// @Router       /api/cashbook [get]
func (h *FinanceHandler) ListCashbook(c *fiber.Ctx) error {
	var day *time.Time
	if raw := c.Query("date"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return badRequest(c, "VALIDATION", "date debe ser YYYY-MM-DD")
		}
		day = &d
	}
	out, err := h.uc.ListCashbook(c.UserContext(), day, c.QueryInt("limit", 200))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CashClose godoc
// @Summary      Cierre de caja del día (agregación de solo lectura)
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CashCloseRequest  true  "Fecha y notas"
// @Success      200   {object}  dto.CashCloseResponse
// @Router       /api/finance/cash-close [post]
func (h *FinanceHandler) CashClose(c *fiber.Ctx) error {
	var in dto.CashCloseRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.CashClose(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MonthlySales godoc
// @Summary      Reporte mensual de ventas netas y descuentos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        months  query  int  false  "Meses hacia atrás"  default(6)
// @Success      200  {array}  dto.MonthlySalesResponse
// @Router       /api/reports/sales-monthly [get]
func (h *FinanceHandler) MonthlySales(c *fiber.Ctx) error {
	out, err := h.uc.MonthlySales(c.UserContext(), c.QueryInt("months", 6))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MonthlyProfit godoc
// @Summary      Reporte mensual de resultado (ingresos - COGS - gastos)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        months  query  int  false  "Meses hacia atrás"  default(6)
// @Success      200  {array}  dto.MonthlyProfitResponse
// @Router       /api/reports/profit-monthly [get]
func (h *FinanceHandler) MonthlyProfit(c *fiber.Ctx) error {
	out, err := h.uc.MonthlyProfit(c.UserContext(), c.QueryInt("months", 6))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
