package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest body para POST /api/expenses.
type CreateExpenseRequest struct {
	Date          time.Time       `json:"date" validate:"required"`
	Category      string          `json:"category" validate:"required,min=2"`
	Description   string          `json:"description" validate:"required,min=3"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=PIX CASH CARD BOLETO"`
}

// ExpenseResponse gasto registrado.
type ExpenseResponse struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
}

// CashbookEntryResponse asiento de caja.
type CashbookEntryResponse struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Type          string          `json:"type"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	RefTable      string          `json:"ref_table,omitempty"`
	RefID         string          `json:"ref_id,omitempty"`
}

// CashCloseRequest body para POST /api/finance/cash-close.
type CashCloseRequest struct {
	Date  *time.Time `json:"date"`
	Notes string     `json:"notes"`
}

// CashCloseTotal total del día por (método de pago, tipo).
type CashCloseTotal struct {
	PaymentMethod string          `json:"payment_method"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
}

// CashCloseResponse resumen de cierre diario (solo lectura).
type CashCloseResponse struct {
	Date   time.Time        `json:"date"`
	Notes  string           `json:"notes"`
	Totals []CashCloseTotal `json:"totals"`
}

// MonthlySalesResponse fila del reporte mensual de ventas.
type MonthlySalesResponse struct {
	Month    string          `json:"month"`
	Total    decimal.Decimal `json:"total"`
	Discount decimal.Decimal `json:"discount"`
}

// MonthlyProfitResponse fila del reporte mensual de resultado.
type MonthlyProfitResponse struct {
	Month    string          `json:"month"`
	Revenue  decimal.Decimal `json:"revenue"`
	Cogs     decimal.Decimal `json:"cogs"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}
