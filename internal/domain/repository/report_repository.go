package repository

import "github.com/shopspring/decimal"

// MonthlySales ventas netas y descuentos de un mes (YYYY-MM).
type MonthlySales struct {
	Month    string
	Total    decimal.Decimal
	Discount decimal.Decimal
}

// MonthlyProfit resultado mensual: ingresos - costo de insumos consumidos
// (salidas OUT valoradas al promedio) - gastos.
type MonthlyProfit struct {
	Month    string
	Revenue  decimal.Decimal
	Cogs     decimal.Decimal
	Expenses decimal.Decimal
	Profit   decimal.Decimal
}

// ReportRepository consultas agregadas de solo lectura para reportes.
type ReportRepository interface {
	MonthlySales(months int) ([]MonthlySales, error)
	MonthlyProfit(months int) ([]MonthlyProfit, error)
}
