package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asiento de caja.
const (
	CashbookTypeIN  = "IN"
	CashbookTypeOUT = "OUT"
)

// Tablas de origen referenciadas desde el libro de caja.
const (
	CashbookRefSalesOrder = "SalesOrder"
	CashbookRefExpense    = "Expense"
)

// CashbookEntry asiento del libro de caja, siempre cruzado con la entidad
// que lo originó (RefTable + RefID). La unicidad de (ref_table, ref_id)
// para asientos IN garantiza un solo cobro por pedido pagado.
type CashbookEntry struct {
	ID            string
	Date          time.Time
	Type          string
	Description   string
	Amount        decimal.Decimal
	PaymentMethod string
	RefTable      string
	RefID         string
	CreatedAt     time.Time
}
