package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense gasto operativo. Nace siempre emparejado 1:1 con un asiento OUT
// del libro de caja, creado en la misma transacción.
type Expense struct {
	ID            string
	Date          time.Time
	Category      string
	Description   string
	Amount        decimal.Decimal
	PaymentMethod string
	CreatedAt     time.Time
}
