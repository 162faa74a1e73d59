package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product es un producto terminado vendible (pan, salgado, etc.).
type Product struct {
	ID        string
	Name      string
	Category  string
	UnitPrice decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
