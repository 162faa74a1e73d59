package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient representa un insumo de producción (harina, levadura, etc.).
// UnitCost es un costo cacheado (último promedio conocido); el saldo NUNCA
// se guarda aquí: se deriva de inventory_movements.
type Ingredient struct {
	ID        string
	Name      string
	Unit      string // kg, L, un
	UnitCost  decimal.Decimal
	MinStock  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
