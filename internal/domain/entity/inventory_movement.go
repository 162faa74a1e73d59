package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN  = "IN"  // entrada (compra)
	MovementTypeOUT = "OUT" // salida (consumo de producción)
	MovementTypeADJ = "ADJ" // ajuste con signo
)

// InventoryMovement es un asiento del libro de inventario. Append-only:
// nunca se modifica ni se borra. UnitCost es obligatorio y > 0 en IN;
// en OUT lleva el costo promedio vigente al momento de la salida.
type InventoryMovement struct {
	ID           string
	IngredientID string
	Type         string
	Qty          decimal.Decimal // 3 decimales; con signo solo en ADJ
	UnitCost     *decimal.Decimal
	Reason       string
	CreatedAt    time.Time
	CreatedBy    string
}

// TotalCost devuelve qty*unitCost (cero si el movimiento no lleva costo).
func (m *InventoryMovement) TotalCost() decimal.Decimal {
	if m.UnitCost == nil {
		return decimal.Zero
	}
	return m.Qty.Mul(*m.UnitCost)
}
