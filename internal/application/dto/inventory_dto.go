package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// UnitCost es obligatorio (> 0) cuando Type == IN.
type RegisterMovementRequest struct {
	IngredientID string           `json:"ingredient_id" validate:"required,uuid4"`
	Type         string           `json:"type" validate:"required,oneof=IN OUT ADJ"`
	Qty          decimal.Decimal  `json:"qty"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	Reason       string           `json:"reason" validate:"required,min=3"`
}

// MovementResponse movimiento registrado.
type MovementResponse struct {
	ID           string           `json:"id"`
	IngredientID string           `json:"ingredient_id"`
	Type         string           `json:"type"`
	Qty          decimal.Decimal  `json:"qty"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	Reason       string           `json:"reason"`
	CreatedAt    time.Time        `json:"created_at"`
	CreatedBy    string           `json:"created_by,omitempty"`
}
