package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateIngredientRequest body para POST /api/ingredients (solo admin).
type CreateIngredientRequest struct {
	Name     string          `json:"name" validate:"required,min=2"`
	Unit     string          `json:"unit" validate:"required,min=1"`
	UnitCost decimal.Decimal `json:"unit_cost"`
	MinStock decimal.Decimal `json:"min_stock"`
}

// UpdateIngredientRequest body para PUT /api/ingredients/:id.
type UpdateIngredientRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=2"`
	Unit     *string          `json:"unit" validate:"omitempty,min=1"`
	MinStock *decimal.Decimal `json:"min_stock"`
}

// IngredientResponse insumo con su saldo derivado de movimientos.
type IngredientResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Unit     string          `json:"unit"`
	UnitCost decimal.Decimal `json:"unit_cost"`
	MinStock decimal.Decimal `json:"min_stock"`
	Balance  decimal.Decimal `json:"balance"`
	BelowMin bool            `json:"below_min"`
}

// CreateProductRequest body para POST /api/products (solo admin).
type CreateProductRequest struct {
	Name      string          `json:"name" validate:"required,min=2"`
	Category  string          `json:"category" validate:"required,min=2"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Active    *bool           `json:"active"`
}

// UpdateProductRequest body para PUT /api/products/:id.
type UpdateProductRequest struct {
	Name      *string          `json:"name" validate:"omitempty,min=2"`
	Category  *string          `json:"category" validate:"omitempty,min=2"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Active    *bool            `json:"active"`
}

// RecipeItemRequest ítem de receta.
type RecipeItemRequest struct {
	IngredientID string          `json:"ingredient_id" validate:"required,uuid4"`
	QtyPerBatch  decimal.Decimal `json:"qty_per_batch"`
	Unit         string          `json:"unit" validate:"required,min=1"`
}

// UpsertRecipeRequest body para POST /api/recipes: crea o reemplaza la
// receta del producto con sus ítems.
type UpsertRecipeRequest struct {
	ProductID  string              `json:"product_id" validate:"required,uuid4"`
	YieldUnits int                 `json:"yield_units" validate:"required,min=1"`
	Notes      string              `json:"notes"`
	Items      []RecipeItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateOverheadRequest body para POST /api/settings/overhead (solo admin).
type CreateOverheadRequest struct {
	GasCost       decimal.Decimal `json:"gas_cost"`
	EnergyCost    decimal.Decimal `json:"energy_cost"`
	WaterCost     decimal.Decimal `json:"water_cost"`
	PackagingCost decimal.Decimal `json:"packaging_cost"`
	OtherCost     decimal.Decimal `json:"other_cost"`
	UnitsProduced int             `json:"units_produced" validate:"required,min=1"`
}

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ProductCostResponse desglose de costo unitario de un producto.
// Insumos y overhead se devuelven por separado, nunca pre-sumados.
type ProductCostResponse struct {
	ProductID          string           `json:"product_id"`
	IngredientUnitCost decimal.Decimal  `json:"ingredient_unit_cost"`
	OverheadUnitCost   decimal.Decimal  `json:"overhead_unit_cost"`
	SuggestedPrice     *decimal.Decimal `json:"suggested_price,omitempty"`
	CalculatedAt       time.Time        `json:"calculated_at"`
}
