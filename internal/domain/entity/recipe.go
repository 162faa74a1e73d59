package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe define la fórmula de un producto: una receta por producto,
// con el rendimiento (YieldUnits) de un lote completo.
type Recipe struct {
	ID         string
	ProductID  string
	YieldUnits int // >= 1
	Notes      string
	Items      []RecipeItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RecipeItem cantidad de un insumo por lote completo.
type RecipeItem struct {
	ID           string
	RecipeID     string
	IngredientID string
	QtyPerBatch  decimal.Decimal
	Unit         string
}
