package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
)

// InventoryMovementRepository puerto de persistencia para movimientos de
// inventario. El libro es append-only: no hay Update ni Delete.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	ListByIngredient(ingredientID string, limit int) ([]*entity.InventoryMovement, error)
	List(limit int) ([]*entity.InventoryMovement, error)
	// AverageInCost promedio ponderado por cantidad sobre TODOS los IN del
	// insumo (SUM(qty*unit_cost)/SUM(qty) en SQL); 0 si no hay entradas.
	AverageInCost(ingredientID string) (decimal.Decimal, error)
	// Balance saldo derivado: IN + ADJ - OUT.
	Balance(ingredientID string) (decimal.Decimal, error)
	CountByIngredient(ingredientID string) (int, error)
}
