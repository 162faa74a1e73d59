package repository

import "github.com/jhoicas/Panaderia-api/internal/domain/entity"

// IngredientRepository puerto de persistencia para insumos.
type IngredientRepository interface {
	Create(ingredient *entity.Ingredient) error
	Update(ingredient *entity.Ingredient) error
	GetByID(id string) (*entity.Ingredient, error)
	// GetForUpdate bloquea la fila del insumo (SELECT FOR UPDATE) para
	// serializar movimientos concurrentes sobre el mismo insumo.
	GetForUpdate(id string) (*entity.Ingredient, error)
	List() ([]*entity.Ingredient, error)
}
