package repository

import "github.com/jhoicas/Panaderia-api/internal/domain/entity"

// RecipeRepository puerto de persistencia para recetas (una por producto).
type RecipeRepository interface {
	// Upsert crea o reemplaza la receta del producto, incluidos sus ítems.
	Upsert(recipe *entity.Recipe) error
	GetByProduct(productID string) (*entity.Recipe, error)
	List() ([]*entity.Recipe, error)
}
