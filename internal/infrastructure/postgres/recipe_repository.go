package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación sobre PostgreSQL (usable con pool o tx).
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// Upsert crea o reemplaza la receta del producto. Los ítems se borran y
// recrean completos; debe llamarse dentro de una transacción.
func (r *RecipeRepo) Upsert(recipe *entity.Recipe) error {
	query := `
		INSERT INTO recipes (id, product_id, yield_units, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id) DO UPDATE
		SET yield_units = EXCLUDED.yield_units, notes = EXCLUDED.notes, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		recipe.ID, recipe.ProductID, recipe.YieldUnits, recipe.Notes,
		recipe.CreatedAt, recipe.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert recipe: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM recipe_items WHERE recipe_id = $1`, recipe.ID); err != nil {
		return fmt.Errorf("delete recipe items: %w", err)
	}
	for i := range recipe.Items {
		item := &recipe.Items[i]
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO recipe_items (id, recipe_id, ingredient_id, qty_per_batch, unit)
			VALUES ($1, $2, $3, $4, $5)`,
			item.ID, item.RecipeID, item.IngredientID, item.QtyPerBatch, item.Unit,
		)
		if err != nil {
			return fmt.Errorf("insert recipe item: %w", err)
		}
	}
	return nil
}

// GetByProduct receta de un producto con sus ítems. Devuelve nil si no hay.
func (r *RecipeRepo) GetByProduct(productID string) (*entity.Recipe, error) {
	query := `
		SELECT id, product_id, yield_units, notes, created_at, updated_at
		FROM recipes WHERE product_id = $1`
	var rec entity.Recipe
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&rec.ID, &rec.ProductID, &rec.YieldUnits, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	items, err := r.itemsByRecipe(rec.ID)
	if err != nil {
		return nil, err
	}
	rec.Items = items
	return &rec, nil
}

// List todas las recetas con sus ítems.
func (r *RecipeRepo) List() ([]*entity.Recipe, error) {
	query := `
		SELECT id, product_id, yield_units, notes, created_at, updated_at
		FROM recipes ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Recipe
	for rows.Next() {
		var rec entity.Recipe
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.YieldUnits, &rec.Notes,
			&rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		list = append(list, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, rec := range list {
		items, err := r.itemsByRecipe(rec.ID)
		if err != nil {
			return nil, err
		}
		rec.Items = items
	}
	return list, nil
}

func (r *RecipeRepo) itemsByRecipe(recipeID string) ([]entity.RecipeItem, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, recipe_id, ingredient_id, qty_per_batch, unit
		FROM recipe_items WHERE recipe_id = $1`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list recipe items: %w", err)
	}
	defer rows.Close()
	var items []entity.RecipeItem
	for rows.Next() {
		var it entity.RecipeItem
		if err := rows.Scan(&it.ID, &it.RecipeID, &it.IngredientID, &it.QtyPerBatch, &it.Unit); err != nil {
			return nil, fmt.Errorf("scan recipe item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
