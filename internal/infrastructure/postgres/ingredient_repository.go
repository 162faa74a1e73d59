package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo implementación sobre PostgreSQL (usable con pool o tx).
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

// Create persiste un insumo.
func (r *IngredientRepo) Create(ingredient *entity.Ingredient) error {
	query := `
		INSERT INTO ingredients (id, name, unit, unit_cost, min_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		ingredient.ID, ingredient.Name, ingredient.Unit, ingredient.UnitCost,
		ingredient.MinStock, ingredient.CreatedAt, ingredient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ingredient: %w", err)
	}
	return nil
}

// Update actualiza nombre, unidad, costo cacheado y stock mínimo.
func (r *IngredientRepo) Update(ingredient *entity.Ingredient) error {
	query := `
		UPDATE ingredients
		SET name = $2, unit = $3, unit_cost = $4, min_stock = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		ingredient.ID, ingredient.Name, ingredient.Unit, ingredient.UnitCost,
		ingredient.MinStock, ingredient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ingredient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update ingredient: no rows affected")
	}
	return nil
}

// GetByID obtiene un insumo por ID. Devuelve nil si no existe.
func (r *IngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene el insumo bloqueando su fila (SELECT FOR UPDATE).
// Serializa el registro de movimientos del mismo insumo dentro de la tx.
func (r *IngredientRepo) GetForUpdate(id string) (*entity.Ingredient, error) {
	return r.get(id, true)
}

func (r *IngredientRepo) get(id string, forUpdate bool) (*entity.Ingredient, error) {
	query := `
		SELECT id, name, unit, unit_cost, min_stock, created_at, updated_at
		FROM ingredients WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var i entity.Ingredient
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&i.ID, &i.Name, &i.Unit, &i.UnitCost, &i.MinStock, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return &i, nil
}

// List insumos ordenados por nombre.
func (r *IngredientRepo) List() ([]*entity.Ingredient, error) {
	query := `
		SELECT id, name, unit, unit_cost, min_stock, created_at, updated_at
		FROM ingredients ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ingredient
	for rows.Next() {
		var i entity.Ingredient
		if err := rows.Scan(&i.ID, &i.Name, &i.Unit, &i.UnitCost, &i.MinStock, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}
