package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// El libro es append-only: solo INSERT y lecturas agregadas.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(movement *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (id, ingredient_id, type, qty, unit_cost, reason, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.IngredientID, movement.Type, movement.Qty,
		movement.UnitCost, movement.Reason, movement.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ListByIngredient movimientos de un insumo, más recientes primero.
func (r *InventoryMovementRepo) ListByIngredient(ingredientID string, limit int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, ingredient_id, type, qty, unit_cost, reason, created_at, created_by
		FROM inventory_movements WHERE ingredient_id = $1
		ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, ingredientID, limit)
	if err != nil {
		return nil, fmt.Errorf("list movements by ingredient: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.IngredientID, &m.Type, &m.Qty, &m.UnitCost,
			&m.Reason, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// List movimientos de todos los insumos, más recientes primero.
func (r *InventoryMovementRepo) List(limit int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, ingredient_id, type, qty, unit_cost, reason, created_at, created_by
		FROM inventory_movements
		ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.IngredientID, &m.Type, &m.Qty, &m.UnitCost,
			&m.Reason, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// AverageInCost promedio ponderado sobre TODOS los IN del insumo:
// SUM(qty * unit_cost) / SUM(qty). Devuelve 0 si no hay entradas.
func (r *InventoryMovementRepo) AverageInCost(ingredientID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(qty * unit_cost) / NULLIF(SUM(qty), 0), 0)
		FROM inventory_movements
		WHERE ingredient_id = $1 AND type = 'IN'`
	var avg decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, ingredientID).Scan(&avg)
	if err != nil {
		return decimal.Zero, fmt.Errorf("average in cost: %w", err)
	}
	return avg, nil
}

// Balance saldo derivado del libro: IN y ADJ suman (ADJ ya lleva signo), OUT resta.
func (r *InventoryMovementRepo) Balance(ingredientID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'OUT' THEN -qty ELSE qty END), 0)
		FROM inventory_movements
		WHERE ingredient_id = $1`
	var balance decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, ingredientID).Scan(&balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("balance: %w", err)
	}
	return balance, nil
}

// CountByIngredient cantidad de movimientos registrados para un insumo.
func (r *InventoryMovementRepo) CountByIngredient(ingredientID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM inventory_movements WHERE ingredient_id = $1`, ingredientID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return count, nil
}
