package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
)

var _ repository.ProductionBatchRepository = (*ProductionBatchRepo)(nil)

// ProductionBatchRepo implementación sobre PostgreSQL (usable con pool o tx).
type ProductionBatchRepo struct {
	q Querier
}

// NewProductionBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionBatchRepository(q Querier) *ProductionBatchRepo {
	return &ProductionBatchRepo{q: q}
}

// Create persiste un lote de producción.
func (r *ProductionBatchRepo) Create(batch *entity.ProductionBatch) error {
	query := `
		INSERT INTO production_batches (id, product_id, planned_units, actual_units, started_at, finished_at, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	createdBy := (*string)(nil)
	if batch.CreatedBy != "" {
		createdBy = &batch.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.ProductID, batch.PlannedUnits, batch.ActualUnits,
		batch.StartedAt, batch.FinishedAt, batch.Notes, createdBy, batch.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// Update actualiza un lote (cierre: actual_units y finished_at).
func (r *ProductionBatchRepo) Update(batch *entity.ProductionBatch) error {
	query := `
		UPDATE production_batches
		SET actual_units = $2, finished_at = $3, notes = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.ActualUnits, batch.FinishedAt, batch.Notes,
	)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update batch: no rows affected")
	}
	return nil
}

// GetByID obtiene un lote por ID. Devuelve nil si no existe.
func (r *ProductionBatchRepo) GetByID(id string) (*entity.ProductionBatch, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene el lote bloqueando la fila (SELECT FOR UPDATE) para
// serializar cierres concurrentes del mismo lote.
func (r *ProductionBatchRepo) GetForUpdate(id string) (*entity.ProductionBatch, error) {
	return r.get(id, true)
}

func (r *ProductionBatchRepo) get(id string, forUpdate bool) (*entity.ProductionBatch, error) {
	query := `
		SELECT id, product_id, planned_units, actual_units, started_at, finished_at, notes, created_by, created_at
		FROM production_batches WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var b entity.ProductionBatch
	var createdBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.ProductID, &b.PlannedUnits, &b.ActualUnits,
		&b.StartedAt, &b.FinishedAt, &b.Notes, &createdBy, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	if createdBy != nil {
		b.CreatedBy = *createdBy
	}
	return &b, nil
}

// List lotes más recientes primero.
func (r *ProductionBatchRepo) List() ([]*entity.ProductionBatch, error) {
	query := `
		SELECT id, product_id, planned_units, actual_units, started_at, finished_at, notes, created_by, created_at
		FROM production_batches ORDER BY started_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionBatch
	for rows.Next() {
		var b entity.ProductionBatch
		var createdBy *string
		if err := rows.Scan(&b.ID, &b.ProductID, &b.PlannedUnits, &b.ActualUnits,
			&b.StartedAt, &b.FinishedAt, &b.Notes, &createdBy, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		if createdBy != nil {
			b.CreatedBy = *createdBy
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
