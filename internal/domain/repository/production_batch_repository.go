package repository

import "github.com/jhoicas/Panaderia-api/internal/domain/entity"

// ProductionBatchRepository puerto de persistencia para lotes de producción.
type ProductionBatchRepository interface {
	Create(batch *entity.ProductionBatch) error
	Update(batch *entity.ProductionBatch) error
	GetByID(id string) (*entity.ProductionBatch, error)
	// GetForUpdate bloquea la fila del lote (SELECT FOR UPDATE) para
	// serializar cierres concurrentes del mismo lote.
	GetForUpdate(id string) (*entity.ProductionBatch, error)
	List() ([]*entity.ProductionBatch, error)
}
