package entity

import "time"

// ProductionBatch es un lote de producción. FinishedAt == nil significa
// lote abierto; al finalizar se fijan ActualUnits y FinishedAt y se
// descuentan los insumos de la receta (transición de un solo sentido).
type ProductionBatch struct {
	ID           string
	ProductID    string
	PlannedUnits int
	ActualUnits  *int
	StartedAt    time.Time
	FinishedAt   *time.Time
	Notes        string
	CreatedBy    string
	CreatedAt    time.Time
}

// Finished indica si el lote ya fue cerrado.
func (b *ProductionBatch) Finished() bool {
	return b.FinishedAt != nil
}
