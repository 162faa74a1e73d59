package dto

import "time"

// CreateBatchRequest body para POST /api/production/batches.
type CreateBatchRequest struct {
	ProductID    string     `json:"product_id" validate:"required,uuid4"`
	PlannedUnits int        `json:"planned_units" validate:"required,min=1"`
	StartedAt    *time.Time `json:"started_at"`
	Notes        string     `json:"notes"`
}

// FinishBatchRequest body para POST /api/production/batches/:id/finish.
type FinishBatchRequest struct {
	ActualUnits int        `json:"actual_units"`
	FinishedAt  *time.Time `json:"finished_at"`
	Notes       *string    `json:"notes"`
}

// BatchResponse lote de producción.
type BatchResponse struct {
	ID           string     `json:"id"`
	ProductID    string     `json:"product_id"`
	PlannedUnits int        `json:"planned_units"`
	ActualUnits  *int       `json:"actual_units,omitempty"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}
