package repository

import "github.com/jhoicas/Panaderia-api/internal/domain/entity"

// AuditLogRepository puerto de persistencia para el registro de auditoría.
// Append-only; la fila se crea dentro de la transacción de su mutación.
type AuditLogRepository interface {
	Create(log *entity.AuditLog) error
	List(limit int) ([]*entity.AuditLog, error)
}
