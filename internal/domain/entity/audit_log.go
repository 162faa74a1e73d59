package entity

import "time"

// AuditLog registro inmutable de auditoría. Payload guarda el snapshot
// completo de la entidad (no un diff) y la fila se crea en la misma
// transacción que la mutación que documenta.
type AuditLog struct {
	ID        string
	UserID    string
	Action    string // create, update, delete, finish, cash-close, ...
	Entity    string
	EntityID  string
	Payload   []byte // JSON
	CreatedAt time.Time
}
