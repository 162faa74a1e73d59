package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación sobre PostgreSQL (usable con pool o tx).
// Append-only: solo INSERT y lectura.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create persiste una fila de auditoría.
func (r *AuditLogRepo) Create(log *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, user_id, action, entity, entity_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	userID := (*string)(nil)
	if log.UserID != "" {
		userID = &log.UserID
	}
	_, err := r.q.Exec(context.Background(), query,
		log.ID, userID, log.Action, log.Entity, log.EntityID, log.Payload, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// List filas de auditoría más recientes primero.
func (r *AuditLogRepo) List(limit int) ([]*entity.AuditLog, error) {
	query := `
		SELECT id, user_id, action, entity, entity_id, payload, created_at
		FROM audit_logs ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		var userID *string
		if err := rows.Scan(&l.ID, &userID, &l.Action, &l.Entity, &l.EntityID,
			&l.Payload, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		if userID != nil {
			l.UserID = *userID
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
