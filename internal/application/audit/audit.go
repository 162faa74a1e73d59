package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
)

// Record agrega una fila de auditoría con el snapshot completo de la
// entidad mutada. Debe invocarse con el repo atado a la MISMA transacción
// que la mutación: si esa tx aborta, la fila de auditoría desaparece con
// ella (no hay camino de reintento independiente).
func Record(repo repository.AuditLogRepository, userID, action, entityName, entityID string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serializar snapshot de auditoría: %w", err)
	}
	return repo.Create(&entity.AuditLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Entity:    entityName,
		EntityID:  entityID,
		Payload:   raw,
		CreatedAt: time.Now(),
	})
}
