package repository

import "github.com/jhoicas/Panaderia-api/internal/domain/entity"

// OverheadRepository puerto de persistencia para costos indirectos.
type OverheadRepository interface {
	Create(config *entity.OverheadConfig) error
	// GetCurrent devuelve la configuración vigente (period_end más reciente)
	// o nil si no hay ninguna.
	GetCurrent() (*entity.OverheadConfig, error)
}
