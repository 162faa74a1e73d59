package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
)

var _ repository.OverheadRepository = (*OverheadRepo)(nil)

// OverheadRepo implementación sobre PostgreSQL (usable con pool o tx).
type OverheadRepo struct {
	q Querier
}

// NewOverheadRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOverheadRepository(q Querier) *OverheadRepo {
	return &OverheadRepo{q: q}
}

// Create persiste la configuración de costos indirectos de un período.
func (r *OverheadRepo) Create(config *entity.OverheadConfig) error {
	query := `
		INSERT INTO overhead_configs (id, period_start, period_end, gas_cost, energy_cost, water_cost, packaging_cost, other_cost, units_produced, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		config.ID, config.PeriodStart, config.PeriodEnd, config.GasCost,
		config.EnergyCost, config.WaterCost, config.PackagingCost, config.OtherCost,
		config.UnitsProduced, config.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert overhead config: %w", err)
	}
	return nil
}

// GetCurrent configuración vigente: la de period_end más reciente.
// Devuelve nil si no hay ninguna.
func (r *OverheadRepo) GetCurrent() (*entity.OverheadConfig, error) {
	query := `
		SELECT id, period_start, period_end, gas_cost, energy_cost, water_cost, packaging_cost, other_cost, units_produced, created_at
		FROM overhead_configs ORDER BY period_end DESC LIMIT 1`
	var c entity.OverheadConfig
	err := r.q.QueryRow(context.Background(), query).Scan(
		&c.ID, &c.PeriodStart, &c.PeriodEnd, &c.GasCost, &c.EnergyCost,
		&c.WaterCost, &c.PackagingCost, &c.OtherCost, &c.UnitsProduced, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get current overhead: %w", err)
	}
	return &c, nil
}
