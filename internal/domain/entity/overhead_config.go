package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OverheadConfig costos indirectos de un período. El "vigente" es el de
// PeriodEnd más reciente.
type OverheadConfig struct {
	ID            string
	PeriodStart   time.Time
	PeriodEnd     time.Time
	GasCost       decimal.Decimal
	EnergyCost    decimal.Decimal
	WaterCost     decimal.Decimal
	PackagingCost decimal.Decimal
	OtherCost     decimal.Decimal
	UnitsProduced int // >= 1
	CreatedAt     time.Time
}

// TotalCost suma de los cinco rubros.
func (o *OverheadConfig) TotalCost() decimal.Decimal {
	return o.GasCost.Add(o.EnergyCost).Add(o.WaterCost).Add(o.PackagingCost).Add(o.OtherCost)
}
