package costing

import "github.com/shopspring/decimal"

// Precisión de los valores monetarios y de cantidad en todo el sistema.
const (
	CostPlaces     = 4 // costo unitario
	QtyPlaces      = 3 // cantidades de insumo
	CurrencyPlaces = 2 // totales en moneda
)

// CostEntry una entrada (IN) para el cálculo de costo promedio ponderado.
type CostEntry struct {
	Qty      decimal.Decimal
	UnitCost decimal.Decimal
}

// WeightedAverageCost costo promedio ponderado por cantidad:
// Σ(qty*cost) / Σ(qty). Devuelve 0 si no hay entradas o la cantidad
// total es cero. Redondeado a CostPlaces.
func WeightedAverageCost(entries []CostEntry) decimal.Decimal {
	var totalQty, totalValue decimal.Decimal
	for _, e := range entries {
		totalQty = totalQty.Add(e.Qty)
		totalValue = totalValue.Add(e.Qty.Mul(e.UnitCost))
	}
	if totalQty.IsZero() {
		return decimal.Zero
	}
	return totalValue.Div(totalQty).Round(CostPlaces)
}

// ConsumptionQty cantidad a consumir de un insumo al cerrar un lote:
// qtyPerBatch * (actualUnits / yieldUnits), redondeada a QtyPlaces.
func ConsumptionQty(qtyPerBatch decimal.Decimal, actualUnits, yieldUnits int) decimal.Decimal {
	if yieldUnits <= 0 {
		yieldUnits = 1
	}
	ratio := decimal.NewFromInt(int64(actualUnits)).Div(decimal.NewFromInt(int64(yieldUnits)))
	return qtyPerBatch.Mul(ratio).Round(QtyPlaces)
}

// OverheadUnitCost costos indirectos por unidad producida:
// suma de rubros / unidades producidas.
func OverheadUnitCost(total decimal.Decimal, unitsProduced int) decimal.Decimal {
	if unitsProduced <= 0 {
		unitsProduced = 1
	}
	return total.Div(decimal.NewFromInt(int64(unitsProduced))).Round(CostPlaces)
}

// SuggestPrice precio sugerido: cost * (1 + margin/100), redondeado a
// precisión de moneda.
func SuggestPrice(cost, marginPercent decimal.Decimal) decimal.Decimal {
	margin := marginPercent.Div(decimal.NewFromInt(100))
	return cost.Mul(margin.Add(decimal.NewFromInt(1))).Round(CurrencyPlaces)
}
