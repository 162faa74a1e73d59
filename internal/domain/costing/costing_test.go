package costing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Panaderia-api/internal/domain/costing"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// Promedio ponderado clásico: 10 kg a $4 + 5 kg a $6 = 70/15 ≈ 4.6667.
func TestWeightedAverageCost_Ponderado(t *testing.T) {
	avg := costing.WeightedAverageCost([]costing.CostEntry{
		{Qty: dec("10"), UnitCost: dec("4")},
		{Qty: dec("5"), UnitCost: dec("6")},
	})
	assert.True(t, dec("4.6667").Equal(avg), "esperaba 4.6667, obtuve %s", avg)
}

func TestWeightedAverageCost_SinEntradas(t *testing.T) {
	assert.True(t, costing.WeightedAverageCost(nil).IsZero())
	assert.True(t, costing.WeightedAverageCost([]costing.CostEntry{}).IsZero())
}

func TestWeightedAverageCost_CantidadTotalCero(t *testing.T) {
	avg := costing.WeightedAverageCost([]costing.CostEntry{
		{Qty: decimal.Zero, UnitCost: dec("9.99")},
	})
	assert.True(t, avg.IsZero(), "qty total cero no debe dividir")
}

// Receta rinde 100 unidades con 10 kg de harina; el lote cerró con 50
// unidades reales → consume 5 kg.
func TestConsumptionQty_Proporcional(t *testing.T) {
	qty := costing.ConsumptionQty(dec("10"), 50, 100)
	assert.True(t, dec("5").Equal(qty), "esperaba 5, obtuve %s", qty)
}

func TestConsumptionQty_MasUnidadesQueRendimiento(t *testing.T) {
	// 120 reales sobre rendimiento 100 → consumo 12 (sobre-producción).
	qty := costing.ConsumptionQty(dec("10"), 120, 100)
	assert.True(t, dec("12").Equal(qty))
}

func TestConsumptionQty_RendimientoCeroNoDividePorCero(t *testing.T) {
	qty := costing.ConsumptionQty(dec("2"), 3, 0)
	assert.True(t, dec("6").Equal(qty), "yield <= 0 se trata como 1")
}

func TestConsumptionQty_RedondeoTresDecimales(t *testing.T) {
	// 1 * (1/3) = 0.333...
	qty := costing.ConsumptionQty(dec("1"), 1, 3)
	assert.True(t, dec("0.333").Equal(qty), "esperaba 0.333, obtuve %s", qty)
}

func TestOverheadUnitCost(t *testing.T) {
	unit := costing.OverheadUnitCost(dec("1500"), 3000)
	assert.True(t, dec("0.5").Equal(unit))

	// unidades <= 0 se trata como 1
	assert.True(t, dec("1500").Equal(costing.OverheadUnitCost(dec("1500"), 0)))
}

func TestSuggestPrice(t *testing.T) {
	// costo 2.50 con margen 100% → 5.00
	assert.True(t, dec("5").Equal(costing.SuggestPrice(dec("2.50"), dec("100"))))
	// costo 3.333 con margen 50% → 5.00 (redondeo a 2 decimales)
	assert.True(t, dec("5").Equal(costing.SuggestPrice(dec("3.333"), dec("50"))))
	// margen 0 → mismo costo a precisión de moneda
	assert.True(t, dec("2.5").Equal(costing.SuggestPrice(dec("2.50"), decimal.Zero)))
}
