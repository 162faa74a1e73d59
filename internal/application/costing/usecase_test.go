package costing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Panaderia-api/internal/application/apptest"
	"github.com/jhoicas/Panaderia-api/internal/application/costing"
	"github.com/jhoicas/Panaderia-api/internal/domain"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func ptr[T any](v T) *T { return &v }

// buildStore receta de pan: 10 kg de harina + 0.2 kg de levadura rinden
// 100 unidades. Harina promedio $4.6667/kg, levadura $20/kg.
func buildStore() *apptest.Store {
	s := apptest.NewStore()
	s.Recipes["prod-1"] = &entity.Recipe{
		ID:         "rec-1",
		ProductID:  "prod-1",
		YieldUnits: 100,
		Items: []entity.RecipeItem{
			{ID: "ri-1", RecipeID: "rec-1", IngredientID: "ing-harina", QtyPerBatch: dec("10"), Unit: "kg"},
			{ID: "ri-2", RecipeID: "rec-1", IngredientID: "ing-levadura", QtyPerBatch: dec("0.2"), Unit: "kg"},
		},
	}
	s.Movements = append(s.Movements,
		&entity.InventoryMovement{ID: "m1", IngredientID: "ing-harina", Type: entity.MovementTypeIN, Qty: dec("10"), UnitCost: ptr(dec("4"))},
		&entity.InventoryMovement{ID: "m2", IngredientID: "ing-harina", Type: entity.MovementTypeIN, Qty: dec("5"), UnitCost: ptr(dec("6"))},
		&entity.InventoryMovement{ID: "m3", IngredientID: "ing-levadura", Type: entity.MovementTypeIN, Qty: dec("1"), UnitCost: ptr(dec("20"))},
	)
	return s
}

func buildUseCase(s *apptest.Store) *costing.UseCase {
	repos := s.Repos()
	return costing.NewUseCase(repos.Movements, repos.Recipes, repos.Overhead)
}

func TestProductCost_DesgloseInsumosYOverhead(t *testing.T) {
	s := buildStore()
	s.Overheads = append(s.Overheads, &entity.OverheadConfig{
		ID:            "oh-1",
		PeriodStart:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:     time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		GasCost:       dec("500"),
		EnergyCost:    dec("600"),
		WaterCost:     dec("100"),
		PackagingCost: dec("200"),
		OtherCost:     dec("100"),
		UnitsProduced: 3000,
	})
	uc := buildUseCase(s)

	resp, err := uc.ProductCost(context.Background(), "prod-1", nil)
	require.NoError(t, err)

	// Lote: 10 * 4.6667 + 0.2 * 20 = 50.6667 → 0.5067 por unidad (100 u).
	assert.True(t, dec("0.5067").Equal(resp.IngredientUnitCost), "esperaba 0.5067, obtuve %s", resp.IngredientUnitCost)
	// Overhead: 1500 / 3000 = 0.5 por unidad.
	assert.True(t, dec("0.5").Equal(resp.OverheadUnitCost), "esperaba 0.5, obtuve %s", resp.OverheadUnitCost)
	assert.Nil(t, resp.SuggestedPrice)
}

func TestProductCost_ConMargenSugierePrecio(t *testing.T) {
	s := buildStore()
	uc := buildUseCase(s)

	margin := dec("100")
	resp, err := uc.ProductCost(context.Background(), "prod-1", &margin)
	require.NoError(t, err)
	require.NotNil(t, resp.SuggestedPrice)

	// Sin overhead configurado: (0.5067 + 0) * 2 = 1.0134 → 1.01 a 2 dec.
	assert.True(t, dec("1.01").Equal(*resp.SuggestedPrice), "esperaba 1.01, obtuve %s", resp.SuggestedPrice)
}

func TestProductCost_SinReceta(t *testing.T) {
	s := apptest.NewStore()
	uc := buildUseCase(s)

	_, err := uc.ProductCost(context.Background(), "prod-nada", nil)
	assert.ErrorIs(t, err, domain.ErrNoRecipe)
}

func TestOverheadUnitCost_SinConfiguracion(t *testing.T) {
	s := apptest.NewStore()
	uc := buildUseCase(s)

	unit, err := uc.OverheadUnitCost(context.Background())
	require.NoError(t, err)
	assert.True(t, unit.IsZero())
}

func TestAverageCost_SinEntradas(t *testing.T) {
	s := apptest.NewStore()
	uc := buildUseCase(s)

	avg, err := uc.AverageCost(context.Background(), "ing-nada")
	require.NoError(t, err)
	assert.True(t, avg.IsZero())
}
