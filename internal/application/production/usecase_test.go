package production_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Panaderia-api/internal/application/apptest"
	"github.com/jhoicas/Panaderia-api/internal/application/dto"
	"github.com/jhoicas/Panaderia-api/internal/application/production"
	"github.com/jhoicas/Panaderia-api/internal/domain"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func ptr[T any](v T) *T { return &v }

// buildStore panadería mínima: un producto con receta (10 kg de harina
// rinden 100 unidades) y stock de harina cargado con dos compras.
func buildStore() *apptest.Store {
	s := apptest.NewStore()
	s.Products["prod-1"] = &entity.Product{ID: "prod-1", Name: "Pan francés", Category: "panes"}
	s.Ingredients["ing-harina"] = &entity.Ingredient{ID: "ing-harina", Name: "Harina", Unit: "kg"}
	s.Recipes["prod-1"] = &entity.Recipe{
		ID:         "rec-1",
		ProductID:  "prod-1",
		YieldUnits: 100,
		Items: []entity.RecipeItem{
			{ID: "ri-1", RecipeID: "rec-1", IngredientID: "ing-harina", QtyPerBatch: dec("10"), Unit: "kg"},
		},
	}
	// 10 kg a $4 + 5 kg a $6 → promedio 4.6667
	s.Movements = append(s.Movements,
		&entity.InventoryMovement{ID: "m1", IngredientID: "ing-harina", Type: entity.MovementTypeIN, Qty: dec("10"), UnitCost: ptr(dec("4")), Reason: "compra"},
		&entity.InventoryMovement{ID: "m2", IngredientID: "ing-harina", Type: entity.MovementTypeIN, Qty: dec("5"), UnitCost: ptr(dec("6")), Reason: "compra"},
	)
	return s
}

func buildUseCase(s *apptest.Store) *production.UseCase {
	repos := s.Repos()
	return production.NewUseCase(&apptest.TxRunner{S: s}, repos.Batches, repos.Products)
}

// ──────────────────────────────────────────────────────────────────────────
// CreateBatch
// ──────────────────────────────────────────────────────────────────────────

func TestCreateBatch_AbreLote(t *testing.T) {
	s := buildStore()
	uc := buildUseCase(s)

	resp, err := uc.CreateBatch(context.Background(), "user-1", dto.CreateBatchRequest{
		ProductID:    "prod-1",
		PlannedUnits: 100,
		Notes:        "turno mañana",
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "prod-1", resp.ProductID)
	assert.Equal(t, 100, resp.PlannedUnits)
	assert.Nil(t, resp.ActualUnits)
	assert.Nil(t, resp.FinishedAt)

	// El lote y su fila de auditoría quedan en el store.
	require.Len(t, s.Batches, 1)
	require.Len(t, s.AuditLogs, 1)
	assert.Equal(t, "ProductionBatch", s.AuditLogs[0].Entity)
	assert.Equal(t, "create", s.AuditLogs[0].Action)
}

func TestCreateBatch_ProductoInexistente(t *testing.T) {
	s := buildStore()
	uc := buildUseCase(s)

	_, err := uc.CreateBatch(context.Background(), "user-1", dto.CreateBatchRequest{
		ProductID:    "prod-fantasma",
		PlannedUnits: 10,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.Batches)
}

// ──────────────────────────────────────────────────────────────────────────
// FinishBatch
// ──────────────────────────────────────────────────────────────────────────

func openBatch(s *apptest.Store) *entity.ProductionBatch {
	b := &entity.ProductionBatch{
		ID:           "batch-1",
		ProductID:    "prod-1",
		PlannedUnits: 100,
		StartedAt:    time.Now().Add(-2 * time.Hour),
		CreatedBy:    "user-1",
		CreatedAt:    time.Now().Add(-2 * time.Hour),
	}
	s.Batches[b.ID] = b
	return b
}

func TestFinishBatch_DescuentaInsumosProporcional(t *testing.T) {
	s := buildStore()
	openBatch(s)
	uc := buildUseCase(s)

	// 50 unidades reales sobre rendimiento 100 → consume 5 kg de harina.
	resp, err := uc.FinishBatch(context.Background(), "user-1", "batch-1", dto.FinishBatchRequest{
		ActualUnits: 50,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.ActualUnits)
	assert.Equal(t, 50, *resp.ActualUnits)
	require.NotNil(t, resp.FinishedAt)

	// Se agregó exactamente una salida OUT, valorada al promedio vigente.
	require.Len(t, s.Movements, 3)
	out := s.Movements[2]
	assert.Equal(t, entity.MovementTypeOUT, out.Type)
	assert.Equal(t, "ing-harina", out.IngredientID)
	assert.True(t, dec("5").Equal(out.Qty), "esperaba 5, obtuve %s", out.Qty)
	require.NotNil(t, out.UnitCost)
	assert.True(t, dec("4.6667").Equal(out.UnitCost.Round(4)), "esperaba 4.6667, obtuve %s", out.UnitCost)

	// El saldo derivado refleja la salida: 15 - 5 = 10.
	balance, err := s.Repos().Movements.Balance("ing-harina")
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(balance))
}

func TestFinishBatch_LoteYaFinalizado(t *testing.T) {
	s := buildStore()
	b := openBatch(s)
	b.ActualUnits = ptr(80)
	b.FinishedAt = ptr(time.Now())
	uc := buildUseCase(s)

	_, err := uc.FinishBatch(context.Background(), "user-1", "batch-1", dto.FinishBatchRequest{
		ActualUnits: 90,
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyFinished)
	// El cierre previo queda intacto.
	assert.Equal(t, 80, *b.ActualUnits)
	assert.Len(t, s.Movements, 2)
}

func TestFinishBatch_SinReceta(t *testing.T) {
	s := buildStore()
	openBatch(s)
	delete(s.Recipes, "prod-1")
	uc := buildUseCase(s)

	_, err := uc.FinishBatch(context.Background(), "user-1", "batch-1", dto.FinishBatchRequest{
		ActualUnits: 50,
	})
	assert.ErrorIs(t, err, domain.ErrNoRecipe)
	assert.Len(t, s.Movements, 2, "no debe registrar salidas")
}

func TestFinishBatch_UnidadesInvalidas(t *testing.T) {
	s := buildStore()
	openBatch(s)
	uc := buildUseCase(s)

	for _, units := range []int{0, -5} {
		_, err := uc.FinishBatch(context.Background(), "user-1", "batch-1", dto.FinishBatchRequest{
			ActualUnits: units,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestFinishBatch_LoteInexistente(t *testing.T) {
	s := buildStore()
	uc := buildUseCase(s)

	_, err := uc.FinishBatch(context.Background(), "user-1", "batch-nada", dto.FinishBatchRequest{
		ActualUnits: 10,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
