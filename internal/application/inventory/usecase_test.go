package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Panaderia-api/internal/application/apptest"
	"github.com/jhoicas/Panaderia-api/internal/application/dto"
	"github.com/jhoicas/Panaderia-api/internal/application/inventory"
	"github.com/jhoicas/Panaderia-api/internal/domain"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func ptr[T any](v T) *T { return &v }

func buildStore() *apptest.Store {
	s := apptest.NewStore()
	s.Ingredients["ing-harina"] = &entity.Ingredient{
		ID:       "ing-harina",
		Name:     "Harina",
		Unit:     "kg",
		MinStock: dec("5"),
	}
	return s
}

func buildUseCase(s *apptest.Store) *inventory.UseCase {
	repos := s.Repos()
	return inventory.NewUseCase(&apptest.TxRunner{S: s}, repos.Ingredients, repos.Movements)
}

// ──────────────────────────────────────────────────────────────────────────
// RegisterMovement — IN
// ──────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_EntradaRefrescaCostoCacheado(t *testing.T) {
	s := buildStore()
	uc := buildUseCase(s)

	_, err := uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		IngredientID: "ing-harina",
		Type:         entity.MovementTypeIN,
		Qty:          dec("10"),
		UnitCost:     ptr(dec("4")),
		Reason:       "compra proveedor",
	})
	require.NoError(t, err)

	// Segunda compra a otro precio: el costo cacheado pasa al promedio.
	_, err = uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		IngredientID: "ing-harina",
		Type:         entity.MovementTypeIN,
		Qty:          dec("5"),
		UnitCost:     ptr(dec("6")),
		Reason:       "compra proveedor",
	})
	require.NoError(t, err)

	ing := s.Ingredients["ing-harina"]
	assert.True(t, dec("4.6667").Equal(ing.UnitCost.Round(4)), "esperaba 4.6667, obtuve %s", ing.UnitCost)
	assert.Len(t, s.Movements, 2)
	assert.Len(t, s.AuditLogs, 2)
}

func TestRegisterMovement_EntradaSinCosto(t *testing.T) {
	s := buildStore()
	uc := buildUseCase(s)

	_, err := uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		IngredientID: "ing-harina",
		Type:         entity.MovementTypeIN,
		Qty:          dec("10"),
		Reason:       "compra sin costo",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		IngredientID: "ing-harina",
		Type:         entity.MovementTypeIN,
		Qty:          dec("10"),
		UnitCost:     ptr(decimal.Zero),
		Reason:       "costo cero",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, s.Movements)
}

// ──────────────────────────────────────────────────────────────────────────
// RegisterMovement — OUT
// ──────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_SalidaValoradaAlPromedio(t *testing.T) {
	s := buildStore()
	s.Movements = append(s.Movements,
		&entity.InventoryMovement{ID: "m1", IngredientID: "ing-harina", Type: entity.MovementTypeIN, Qty: dec("10"), UnitCost: ptr(dec("4"))},
		&entity.InventoryMovement{ID: "m2", IngredientID: "ing-harina", Type: entity.MovementTypeIN, Qty: dec("5"), UnitCost: ptr(dec("6"))},
	)
	uc := buildUseCase(s)

	resp, err := uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		IngredientID: "ing-harina",
		Type:         entity.MovementTypeOUT,
		Qty:          dec("3"),
		Reason:       "merma",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.UnitCost)
	assert.True(t, dec("4.6667").Equal(resp.UnitCost.Round(4)), "la salida lleva el promedio vigente")

	balance, err := uc.Balance(context.Background(), "ing-harina")
	require.NoError(t, err)
	assert.True(t, dec("12").Equal(balance), "15 - 3 = 12, obtuve %s", balance)
}

func TestRegisterMovement_BloqueaFilaDelInsumo(t *testing.T) {
	s := buildStore()
	s.Movements = append(s.Movements,
		&entity.InventoryMovement{ID: "m1", IngredientID: "ing-harina", Type: entity.MovementTypeIN, Qty: dec("10"), UnitCost: ptr(dec("4"))},
	)
	uc := buildUseCase(s)

	_, err := uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		IngredientID: "ing-harina",
		Type:         entity.MovementTypeOUT,
		Qty:          dec("3"),
		Reason:       "consumo",
	})
	require.NoError(t, err)

	// El insumo se lee con bloqueo de fila dentro de la tx: el chequeo de
	// saldo y la inserción son atómicos frente a escritores concurrentes.
	assert.Equal(t, []string{"ing-harina"}, s.LockedIngredients)
}

func TestRegisterMovement_SalidasSeriadasAgotanElSaldo(t *testing.T) {
	s := buildStore()
	s.Movements = append(s.Movements,
		&entity.InventoryMovement{ID: "m1", IngredientID: "ing-harina", Type: entity.MovementTypeIN, Qty: dec("5"), UnitCost: ptr(dec("4"))},
	)
	uc := buildUseCase(s)

	// Primera salida consume todo el saldo disponible.
	_, err := uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		IngredientID: "ing-harina",
		Type:         entity.MovementTypeOUT,
		Qty:          dec("5"),
		Reason:       "consumo",
	})
	require.NoError(t, err)

	// La segunda, serializada tras la primera por el bloqueo, ve saldo 0.
	_, err = uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		IngredientID: "ing-harina",
		Type:         entity.MovementTypeOUT,
		Qty:          dec("5"),
		Reason:       "consumo",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	balance, err := uc.Balance(context.Background(), "ing-harina")
	require.NoError(t, err)
	assert.True(t, balance.IsZero(), "el saldo nunca queda negativo, obtuve %s", balance)
}

func TestRegisterMovement_SalidaSinStock(t *testing.T) {
	s := buildStore()
	s.Movements = append(s.Movements,
		&entity.InventoryMovement{ID: "m1", IngredientID: "ing-harina", Type: entity.MovementTypeIN, Qty: dec("2"), UnitCost: ptr(dec("4"))},
	)
	uc := buildUseCase(s)

	_, err := uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		IngredientID: "ing-harina",
		Type:         entity.MovementTypeOUT,
		Qty:          dec("3"),
		Reason:       "consumo",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Len(t, s.Movements, 1, "el saldo nunca queda negativo")
}

// ──────────────────────────────────────────────────────────────────────────
// RegisterMovement — ADJ
// ──────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_AjusteConSigno(t *testing.T) {
	s := buildStore()
	s.Movements = append(s.Movements,
		&entity.InventoryMovement{ID: "m1", IngredientID: "ing-harina", Type: entity.MovementTypeIN, Qty: dec("10"), UnitCost: ptr(dec("4"))},
	)
	uc := buildUseCase(s)

	// Ajuste negativo (conteo físico menor al libro).
	_, err := uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		IngredientID: "ing-harina",
		Type:         entity.MovementTypeADJ,
		Qty:          dec("-1.5"),
		Reason:       "conteo físico",
	})
	require.NoError(t, err)

	balance, err := uc.Balance(context.Background(), "ing-harina")
	require.NoError(t, err)
	assert.True(t, dec("8.5").Equal(balance), "10 - 1.5 = 8.5, obtuve %s", balance)
}

func TestRegisterMovement_AjusteCero(t *testing.T) {
	s := buildStore()
	uc := buildUseCase(s)

	_, err := uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		IngredientID: "ing-harina",
		Type:         entity.MovementTypeADJ,
		Qty:          decimal.Zero,
		Reason:       "sin cambio",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterMovement_TipoDesconocido(t *testing.T) {
	s := buildStore()
	uc := buildUseCase(s)

	_, err := uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		IngredientID: "ing-harina",
		Type:         "TRANSFER",
		Qty:          dec("1"),
		Reason:       "tipo inválido",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterMovement_InsumoInexistente(t *testing.T) {
	s := buildStore()
	uc := buildUseCase(s)

	_, err := uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		IngredientID: "ing-nada",
		Type:         entity.MovementTypeIN,
		Qty:          dec("1"),
		UnitCost:     ptr(dec("2")),
		Reason:       "compra",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────
// Vistas derivadas
// ──────────────────────────────────────────────────────────────────────────

func TestListIngredients_BanderaStockMinimo(t *testing.T) {
	s := buildStore()
	// Saldo 3 contra mínimo 5 → debajo del mínimo.
	s.Movements = append(s.Movements,
		&entity.InventoryMovement{ID: "m1", IngredientID: "ing-harina", Type: entity.MovementTypeIN, Qty: dec("3"), UnitCost: ptr(dec("4"))},
	)
	uc := buildUseCase(s)

	out, err := uc.ListIngredients(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, dec("3").Equal(out[0].Balance))
	assert.True(t, out[0].BelowMin)
}
