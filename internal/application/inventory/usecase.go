package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Panaderia-api/internal/application/audit"
	"github.com/jhoicas/Panaderia-api/internal/application/dto"
	"github.com/jhoicas/Panaderia-api/internal/application/ports"
	"github.com/jhoicas/Panaderia-api/internal/domain"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
)

// UseCase registra movimientos de inventario de forma transaccional y
// expone las vistas derivadas (saldos, listado de movimientos).
// El saldo de un insumo nunca se guarda: siempre es IN + ADJ - OUT.
type UseCase struct {
	txRunner       ports.TxRunner
	ingredientRepo repository.IngredientRepository
	movementRepo   repository.InventoryMovementRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner ports.TxRunner,
	ingredientRepo repository.IngredientRepository,
	movementRepo repository.InventoryMovementRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, ingredientRepo: ingredientRepo, movementRepo: movementRepo}
}

// RegisterMovement valida la entrada, abre una transacción, crea el asiento
// y refresca el costo cacheado del insumo (en IN). Reglas:
//   - IN: qty > 0 y unit_cost obligatorio > 0
//   - OUT: qty > 0; el asiento lleva el costo promedio vigente; no se
//     permite dejar el saldo en negativo
//   - ADJ: qty con signo, distinta de cero
func (uc *UseCase) RegisterMovement(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	switch in.Type {
	case entity.MovementTypeIN:
		if !in.Qty.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if in.UnitCost == nil || !in.UnitCost.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	case entity.MovementTypeOUT:
		if !in.Qty.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	case entity.MovementTypeADJ:
		if in.Qty.IsZero() {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	mov := &entity.InventoryMovement{
		ID:           uuid.New().String(),
		IngredientID: in.IngredientID,
		Type:         in.Type,
		Qty:          in.Qty,
		UnitCost:     in.UnitCost,
		Reason:       in.Reason,
		CreatedAt:    now,
		CreatedBy:    userID,
	}

	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		// Bloquea la fila del insumo: dos movimientos concurrentes del
		// mismo insumo se serializan y el chequeo de saldo es atómico
		// con la inserción.
		ingredient, err := r.Ingredients.GetForUpdate(in.IngredientID)
		if err != nil {
			return err
		}
		if ingredient == nil {
			return domain.ErrNotFound
		}

		if in.Type == entity.MovementTypeOUT {
			balance, err := r.Movements.Balance(in.IngredientID)
			if err != nil {
				return err
			}
			if balance.LessThan(in.Qty) {
				return domain.ErrInsufficientStock
			}
			// La salida se valora al promedio vigente en este momento.
			avg, err := r.Movements.AverageInCost(in.IngredientID)
			if err != nil {
				return err
			}
			mov.UnitCost = &avg
		}

		if err := r.Movements.Create(mov); err != nil {
			return err
		}

		if in.Type == entity.MovementTypeIN {
			// Refresca el costo cacheado con el promedio que ya incluye
			// esta entrada.
			avg, err := r.Movements.AverageInCost(in.IngredientID)
			if err != nil {
				return err
			}
			ingredient.UnitCost = avg
			ingredient.UpdatedAt = now
			if err := r.Ingredients.Update(ingredient); err != nil {
				return err
			}
		}

		return audit.Record(r.Audit, userID, "inventory_movement", "InventoryMovement", mov.ID, mov)
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

// Balance saldo derivado de un insumo.
func (uc *UseCase) Balance(ctx context.Context, ingredientID string) (decimal.Decimal, error) {
	ingredient, err := uc.ingredientRepo.GetByID(ingredientID)
	if err != nil {
		return decimal.Zero, err
	}
	if ingredient == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	return uc.movementRepo.Balance(ingredientID)
}

// ListMovements movimientos recientes (todos los insumos).
func (uc *UseCase) ListMovements(ctx context.Context, limit int) ([]*dto.MovementResponse, error) {
	if limit <= 0 {
		limit = 200
	}
	movements, err := uc.movementRepo.List(limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

// ListIngredients insumos con saldo derivado y bandera de stock mínimo.
func (uc *UseCase) ListIngredients(ctx context.Context) ([]*dto.IngredientResponse, error) {
	ingredients, err := uc.ingredientRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.IngredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		balance, err := uc.movementRepo.Balance(ing.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, &dto.IngredientResponse{
			ID:       ing.ID,
			Name:     ing.Name,
			Unit:     ing.Unit,
			UnitCost: ing.UnitCost,
			MinStock: ing.MinStock,
			Balance:  balance,
			BelowMin: balance.LessThan(ing.MinStock),
		})
	}
	return out, nil
}

func toMovementResponse(m *entity.InventoryMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:           m.ID,
		IngredientID: m.IngredientID,
		Type:         m.Type,
		Qty:          m.Qty,
		UnitCost:     m.UnitCost,
		Reason:       m.Reason,
		CreatedAt:    m.CreatedAt,
		CreatedBy:    m.CreatedBy,
	}
}
