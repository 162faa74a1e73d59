package production

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Panaderia-api/internal/application/audit"
	"github.com/jhoicas/Panaderia-api/internal/application/dto"
	"github.com/jhoicas/Panaderia-api/internal/application/ports"
	"github.com/jhoicas/Panaderia-api/internal/domain"
	domaincosting "github.com/jhoicas/Panaderia-api/internal/domain/costing"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
)

// UseCase lotes de producción. El cierre de un lote descuenta los insumos
// de la receta escalados por actualUnits/yieldUnits, todo en una sola
// transacción: o se descuenta todo, o nada.
type UseCase struct {
	txRunner    ports.TxRunner
	batchRepo   repository.ProductionBatchRepository
	productRepo repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner ports.TxRunner,
	batchRepo repository.ProductionBatchRepository,
	productRepo repository.ProductRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, batchRepo: batchRepo, productRepo: productRepo}
}

// CreateBatch abre un lote de producción.
func (uc *UseCase) CreateBatch(ctx context.Context, userID string, in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	startedAt := now
	if in.StartedAt != nil {
		startedAt = *in.StartedAt
	}
	batch := &entity.ProductionBatch{
		ID:           uuid.New().String(),
		ProductID:    in.ProductID,
		PlannedUnits: in.PlannedUnits,
		StartedAt:    startedAt,
		Notes:        in.Notes,
		CreatedBy:    userID,
		CreatedAt:    now,
	}
	err = uc.txRunner.Run(ctx, func(r ports.Repos) error {
		if err := r.Batches.Create(batch); err != nil {
			return err
		}
		return audit.Record(r.Audit, userID, "create", "ProductionBatch", batch.ID, batch)
	})
	if err != nil {
		return nil, err
	}
	return toBatchResponse(batch), nil
}

// FinishBatch cierra un lote: fija actualUnits/finishedAt y registra una
// salida OUT por cada ítem de la receta, proporcional a
// actualUnits/yieldUnits y valorada al costo promedio vigente del insumo.
//
// actualUnits <= 0 se rechaza ANTES de abrir la transacción. Un lote sin
// receta falla con ErrNoRecipe sin mutar nada; un lote ya cerrado se
// rechaza con ErrAlreadyFinished.
func (uc *UseCase) FinishBatch(ctx context.Context, userID, batchID string, in dto.FinishBatchRequest) (*dto.BatchResponse, error) {
	if in.ActualUnits <= 0 {
		return nil, domain.ErrInvalidInput
	}

	finishedAt := time.Now()
	if in.FinishedAt != nil {
		finishedAt = *in.FinishedAt
	}

	var batch *entity.ProductionBatch
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		// Bloquea la fila del lote para serializar cierres concurrentes.
		batch, err = r.Batches.GetForUpdate(batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if batch.Finished() {
			return domain.ErrAlreadyFinished
		}

		recipe, err := r.Recipes.GetByProduct(batch.ProductID)
		if err != nil {
			return err
		}
		if recipe == nil {
			return domain.ErrNoRecipe
		}

		// Una salida por ítem de receta, escalada por actual/yield.
		for _, item := range recipe.Items {
			qty := domaincosting.ConsumptionQty(item.QtyPerBatch, in.ActualUnits, recipe.YieldUnits)
			avg, err := r.Movements.AverageInCost(item.IngredientID)
			if err != nil {
				return err
			}
			unitCost := avg
			mov := &entity.InventoryMovement{
				ID:           uuid.New().String(),
				IngredientID: item.IngredientID,
				Type:         entity.MovementTypeOUT,
				Qty:          qty,
				UnitCost:     &unitCost,
				Reason:       fmt.Sprintf("Consumo lote %s", batch.ID),
				CreatedAt:    finishedAt,
				CreatedBy:    userID,
			}
			if err := r.Movements.Create(mov); err != nil {
				return err
			}
		}

		actual := in.ActualUnits
		batch.ActualUnits = &actual
		batch.FinishedAt = &finishedAt
		if in.Notes != nil {
			batch.Notes = *in.Notes
		}
		if err := r.Batches.Update(batch); err != nil {
			return err
		}

		return audit.Record(r.Audit, userID, "finish", "ProductionBatch", batch.ID, batch)
	})
	if err != nil {
		return nil, err
	}
	return toBatchResponse(batch), nil
}

// GetBatch lote por ID.
func (uc *UseCase) GetBatch(ctx context.Context, id string) (*dto.BatchResponse, error) {
	batch, err := uc.batchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	return toBatchResponse(batch), nil
}

// ListBatches lotes ordenados por inicio descendente.
func (uc *UseCase) ListBatches(ctx context.Context) ([]*dto.BatchResponse, error) {
	batches, err := uc.batchRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, toBatchResponse(b))
	}
	return out, nil
}

func toBatchResponse(b *entity.ProductionBatch) *dto.BatchResponse {
	return &dto.BatchResponse{
		ID:           b.ID,
		ProductID:    b.ProductID,
		PlannedUnits: b.PlannedUnits,
		ActualUnits:  b.ActualUnits,
		StartedAt:    b.StartedAt,
		FinishedAt:   b.FinishedAt,
		Notes:        b.Notes,
	}
}
