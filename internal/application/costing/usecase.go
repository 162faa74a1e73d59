package costing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Panaderia-api/internal/application/dto"
	"github.com/jhoicas/Panaderia-api/internal/domain"
	domaincosting "github.com/jhoicas/Panaderia-api/internal/domain/costing"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
)

// UseCase motor de costeo: promedio ponderado de insumos, costo de receta
// por unidad, overhead por unidad y precio sugerido. Solo lecturas.
type UseCase struct {
	movementRepo repository.InventoryMovementRepository
	recipeRepo   repository.RecipeRepository
	overheadRepo repository.OverheadRepository
}

// NewUseCase construye el motor de costeo.
func NewUseCase(
	movementRepo repository.InventoryMovementRepository,
	recipeRepo repository.RecipeRepository,
	overheadRepo repository.OverheadRepository,
) *UseCase {
	return &UseCase{movementRepo: movementRepo, recipeRepo: recipeRepo, overheadRepo: overheadRepo}
}

// AverageCost promedio ponderado por cantidad sobre todos los IN del insumo.
// 0 si el insumo no tiene entradas.
func (uc *UseCase) AverageCost(ctx context.Context, ingredientID string) (decimal.Decimal, error) {
	return uc.movementRepo.AverageInCost(ingredientID)
}

// ProductCost costo unitario de insumos de la receta y overhead por unidad,
// por separado (el caller decide si los suma). margin != nil agrega el
// precio sugerido sobre insumos + overhead.
func (uc *UseCase) ProductCost(ctx context.Context, productID string, margin *decimal.Decimal) (*dto.ProductCostResponse, error) {
	recipe, err := uc.recipeRepo.GetByProduct(productID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNoRecipe
	}

	// Σ promedio(insumo) * qtyPerBatch, dividido por el rendimiento.
	var batchCost decimal.Decimal
	for _, item := range recipe.Items {
		avg, err := uc.movementRepo.AverageInCost(item.IngredientID)
		if err != nil {
			return nil, err
		}
		batchCost = batchCost.Add(avg.Mul(item.QtyPerBatch))
	}
	yield := recipe.YieldUnits
	if yield <= 0 {
		yield = 1
	}
	ingredientUnit := batchCost.Div(decimal.NewFromInt(int64(yield))).Round(domaincosting.CostPlaces)

	overheadUnit, err := uc.OverheadUnitCost(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProductCostResponse{
		ProductID:          productID,
		IngredientUnitCost: ingredientUnit,
		OverheadUnitCost:   overheadUnit,
		CalculatedAt:       time.Now(),
	}
	if margin != nil {
		suggested := domaincosting.SuggestPrice(ingredientUnit.Add(overheadUnit), *margin)
		resp.SuggestedPrice = &suggested
	}
	return resp, nil
}

// OverheadUnitCost suma de los cinco rubros de la configuración vigente
// dividida por las unidades producidas; 0 si no hay configuración.
func (uc *UseCase) OverheadUnitCost(ctx context.Context) (decimal.Decimal, error) {
	overhead, err := uc.overheadRepo.GetCurrent()
	if err != nil {
		return decimal.Zero, err
	}
	if overhead == nil {
		return decimal.Zero, nil
	}
	return domaincosting.OverheadUnitCost(overhead.TotalCost(), overhead.UnitsProduced), nil
}
