package catalog

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

// UseCase administración del catálogo (solo admin): insumos, productos,
// recetas y costos indirectos. Toda mutación deja su fila de auditoría en
// la misma transacción.
type UseCase struct {
	txRunner     ports.TxRunner
	productRepo  repository.ProductRepository
	recipeRepo   repository.RecipeRepository
	overheadRepo repository.OverheadRepository
	customerRepo repository.CustomerRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner ports.TxRunner,
	productRepo repository.ProductRepository,
	recipeRepo repository.RecipeRepository,
	overheadRepo repository.OverheadRepository,
	customerRepo repository.CustomerRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		recipeRepo:   recipeRepo,
		overheadRepo: overheadRepo,
		customerRepo: customerRepo,
	}
}

// CreateIngredient alta de insumo.
func (uc *UseCase) CreateIngredient(ctx context.Context, userID string, in dto.CreateIngredientRequest) (*entity.Ingredient, error) {
	if in.UnitCost.IsNegative() || in.MinStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	ingredient := &entity.Ingredient{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Unit:      in.Unit,
		UnitCost:  in.UnitCost,
		MinStock:  in.MinStock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		if err := r.Ingredients.Create(ingredient); err != nil {
			return err
		}
		return audit.Record(r.Audit, userID, "create", "Ingredient", ingredient.ID, ingredient)
	})
	if err != nil {
		return nil, err
	}
	return ingredient, nil
}

// UpdateIngredient actualización parcial. El costo cacheado no se toca
// aquí: lo mantiene el registro de movimientos IN.
func (uc *UseCase) UpdateIngredient(ctx context.Context, userID, id string, in dto.UpdateIngredientRequest) (*entity.Ingredient, error) {
	if in.MinStock != nil && in.MinStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var ingredient *entity.Ingredient
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		ingredient, err = r.Ingredients.GetByID(id)
		if err != nil {
			return err
		}
		if ingredient == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			ingredient.Name = *in.Name
		}
		if in.Unit != nil && *in.Unit != ingredient.Unit {
			// Las cantidades del libro están expresadas en la unidad del
			// insumo: con movimientos asentados la unidad ya no cambia.
			count, err := r.Movements.CountByIngredient(id)
			if err != nil {
				return err
			}
			if count > 0 {
				return domain.ErrConflict
			}
			ingredient.Unit = *in.Unit
		}
		if in.MinStock != nil {
			ingredient.MinStock = *in.MinStock
		}
		ingredient.UpdatedAt = time.Now()
		if err := r.Ingredients.Update(ingredient); err != nil {
			return err
		}
		return audit.Record(r.Audit, userID, "update", "Ingredient", ingredient.ID, ingredient)
	})
	if err != nil {
		return nil, err
	}
	return ingredient, nil
}

// CreateProduct alta de producto.
func (uc *UseCase) CreateProduct(ctx context.Context, userID string, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Category:  in.Category,
		UnitPrice: in.UnitPrice,
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		if err := r.Products.Create(product); err != nil {
			return err
		}
		return audit.Record(r.Audit, userID, "create", "Product", product.ID, product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct actualización parcial de producto.
func (uc *UseCase) UpdateProduct(ctx context.Context, userID, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		product, err = r.Products.GetByID(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			product.Name = *in.Name
		}
		if in.Category != nil {
			product.Category = *in.Category
		}
		if in.UnitPrice != nil {
			product.UnitPrice = *in.UnitPrice
		}
		if in.Active != nil {
			product.Active = *in.Active
		}
		product.UpdatedAt = time.Now()
		if err := r.Products.Update(product); err != nil {
			return err
		}
		return audit.Record(r.Audit, userID, "update", "Product", product.ID, product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct elimina el producto con su fila de auditoría.
func (uc *UseCase) DeleteProduct(ctx context.Context, userID, id string) error {
	return uc.txRunner.Run(ctx, func(r ports.Repos) error {
		product, err := r.Products.GetByID(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := r.Products.Delete(id); err != nil {
			return err
		}
		return audit.Record(r.Audit, userID, "delete", "Product", id, product)
	})
}

// GetProduct producto por ID.
func (uc *UseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// ListProducts productos ordenados por nombre.
func (uc *UseCase) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	return uc.productRepo.List()
}

// UpsertRecipe crea o reemplaza la receta del producto (los ítems se
// recrean completos).
func (uc *UseCase) UpsertRecipe(ctx context.Context, userID string, in dto.UpsertRecipeRequest) (*entity.Recipe, error) {
	for _, item := range in.Items {
		if !item.QtyPerBatch.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}
	var recipe *entity.Recipe
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		product, err := r.Products.GetByID(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		existing, err := r.Recipes.GetByProduct(in.ProductID)
		if err != nil {
			return err
		}
		recipe = &entity.Recipe{
			ID:         uuid.New().String(),
			ProductID:  in.ProductID,
			YieldUnits: in.YieldUnits,
			Notes:      in.Notes,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if existing != nil {
			recipe.ID = existing.ID
			recipe.CreatedAt = existing.CreatedAt
		}
		for _, item := range in.Items {
			recipe.Items = append(recipe.Items, entity.RecipeItem{
				ID:           uuid.New().String(),
				RecipeID:     recipe.ID,
				IngredientID: item.IngredientID,
				QtyPerBatch:  item.QtyPerBatch,
				Unit:         item.Unit,
			})
		}
		if err := r.Recipes.Upsert(recipe); err != nil {
			return err
		}
		return audit.Record(r.Audit, userID, "upsert", "Recipe", recipe.ID, recipe)
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// GetRecipeByProduct receta de un producto.
func (uc *UseCase) GetRecipeByProduct(ctx context.Context, productID string) (*entity.Recipe, error) {
	recipe, err := uc.recipeRepo.GetByProduct(productID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNoRecipe
	}
	return recipe, nil
}

// ListRecipes todas las recetas.
func (uc *UseCase) ListRecipes(ctx context.Context) ([]*entity.Recipe, error) {
	return uc.recipeRepo.List()
}

// CreateOverhead registra los costos indirectos del mes en curso.
func (uc *UseCase) CreateOverhead(ctx context.Context, userID string, in dto.CreateOverheadRequest) (*entity.OverheadConfig, error) {
	for _, v := range []decimal.Decimal{in.GasCost, in.EnergyCost, in.WaterCost, in.PackagingCost, in.OtherCost} {
		if v.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}
	now := time.Now()
	periodStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	periodEnd := periodStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
	config := &entity.OverheadConfig{
		ID:            uuid.New().String(),
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		GasCost:       in.GasCost,
		EnergyCost:    in.EnergyCost,
		WaterCost:     in.WaterCost,
		PackagingCost: in.PackagingCost,
		OtherCost:     in.OtherCost,
		UnitsProduced: in.UnitsProduced,
		CreatedAt:     now,
	}
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		if err := r.Overhead.Create(config); err != nil {
			return err
		}
		return audit.Record(r.Audit, userID, "create", "OverheadConfig", config.ID, config)
	})
	if err != nil {
		return nil, err
	}
	return config, nil
}

// CreateCustomer alta de cliente.
func (uc *UseCase) CreateCustomer(ctx context.Context, userID string, name, phone, address string) (*entity.Customer, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     phone,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		if err := r.Customers.Create(customer); err != nil {
			return err
		}
		return audit.Record(r.Audit, userID, "create", "Customer", customer.ID, customer)
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// ListCustomers clientes ordenados por nombre.
func (uc *UseCase) ListCustomers(ctx context.Context) ([]*entity.Customer, error) {
	return uc.customerRepo.List()
}

// CurrentOverhead configuración vigente o ErrNotFound.
func (uc *UseCase) CurrentOverhead(ctx context.Context) (*entity.OverheadConfig, error) {
	config, err := uc.overheadRepo.GetCurrent()
	if err != nil {
		return nil, err
	}
	if config == nil {
		return nil, domain.ErrNotFound
	}
	return config, nil
}
