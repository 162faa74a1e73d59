package ports

import (
	"context"

	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción de BD.
type Repos struct {
	Ingredients repository.IngredientRepository
	Movements   repository.InventoryMovementRepository
	Products    repository.ProductRepository
	Recipes     repository.RecipeRepository
	Batches     repository.ProductionBatchRepository
	Orders      repository.SalesOrderRepository
	Cashbook    repository.CashbookRepository
	Expenses    repository.ExpenseRepository
	Overhead    repository.OverheadRepository
	Users       repository.UserRepository
	Customers   repository.CustomerRepository
	Audit       repository.AuditLogRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Commit si fn retorna nil; Rollback completo en caso
// contrario. Garantiza la atomicidad de los asientos del ledger.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
