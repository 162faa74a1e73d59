package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Panaderia-api/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Todo lo que fn escriba (movimientos, asientos,
// auditoría) es atómico.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := ports.Repos{
		Ingredients: NewIngredientRepository(tx),
		Movements:   NewInventoryMovementRepository(tx),
		Products:    NewProductRepository(tx),
		Recipes:     NewRecipeRepository(tx),
		Batches:     NewProductionBatchRepository(tx),
		Orders:      NewSalesOrderRepository(tx),
		Cashbook:    NewCashbookRepository(tx),
		Expenses:    NewExpenseRepository(tx),
		Overhead:    NewOverheadRepository(tx),
		Users:       NewUserRepository(tx),
		Customers:   NewCustomerRepository(tx),
		Audit:       NewAuditLogRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
