// Package apptest provee dobles en memoria de los puertos de persistencia
// para probar los casos de uso sin PostgreSQL. El TxRunner falso ejecuta el
// callback directamente: los tests que esperan error verifican el error
// retornado, no el estado intermedio del store.
package apptest

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Panaderia-api/internal/application/ports"
	"github.com/jhoicas/Panaderia-api/internal/domain"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
)

// Store estado compartido de todos los repos falsos.
type Store struct {
	Ingredients map[string]*entity.Ingredient
	Movements   []*entity.InventoryMovement
	Products    map[string]*entity.Product
	Recipes     map[string]*entity.Recipe // clave: productID
	Batches     map[string]*entity.ProductionBatch
	Orders      map[string]*entity.SalesOrder
	Cashbook    []*entity.CashbookEntry
	Expenses    []*entity.Expense
	Overheads   []*entity.OverheadConfig
	Users       map[string]*entity.User
	Customers   map[string]*entity.Customer
	AuditLogs   []*entity.AuditLog

	SalesRows  []repository.MonthlySales
	ProfitRows []repository.MonthlyProfit

	// LockedIngredients IDs leídos con GetForUpdate, en orden.
	LockedIngredients []string
}

// NewStore store vacío listo para usar.
func NewStore() *Store {
	return &Store{
		Ingredients: make(map[string]*entity.Ingredient),
		Products:    make(map[string]*entity.Product),
		Recipes:     make(map[string]*entity.Recipe),
		Batches:     make(map[string]*entity.ProductionBatch),
		Orders:      make(map[string]*entity.SalesOrder),
		Users:       make(map[string]*entity.User),
		Customers:   make(map[string]*entity.Customer),
	}
}

// Repos repos falsos atados a este store.
func (s *Store) Repos() ports.Repos {
	return ports.Repos{
		Ingredients: &ingredientRepo{s},
		Movements:   &movementRepo{s},
		Products:    &productRepo{s},
		Recipes:     &recipeRepo{s},
		Batches:     &batchRepo{s},
		Orders:      &orderRepo{s},
		Cashbook:    &cashbookRepo{s},
		Expenses:    &expenseRepo{s},
		Overhead:    &overheadRepo{s},
		Users:       &userRepo{s},
		Customers:   &customerRepo{s},
		Audit:       &auditRepo{s},
	}
}

// TxRunner ejecuta el callback con los repos del store, sin transacción.
type TxRunner struct {
	S *Store
}

// Run implementa ports.TxRunner.
func (r *TxRunner) Run(_ context.Context, fn func(repos ports.Repos) error) error {
	return fn(r.S.Repos())
}

var _ ports.TxRunner = (*TxRunner)(nil)

// ---- ingredients ----

type ingredientRepo struct{ s *Store }

func (r *ingredientRepo) Create(i *entity.Ingredient) error {
	r.s.Ingredients[i.ID] = i
	return nil
}

func (r *ingredientRepo) Update(i *entity.Ingredient) error {
	if _, ok := r.s.Ingredients[i.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.Ingredients[i.ID] = i
	return nil
}

func (r *ingredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	return r.s.Ingredients[id], nil
}

func (r *ingredientRepo) GetForUpdate(id string) (*entity.Ingredient, error) {
	r.s.LockedIngredients = append(r.s.LockedIngredients, id)
	return r.s.Ingredients[id], nil
}

func (r *ingredientRepo) List() ([]*entity.Ingredient, error) {
	out := make([]*entity.Ingredient, 0, len(r.s.Ingredients))
	for _, i := range r.s.Ingredients {
		out = append(out, i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, nil
}

// ---- inventory movements ----

type movementRepo struct{ s *Store }

func (r *movementRepo) Create(m *entity.InventoryMovement) error {
	r.s.Movements = append(r.s.Movements, m)
	return nil
}

func (r *movementRepo) ListByIngredient(ingredientID string, limit int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.s.Movements {
		if m.IngredientID == ingredientID {
			out = append(out, m)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *movementRepo) List(limit int) ([]*entity.InventoryMovement, error) {
	out := append([]*entity.InventoryMovement(nil), r.s.Movements...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *movementRepo) AverageInCost(ingredientID string) (decimal.Decimal, error) {
	var totalQty, totalValue decimal.Decimal
	for _, m := range r.s.Movements {
		if m.IngredientID != ingredientID || m.Type != entity.MovementTypeIN || m.UnitCost == nil {
			continue
		}
		totalQty = totalQty.Add(m.Qty)
		totalValue = totalValue.Add(m.Qty.Mul(*m.UnitCost))
	}
	if totalQty.IsZero() {
		return decimal.Zero, nil
	}
	return totalValue.Div(totalQty), nil
}

func (r *movementRepo) Balance(ingredientID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	for _, m := range r.s.Movements {
		if m.IngredientID != ingredientID {
			continue
		}
		if m.Type == entity.MovementTypeOUT {
			balance = balance.Sub(m.Qty)
		} else {
			balance = balance.Add(m.Qty)
		}
	}
	return balance, nil
}

func (r *movementRepo) CountByIngredient(ingredientID string) (int, error) {
	n := 0
	for _, m := range r.s.Movements {
		if m.IngredientID == ingredientID {
			n++
		}
	}
	return n, nil
}

// ---- products ----

type productRepo struct{ s *Store }

func (r *productRepo) Create(p *entity.Product) error {
	r.s.Products[p.ID] = p
	return nil
}

func (r *productRepo) Update(p *entity.Product) error {
	if _, ok := r.s.Products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.Products[p.ID] = p
	return nil
}

func (r *productRepo) Delete(id string) error {
	delete(r.s.Products, id)
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.Products[id], nil
}

func (r *productRepo) List() ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.s.Products))
	for _, p := range r.s.Products {
		out = append(out, p)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, nil
}

// ---- recipes ----

type recipeRepo struct{ s *Store }

func (r *recipeRepo) Upsert(rec *entity.Recipe) error {
	r.s.Recipes[rec.ProductID] = rec
	return nil
}

func (r *recipeRepo) GetByProduct(productID string) (*entity.Recipe, error) {
	return r.s.Recipes[productID], nil
}

func (r *recipeRepo) List() ([]*entity.Recipe, error) {
	out := make([]*entity.Recipe, 0, len(r.s.Recipes))
	for _, rec := range r.s.Recipes {
		out = append(out, rec)
	}
	return out, nil
}

// ---- production batches ----

type batchRepo struct{ s *Store }

func (r *batchRepo) Create(b *entity.ProductionBatch) error {
	r.s.Batches[b.ID] = b
	return nil
}

func (r *batchRepo) Update(b *entity.ProductionBatch) error {
	if _, ok := r.s.Batches[b.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.Batches[b.ID] = b
	return nil
}

func (r *batchRepo) GetByID(id string) (*entity.ProductionBatch, error) {
	return r.s.Batches[id], nil
}

func (r *batchRepo) GetForUpdate(id string) (*entity.ProductionBatch, error) {
	return r.s.Batches[id], nil
}

func (r *batchRepo) List() ([]*entity.ProductionBatch, error) {
	out := make([]*entity.ProductionBatch, 0, len(r.s.Batches))
	for _, b := range r.s.Batches {
		out = append(out, b)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].StartedAt.After(out[b].StartedAt) })
	return out, nil
}

// ---- sales orders ----

type orderRepo struct{ s *Store }

func (r *orderRepo) Create(o *entity.SalesOrder) error {
	r.s.Orders[o.ID] = o
	return nil
}

func (r *orderRepo) Update(o *entity.SalesOrder, _ bool) error {
	if _, ok := r.s.Orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.Orders[o.ID] = o
	return nil
}

func (r *orderRepo) Delete(id string) error {
	delete(r.s.Orders, id)
	return nil
}

func (r *orderRepo) GetByID(id string) (*entity.SalesOrder, error) {
	return r.s.Orders[id], nil
}

func (r *orderRepo) GetForUpdate(id string) (*entity.SalesOrder, error) {
	return r.s.Orders[id], nil
}

func (r *orderRepo) List() ([]*entity.SalesOrder, error) {
	out := make([]*entity.SalesOrder, 0, len(r.s.Orders))
	for _, o := range r.s.Orders {
		out = append(out, o)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

// ---- cashbook ----

type cashbookRepo struct{ s *Store }

func (r *cashbookRepo) Create(e *entity.CashbookEntry) error {
	r.s.Cashbook = append(r.s.Cashbook, e)
	return nil
}

func (r *cashbookRepo) CreateIfAbsent(e *entity.CashbookEntry) (bool, error) {
	if e.Type == entity.CashbookTypeIN {
		for _, existing := range r.s.Cashbook {
			if existing.Type == entity.CashbookTypeIN && existing.RefTable == e.RefTable && existing.RefID == e.RefID {
				return false, nil
			}
		}
	}
	r.s.Cashbook = append(r.s.Cashbook, e)
	return true, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func (r *cashbookRepo) ListByDay(day time.Time) ([]*entity.CashbookEntry, error) {
	var out []*entity.CashbookEntry
	for _, e := range r.s.Cashbook {
		if sameDay(e.Date, day) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *cashbookRepo) List(limit int) ([]*entity.CashbookEntry, error) {
	out := append([]*entity.CashbookEntry(nil), r.s.Cashbook...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *cashbookRepo) TotalsByDay(day time.Time) ([]repository.DailyTotal, error) {
	type key struct{ method, typ string }
	sums := make(map[key]decimal.Decimal)
	var order []key
	for _, e := range r.s.Cashbook {
		if !sameDay(e.Date, day) {
			continue
		}
		k := key{e.PaymentMethod, e.Type}
		if _, ok := sums[k]; !ok {
			order = append(order, k)
		}
		sums[k] = sums[k].Add(e.Amount)
	}
	out := make([]repository.DailyTotal, 0, len(order))
	for _, k := range order {
		out = append(out, repository.DailyTotal{PaymentMethod: k.method, Type: k.typ, Amount: sums[k]})
	}
	return out, nil
}

// ---- expenses ----

type expenseRepo struct{ s *Store }

func (r *expenseRepo) Create(e *entity.Expense) error {
	r.s.Expenses = append(r.s.Expenses, e)
	return nil
}

func (r *expenseRepo) List(limit int) ([]*entity.Expense, error) {
	out := append([]*entity.Expense(nil), r.s.Expenses...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ---- overhead ----

type overheadRepo struct{ s *Store }

func (r *overheadRepo) Create(c *entity.OverheadConfig) error {
	r.s.Overheads = append(r.s.Overheads, c)
	return nil
}

func (r *overheadRepo) GetCurrent() (*entity.OverheadConfig, error) {
	var current *entity.OverheadConfig
	for _, c := range r.s.Overheads {
		if current == nil || c.PeriodEnd.After(current.PeriodEnd) {
			current = c
		}
	}
	return current, nil
}

// ---- users ----

type userRepo struct{ s *Store }

func (r *userRepo) Create(u *entity.User) error {
	for _, existing := range r.s.Users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.Users[u.ID] = u
	return nil
}

func (r *userRepo) Update(u *entity.User) error {
	if _, ok := r.s.Users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.s.Users[u.ID] = u
	return nil
}

func (r *userRepo) GetByID(id string) (*entity.User, error) {
	return r.s.Users[id], nil
}

func (r *userRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.s.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *userRepo) List() ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.s.Users))
	for _, u := range r.s.Users {
		out = append(out, u)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.Before(out[b].CreatedAt) })
	return out, nil
}

// ---- customers ----

type customerRepo struct{ s *Store }

func (r *customerRepo) Create(c *entity.Customer) error {
	r.s.Customers[c.ID] = c
	return nil
}

func (r *customerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.s.Customers[id], nil
}

func (r *customerRepo) List() ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0, len(r.s.Customers))
	for _, c := range r.s.Customers {
		out = append(out, c)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, nil
}

// ---- audit ----

type auditRepo struct{ s *Store }

func (r *auditRepo) Create(l *entity.AuditLog) error {
	r.s.AuditLogs = append(r.s.AuditLogs, l)
	return nil
}

func (r *auditRepo) List(limit int) ([]*entity.AuditLog, error) {
	out := append([]*entity.AuditLog(nil), r.s.AuditLogs...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ---- reports ----

// ReportRepo doble de ReportRepository con filas pre-cargadas.
type ReportRepo struct {
	S *Store
}

func (r *ReportRepo) MonthlySales(_ int) ([]repository.MonthlySales, error) {
	return r.S.SalesRows, nil
}

func (r *ReportRepo) MonthlyProfit(_ int) ([]repository.MonthlyProfit, error) {
	return r.S.ProfitRows, nil
}

var _ repository.ReportRepository = (*ReportRepo)(nil)
