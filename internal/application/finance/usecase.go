package finance

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

// UseCase gastos, libro de caja, cierre diario y reportes mensuales.
type UseCase struct {
	txRunner     ports.TxRunner
	expenseRepo  repository.ExpenseRepository
	cashbookRepo repository.CashbookRepository
	reportRepo   repository.ReportRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner ports.TxRunner,
	expenseRepo repository.ExpenseRepository,
	cashbookRepo repository.CashbookRepository,
	reportRepo repository.ReportRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		expenseRepo:  expenseRepo,
		cashbookRepo: cashbookRepo,
		reportRepo:   reportRepo,
	}
}

// CreateExpense crea el gasto y su asiento OUT de caja emparejado en una
// sola transacción: uno no puede existir sin el otro.
func (uc *UseCase) CreateExpense(ctx context.Context, userID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	expense := &entity.Expense{
		ID:            uuid.New().String(),
		Date:          in.Date,
		Category:      in.Category,
		Description:   in.Description,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		CreatedAt:     now,
	}
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		if err := r.Expenses.Create(expense); err != nil {
			return err
		}
		entry := &entity.CashbookEntry{
			ID:            uuid.New().String(),
			Date:          in.Date,
			Type:          entity.CashbookTypeOUT,
			Description:   in.Description,
			Amount:        in.Amount,
			PaymentMethod: in.PaymentMethod,
			RefTable:      entity.CashbookRefExpense,
			RefID:         expense.ID,
			CreatedAt:     now,
		}
		if err := r.Cashbook.Create(entry); err != nil {
			return err
		}
		return audit.Record(r.Audit, userID, "create", "Expense", expense.ID, expense)
	})
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// ListExpenses gastos recientes.
func (uc *UseCase) ListExpenses(ctx context.Context, limit int) ([]*dto.ExpenseResponse, error) {
	if limit <= 0 {
		limit = 100
	}
	expenses, err := uc.expenseRepo.List(limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	return out, nil
}

// ListCashbook asientos de caja; day != nil filtra por día calendario.
func (uc *UseCase) ListCashbook(ctx context.Context, day *time.Time, limit int) ([]*dto.CashbookEntryResponse, error) {
	if limit <= 0 {
		limit = 200
	}
	var entries []*entity.CashbookEntry
	var err error
	if day != nil {
		entries, err = uc.cashbookRepo.ListByDay(*day)
	} else {
		entries, err = uc.cashbookRepo.List(limit)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CashbookEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, &dto.CashbookEntryResponse{
			ID:            e.ID,
			Date:          e.Date,
			Type:          e.Type,
			Description:   e.Description,
			Amount:        e.Amount,
			PaymentMethod: e.PaymentMethod,
			RefTable:      e.RefTable,
			RefID:         e.RefID,
		})
	}
	return out, nil
}

// CashClose cierre de caja del día: agrupa los asientos por (método de
// pago, tipo), suma montos y deja UN snapshot de auditoría con los totales.
// Es una agregación de solo lectura: no muta ninguna fila del ledger.
func (uc *UseCase) CashClose(ctx context.Context, userID string, in dto.CashCloseRequest) (*dto.CashCloseResponse, error) {
	day := time.Now()
	if in.Date != nil {
		day = *in.Date
	}
	notes := in.Notes
	if notes == "" {
		notes = "Cierre diario"
	}

	var totals []repository.DailyTotal
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		totals, err = r.Cashbook.TotalsByDay(day)
		if err != nil {
			return err
		}
		snapshot := map[string]any{"date": day, "notes": notes, "totals": totals}
		return audit.Record(r.Audit, userID, "cash-close", "Cashbook", day.Format("2006-01-02"), snapshot)
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.CashCloseResponse{Date: day, Notes: notes, Totals: make([]dto.CashCloseTotal, 0, len(totals))}
	for _, t := range totals {
		resp.Totals = append(resp.Totals, dto.CashCloseTotal{
			PaymentMethod: t.PaymentMethod,
			Type:          t.Type,
			Amount:        t.Amount,
		})
	}
	return resp, nil
}

// MonthlySales reporte de ventas netas por mes (últimos `months` meses).
func (uc *UseCase) MonthlySales(ctx context.Context, months int) ([]*dto.MonthlySalesResponse, error) {
	if months <= 0 {
		months = 6
	}
	rows, err := uc.reportRepo.MonthlySales(months)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MonthlySalesResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, &dto.MonthlySalesResponse{Month: r.Month, Total: r.Total, Discount: r.Discount})
	}
	return out, nil
}

// MonthlyProfit reporte de resultado por mes (últimos `months` meses).
func (uc *UseCase) MonthlyProfit(ctx context.Context, months int) ([]*dto.MonthlyProfitResponse, error) {
	if months <= 0 {
		months = 6
	}
	rows, err := uc.reportRepo.MonthlyProfit(months)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MonthlyProfitResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, &dto.MonthlyProfitResponse{
			Month:    r.Month,
			Revenue:  r.Revenue,
			Cogs:     r.Cogs,
			Expenses: r.Expenses,
			Profit:   r.Profit,
		})
	}
	return out, nil
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:            e.ID,
		Date:          e.Date,
		Category:      e.Category,
		Description:   e.Description,
		Amount:        e.Amount,
		PaymentMethod: e.PaymentMethod,
	}
}
