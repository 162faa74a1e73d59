package finance_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Panaderia-api/internal/application/apptest"
	"github.com/jhoicas/Panaderia-api/internal/application/dto"
	"github.com/jhoicas/Panaderia-api/internal/application/finance"
	"github.com/jhoicas/Panaderia-api/internal/domain"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func buildUseCase(s *apptest.Store) *finance.UseCase {
	repos := s.Repos()
	return finance.NewUseCase(&apptest.TxRunner{S: s}, repos.Expenses, repos.Cashbook, &apptest.ReportRepo{S: s})
}

// ──────────────────────────────────────────────────────────────────────────
// CreateExpense
// ──────────────────────────────────────────────────────────────────────────

func TestCreateExpense_CreaAsientoEmparejado(t *testing.T) {
	s := apptest.NewStore()
	uc := buildUseCase(s)

	resp, err := uc.CreateExpense(context.Background(), "user-1", dto.CreateExpenseRequest{
		Date:          time.Now(),
		Category:      "insumos",
		Description:   "Compra de gas",
		Amount:        dec("320.50"),
		PaymentMethod: entity.PaymentMethodBoleto,
	})
	require.NoError(t, err)

	// Gasto y asiento OUT nacen juntos, cruzados por referencia.
	require.Len(t, s.Expenses, 1)
	require.Len(t, s.Cashbook, 1)
	entry := s.Cashbook[0]
	assert.Equal(t, entity.CashbookTypeOUT, entry.Type)
	assert.True(t, dec("320.50").Equal(entry.Amount))
	assert.Equal(t, entity.CashbookRefExpense, entry.RefTable)
	assert.Equal(t, resp.ID, entry.RefID)
	assert.Len(t, s.AuditLogs, 1)
}

func TestCreateExpense_MontoInvalido(t *testing.T) {
	s := apptest.NewStore()
	uc := buildUseCase(s)

	for _, amount := range []string{"0", "-10"} {
		_, err := uc.CreateExpense(context.Background(), "user-1", dto.CreateExpenseRequest{
			Date:          time.Now(),
			Category:      "otros",
			Description:   "monto inválido",
			Amount:        dec(amount),
			PaymentMethod: entity.PaymentMethodCash,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Empty(t, s.Expenses)
	assert.Empty(t, s.Cashbook)
}

// ──────────────────────────────────────────────────────────────────────────
// CashClose
// ──────────────────────────────────────────────────────────────────────────

func TestCashClose_AgrupaPorMetodoYTipo(t *testing.T) {
	s := apptest.NewStore()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	s.Cashbook = append(s.Cashbook,
		&entity.CashbookEntry{ID: "c1", Date: day.Add(9 * time.Hour), Type: entity.CashbookTypeIN, Amount: dec("100"), PaymentMethod: entity.PaymentMethodPIX},
		&entity.CashbookEntry{ID: "c2", Date: day.Add(14 * time.Hour), Type: entity.CashbookTypeIN, Amount: dec("50"), PaymentMethod: entity.PaymentMethodPIX},
		&entity.CashbookEntry{ID: "c3", Date: day.Add(16 * time.Hour), Type: entity.CashbookTypeOUT, Amount: dec("30"), PaymentMethod: entity.PaymentMethodCash},
		// Otro día: no entra en el cierre.
		&entity.CashbookEntry{ID: "c4", Date: day.AddDate(0, 0, 1), Type: entity.CashbookTypeIN, Amount: dec("999"), PaymentMethod: entity.PaymentMethodPIX},
	)
	uc := buildUseCase(s)

	resp, err := uc.CashClose(context.Background(), "user-1", dto.CashCloseRequest{Date: &day})
	require.NoError(t, err)
	require.Len(t, resp.Totals, 2)

	byKey := map[string]decimal.Decimal{}
	for _, total := range resp.Totals {
		byKey[total.PaymentMethod+"/"+total.Type] = total.Amount
	}
	assert.True(t, dec("150").Equal(byKey["PIX/IN"]), "100 + 50 = 150")
	assert.True(t, dec("30").Equal(byKey["CASH/OUT"]))

	// El cierre es de solo lectura sobre el ledger + un snapshot de auditoría.
	assert.Len(t, s.Cashbook, 4)
	require.Len(t, s.AuditLogs, 1)
	assert.Equal(t, "cash-close", s.AuditLogs[0].Action)
}

func TestCashClose_NotasPorDefecto(t *testing.T) {
	s := apptest.NewStore()
	uc := buildUseCase(s)

	resp, err := uc.CashClose(context.Background(), "user-1", dto.CashCloseRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Cierre diario", resp.Notes)
	assert.Empty(t, resp.Totals)
}

// ──────────────────────────────────────────────────────────────────────────
// ListCashbook
// ──────────────────────────────────────────────────────────────────────────

func TestListCashbook_FiltroPorDia(t *testing.T) {
	s := apptest.NewStore()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	s.Cashbook = append(s.Cashbook,
		&entity.CashbookEntry{ID: "c1", Date: day.Add(8 * time.Hour), Type: entity.CashbookTypeIN, Amount: dec("10"), PaymentMethod: entity.PaymentMethodCash},
		&entity.CashbookEntry{ID: "c2", Date: day.AddDate(0, 0, -1), Type: entity.CashbookTypeIN, Amount: dec("20"), PaymentMethod: entity.PaymentMethodCash},
	)
	uc := buildUseCase(s)

	entries, err := uc.ListCashbook(context.Background(), &day, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "c1", entries[0].ID)

	all, err := uc.ListCashbook(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

// ──────────────────────────────────────────────────────────────────────────
// Reportes
// ──────────────────────────────────────────────────────────────────────────

func TestMonthlyProfit_MapeaFilas(t *testing.T) {
	s := apptest.NewStore()
	s.ProfitRows = []repository.MonthlyProfit{
		{Month: "2026-02", Revenue: dec("5000"), Cogs: dec("1800"), Expenses: dec("700"), Profit: dec("2500")},
	}
	uc := buildUseCase(s)

	rows, err := uc.MonthlyProfit(context.Background(), 6)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2026-02", rows[0].Month)
	assert.True(t, dec("2500").Equal(rows[0].Profit))
}

func TestMonthlySales_MapeaFilas(t *testing.T) {
	s := apptest.NewStore()
	s.SalesRows = []repository.MonthlySales{
		{Month: "2026-03", Total: dec("4200"), Discount: dec("150")},
	}
	uc := buildUseCase(s)

	rows, err := uc.MonthlySales(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, dec("4200").Equal(rows[0].Total))
	assert.True(t, dec("150").Equal(rows[0].Discount))
}
