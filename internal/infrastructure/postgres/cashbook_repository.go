package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
)

var _ repository.CashbookRepository = (*CashbookRepo)(nil)

// CashbookRepo implementación sobre PostgreSQL (usable con pool o tx).
type CashbookRepo struct {
	q Querier
}

// NewCashbookRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashbookRepository(q Querier) *CashbookRepo {
	return &CashbookRepo{q: q}
}

const cashbookInsert = `
	INSERT INTO cashbook (id, date, type, description, amount, payment_method, ref_table, ref_id, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// Create persiste un asiento de caja.
func (r *CashbookRepo) Create(entry *entity.CashbookEntry) error {
	_, err := r.q.Exec(context.Background(), cashbookInsert,
		entry.ID, entry.Date, entry.Type, entry.Description, entry.Amount,
		entry.PaymentMethod, entry.RefTable, entry.RefID, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cashbook entry: %w", err)
	}
	return nil
}

// CreateIfAbsent inserta el asiento solo si no existe otro IN con la misma
// referencia. Se apoya en el índice único parcial sobre (ref_table, ref_id)
// WHERE type = 'IN'; es seguro frente a escritores concurrentes.
// Devuelve true si insertó.
func (r *CashbookRepo) CreateIfAbsent(entry *entity.CashbookEntry) (bool, error) {
	query := cashbookInsert + ` ON CONFLICT DO NOTHING`
	tag, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.Date, entry.Type, entry.Description, entry.Amount,
		entry.PaymentMethod, entry.RefTable, entry.RefID, entry.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert cashbook entry: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

const cashbookSelect = `
	SELECT id, date, type, description, amount, payment_method, ref_table, ref_id, created_at
	FROM cashbook`

// ListByDay asientos de un día calendario, más recientes primero.
func (r *CashbookRepo) ListByDay(day time.Time) ([]*entity.CashbookEntry, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	query := cashbookSelect + ` WHERE date >= $1 AND date < $2 ORDER BY date DESC`
	rows, err := r.q.Query(context.Background(), query, start, end)
	if err != nil {
		return nil, fmt.Errorf("list cashbook by day: %w", err)
	}
	defer rows.Close()
	return scanCashbookRows(rows)
}

// List asientos más recientes primero.
func (r *CashbookRepo) List(limit int) ([]*entity.CashbookEntry, error) {
	query := cashbookSelect + ` ORDER BY date DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list cashbook: %w", err)
	}
	defer rows.Close()
	return scanCashbookRows(rows)
}

type cashbookRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanCashbookRows(rows cashbookRows) ([]*entity.CashbookEntry, error) {
	var list []*entity.CashbookEntry
	for rows.Next() {
		var e entity.CashbookEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.Type, &e.Description, &e.Amount,
			&e.PaymentMethod, &e.RefTable, &e.RefID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cashbook entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// TotalsByDay agrupa los asientos del día por (payment_method, type) con
// SUM(amount). Lectura pura.
func (r *CashbookRepo) TotalsByDay(day time.Time) ([]repository.DailyTotal, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	query := `
		SELECT payment_method, type, SUM(amount)
		FROM cashbook
		WHERE date >= $1 AND date < $2
		GROUP BY payment_method, type
		ORDER BY payment_method, type`
	rows, err := r.q.Query(context.Background(), query, start, end)
	if err != nil {
		return nil, fmt.Errorf("totals by day: %w", err)
	}
	defer rows.Close()
	var totals []repository.DailyTotal
	for rows.Next() {
		var t repository.DailyTotal
		if err := rows.Scan(&t.PaymentMethod, &t.Type, &t.Amount); err != nil {
			return nil, fmt.Errorf("scan daily total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
