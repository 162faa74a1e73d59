package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
)

// DailyTotal total de un día agrupado por (método de pago, tipo).
type DailyTotal struct {
	PaymentMethod string
	Type          string
	Amount        decimal.Decimal
}

// CashbookRepository puerto de persistencia para el libro de caja.
type CashbookRepository interface {
	Create(entry *entity.CashbookEntry) error
	// CreateIfAbsent inserta el asiento solo si no existe otro con la misma
	// referencia (INSERT ... ON CONFLICT DO NOTHING sobre el índice único
	// parcial). Devuelve true si insertó.
	CreateIfAbsent(entry *entity.CashbookEntry) (bool, error)
	ListByDay(day time.Time) ([]*entity.CashbookEntry, error)
	List(limit int) ([]*entity.CashbookEntry, error)
	// TotalsByDay agrupa los asientos del día por (payment_method, type)
	// con SUM(amount). Lectura pura, no bloquea escritores.
	TotalsByDay(day time.Time) ([]DailyTotal, error)
}
