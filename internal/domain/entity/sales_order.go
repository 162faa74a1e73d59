package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido de venta. El conjunto no impone un orden:
// la validez de cada transición es responsabilidad del caller.
const (
	OrderStatusOpen         = "OPEN"
	OrderStatusConfirmed    = "CONFIRMED"
	OrderStatusInProduction = "IN_PRODUCTION"
	OrderStatusReady        = "READY"
	OrderStatusDelivered    = "DELIVERED"
	OrderStatusPaid         = "PAID"
	OrderStatusCancelled    = "CANCELLED"
)

// Métodos de pago.
const (
	PaymentMethodPIX    = "PIX"
	PaymentMethodCash   = "CASH"
	PaymentMethodCard   = "CARD"
	PaymentMethodBoleto = "BOLETO" // solo gastos
)

// ValidOrderStatus verifica que el estado pertenezca al conjunto.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusOpen, OrderStatusConfirmed, OrderStatusInProduction,
		OrderStatusReady, OrderStatusDelivered, OrderStatusPaid, OrderStatusCancelled:
		return true
	}
	return false
}

// SalesOrder pedido de venta. TotalNet siempre se recalcula en el servidor
// como TotalGross - TotalDiscount; nunca se confía en el valor del caller.
type SalesOrder struct {
	ID            string
	CustomerID    string
	OrderDate     time.Time
	DueDate       *time.Time
	Status        string
	PaymentMethod *string
	TotalGross    decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalNet      decimal.Decimal
	Items         []SalesOrderItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SalesOrderItem línea de un pedido.
type SalesOrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Qty       decimal.Decimal
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}
