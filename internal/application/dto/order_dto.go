package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de pedido.
type OrderItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid4"`
	Qty       decimal.Decimal `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// CreateOrderRequest body para POST /api/orders. TotalNet no se acepta del
// caller: siempre se calcula como TotalGross - TotalDiscount.
type CreateOrderRequest struct {
	CustomerID    string             `json:"customer_id" validate:"required,uuid4"`
	OrderDate     time.Time          `json:"order_date" validate:"required"`
	DueDate       *time.Time         `json:"due_date"`
	Status        string             `json:"status" validate:"required,oneof=OPEN CONFIRMED IN_PRODUCTION READY DELIVERED PAID CANCELLED"`
	PaymentMethod *string            `json:"payment_method" validate:"omitempty,oneof=PIX CASH CARD"`
	TotalGross    decimal.Decimal    `json:"total_gross"`
	TotalDiscount decimal.Decimal    `json:"total_discount"`
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderRequest body para PUT /api/orders/:id (parcial).
type UpdateOrderRequest struct {
	CustomerID    *string            `json:"customer_id" validate:"omitempty,uuid4"`
	OrderDate     *time.Time         `json:"order_date"`
	DueDate       *time.Time         `json:"due_date"`
	Status        *string            `json:"status" validate:"omitempty,oneof=OPEN CONFIRMED IN_PRODUCTION READY DELIVERED PAID CANCELLED"`
	PaymentMethod *string            `json:"payment_method" validate:"omitempty,oneof=PIX CASH CARD"`
	TotalGross    *decimal.Decimal   `json:"total_gross"`
	TotalDiscount *decimal.Decimal   `json:"total_discount"`
	Items         []OrderItemRequest `json:"items" validate:"omitempty,min=1,dive"`
}

// OrderItemResponse línea de pedido persistida.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Qty       decimal.Decimal `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// OrderResponse pedido completo.
type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerID    string              `json:"customer_id"`
	OrderDate     time.Time           `json:"order_date"`
	DueDate       *time.Time          `json:"due_date,omitempty"`
	Status        string              `json:"status"`
	PaymentMethod *string             `json:"payment_method,omitempty"`
	TotalGross    decimal.Decimal     `json:"total_gross"`
	TotalDiscount decimal.Decimal     `json:"total_discount"`
	TotalNet      decimal.Decimal     `json:"total_net"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}
