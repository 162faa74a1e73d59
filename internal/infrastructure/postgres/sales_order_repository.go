package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
)

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

// SalesOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

// Create persiste el pedido con sus ítems (llamar dentro de una tx).
func (r *SalesOrderRepo) Create(order *entity.SalesOrder) error {
	query := `
		INSERT INTO sales_orders (id, customer_id, order_date, due_date, status, payment_method, total_gross, total_discount, total_net, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CustomerID, order.OrderDate, order.DueDate, order.Status,
		order.PaymentMethod, order.TotalGross, order.TotalDiscount, order.TotalNet,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return r.insertItems(order)
}

// Update persiste la cabecera; si replaceItems es true borra y recrea los ítems.
func (r *SalesOrderRepo) Update(order *entity.SalesOrder, replaceItems bool) error {
	query := `
		UPDATE sales_orders
		SET customer_id = $2, order_date = $3, due_date = $4, status = $5, payment_method = $6,
		    total_gross = $7, total_discount = $8, total_net = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		order.ID, order.CustomerID, order.OrderDate, order.DueDate, order.Status,
		order.PaymentMethod, order.TotalGross, order.TotalDiscount, order.TotalNet,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update order: no rows affected")
	}
	if !replaceItems {
		return nil
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM sales_order_items WHERE order_id = $1`, order.ID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return r.insertItems(order)
}

func (r *SalesOrderRepo) insertItems(order *entity.SalesOrder) error {
	for i := range order.Items {
		item := &order.Items[i]
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO sales_order_items (id, order_id, product_id, qty, unit_price, total)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, item.OrderID, item.ProductID, item.Qty, item.UnitPrice, item.Total,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// Delete elimina el pedido; los ítems caen por ON DELETE CASCADE.
func (r *SalesOrderRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sales_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// GetByID obtiene el pedido con sus ítems. Devuelve nil si no existe.
func (r *SalesOrderRepo) GetByID(id string) (*entity.SalesOrder, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene el pedido bloqueando la fila para la transición de estado.
func (r *SalesOrderRepo) GetForUpdate(id string) (*entity.SalesOrder, error) {
	return r.get(id, true)
}

func (r *SalesOrderRepo) get(id string, forUpdate bool) (*entity.SalesOrder, error) {
	query := `
		SELECT id, customer_id, order_date, due_date, status, payment_method, total_gross, total_discount, total_net, created_at, updated_at
		FROM sales_orders WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var o entity.SalesOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.CustomerID, &o.OrderDate, &o.DueDate, &o.Status, &o.PaymentMethod,
		&o.TotalGross, &o.TotalDiscount, &o.TotalNet, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := r.itemsByOrder(o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *SalesOrderRepo) itemsByOrder(orderID string) ([]entity.SalesOrderItem, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, order_id, product_id, qty, unit_price, total
		FROM sales_order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var items []entity.SalesOrderItem
	for rows.Next() {
		var it entity.SalesOrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Qty, &it.UnitPrice, &it.Total); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// List pedidos más recientes primero, con ítems.
func (r *SalesOrderRepo) List() ([]*entity.SalesOrder, error) {
	query := `
		SELECT id, customer_id, order_date, due_date, status, payment_method, total_gross, total_discount, total_net, created_at, updated_at
		FROM sales_orders ORDER BY order_date DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesOrder
	for rows.Next() {
		var o entity.SalesOrder
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.OrderDate, &o.DueDate, &o.Status,
			&o.PaymentMethod, &o.TotalGross, &o.TotalDiscount, &o.TotalNet,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		items, err := r.itemsByOrder(o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return list, nil
}
