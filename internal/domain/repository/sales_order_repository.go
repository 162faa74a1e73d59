package repository

import "github.com/jhoicas/Panaderia-api/internal/domain/entity"

// SalesOrderRepository puerto de persistencia para pedidos de venta.
type SalesOrderRepository interface {
	Create(order *entity.SalesOrder) error
	// Update persiste cabecera; si replaceItems es true borra y recrea los ítems.
	Update(order *entity.SalesOrder, replaceItems bool) error
	Delete(id string) error
	GetByID(id string) (*entity.SalesOrder, error)
	// GetForUpdate bloquea la fila del pedido para la transición de estado.
	GetForUpdate(id string) (*entity.SalesOrder, error)
	List() ([]*entity.SalesOrder, error)
}
