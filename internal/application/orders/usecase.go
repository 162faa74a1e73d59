package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Panaderia-api/internal/application/audit"
	"github.com/jhoicas/Panaderia-api/internal/application/dto"
	"github.com/jhoicas/Panaderia-api/internal/application/ports"
	"github.com/jhoicas/Panaderia-api/internal/domain"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
)

// UseCase pedidos de venta. La transición a PAID con método de pago postea
// exactamente un asiento IN en el libro de caja por pedido; la unicidad la
// cierra el índice único parcial sobre (ref_table, ref_id), no un
// read-then-write.
type UseCase struct {
	txRunner     ports.TxRunner
	orderRepo    repository.SalesOrderRepository
	customerRepo repository.CustomerRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner ports.TxRunner,
	orderRepo repository.SalesOrderRepository,
	customerRepo repository.CustomerRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, orderRepo: orderRepo, customerRepo: customerRepo}
}

// CreateOrder crea el pedido. TotalNet = TotalGross - TotalDiscount siempre
// se calcula aquí; el valor del caller se ignora. Si el pedido nace PAID
// con método de pago, el asiento de caja se postea en la misma transacción.
func (uc *UseCase) CreateOrder(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if !entity.ValidOrderStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	order := &entity.SalesOrder{
		ID:            uuid.New().String(),
		CustomerID:    in.CustomerID,
		OrderDate:     in.OrderDate,
		DueDate:       in.DueDate,
		Status:        in.Status,
		PaymentMethod: in.PaymentMethod,
		TotalGross:    in.TotalGross,
		TotalDiscount: in.TotalDiscount,
		TotalNet:      in.TotalGross.Sub(in.TotalDiscount),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, item := range in.Items {
		order.Items = append(order.Items, entity.SalesOrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		})
	}

	err = uc.txRunner.Run(ctx, func(r ports.Repos) error {
		if err := r.Orders.Create(order); err != nil {
			return err
		}
		if err := audit.Record(r.Audit, userID, "create", "SalesOrder", order.ID, order); err != nil {
			return err
		}
		return uc.postPaymentEntry(r, order)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// UpdateOrder actualización parcial. TotalNet se recalcula cuando cambia
// el bruto o el descuento; nunca se toma del caller. Si el resultado es
// PAID con método de pago, se inserta el asiento de caja si aún no existe,
// dentro de la misma transacción que el cambio de estado.
func (uc *UseCase) UpdateOrder(ctx context.Context, userID, orderID string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if in.Status != nil && !entity.ValidOrderStatus(*in.Status) {
		return nil, domain.ErrInvalidInput
	}

	var order *entity.SalesOrder
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		// Bloquea la fila del pedido durante la transición de estado.
		order, err = r.Orders.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}

		if in.CustomerID != nil {
			order.CustomerID = *in.CustomerID
		}
		if in.OrderDate != nil {
			order.OrderDate = *in.OrderDate
		}
		if in.DueDate != nil {
			order.DueDate = in.DueDate
		}
		if in.Status != nil {
			order.Status = *in.Status
		}
		if in.PaymentMethod != nil {
			order.PaymentMethod = in.PaymentMethod
		}
		if in.TotalGross != nil {
			order.TotalGross = *in.TotalGross
		}
		if in.TotalDiscount != nil {
			order.TotalDiscount = *in.TotalDiscount
		}
		// Invariante: net = bruto - descuento, recalculado en cada update
		// que toque cualquiera de los dos operandos.
		order.TotalNet = order.TotalGross.Sub(order.TotalDiscount)
		order.UpdatedAt = time.Now()

		replaceItems := in.Items != nil
		if replaceItems {
			order.Items = nil
			for _, item := range in.Items {
				order.Items = append(order.Items, entity.SalesOrderItem{
					ID:        uuid.New().String(),
					OrderID:   order.ID,
					ProductID: item.ProductID,
					Qty:       item.Qty,
					UnitPrice: item.UnitPrice,
					Total:     item.Total,
				})
			}
		}

		if err := r.Orders.Update(order, replaceItems); err != nil {
			return err
		}
		if err := audit.Record(r.Audit, userID, "update", "SalesOrder", order.ID, order); err != nil {
			return err
		}
		return uc.postPaymentEntry(r, order)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// postPaymentEntry postea el cobro del pedido si quedó PAID con método de
// pago. CreateIfAbsent descansa en el índice único parcial: bajo dos "mark
// paid" concurrentes uno inserta y el otro ve el conflicto y lo trata como
// ya aplicado.
func (uc *UseCase) postPaymentEntry(r ports.Repos, order *entity.SalesOrder) error {
	if order.Status != entity.OrderStatusPaid || order.PaymentMethod == nil {
		return nil
	}
	entry := &entity.CashbookEntry{
		ID:            uuid.New().String(),
		Date:          time.Now(),
		Type:          entity.CashbookTypeIN,
		Description:   fmt.Sprintf("Pago pedido %s", order.ID),
		Amount:        order.TotalNet,
		PaymentMethod: *order.PaymentMethod,
		RefTable:      entity.CashbookRefSalesOrder,
		RefID:         order.ID,
		CreatedAt:     time.Now(),
	}
	_, err := r.Cashbook.CreateIfAbsent(entry)
	return err
}

// GetOrder pedido por ID con sus ítems.
func (uc *UseCase) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// ListOrders pedidos ordenados por creación descendente.
func (uc *UseCase) ListOrders(ctx context.Context) ([]*dto.OrderResponse, error) {
	orders, err := uc.orderRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// DeleteOrder elimina el pedido (solo admin) con su fila de auditoría en
// la misma transacción.
func (uc *UseCase) DeleteOrder(ctx context.Context, userID, id string) error {
	return uc.txRunner.Run(ctx, func(r ports.Repos) error {
		order, err := r.Orders.GetByID(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if err := r.Orders.Delete(id); err != nil {
			return err
		}
		return audit.Record(r.Audit, userID, "delete", "SalesOrder", id, order)
	})
}

func toOrderResponse(o *entity.SalesOrder) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		OrderDate:     o.OrderDate,
		DueDate:       o.DueDate,
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		TotalGross:    o.TotalGross,
		TotalDiscount: o.TotalDiscount,
		TotalNet:      o.TotalNet,
		Items:         make([]dto.OrderItemResponse, 0, len(o.Items)),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		})
	}
	return resp
}
