package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Panaderia-api/internal/application/apptest"
	"github.com/jhoicas/Panaderia-api/internal/application/dto"
	"github.com/jhoicas/Panaderia-api/internal/application/orders"
	"github.com/jhoicas/Panaderia-api/internal/domain"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func ptr[T any](v T) *T { return &v }

func buildStore() *apptest.Store {
	s := apptest.NewStore()
	s.Customers["cust-1"] = &entity.Customer{ID: "cust-1", Name: "María"}
	return s
}

func buildUseCase(s *apptest.Store) *orders.UseCase {
	repos := s.Repos()
	return orders.NewUseCase(&apptest.TxRunner{S: s}, repos.Orders, repos.Customers)
}

func orderRequest(status string, method *string) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		CustomerID:    "cust-1",
		OrderDate:     time.Now(),
		Status:        status,
		PaymentMethod: method,
		TotalGross:    dec("1500"),
		TotalDiscount: dec("150"),
		Items: []dto.OrderItemRequest{
			{ProductID: "prod-1", Qty: dec("30"), UnitPrice: dec("50"), Total: dec("1500")},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────
// CreateOrder
// ──────────────────────────────────────────────────────────────────────────

func TestCreateOrder_NetoSiempreRecalculado(t *testing.T) {
	s := buildStore()
	uc := buildUseCase(s)

	resp, err := uc.CreateOrder(context.Background(), "user-1", orderRequest(entity.OrderStatusOpen, nil))
	require.NoError(t, err)

	// 1500 - 150 = 1350, calculado en el servidor.
	assert.True(t, dec("1350").Equal(resp.TotalNet), "esperaba 1350, obtuve %s", resp.TotalNet)
	require.Len(t, resp.Items, 1)

	// Pedido OPEN: sin asiento de caja.
	assert.Empty(t, s.Cashbook)
	assert.Len(t, s.AuditLogs, 1)
}

func TestCreateOrder_NacePagadoPosteaCobro(t *testing.T) {
	s := buildStore()
	uc := buildUseCase(s)

	resp, err := uc.CreateOrder(context.Background(), "user-1", orderRequest(entity.OrderStatusPaid, ptr(entity.PaymentMethodPIX)))
	require.NoError(t, err)

	require.Len(t, s.Cashbook, 1)
	entry := s.Cashbook[0]
	assert.Equal(t, entity.CashbookTypeIN, entry.Type)
	assert.True(t, dec("1350").Equal(entry.Amount), "el cobro es por el neto")
	assert.Equal(t, entity.PaymentMethodPIX, entry.PaymentMethod)
	assert.Equal(t, entity.CashbookRefSalesOrder, entry.RefTable)
	assert.Equal(t, resp.ID, entry.RefID)
}

func TestCreateOrder_EstadoInvalido(t *testing.T) {
	s := buildStore()
	uc := buildUseCase(s)

	_, err := uc.CreateOrder(context.Background(), "user-1", orderRequest("SHIPPED", nil))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateOrder_ClienteInexistente(t *testing.T) {
	s := buildStore()
	uc := buildUseCase(s)

	in := orderRequest(entity.OrderStatusOpen, nil)
	in.CustomerID = "cust-nada"
	_, err := uc.CreateOrder(context.Background(), "user-1", in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────
// UpdateOrder — transición a PAID
// ──────────────────────────────────────────────────────────────────────────

func TestUpdateOrder_MarcarPagadoPosteaUnSoloCobro(t *testing.T) {
	s := buildStore()
	uc := buildUseCase(s)

	created, err := uc.CreateOrder(context.Background(), "user-1", orderRequest(entity.OrderStatusDelivered, nil))
	require.NoError(t, err)
	require.Empty(t, s.Cashbook)

	_, err = uc.UpdateOrder(context.Background(), "user-1", created.ID, dto.UpdateOrderRequest{
		Status:        ptr(entity.OrderStatusPaid),
		PaymentMethod: ptr(entity.PaymentMethodCash),
	})
	require.NoError(t, err)
	require.Len(t, s.Cashbook, 1)

	// Un segundo "mark paid" no duplica el asiento: la referencia ya existe.
	_, err = uc.UpdateOrder(context.Background(), "user-1", created.ID, dto.UpdateOrderRequest{
		Status:        ptr(entity.OrderStatusPaid),
		PaymentMethod: ptr(entity.PaymentMethodCash),
	})
	require.NoError(t, err)
	assert.Len(t, s.Cashbook, 1, "exactamente un cobro por pedido")
}

func TestUpdateOrder_PagadoSinMetodoNoPostea(t *testing.T) {
	s := buildStore()
	uc := buildUseCase(s)

	created, err := uc.CreateOrder(context.Background(), "user-1", orderRequest(entity.OrderStatusOpen, nil))
	require.NoError(t, err)

	_, err = uc.UpdateOrder(context.Background(), "user-1", created.ID, dto.UpdateOrderRequest{
		Status: ptr(entity.OrderStatusPaid),
	})
	require.NoError(t, err)
	assert.Empty(t, s.Cashbook, "PAID sin método de pago no genera asiento")
}

func TestUpdateOrder_RecalculaNetoAlCambiarDescuento(t *testing.T) {
	s := buildStore()
	uc := buildUseCase(s)

	created, err := uc.CreateOrder(context.Background(), "user-1", orderRequest(entity.OrderStatusOpen, nil))
	require.NoError(t, err)

	resp, err := uc.UpdateOrder(context.Background(), "user-1", created.ID, dto.UpdateOrderRequest{
		TotalDiscount: ptr(dec("500")),
	})
	require.NoError(t, err)
	assert.True(t, dec("1000").Equal(resp.TotalNet), "1500 - 500 = 1000, obtuve %s", resp.TotalNet)
}

func TestUpdateOrder_PedidoInexistente(t *testing.T) {
	s := buildStore()
	uc := buildUseCase(s)

	_, err := uc.UpdateOrder(context.Background(), "user-1", "ord-nada", dto.UpdateOrderRequest{
		Status: ptr(entity.OrderStatusReady),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────
// DeleteOrder
// ──────────────────────────────────────────────────────────────────────────

func TestDeleteOrder_ConAuditoria(t *testing.T) {
	s := buildStore()
	uc := buildUseCase(s)

	created, err := uc.CreateOrder(context.Background(), "user-1", orderRequest(entity.OrderStatusOpen, nil))
	require.NoError(t, err)

	err = uc.DeleteOrder(context.Background(), "admin-1", created.ID)
	require.NoError(t, err)
	assert.Empty(t, s.Orders)

	// create + delete
	require.Len(t, s.AuditLogs, 2)
	assert.Equal(t, "delete", s.AuditLogs[1].Action)
}

func TestDeleteOrder_Inexistente(t *testing.T) {
	s := buildStore()
	uc := buildUseCase(s)

	err := uc.DeleteOrder(context.Background(), "admin-1", "ord-nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
