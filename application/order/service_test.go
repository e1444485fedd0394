package order_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderapp "huerto/application/order"
	saleapp "huerto/application/sale"
	"huerto/domain/product"
	"huerto/domain/shared"
	"huerto/infrastructure/persistence/mocks"
	apperrors "huerto/pkg/errors"
)

type fixture struct {
	orderRepo   *mocks.OrderRepository
	saleRepo    *mocks.SaleRepository
	productRepo *mocks.ProductRepository
	uow         *mocks.UnitOfWork
	orders      *orderapp.ApplicationService
	sales       *saleapp.ApplicationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	orderRepo := mocks.NewOrderRepository()
	saleRepo := mocks.NewSaleRepository()
	productRepo := mocks.NewProductRepository()
	uow := mocks.NewUnitOfWork()
	creator := saleapp.NewCreator(saleRepo, productRepo)
	return &fixture{
		orderRepo:   orderRepo,
		saleRepo:    saleRepo,
		productRepo: productRepo,
		uow:         uow,
		orders:      orderapp.NewApplicationService(orderRepo, creator, uow),
		sales:       saleapp.NewApplicationService(saleRepo),
	}
}

func (f *fixture) seedProduct(t *testing.T, name string, stock int) string {
	t.Helper()
	p, err := product.NewProduct(product.Details{
		Name:  name,
		Price: *shared.NewMoney(1000, "EUR"),
		Stock: stock,
	})
	require.NoError(t, err)
	require.NoError(t, f.productRepo.Save(context.Background(), p))
	return p.ID()
}

func (f *fixture) placeOrder(t *testing.T, productID string, quantity int, total int64) string {
	t.Helper()
	req := orderapp.CreateOrderRequest{
		Items: []orderapp.ItemRequest{{
			ProductID: &productID,
			Name:      "Tomates ecológicos",
			UnitPrice: 1000,
			Quantity:  quantity,
		}},
		Total:         &total,
		Subtotal:      total,
		Customer:      testCustomerRequest(),
		PaymentMethod: "card",
	}
	resp, err := f.orders.CreateOrder(context.Background(), req, testPrincipal())
	require.NoError(t, err)
	return resp.ID
}

func testPrincipal() shared.Principal {
	return shared.Principal{UserID: "user-1", Email: "ana@example.com"}
}

func testCustomerRequest() orderapp.CustomerRequest {
	return orderapp.CustomerRequest{
		Name:  "Ana García",
		Email: "ana@example.com",
		Address: orderapp.AddressRequest{
			Street: "Calle Mayor 1",
			City:   "Madrid",
		},
	}
}

func TestCreateOrderRequiresPrincipal(t *testing.T) {
	f := newFixture(t)
	total := int64(2000)
	req := orderapp.CreateOrderRequest{
		Items:         []orderapp.ItemRequest{{Name: "Naranjas", UnitPrice: 1000, Quantity: 2}},
		Total:         &total,
		Customer:      testCustomerRequest(),
		PaymentMethod: "card",
	}

	_, err := f.orders.CreateOrder(context.Background(), req, shared.Principal{})

	assert.True(t, apperrors.Is(err, apperrors.CodeUnauthorized))
	assert.Zero(t, f.uow.Calls)
}

func TestCreateOrderRequiresTotal(t *testing.T) {
	f := newFixture(t)
	req := orderapp.CreateOrderRequest{
		Items:         []orderapp.ItemRequest{{Name: "Naranjas", UnitPrice: 1000, Quantity: 2}},
		Customer:      testCustomerRequest(),
		PaymentMethod: "card",
	}

	_, err := f.orders.CreateOrder(context.Background(), req, testPrincipal())

	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestCreateOrderStartsPendingWithAuditEntry(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Tomates", 10)

	orderID := f.placeOrder(t, productID, 2, 2000)

	resp, err := f.orders.GetOrder(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, "user-1", resp.UserID)
	require.Len(t, resp.History, 1)
	assert.Equal(t, "PENDING", resp.History[0].Status)
	assert.Equal(t, "ana@example.com", resp.History[0].ChangedBy)
	assert.Nil(t, resp.DeliveredAt)
}

func TestDeliveryRecordsSaleAndStock(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Tomates", 5)
	orderID := f.placeOrder(t, productID, 2, 2000)

	resp, err := f.orders.UpdateOrderStatus(context.Background(), orderID, "DELIVERED", testPrincipal())
	require.NoError(t, err)

	assert.Equal(t, "DELIVERED", resp.Status)
	require.NotNil(t, resp.DeliveredAt)
	require.Len(t, resp.History, 2)
	assert.Equal(t, "DELIVERED", resp.History[1].Status)

	p, err := f.productRepo.FindByID(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stock())
	assert.Equal(t, 2, p.PurchaseCount())

	sales, err := f.sales.GetAllSales(context.Background())
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, orderID, sales[0].OrderID)
	assert.Equal(t, int64(2000), sales[0].Total.Amount)
	assert.Equal(t, "completed", sales[0].Status)
}

func TestSecondDeliveryDoesNotRepeatSideEffects(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Tomates", 5)
	orderID := f.placeOrder(t, productID, 2, 2000)

	_, err := f.orders.UpdateOrderStatus(context.Background(), orderID, "DELIVERED", testPrincipal())
	require.NoError(t, err)
	firstDelivered, err := f.orders.GetOrder(context.Background(), orderID)
	require.NoError(t, err)

	// Statuses are permissive, so DELIVERED again is accepted; only
	// the audit trail grows.
	resp, err := f.orders.UpdateOrderStatus(context.Background(), orderID, "DELIVERED", testPrincipal())
	require.NoError(t, err)
	assert.Len(t, resp.History, 3)
	assert.Equal(t, firstDelivered.DeliveredAt, resp.DeliveredAt)

	p, err := f.productRepo.FindByID(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stock())
	assert.Equal(t, 2, p.PurchaseCount())

	sales, err := f.sales.GetAllSales(context.Background())
	require.NoError(t, err)
	assert.Len(t, sales, 1)
}

func TestDeliveryAfterDetourFiresGateAgain(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Tomates", 10)
	orderID := f.placeOrder(t, productID, 2, 2000)

	for _, status := range []string{"DELIVERED", "PROCESSING", "DELIVERED"} {
		_, err := f.orders.UpdateOrderStatus(context.Background(), orderID, status, testPrincipal())
		require.NoError(t, err)
	}

	// Leaving DELIVERED and coming back re-arms the gate: stock moves
	// twice and a second sale is recorded.
	p, err := f.productRepo.FindByID(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, 6, p.Stock())
	assert.Equal(t, 4, p.PurchaseCount())

	sales, err := f.sales.GetAllSales(context.Background())
	require.NoError(t, err)
	assert.Len(t, sales, 2)
}

func TestMisspelledStatusLeavesOrderUntouched(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Tomates", 5)
	orderID := f.placeOrder(t, productID, 2, 2000)
	callsAfterCreate := f.uow.Calls

	_, err := f.orders.UpdateOrderStatus(context.Background(), orderID, "SHIPED", testPrincipal())

	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidOrderStatus))
	assert.Equal(t, callsAfterCreate, f.uow.Calls, "transaction must not start for an unparseable status")

	resp, getErr := f.orders.GetOrder(context.Background(), orderID)
	require.NoError(t, getErr)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Len(t, resp.History, 1)
}

func TestDeliveryWithUnknownProductFails(t *testing.T) {
	f := newFixture(t)
	missingID := "0198f3a0-0000-7000-8000-000000000000"
	orderID := f.placeOrder(t, missingID, 1, 1000)

	_, err := f.orders.UpdateOrderStatus(context.Background(), orderID, "DELIVERED", testPrincipal())

	assert.True(t, apperrors.Is(err, apperrors.CodeProductNotFound))
	sales, salesErr := f.sales.GetAllSales(context.Background())
	require.NoError(t, salesErr)
	assert.Empty(t, sales, "no sale may exist for a failed delivery")
}

func TestDeliveryClampsOversoldStockAtZero(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Tomates", 3)
	orderID := f.placeOrder(t, productID, 5, 5000)

	_, err := f.orders.UpdateOrderStatus(context.Background(), orderID, "DELIVERED", testPrincipal())
	require.NoError(t, err)

	p, err := f.productRepo.FindByID(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock())
	assert.Equal(t, 5, p.PurchaseCount())
}

func TestCancelledOrderCanStillBeDelivered(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Tomates", 5)
	orderID := f.placeOrder(t, productID, 2, 2000)

	_, err := f.orders.UpdateOrderStatus(context.Background(), orderID, "cancelled", testPrincipal())
	require.NoError(t, err)
	resp, err := f.orders.UpdateOrderStatus(context.Background(), orderID, "delivered", testPrincipal())
	require.NoError(t, err)

	assert.Equal(t, "DELIVERED", resp.Status)
	sales, err := f.sales.GetAllSales(context.Background())
	require.NoError(t, err)
	assert.Len(t, sales, 1)
}

func TestGetOrdersByStatusFilters(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Tomates", 20)
	first := f.placeOrder(t, productID, 1, 1000)
	second := f.placeOrder(t, productID, 1, 1000)
	_, err := f.orders.UpdateOrderStatus(context.Background(), second, "SHIPPED", testPrincipal())
	require.NoError(t, err)

	pending, err := f.orders.GetOrdersByStatus(context.Background(), "pending")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, first, pending[0].ID)

	_, err = f.orders.GetOrdersByStatus(context.Background(), "SHIPED")
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidOrderStatus))
}

func TestDeleteOrderKeepsSale(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Tomates", 5)
	orderID := f.placeOrder(t, productID, 2, 2000)
	_, err := f.orders.UpdateOrderStatus(context.Background(), orderID, "DELIVERED", testPrincipal())
	require.NoError(t, err)

	require.NoError(t, f.orders.DeleteOrder(context.Background(), orderID, testPrincipal()))

	_, err = f.orders.GetOrder(context.Background(), orderID)
	assert.True(t, apperrors.Is(err, apperrors.CodeOrderNotFound))

	sales, err := f.sales.GetAllSales(context.Background())
	require.NoError(t, err)
	assert.Len(t, sales, 1, "sales are immutable records and survive order deletion")
}

func TestUpdateStatusOnUnknownOrder(t *testing.T) {
	f := newFixture(t)

	_, err := f.orders.UpdateOrderStatus(context.Background(), "no-such-order", "SHIPPED", testPrincipal())

	assert.True(t, apperrors.Is(err, apperrors.CodeOrderNotFound))
}
