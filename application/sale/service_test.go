package sale_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	saleapp "huerto/application/sale"
	"huerto/domain/order"
	"huerto/domain/sale"
	"huerto/domain/shared"
	"huerto/infrastructure/persistence/mocks"
	apperrors "huerto/pkg/errors"
)

func deliveredOrder(t *testing.T, userID string, total int64) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		userID,
		[]order.ItemRequest{{Name: "Cesta de temporada", UnitPrice: *shared.NewMoney(total, "EUR"), Quantity: 1}},
		order.Totals{
			Total:        *shared.NewMoney(total, "EUR"),
			Subtotal:     *shared.NewMoney(total, "EUR"),
			ShippingCost: *shared.NewMoney(0, "EUR"),
			Discount:     *shared.NewMoney(0, "EUR"),
		},
		order.Customer{Name: "Ana García", Email: "ana@example.com"},
		"card",
		"ana@example.com",
	)
	require.NoError(t, err)
	require.NoError(t, o.ApplyStatusChange(order.StatusDelivered, "ana@example.com"))
	return o
}

func recordSale(t *testing.T, repo *mocks.SaleRepository, userID string, total int64) *sale.Sale {
	t.Helper()
	s, err := sale.NewFromOrder(deliveredOrder(t, userID, total))
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), s))
	return s
}

func TestGetSaleNotFound(t *testing.T) {
	svc := saleapp.NewApplicationService(mocks.NewSaleRepository())

	_, err := svc.GetSale(context.Background(), "missing")

	assert.True(t, apperrors.Is(err, apperrors.CodeSaleNotFound))
}

func TestGetUserSalesFiltersByOwner(t *testing.T) {
	repo := mocks.NewSaleRepository()
	svc := saleapp.NewApplicationService(repo)
	recordSale(t, repo, "user-1", 1500)
	recordSale(t, repo, "user-2", 900)

	sales, err := svc.GetUserSales(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, int64(1500), sales[0].Total.Amount)
}

func TestSalesReportAggregatesWindow(t *testing.T) {
	repo := mocks.NewSaleRepository()
	svc := saleapp.NewApplicationService(repo)
	recordSale(t, repo, "user-1", 1500)
	recordSale(t, repo, "user-2", 900)

	now := time.Now()
	report, err := svc.GetSalesReport(context.Background(), now.Add(-time.Hour), now.Add(time.Hour))

	require.NoError(t, err)
	assert.Equal(t, int64(2), report.TotalSales)
	assert.Equal(t, int64(2400), report.TotalRevenue)
	assert.Len(t, report.Sales, 2)
}

func TestSalesReportRejectsInvertedWindow(t *testing.T) {
	svc := saleapp.NewApplicationService(mocks.NewSaleRepository())

	now := time.Now()
	_, err := svc.GetSalesReport(context.Background(), now, now.Add(-time.Hour))

	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestSalesReportEmptyWindowIsZero(t *testing.T) {
	repo := mocks.NewSaleRepository()
	svc := saleapp.NewApplicationService(repo)
	recordSale(t, repo, "user-1", 1500)

	start := time.Now().Add(24 * time.Hour)
	report, err := svc.GetSalesReport(context.Background(), start, start.Add(time.Hour))

	require.NoError(t, err)
	assert.Zero(t, report.TotalSales)
	assert.Zero(t, report.TotalRevenue)
	assert.Empty(t, report.Sales)
}
