package sale

import (
	"testing"

	"huerto/domain/order"
	"huerto/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func deliveredOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder("user-1", []order.ItemRequest{
		{ProductID: strPtr("prod-7"), Name: "Tomates", UnitPrice: *shared.NewMoney(1000, "EUR"), Quantity: 2, Image: "tomates.jpg"},
		{Name: "Cesta artesanal", UnitPrice: *shared.NewMoney(500, "EUR"), Quantity: 1},
	}, order.Totals{
		Total:        *shared.NewMoney(2500, "EUR"),
		Subtotal:     *shared.NewMoney(2500, "EUR"),
		ShippingCost: *shared.NewMoney(0, "EUR"),
		Discount:     *shared.NewMoney(100, "EUR"),
	}, order.Customer{
		Name:  "Ana García",
		Email: "ana@example.com",
		Phone: "+34 600 000 001",
		Address: order.Address{
			Street:     "Calle Mayor 1",
			City:       "Madrid",
			PostalCode: "28001",
			Country:    "ES",
		},
	}, "paypal", "ana@example.com")
	require.NoError(t, err)
	require.NoError(t, o.ApplyStatusChange(order.StatusDelivered, "admin@example.com"))
	return o
}

func TestNewFromOrderCopiesCommercialFacts(t *testing.T) {
	o := deliveredOrder(t)

	s, err := NewFromOrder(o)
	require.NoError(t, err)

	assert.NotEmpty(t, s.ID())
	assert.Equal(t, o.ID(), s.OrderID())
	assert.Equal(t, o.UserID(), s.UserID())
	assert.True(t, s.Total().Equals(o.Total()))
	assert.True(t, s.Subtotal().Equals(o.Subtotal()))
	assert.True(t, s.Discount().Equals(o.Discount()))
	assert.Equal(t, o.Customer(), s.Customer())
	assert.Equal(t, o.PaymentMethod(), s.PaymentMethod())
	assert.Equal(t, StatusCompleted, s.Status())
	assert.False(t, s.DeliveredAt().IsZero())

	orderItems := o.Items()
	saleItems := s.Items()
	require.Len(t, saleItems, len(orderItems))
	for i, si := range saleItems {
		oi := orderItems[i]
		assert.Equal(t, oi.Name(), si.Name())
		assert.True(t, si.UnitPrice().Equals(oi.UnitPrice()))
		assert.Equal(t, oi.Quantity(), si.Quantity())
		assert.Equal(t, oi.Image(), si.Image())
		if oi.ProductID() == nil {
			assert.Nil(t, si.ProductID())
		} else {
			require.NotNil(t, si.ProductID())
			assert.Equal(t, *oi.ProductID(), *si.ProductID())
		}
		// The sale owns its copy: ids are fresh, not the order's rows.
		assert.NotEqual(t, oi.ID(), si.ID())
	}
}

func TestSaleItemsAreIndependentCopies(t *testing.T) {
	s, err := NewFromOrder(deliveredOrder(t))
	require.NoError(t, err)

	items := s.Items()
	items[0] = Item{}
	assert.Equal(t, "Tomates", s.Items()[0].Name())

	pid := s.Items()[0].ProductID()
	require.NotNil(t, pid)
	*pid = "mutated"
	assert.Equal(t, "prod-7", *s.Items()[0].ProductID())
}

func TestRebuildFromDTORoundTrip(t *testing.T) {
	s, err := NewFromOrder(deliveredOrder(t))
	require.NoError(t, err)

	rebuilt := RebuildFromDTO(ReconstructionDTO{
		ID:            s.ID(),
		OrderID:       s.OrderID(),
		UserID:        s.UserID(),
		Items:         s.Items(),
		Total:         s.Total(),
		Subtotal:      s.Subtotal(),
		Discount:      s.Discount(),
		Customer:      s.Customer(),
		PaymentMethod: s.PaymentMethod(),
		Status:        s.Status(),
		DeliveredAt:   s.DeliveredAt(),
		CreatedAt:     s.CreatedAt(),
	})

	assert.Equal(t, s.ID(), rebuilt.ID())
	assert.Equal(t, s.OrderID(), rebuilt.OrderID())
	assert.True(t, rebuilt.Total().Equals(s.Total()))
	assert.Equal(t, StatusCompleted, rebuilt.Status())
	assert.Len(t, rebuilt.Items(), 2)
}
