package order

import (
	"testing"

	"huerto/domain/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func testTotals() Totals {
	return Totals{
		Total:        *shared.NewMoney(2000, "EUR"),
		Subtotal:     *shared.NewMoney(2000, "EUR"),
		ShippingCost: *shared.NewMoney(0, "EUR"),
		Discount:     *shared.NewMoney(0, "EUR"),
	}
}

func testCustomer() Customer {
	return Customer{
		Name:  "Ana García",
		Email: "ana@example.com",
		Phone: "+34 600 000 001",
		Address: Address{
			Street:     "Calle Mayor 1",
			City:       "Madrid",
			PostalCode: "28001",
			Country:    "ES",
		},
	}
}

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder("user-1", []ItemRequest{
		{ProductID: strPtr("prod-7"), Name: "Tomates", UnitPrice: *shared.NewMoney(1000, "EUR"), Quantity: 2},
	}, testTotals(), testCustomer(), "card", "ana@example.com")
	require.NoError(t, err)
	return o
}

func TestNewOrderStartsPendingWithOneHistoryEntry(t *testing.T) {
	o := newTestOrder(t)

	assert.Equal(t, StatusPending, o.Status())
	require.Len(t, o.StatusHistory(), 1)
	first := o.StatusHistory()[0]
	assert.Equal(t, StatusPending, first.Status())
	assert.Equal(t, "ana@example.com", first.ChangedBy())
	assert.False(t, first.ChangedAt().IsZero())
	assert.Nil(t, o.DeliveredAt())
	assert.Equal(t, 0, o.Version())
	assert.Equal(t, int64(2000), o.Total().Amount())
}

func TestNewOrderAssignsTimeOrderedUUIDs(t *testing.T) {
	o := newTestOrder(t)

	orderID, err := uuid.Parse(o.ID())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), orderID.Version())

	for _, item := range o.Items() {
		itemID, err := uuid.Parse(item.ID())
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), itemID.Version())
	}
}

func TestNewOrderValidation(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		items    []ItemRequest
		totals   Totals
		sentinel error
	}{
		{
			name:     "empty items",
			userID:   "user-1",
			items:    nil,
			totals:   testTotals(),
			sentinel: ErrEmptyOrderItems,
		},
		{
			name:   "zero quantity",
			userID: "user-1",
			items: []ItemRequest{
				{Name: "Tomates", UnitPrice: *shared.NewMoney(1000, "EUR"), Quantity: 0},
			},
			totals:   testTotals(),
			sentinel: ErrInvalidQuantity,
		},
		{
			name:   "negative total",
			userID: "user-1",
			items: []ItemRequest{
				{Name: "Tomates", UnitPrice: *shared.NewMoney(1000, "EUR"), Quantity: 1},
			},
			totals:   Totals{Total: *shared.NewMoney(-1, "EUR")},
			sentinel: ErrNegativeAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOrder(tt.userID, tt.items, tt.totals, testCustomer(), "card", "actor")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.ErrorIs(t, err, shared.ErrInvalidInput)
		})
	}

	_, err := NewOrder("", []ItemRequest{
		{Name: "Tomates", UnitPrice: *shared.NewMoney(1000, "EUR"), Quantity: 1},
	}, testTotals(), testCustomer(), "card", "actor")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestParseStatus(t *testing.T) {
	for _, in := range []string{"delivered", "DELIVERED", " Delivered "} {
		st, err := ParseStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, StatusDelivered, st)
	}

	for _, in := range []string{"SHIPED", "", "done", "DELIVERED2"} {
		_, err := ParseStatus(in)
		require.Error(t, err, in)
		assert.ErrorIs(t, err, ErrInvalidStatus)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	}
}

func TestApplyStatusChangeAppendsHistory(t *testing.T) {
	o := newTestOrder(t)

	require.NoError(t, o.ApplyStatusChange(StatusProcessing, "admin@example.com"))
	require.NoError(t, o.ApplyStatusChange(StatusShipped, "admin@example.com"))

	history := o.StatusHistory()
	require.Len(t, history, 3)
	assert.Equal(t, StatusPending, history[0].Status())
	assert.Equal(t, StatusProcessing, history[1].Status())
	assert.Equal(t, StatusShipped, history[2].Status())
	assert.Equal(t, StatusShipped, o.Status())
}

func TestApplyStatusChangeRejectsUnknownStatus(t *testing.T) {
	o := newTestOrder(t)

	err := o.ApplyStatusChange(Status("SHIPED"), "admin@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Len(t, o.StatusHistory(), 1)
	assert.Equal(t, StatusPending, o.Status())
}

func TestDeliveredAtSetOnFirstDeliveryOnly(t *testing.T) {
	o := newTestOrder(t)

	require.NoError(t, o.ApplyStatusChange(StatusDelivered, "admin"))
	first := o.DeliveredAt()
	require.NotNil(t, first)

	require.NoError(t, o.ApplyStatusChange(StatusProcessing, "admin"))
	require.NoError(t, o.ApplyStatusChange(StatusDelivered, "admin"))

	second := o.DeliveredAt()
	require.NotNil(t, second)
	assert.True(t, first.Equal(*second), "deliveredAt must never be overwritten")
	assert.Len(t, o.StatusHistory(), 4)
}

func TestTransitionsArePermissive(t *testing.T) {
	// The source behavior has no transition table: regressions and
	// transitions out of terminal-looking states are all accepted.
	o := newTestOrder(t)

	require.NoError(t, o.ApplyStatusChange(StatusCancelled, "admin"))
	require.NoError(t, o.ApplyStatusChange(StatusDelivered, "admin"))
	require.NoError(t, o.ApplyStatusChange(StatusPending, "admin"))

	assert.Equal(t, StatusPending, o.Status())
	assert.NotNil(t, o.DeliveredAt())
}

func TestAccessorsReturnCopies(t *testing.T) {
	o := newTestOrder(t)

	items := o.Items()
	items[0] = Item{}
	assert.Equal(t, "Tomates", o.Items()[0].Name())

	pid := o.Items()[0].ProductID()
	require.NotNil(t, pid)
	*pid = "mutated"
	assert.Equal(t, "prod-7", *o.Items()[0].ProductID())

	history := o.StatusHistory()
	history[0] = StatusChange{}
	assert.Equal(t, StatusPending, o.StatusHistory()[0].Status())
}

func TestRebuildFromDTORoundTrip(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.ApplyStatusChange(StatusDelivered, "admin"))

	rebuilt := RebuildFromDTO(ReconstructionDTO{
		ID:            o.ID(),
		UserID:        o.UserID(),
		Items:         o.Items(),
		Total:         o.Total(),
		Subtotal:      o.Subtotal(),
		ShippingCost:  o.ShippingCost(),
		Discount:      o.Discount(),
		Status:        o.Status(),
		Customer:      o.Customer(),
		PaymentMethod: o.PaymentMethod(),
		History:       o.StatusHistory(),
		Version:       3,
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
		DeliveredAt:   o.DeliveredAt(),
	})

	assert.Equal(t, o.ID(), rebuilt.ID())
	assert.Equal(t, StatusDelivered, rebuilt.Status())
	assert.Equal(t, 3, rebuilt.Version())
	assert.Len(t, rebuilt.StatusHistory(), 2)
	require.NotNil(t, rebuilt.DeliveredAt())
}
