/*
Package order is the order subdomain: the aggregate root of one checkout.

The Order aggregate owns its line items and its status history; neither
has a lifecycle of its own, and nothing holds a reference back to the
order beyond its id. All fields are private and behavior is exposed
through methods, so every mutation goes through the aggregate root.

Line items are snapshots: name and price are copied from the product at
creation time and never re-derived. After creation the only mutation an
order accepts is a status change.
*/
package order

import (
	"fmt"
	"time"

	"huerto/domain/shared"

	"github.com/google/uuid"
)

// Order is the aggregate root for one checkout.
type Order struct {
	id            string
	userID        string
	items         []Item
	total         shared.Money
	subtotal      shared.Money
	shippingCost  shared.Money
	discount      shared.Money
	status        Status
	customer      Customer
	paymentMethod string
	history       []StatusChange
	version       int // optimistic lock version, managed by the persistence layer
	createdAt     time.Time
	updatedAt     time.Time
	deliveredAt   *time.Time
}

// Item is a line item inside the aggregate. It has no identity outside
// its order and can only be read through the aggregate root.
type Item struct {
	id        string
	productID *string // nil when the product was deleted or never existed
	name      string
	unitPrice shared.Money
	quantity  int
	image     string
}

// StatusChange is one entry of the append-only status history.
type StatusChange struct {
	status    Status
	changedBy string
	changedAt time.Time
}

// ItemRequest describes one requested line item at creation time.
type ItemRequest struct {
	ProductID *string
	Name      string
	UnitPrice shared.Money
	Quantity  int
	Image     string
}

// Totals carries the caller-supplied monetary fields. The total is an
// input invariant: it is recorded as given, never recomputed from items.
type Totals struct {
	Total        shared.Money
	Subtotal     shared.Money
	ShippingCost shared.Money
	Discount     shared.Money
}

// NewOrder creates an order in state PENDING with exactly one history
// entry recording the initial status. It is the only way to build an
// Order, so every order starts in a valid state.
func NewOrder(userID string, requests []ItemRequest, totals Totals, customer Customer, paymentMethod, actor string) (*Order, error) {
	if userID == "" {
		return nil, shared.NewValidationError("order", "userID", "order owner is required")
	}
	if len(requests) == 0 {
		return nil, newValidationError(ErrEmptyOrderItems, "order must have at least one item")
	}
	if totals.Total.IsNegative() || totals.Subtotal.IsNegative() ||
		totals.ShippingCost.IsNegative() || totals.Discount.IsNegative() {
		return nil, newValidationError(ErrNegativeAmount, "monetary amounts must not be negative")
	}

	items := make([]Item, len(requests))
	for i, req := range requests {
		if req.Quantity < 1 {
			return nil, newValidationError(ErrInvalidQuantity, fmt.Sprintf("item %q: quantity must be at least 1", req.Name))
		}

		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate order item ID: %w", err)
		}

		items[i] = Item{
			id:        id.String(),
			productID: req.ProductID,
			name:      req.Name,
			unitPrice: req.UnitPrice,
			quantity:  req.Quantity,
			image:     req.Image,
		}
	}

	orderID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order ID: %w", err)
	}

	now := time.Now()
	o := &Order{
		id:            orderID.String(),
		userID:        userID,
		items:         items,
		total:         totals.Total,
		subtotal:      totals.Subtotal,
		shippingCost:  totals.ShippingCost,
		discount:      totals.Discount,
		status:        StatusPending,
		customer:      customer,
		paymentMethod: paymentMethod,
		version:       0,
		createdAt:     now,
		updatedAt:     now,
	}

	// The initial status counts as a status change too.
	o.history = append(o.history, StatusChange{
		status:    StatusPending,
		changedBy: actor,
		changedAt: now,
	})

	return o, nil
}

// ApplyStatusChange appends one history entry and moves the order to
// newStatus. Any status of the enumerated set is accepted from any
// current status: the source behavior has no transition table, and the
// single DELIVERED side-effect gate lives in the orchestrator, keyed on
// the previous status. deliveredAt is set the first time the order
// becomes DELIVERED and never overwritten afterwards.
func (o *Order) ApplyStatusChange(newStatus Status, actor string) error {
	if !newStatus.IsValid() {
		return NewInvalidStatusError(string(newStatus))
	}

	now := time.Now()
	o.history = append(o.history, StatusChange{
		status:    newStatus,
		changedBy: actor,
		changedAt: now,
	})
	o.status = newStatus
	o.updatedAt = now

	if newStatus == StatusDelivered && o.deliveredAt == nil {
		o.deliveredAt = &now
	}

	return nil
}

// IncrementVersionForSave bumps the optimistic-lock version after a
// successful save. Called by the repository, never by business code.
func (o *Order) IncrementVersionForSave() {
	o.version++
}

func (o *Order) ID() string     { return o.id }
func (o *Order) UserID() string { return o.userID }

// Items returns a copy of the line items; the aggregate's own slice
// stays unreachable from outside.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) Total() shared.Money        { return o.total }
func (o *Order) Subtotal() shared.Money     { return o.subtotal }
func (o *Order) ShippingCost() shared.Money { return o.shippingCost }
func (o *Order) Discount() shared.Money     { return o.discount }
func (o *Order) Status() Status             { return o.status }
func (o *Order) Customer() Customer         { return o.customer }
func (o *Order) PaymentMethod() string      { return o.paymentMethod }
func (o *Order) Version() int               { return o.version }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }
func (o *Order) UpdatedAt() time.Time       { return o.updatedAt }

// StatusHistory returns a copy of the append-only history.
func (o *Order) StatusHistory() []StatusChange {
	history := make([]StatusChange, len(o.history))
	copy(history, o.history)
	return history
}

// DeliveredAt returns the first-delivery timestamp, or nil if the order
// has never been DELIVERED.
func (o *Order) DeliveredAt() *time.Time {
	if o.deliveredAt == nil {
		return nil
	}
	t := *o.deliveredAt
	return &t
}

// Item getters. Items are readable but never mutable from outside.

func (item Item) ID() string { return item.id }

// ProductID returns the referenced product id, or nil when the line
// item no longer points at a live product.
func (item Item) ProductID() *string {
	if item.productID == nil {
		return nil
	}
	id := *item.productID
	return &id
}

func (item Item) Name() string            { return item.name }
func (item Item) UnitPrice() shared.Money { return item.unitPrice }
func (item Item) Quantity() int           { return item.quantity }
func (item Item) Image() string           { return item.image }

// StatusChange getters.

func (c StatusChange) Status() Status       { return c.status }
func (c StatusChange) ChangedBy() string    { return c.changedBy }
func (c StatusChange) ChangedAt() time.Time { return c.changedAt }

// Compile-time check that Order implements AggregateRoot.
var _ shared.AggregateRoot = (*Order)(nil)
