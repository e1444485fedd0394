/*
Package sale is the sale subdomain: the immutable commercial record of
a delivered order.

A Sale is derived exactly once, at the moment an order first becomes
DELIVERED. It copies the order's items, totals, customer snapshot and
payment method instead of referencing them, so later changes to the
order can never alter historical sales figures. A Sale is never mutated
after creation; the type has no state-changing methods at all.
*/
package sale

import (
	"fmt"
	"time"

	"huerto/domain/order"
	"huerto/domain/shared"

	"github.com/google/uuid"
)

// StatusCompleted is the only status a sale is ever written with.
// Sales carry a status column for reporting compatibility, but it is
// not part of any transition logic.
const StatusCompleted = "completed"

// Sale is an immutable record of a delivered order.
type Sale struct {
	id            string
	orderID       string
	userID        string
	items         []Item
	total         shared.Money
	subtotal      shared.Money
	discount      shared.Money
	customer      order.Customer
	paymentMethod string
	status        string
	deliveredAt   time.Time
	createdAt     time.Time
}

// Item is the sale's own copy of one order line item. It shares no
// storage with the originating order item.
type Item struct {
	id        string
	productID *string
	name      string
	unitPrice shared.Money
	quantity  int
	image     string
}

// NewFromOrder derives a Sale from an order at the moment of delivery.
// Pure copy derivation: nothing is read back from the sale afterwards
// to influence the order.
func NewFromOrder(o *order.Order) (*Sale, error) {
	saleID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate sale ID: %w", err)
	}

	orderItems := o.Items()
	items := make([]Item, len(orderItems))
	for i, oi := range orderItems {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate sale item ID: %w", err)
		}
		items[i] = Item{
			id:        id.String(),
			productID: oi.ProductID(),
			name:      oi.Name(),
			unitPrice: oi.UnitPrice(),
			quantity:  oi.Quantity(),
			image:     oi.Image(),
		}
	}

	now := time.Now()
	return &Sale{
		id:            saleID.String(),
		orderID:       o.ID(),
		userID:        o.UserID(),
		items:         items,
		total:         o.Total(),
		subtotal:      o.Subtotal(),
		discount:      o.Discount(),
		customer:      o.Customer(),
		paymentMethod: o.PaymentMethod(),
		status:        StatusCompleted,
		deliveredAt:   now,
		createdAt:     now,
	}, nil
}

func (s *Sale) ID() string      { return s.id }
func (s *Sale) OrderID() string { return s.orderID }
func (s *Sale) UserID() string  { return s.userID }

// Items returns a copy of the sale's line items.
func (s *Sale) Items() []Item {
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

func (s *Sale) Total() shared.Money      { return s.total }
func (s *Sale) Subtotal() shared.Money   { return s.subtotal }
func (s *Sale) Discount() shared.Money   { return s.discount }
func (s *Sale) Customer() order.Customer { return s.customer }
func (s *Sale) PaymentMethod() string    { return s.paymentMethod }
func (s *Sale) Status() string           { return s.status }
func (s *Sale) DeliveredAt() time.Time   { return s.deliveredAt }
func (s *Sale) CreatedAt() time.Time     { return s.createdAt }

// Item getters.

func (item Item) ID() string { return item.id }

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

// ReconstructionDTO and the rebuild helpers below are for repository
// implementations only.

type ReconstructionDTO struct {
	ID            string
	OrderID       string
	UserID        string
	Items         []Item
	Total         shared.Money
	Subtotal      shared.Money
	Discount      shared.Money
	Customer      order.Customer
	PaymentMethod string
	Status        string
	DeliveredAt   time.Time
	CreatedAt     time.Time
}

// RebuildFromDTO reconstructs a Sale loaded from the database.
func RebuildFromDTO(dto ReconstructionDTO) *Sale {
	return &Sale{
		id:            dto.ID,
		orderID:       dto.OrderID,
		userID:        dto.UserID,
		items:         dto.Items,
		total:         dto.Total,
		subtotal:      dto.Subtotal,
		discount:      dto.Discount,
		customer:      dto.Customer,
		paymentMethod: dto.PaymentMethod,
		status:        dto.Status,
		deliveredAt:   dto.DeliveredAt,
		createdAt:     dto.CreatedAt,
	}
}

// ItemReconstructionDTO carries one persisted sale item.
type ItemReconstructionDTO struct {
	ID        string
	ProductID *string
	Name      string
	UnitPrice shared.Money
	Quantity  int
	Image     string
}

// RebuildItemFromDTO reconstructs a sale item.
func RebuildItemFromDTO(dto ItemReconstructionDTO) Item {
	return Item{
		id:        dto.ID,
		productID: dto.ProductID,
		name:      dto.Name,
		unitPrice: dto.UnitPrice,
		quantity:  dto.Quantity,
		image:     dto.Image,
	}
}
