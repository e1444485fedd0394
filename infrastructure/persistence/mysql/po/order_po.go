package po

import (
	"time"

	"huerto/domain/order"
	"huerto/domain/shared"
)

// OrderPO is the order persistence object. It only maps the database
// row; no business logic and no GORM associations live here. Items and
// history rows reference the order by id only.
type OrderPO struct {
	ID               string     `gorm:"primaryKey;size:64"`
	UserID           string     `gorm:"size:64;index;not null"`
	Status           string     `gorm:"size:20;index;not null"`
	TotalAmount      int64      `gorm:"not null"`
	SubtotalAmount   int64      `gorm:"not null"`
	ShippingAmount   int64      `gorm:"not null"`
	DiscountAmount   int64      `gorm:"not null"`
	Currency         string     `gorm:"size:3;not null"`
	CustomerName     string     `gorm:"size:255;not null"`
	CustomerEmail    string     `gorm:"size:255;not null"`
	CustomerPhone    string     `gorm:"size:40"`
	ShippingStreet   string     `gorm:"size:255"`
	ShippingCity     string     `gorm:"size:120"`
	ShippingPostcode string     `gorm:"size:20"`
	ShippingCountry  string     `gorm:"size:80"`
	PaymentMethod    string     `gorm:"size:40;not null"`
	Version          int        `gorm:"default:0"`
	DeliveredAt      *time.Time `gorm:"index"`
	CreatedAt        time.Time  `gorm:"index;not null"`
	UpdatedAt        time.Time  `gorm:"not null"`
}

func (OrderPO) TableName() string {
	return "orders"
}

// OrderItemPO is one order line. ProductID is nullable: items may be
// free-form lines that reference no catalog product.
type OrderItemPO struct {
	ID          string  `gorm:"primaryKey;size:64"`
	OrderID     string  `gorm:"size:64;index;not null"`
	ProductID   *string `gorm:"size:64;index"`
	ProductName string  `gorm:"size:255;not null"`
	UnitPrice   int64   `gorm:"not null"`
	Currency    string  `gorm:"size:3;not null"`
	Quantity    int     `gorm:"not null"`
	Image       string  `gorm:"size:512"`
}

func (OrderItemPO) TableName() string {
	return "order_items"
}

// StatusHistoryPO is one audit entry of the status trail. Seq keeps
// the insertion order stable across reloads.
type StatusHistoryPO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	OrderID   string    `gorm:"size:64;index;not null"`
	Seq       int       `gorm:"not null"`
	Status    string    `gorm:"size:20;not null"`
	ChangedBy string    `gorm:"size:255;not null"`
	ChangedAt time.Time `gorm:"not null"`
}

func (StatusHistoryPO) TableName() string {
	return "order_status_history"
}

// FromOrderDomain converts a domain order into its persistence rows.
func FromOrderDomain(o *order.Order) (*OrderPO, []OrderItemPO, []StatusHistoryPO) {
	addr := o.Customer().Address
	orderPO := &OrderPO{
		ID:               o.ID(),
		UserID:           o.UserID(),
		Status:           string(o.Status()),
		TotalAmount:      o.Total().Amount(),
		SubtotalAmount:   o.Subtotal().Amount(),
		ShippingAmount:   o.ShippingCost().Amount(),
		DiscountAmount:   o.Discount().Amount(),
		Currency:         o.Total().Currency(),
		CustomerName:     o.Customer().Name,
		CustomerEmail:    o.Customer().Email,
		CustomerPhone:    o.Customer().Phone,
		ShippingStreet:   addr.Street,
		ShippingCity:     addr.City,
		ShippingPostcode: addr.PostalCode,
		ShippingCountry:  addr.Country,
		PaymentMethod:    o.PaymentMethod(),
		Version:          o.Version(),
		DeliveredAt:      o.DeliveredAt(),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
	}

	items := o.Items()
	itemPOs := make([]OrderItemPO, len(items))
	for i, item := range items {
		itemPOs[i] = OrderItemPO{
			ID:          item.ID(),
			OrderID:     o.ID(),
			ProductID:   item.ProductID(),
			ProductName: item.Name(),
			UnitPrice:   item.UnitPrice().Amount(),
			Currency:    item.UnitPrice().Currency(),
			Quantity:    item.Quantity(),
			Image:       item.Image(),
		}
	}

	history := o.StatusHistory()
	historyPOs := make([]StatusHistoryPO, len(history))
	for i, change := range history {
		historyPOs[i] = StatusHistoryPO{
			OrderID:   o.ID(),
			Seq:       i,
			Status:    string(change.Status()),
			ChangedBy: change.ChangedBy(),
			ChangedAt: change.ChangedAt(),
		}
	}

	return orderPO, itemPOs, historyPOs
}

// ToDomain converts the persistence rows back into a domain order.
// itemPOs and historyPOs must already be ordered (items by id, history
// by seq).
func (po *OrderPO) ToDomain(itemPOs []OrderItemPO, historyPOs []StatusHistoryPO) *order.Order {
	items := make([]order.Item, len(itemPOs))
	for i, itemPO := range itemPOs {
		items[i] = order.RebuildItemFromDTO(order.ItemReconstructionDTO{
			ID:        itemPO.ID,
			ProductID: itemPO.ProductID,
			Name:      itemPO.ProductName,
			UnitPrice: *shared.NewMoney(itemPO.UnitPrice, itemPO.Currency),
			Quantity:  itemPO.Quantity,
			Image:     itemPO.Image,
		})
	}

	history := make([]order.StatusChange, len(historyPOs))
	for i, hPO := range historyPOs {
		history[i] = order.RebuildStatusChange(order.StatusChangeDTO{
			Status:    order.Status(hPO.Status),
			ChangedBy: hPO.ChangedBy,
			ChangedAt: hPO.ChangedAt,
		})
	}

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:           po.ID,
		UserID:       po.UserID,
		Items:        items,
		Total:        *shared.NewMoney(po.TotalAmount, po.Currency),
		Subtotal:     *shared.NewMoney(po.SubtotalAmount, po.Currency),
		ShippingCost: *shared.NewMoney(po.ShippingAmount, po.Currency),
		Discount:     *shared.NewMoney(po.DiscountAmount, po.Currency),
		Status:       order.Status(po.Status),
		Customer: order.Customer{
			Name:  po.CustomerName,
			Email: po.CustomerEmail,
			Phone: po.CustomerPhone,
			Address: order.Address{
				Street:     po.ShippingStreet,
				City:       po.ShippingCity,
				PostalCode: po.ShippingPostcode,
				Country:    po.ShippingCountry,
			},
		},
		PaymentMethod: po.PaymentMethod,
		History:       history,
		Version:       po.Version,
		CreatedAt:     po.CreatedAt,
		UpdatedAt:     po.UpdatedAt,
		DeliveredAt:   po.DeliveredAt,
	})
}
