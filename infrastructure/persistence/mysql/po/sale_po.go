package po

import (
	"time"

	"huerto/domain/order"
	"huerto/domain/sale"
	"huerto/domain/shared"
)

// SalePO is the sale persistence object. A sale is an immutable
// snapshot written once when an order is delivered, so there is no
// version column.
type SalePO struct {
	ID               string    `gorm:"primaryKey;size:64"`
	OrderID          string    `gorm:"size:64;uniqueIndex;not null"`
	UserID           string    `gorm:"size:64;index;not null"`
	TotalAmount      int64     `gorm:"not null"`
	SubtotalAmount   int64     `gorm:"not null"`
	DiscountAmount   int64     `gorm:"not null"`
	Currency         string    `gorm:"size:3;not null"`
	CustomerName     string    `gorm:"size:255;not null"`
	CustomerEmail    string    `gorm:"size:255;not null"`
	CustomerPhone    string    `gorm:"size:40"`
	ShippingStreet   string    `gorm:"size:255"`
	ShippingCity     string    `gorm:"size:120"`
	ShippingPostcode string    `gorm:"size:20"`
	ShippingCountry  string    `gorm:"size:80"`
	PaymentMethod    string    `gorm:"size:40;not null"`
	Status           string    `gorm:"size:20;not null"`
	DeliveredAt      time.Time `gorm:"index;not null"`
	CreatedAt        time.Time `gorm:"index;not null"`
}

func (SalePO) TableName() string {
	return "sales"
}

// SaleItemPO is one sold line, keyed by the sale id only.
type SaleItemPO struct {
	ID          string  `gorm:"primaryKey;size:64"`
	SaleID      string  `gorm:"size:64;index;not null"`
	ProductID   *string `gorm:"size:64;index"`
	ProductName string  `gorm:"size:255;not null"`
	UnitPrice   int64   `gorm:"not null"`
	Currency    string  `gorm:"size:3;not null"`
	Quantity    int     `gorm:"not null"`
	Image       string  `gorm:"size:512"`
}

func (SaleItemPO) TableName() string {
	return "sale_items"
}

// FromSaleDomain converts a domain sale into its persistence rows.
func FromSaleDomain(s *sale.Sale) (*SalePO, []SaleItemPO) {
	addr := s.Customer().Address
	salePO := &SalePO{
		ID:               s.ID(),
		OrderID:          s.OrderID(),
		UserID:           s.UserID(),
		TotalAmount:      s.Total().Amount(),
		SubtotalAmount:   s.Subtotal().Amount(),
		DiscountAmount:   s.Discount().Amount(),
		Currency:         s.Total().Currency(),
		CustomerName:     s.Customer().Name,
		CustomerEmail:    s.Customer().Email,
		CustomerPhone:    s.Customer().Phone,
		ShippingStreet:   addr.Street,
		ShippingCity:     addr.City,
		ShippingPostcode: addr.PostalCode,
		ShippingCountry:  addr.Country,
		PaymentMethod:    s.PaymentMethod(),
		Status:           s.Status(),
		DeliveredAt:      s.DeliveredAt(),
		CreatedAt:        s.CreatedAt(),
	}

	items := s.Items()
	itemPOs := make([]SaleItemPO, len(items))
	for i, item := range items {
		itemPOs[i] = SaleItemPO{
			ID:          item.ID(),
			SaleID:      s.ID(),
			ProductID:   item.ProductID(),
			ProductName: item.Name(),
			UnitPrice:   item.UnitPrice().Amount(),
			Currency:    item.UnitPrice().Currency(),
			Quantity:    item.Quantity(),
			Image:       item.Image(),
		}
	}

	return salePO, itemPOs
}

// ToDomain converts the persistence rows back into a domain sale.
func (po *SalePO) ToDomain(itemPOs []SaleItemPO) *sale.Sale {
	items := make([]sale.Item, len(itemPOs))
	for i, itemPO := range itemPOs {
		items[i] = sale.RebuildItemFromDTO(sale.ItemReconstructionDTO{
			ID:        itemPO.ID,
			ProductID: itemPO.ProductID,
			Name:      itemPO.ProductName,
			UnitPrice: *shared.NewMoney(itemPO.UnitPrice, itemPO.Currency),
			Quantity:  itemPO.Quantity,
			Image:     itemPO.Image,
		})
	}

	return sale.RebuildFromDTO(sale.ReconstructionDTO{
		ID:       po.ID,
		OrderID:  po.OrderID,
		UserID:   po.UserID,
		Items:    items,
		Total:    *shared.NewMoney(po.TotalAmount, po.Currency),
		Subtotal: *shared.NewMoney(po.SubtotalAmount, po.Currency),
		Discount: *shared.NewMoney(po.DiscountAmount, po.Currency),
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
		Status:        po.Status,
		DeliveredAt:   po.DeliveredAt,
		CreatedAt:     po.CreatedAt,
	})
}
