package po

import (
	"time"

	"huerto/domain/product"
	"huerto/domain/shared"
)

// ProductPO is the catalog product persistence object.
type ProductPO struct {
	ID            string    `gorm:"primaryKey;size:64"`
	Name          string    `gorm:"size:255;index;not null"`
	Description   string    `gorm:"type:text"`
	PriceAmount   int64     `gorm:"not null"`
	Currency      string    `gorm:"size:3;not null"`
	Category      string    `gorm:"size:120;index"`
	Image         string    `gorm:"size:512"`
	IsNew         bool      `gorm:"index;not null"`
	IsSale        bool      `gorm:"index;not null"`
	Stock         int       `gorm:"not null"`
	PurchaseCount int       `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

func (ProductPO) TableName() string {
	return "products"
}

// FromProductDomain converts a domain product into its persistence row.
func FromProductDomain(p *product.Product) *ProductPO {
	return &ProductPO{
		ID:            p.ID(),
		Name:          p.Name(),
		Description:   p.Description(),
		PriceAmount:   p.Price().Amount(),
		Currency:      p.Price().Currency(),
		Category:      p.Category(),
		Image:         p.Image(),
		IsNew:         p.IsNew(),
		IsSale:        p.IsSale(),
		Stock:         p.Stock(),
		PurchaseCount: p.PurchaseCount(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

// ToDomain converts the persistence row back into a domain product.
func (po *ProductPO) ToDomain() *product.Product {
	return product.RebuildFromDTO(product.ReconstructionDTO{
		ID:            po.ID,
		Name:          po.Name,
		Description:   po.Description,
		Price:         *shared.NewMoney(po.PriceAmount, po.Currency),
		Category:      po.Category,
		Image:         po.Image,
		IsNew:         po.IsNew,
		IsSale:        po.IsSale,
		Stock:         po.Stock,
		PurchaseCount: po.PurchaseCount,
		CreatedAt:     po.CreatedAt,
		UpdatedAt:     po.UpdatedAt,
	})
}
