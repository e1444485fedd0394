/*
Package product is the catalog and inventory subdomain.

The inventory-relevant part is deliberately small: a stock counter and
a cumulative purchase counter, both mutated only through
RegisterPurchase when an order is delivered. Stock clamps at zero
instead of rejecting oversells; the purchase counter always grows by
the full ordered quantity.
*/
package product

import (
	"fmt"
	"time"

	"huerto/domain/shared"

	"github.com/google/uuid"
)

// Product is the aggregate root for one catalog entry.
type Product struct {
	id            string
	name          string
	description   string
	price         shared.Money
	category      string
	image         string
	isNew         bool
	isSale        bool
	stock         int
	purchaseCount int
	createdAt     time.Time
	updatedAt     time.Time
}

// Details carries the caller-editable catalog fields.
type Details struct {
	Name        string
	Description string
	Price       shared.Money
	Category    string
	Image       string
	IsNew       bool
	IsSale      bool
	Stock       int
}

// NewProduct creates a catalog entry.
func NewProduct(details Details) (*Product, error) {
	if details.Name == "" {
		return nil, shared.NewValidationError("product", "name", "product name is required")
	}
	if details.Price.IsNegative() {
		return nil, shared.NewValidationError("product", "price", "product price must not be negative")
	}
	if details.Stock < 0 {
		return nil, shared.NewValidationError("product", "stock", "product stock must not be negative")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate product ID: %w", err)
	}

	now := time.Now()
	return &Product{
		id:          id.String(),
		name:        details.Name,
		description: details.Description,
		price:       details.Price,
		category:    details.Category,
		image:       details.Image,
		isNew:       details.IsNew,
		isSale:      details.IsSale,
		stock:       details.Stock,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Update replaces the catalog fields. The purchase counter is not part
// of Details and survives every catalog edit.
func (p *Product) Update(details Details) error {
	if details.Name == "" {
		return shared.NewValidationError("product", "name", "product name is required")
	}
	if details.Price.IsNegative() {
		return shared.NewValidationError("product", "price", "product price must not be negative")
	}
	if details.Stock < 0 {
		return shared.NewValidationError("product", "stock", "product stock must not be negative")
	}

	p.name = details.Name
	p.description = details.Description
	p.price = details.Price
	p.category = details.Category
	p.image = details.Image
	p.isNew = details.IsNew
	p.isSale = details.IsSale
	p.stock = details.Stock
	p.updatedAt = time.Now()
	return nil
}

// RegisterPurchase records quantity units sold: stock decrements with a
// floor at zero, purchaseCount grows by the full quantity. Overselling
// is absorbed silently rather than rejected; there is no out-of-stock
// error in this model.
func (p *Product) RegisterPurchase(quantity int) error {
	if quantity < 1 {
		return shared.NewValidationError("product", "quantity", "purchase quantity must be at least 1")
	}

	p.stock -= quantity
	if p.stock < 0 {
		p.stock = 0
	}
	p.purchaseCount += quantity
	p.updatedAt = time.Now()
	return nil
}

func (p *Product) ID() string           { return p.id }
func (p *Product) Name() string         { return p.name }
func (p *Product) Description() string  { return p.description }
func (p *Product) Price() shared.Money  { return p.price }
func (p *Product) Category() string     { return p.category }
func (p *Product) Image() string        { return p.image }
func (p *Product) IsNew() bool          { return p.isNew }
func (p *Product) IsSale() bool         { return p.isSale }
func (p *Product) Stock() int           { return p.stock }
func (p *Product) PurchaseCount() int   { return p.purchaseCount }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }

// ReconstructionDTO is for repository implementations only.
type ReconstructionDTO struct {
	ID            string
	Name          string
	Description   string
	Price         shared.Money
	Category      string
	Image         string
	IsNew         bool
	IsSale        bool
	Stock         int
	PurchaseCount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RebuildFromDTO reconstructs a Product loaded from the database.
func RebuildFromDTO(dto ReconstructionDTO) *Product {
	return &Product{
		id:            dto.ID,
		name:          dto.Name,
		description:   dto.Description,
		price:         dto.Price,
		category:      dto.Category,
		image:         dto.Image,
		isNew:         dto.IsNew,
		isSale:        dto.IsSale,
		stock:         dto.Stock,
		purchaseCount: dto.PurchaseCount,
		createdAt:     dto.CreatedAt,
		updatedAt:     dto.UpdatedAt,
	}
}
