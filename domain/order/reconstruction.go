package order

import (
	"time"

	"huerto/domain/shared"
)

// Reconstruction DTOs let the repository layer rebuild aggregates from
// storage without exposing setters or breaking field privacy. They are
// for repository implementations only; application code never uses them.

// ReconstructionDTO carries every persisted field of an order.
type ReconstructionDTO struct {
	ID            string
	UserID        string
	Items         []Item
	Total         shared.Money
	Subtotal      shared.Money
	ShippingCost  shared.Money
	Discount      shared.Money
	Status        Status
	Customer      Customer
	PaymentMethod string
	History       []StatusChange
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeliveredAt   *time.Time
}

// RebuildFromDTO reconstructs an Order loaded from the database.
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	return &Order{
		id:            dto.ID,
		userID:        dto.UserID,
		items:         dto.Items,
		total:         dto.Total,
		subtotal:      dto.Subtotal,
		shippingCost:  dto.ShippingCost,
		discount:      dto.Discount,
		status:        dto.Status,
		customer:      dto.Customer,
		paymentMethod: dto.PaymentMethod,
		history:       dto.History,
		version:       dto.Version,
		createdAt:     dto.CreatedAt,
		updatedAt:     dto.UpdatedAt,
		deliveredAt:   dto.DeliveredAt,
	}
}

// ItemReconstructionDTO carries one persisted line item.
type ItemReconstructionDTO struct {
	ID        string
	ProductID *string
	Name      string
	UnitPrice shared.Money
	Quantity  int
	Image     string
}

// RebuildItemFromDTO reconstructs a line item.
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

// StatusChangeDTO carries one persisted history entry.
type StatusChangeDTO struct {
	Status    Status
	ChangedBy string
	ChangedAt time.Time
}

// RebuildStatusChange reconstructs a history entry.
func RebuildStatusChange(dto StatusChangeDTO) StatusChange {
	return StatusChange{
		status:    dto.Status,
		changedBy: dto.ChangedBy,
		changedAt: dto.ChangedAt,
	}
}
