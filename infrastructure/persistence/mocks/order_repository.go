// Package mocks provides in-memory repository and unit-of-work
// implementations for application-service tests. They honor the same
// contracts as the MySQL implementations, including the optimistic
// version check on order saves.
package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"huerto/domain/order"
)

type OrderRepository struct {
	mu       sync.RWMutex
	orders   map[string]order.ReconstructionDTO
	versions map[string]int

	// SaveErr forces the next Save to fail, for rollback tests.
	SaveErr error
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders:   make(map[string]order.ReconstructionDTO),
		versions: make(map[string]int),
	}
}

func snapshotOrder(o *order.Order) order.ReconstructionDTO {
	return order.ReconstructionDTO{
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
		Version:       o.Version(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
		DeliveredAt:   o.DeliveredAt(),
	}
}

func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.SaveErr != nil {
		return r.SaveErr
	}

	stored := r.versions[o.ID()]
	if o.Version() != stored {
		return order.NewConcurrentModificationError(o.ID())
	}

	dto := snapshotOrder(o)
	dto.Version = stored + 1
	r.orders[o.ID()] = dto
	r.versions[o.ID()] = dto.Version
	o.IncrementVersionForSave()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dto, ok := r.orders[id]
	if !ok {
		return nil, order.NewOrderNotFoundError(id)
	}
	return order.RebuildFromDTO(dto), nil
}

func (r *OrderRepository) findWhere(match func(order.ReconstructionDTO) bool) []*order.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*order.Order
	for _, dto := range r.orders {
		if match(dto) {
			out = append(out, order.RebuildFromDTO(dto))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	return r.findWhere(func(order.ReconstructionDTO) bool { return true }), nil
}

func (r *OrderRepository) FindByUserID(ctx context.Context, userID string) ([]*order.Order, error) {
	return r.findWhere(func(dto order.ReconstructionDTO) bool {
		return dto.UserID == userID
	}), nil
}

func (r *OrderRepository) FindByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	return r.findWhere(func(dto order.ReconstructionDTO) bool {
		return dto.Status == status
	}), nil
}

func (r *OrderRepository) FindByCreatedAtBetween(ctx context.Context, start, end time.Time) ([]*order.Order, error) {
	return r.findWhere(func(dto order.ReconstructionDTO) bool {
		return !dto.CreatedAt.Before(start) && !dto.CreatedAt.After(end)
	}), nil
}

func (r *OrderRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.orders[id]
	return ok, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return order.NewOrderNotFoundError(id)
	}
	delete(r.orders, id)
	delete(r.versions, id)
	return nil
}

var _ order.Repository = (*OrderRepository)(nil)
