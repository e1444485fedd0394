package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"huerto/domain/sale"
)

type SaleRepository struct {
	mu    sync.RWMutex
	sales map[string]sale.ReconstructionDTO

	// SaveErr forces the next Save to fail, for rollback tests.
	SaveErr error
}

func NewSaleRepository() *SaleRepository {
	return &SaleRepository{sales: make(map[string]sale.ReconstructionDTO)}
}

func snapshotSale(s *sale.Sale) sale.ReconstructionDTO {
	return sale.ReconstructionDTO{
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
	}
}

func (r *SaleRepository) Save(ctx context.Context, s *sale.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.sales[s.ID()] = snapshotSale(s)
	return nil
}

func (r *SaleRepository) FindByID(ctx context.Context, id string) (*sale.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dto, ok := r.sales[id]
	if !ok {
		return nil, sale.NewSaleNotFoundError(id)
	}
	return sale.RebuildFromDTO(dto), nil
}

func (r *SaleRepository) findWhere(match func(sale.ReconstructionDTO) bool) []*sale.Sale {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*sale.Sale
	for _, dto := range r.sales {
		if match(dto) {
			out = append(out, sale.RebuildFromDTO(dto))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out
}

func (r *SaleRepository) FindAll(ctx context.Context) ([]*sale.Sale, error) {
	return r.findWhere(func(sale.ReconstructionDTO) bool { return true }), nil
}

func (r *SaleRepository) FindByUserID(ctx context.Context, userID string) ([]*sale.Sale, error) {
	return r.findWhere(func(dto sale.ReconstructionDTO) bool {
		return dto.UserID == userID
	}), nil
}

func (r *SaleRepository) FindByCreatedAtBetween(ctx context.Context, start, end time.Time) ([]*sale.Sale, error) {
	return r.findWhere(func(dto sale.ReconstructionDTO) bool {
		return !dto.CreatedAt.Before(start) && !dto.CreatedAt.After(end)
	}), nil
}

func (r *SaleRepository) SumTotalsBetween(ctx context.Context, start, end time.Time) (int64, error) {
	sales, _ := r.FindByCreatedAtBetween(ctx, start, end)
	var sum int64
	for _, s := range sales {
		sum += s.Total().Amount()
	}
	return sum, nil
}

func (r *SaleRepository) CountBetween(ctx context.Context, start, end time.Time) (int64, error) {
	sales, _ := r.FindByCreatedAtBetween(ctx, start, end)
	return int64(len(sales)), nil
}

var _ sale.Repository = (*SaleRepository)(nil)
