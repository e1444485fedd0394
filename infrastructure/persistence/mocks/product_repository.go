package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"huerto/domain/product"
)

type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]product.ReconstructionDTO

	// SaveErr forces the next Save to fail, for rollback tests.
	SaveErr error
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[string]product.ReconstructionDTO)}
}

func snapshotProduct(p *product.Product) product.ReconstructionDTO {
	return product.ReconstructionDTO{
		ID:            p.ID(),
		Name:          p.Name(),
		Description:   p.Description(),
		Price:         p.Price(),
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

func (r *ProductRepository) Save(ctx context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.products[p.ID()] = snapshotProduct(p)
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dto, ok := r.products[id]
	if !ok {
		return nil, product.NewProductNotFoundError(id)
	}
	return product.RebuildFromDTO(dto), nil
}

func (r *ProductRepository) findWhere(match func(product.ReconstructionDTO) bool) []*product.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*product.Product
	for _, dto := range r.products {
		if match(dto) {
			out = append(out, product.RebuildFromDTO(dto))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]*product.Product, error) {
	return r.findWhere(func(product.ReconstructionDTO) bool { return true }), nil
}

func (r *ProductRepository) FindByCategory(ctx context.Context, category string) ([]*product.Product, error) {
	return r.findWhere(func(dto product.ReconstructionDTO) bool {
		return dto.Category == category
	}), nil
}

func (r *ProductRepository) SearchByName(ctx context.Context, query string) ([]*product.Product, error) {
	q := strings.ToLower(query)
	return r.findWhere(func(dto product.ReconstructionDTO) bool {
		return strings.Contains(strings.ToLower(dto.Name), q)
	}), nil
}

func (r *ProductRepository) FindNew(ctx context.Context) ([]*product.Product, error) {
	return r.findWhere(func(dto product.ReconstructionDTO) bool { return dto.IsNew }), nil
}

func (r *ProductRepository) FindOnSale(ctx context.Context) ([]*product.Product, error) {
	return r.findWhere(func(dto product.ReconstructionDTO) bool { return dto.IsSale }), nil
}

func (r *ProductRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.products[id]
	return ok, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return product.NewProductNotFoundError(id)
	}
	delete(r.products, id)
	return nil
}

var _ product.Repository = (*ProductRepository)(nil)
