// Package product serves the catalog: CRUD plus the storefront
// queries (search, category, new, on sale). Inventory changes are out
// of scope here; stock moves only when orders are delivered.
package product

import (
	"context"

	"go.uber.org/zap"

	"huerto/domain/product"
	"huerto/domain/shared"
	"huerto/pkg/errors"
	"huerto/pkg/logger"
)

const defaultCurrency = "EUR"

// ApplicationService coordinates catalog processes.
type ApplicationService struct {
	productRepo product.Repository
	uow         shared.UnitOfWork
}

func NewApplicationService(productRepo product.Repository, uow shared.UnitOfWork) *ApplicationService {
	return &ApplicationService{productRepo: productRepo, uow: uow}
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return defaultCurrency
	}
	return currency
}

func toProductResponse(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:            p.ID(),
		Name:          p.Name(),
		Description:   p.Description(),
		Price:         MoneyResponse{Amount: p.Price().Amount(), Currency: p.Price().Currency()},
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

func toProductResponses(products []*product.Product) []*ProductResponse {
	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = toProductResponse(p)
	}
	return responses
}

// CreateProduct adds a catalog entry with its opening stock.
func (s *ApplicationService) CreateProduct(ctx context.Context, req CreateProductRequest, principal shared.Principal) (*ProductResponse, error) {
	if principal.IsZero() {
		return nil, errors.Unauthorized("authentication required")
	}

	p, err := product.NewProduct(product.Details{
		Name:        req.Name,
		Description: req.Description,
		Price:       *shared.NewMoney(req.Price, currencyOrDefault(req.Currency)),
		Category:    req.Category,
		Image:       req.Image,
		IsNew:       req.IsNew,
		IsSale:      req.IsSale,
		Stock:       req.Stock,
	})
	if err != nil {
		return nil, errors.FromDomainError(err)
	}

	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		return s.productRepo.Save(ctx, p)
	})
	if err != nil {
		return nil, errors.FromDomainError(err)
	}

	logger.Info("product created",
		zap.String("product_id", p.ID()),
		zap.String("name", p.Name()),
		zap.Int("stock", p.Stock()),
	)
	return toProductResponse(p), nil
}

// UpdateProduct replaces the editable catalog fields. Stock is carried
// over unchanged: only delivered orders move inventory.
func (s *ApplicationService) UpdateProduct(ctx context.Context, productID string, req UpdateProductRequest, principal shared.Principal) (*ProductResponse, error) {
	if principal.IsZero() {
		return nil, errors.Unauthorized("authentication required")
	}

	var p *product.Product
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return err
		}
		err = p.Update(product.Details{
			Name:        req.Name,
			Description: req.Description,
			Price:       *shared.NewMoney(req.Price, currencyOrDefault(req.Currency)),
			Category:    req.Category,
			Image:       req.Image,
			IsNew:       req.IsNew,
			IsSale:      req.IsSale,
			Stock:       p.Stock(),
		})
		if err != nil {
			return err
		}
		return s.productRepo.Save(ctx, p)
	})
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return toProductResponse(p), nil
}

// GetProduct returns one catalog entry by id.
func (s *ApplicationService) GetProduct(ctx context.Context, productID string) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return toProductResponse(p), nil
}

// GetAllProducts returns the whole catalog, newest first.
func (s *ApplicationService) GetAllProducts(ctx context.Context) ([]*ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return toProductResponses(products), nil
}

// GetProductsByCategory returns the catalog entries in one category.
func (s *ApplicationService) GetProductsByCategory(ctx context.Context, category string) ([]*ProductResponse, error) {
	products, err := s.productRepo.FindByCategory(ctx, category)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return toProductResponses(products), nil
}

// SearchProducts matches the query against product names.
func (s *ApplicationService) SearchProducts(ctx context.Context, query string) ([]*ProductResponse, error) {
	if query == "" {
		return nil, errors.Validation("search query is required")
	}
	products, err := s.productRepo.SearchByName(ctx, query)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return toProductResponses(products), nil
}

// GetNewProducts returns the entries flagged as new arrivals.
func (s *ApplicationService) GetNewProducts(ctx context.Context) ([]*ProductResponse, error) {
	products, err := s.productRepo.FindNew(ctx)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return toProductResponses(products), nil
}

// GetSaleProducts returns the entries flagged as on sale.
func (s *ApplicationService) GetSaleProducts(ctx context.Context) ([]*ProductResponse, error) {
	products, err := s.productRepo.FindOnSale(ctx)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return toProductResponses(products), nil
}

// DeleteProduct removes a catalog entry. Existing order and sale lines
// keep their snapshot of the product data.
func (s *ApplicationService) DeleteProduct(ctx context.Context, productID string, principal shared.Principal) error {
	if principal.IsZero() {
		return errors.Unauthorized("authentication required")
	}

	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		return s.productRepo.Delete(ctx, productID)
	})
	if err != nil {
		return errors.FromDomainError(err)
	}

	logger.Info("product deleted",
		zap.String("product_id", productID),
		zap.String("deleted_by", principal.Actor()),
	)
	return nil
}
