// Package sale exposes the read side of recorded sales and the
// delivery-time creator used by the order lifecycle. Sales have no
// update or delete path at any layer.
package sale

import (
	"context"
	"time"

	"huerto/domain/sale"
	"huerto/pkg/errors"
)

// ApplicationService serves sale queries and reports.
type ApplicationService struct {
	saleRepo sale.Repository
}

func NewApplicationService(saleRepo sale.Repository) *ApplicationService {
	return &ApplicationService{saleRepo: saleRepo}
}

func toSaleResponse(s *sale.Sale) *SaleResponse {
	domainItems := s.Items()
	items := make([]ItemResponse, len(domainItems))
	for i, item := range domainItems {
		items[i] = ItemResponse{
			ID:        item.ID(),
			ProductID: item.ProductID(),
			Name:      item.Name(),
			UnitPrice: MoneyResponse{Amount: item.UnitPrice().Amount(), Currency: item.UnitPrice().Currency()},
			Quantity:  item.Quantity(),
			Image:     item.Image(),
		}
	}

	customer := s.Customer()
	return &SaleResponse{
		ID:            s.ID(),
		OrderID:       s.OrderID(),
		UserID:        s.UserID(),
		Items:         items,
		Total:         MoneyResponse{Amount: s.Total().Amount(), Currency: s.Total().Currency()},
		Subtotal:      MoneyResponse{Amount: s.Subtotal().Amount(), Currency: s.Subtotal().Currency()},
		Discount:      MoneyResponse{Amount: s.Discount().Amount(), Currency: s.Discount().Currency()},
		Customer:      CustomerResponse{Name: customer.Name, Email: customer.Email, Phone: customer.Phone},
		PaymentMethod: s.PaymentMethod(),
		Status:        s.Status(),
		DeliveredAt:   s.DeliveredAt(),
		CreatedAt:     s.CreatedAt(),
	}
}

func toSaleResponses(sales []*sale.Sale) []*SaleResponse {
	responses := make([]*SaleResponse, len(sales))
	for i, s := range sales {
		responses[i] = toSaleResponse(s)
	}
	return responses
}

// GetSale returns one sale by id.
func (s *ApplicationService) GetSale(ctx context.Context, saleID string) (*SaleResponse, error) {
	found, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return toSaleResponse(found), nil
}

// GetAllSales returns every sale, newest first.
func (s *ApplicationService) GetAllSales(ctx context.Context) ([]*SaleResponse, error) {
	sales, err := s.saleRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return toSaleResponses(sales), nil
}

// GetUserSales returns the sales belonging to one user, newest first.
func (s *ApplicationService) GetUserSales(ctx context.Context, userID string) ([]*SaleResponse, error) {
	sales, err := s.saleRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return toSaleResponses(sales), nil
}

// GetSalesByDateRange returns the sales created inside the window.
func (s *ApplicationService) GetSalesByDateRange(ctx context.Context, start, end time.Time) ([]*SaleResponse, error) {
	if end.Before(start) {
		return nil, errors.Validation("end date must not be before start date")
	}
	sales, err := s.saleRepo.FindByCreatedAtBetween(ctx, start, end)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return toSaleResponses(sales), nil
}

// GetSalesReport aggregates count and revenue over the window, with
// the individual sales attached. Count and revenue come from SQL
// aggregates, not from summing the loaded rows.
func (s *ApplicationService) GetSalesReport(ctx context.Context, start, end time.Time) (*SalesReportResponse, error) {
	if end.Before(start) {
		return nil, errors.Validation("end date must not be before start date")
	}

	count, err := s.saleRepo.CountBetween(ctx, start, end)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	revenue, err := s.saleRepo.SumTotalsBetween(ctx, start, end)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	sales, err := s.saleRepo.FindByCreatedAtBetween(ctx, start, end)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}

	return &SalesReportResponse{
		StartDate:    start,
		EndDate:      end,
		TotalSales:   count,
		TotalRevenue: revenue,
		Sales:        toSaleResponses(sales),
	}, nil
}
