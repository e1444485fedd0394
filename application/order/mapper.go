package order

import (
	"huerto/domain/order"
	"huerto/domain/shared"
)

const defaultCurrency = "EUR"

func currencyOrDefault(currency string) string {
	if currency == "" {
		return defaultCurrency
	}
	return currency
}

func toItemRequests(items []ItemRequest, currency string) []order.ItemRequest {
	requests := make([]order.ItemRequest, len(items))
	for i, item := range items {
		requests[i] = order.ItemRequest{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: *shared.NewMoney(item.UnitPrice, currency),
			Quantity:  item.Quantity,
			Image:     item.Image,
		}
	}
	return requests
}

func toTotals(req CreateOrderRequest, currency string) order.Totals {
	return order.Totals{
		Total:        *shared.NewMoney(*req.Total, currency),
		Subtotal:     *shared.NewMoney(req.Subtotal, currency),
		ShippingCost: *shared.NewMoney(req.ShippingCost, currency),
		Discount:     *shared.NewMoney(req.Discount, currency),
	}
}

func toCustomer(req CustomerRequest) order.Customer {
	return order.Customer{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Address: order.Address{
			Street:     req.Address.Street,
			City:       req.Address.City,
			PostalCode: req.Address.PostalCode,
			Country:    req.Address.Country,
		},
	}
}

func toMoneyResponse(m shared.Money) MoneyResponse {
	return MoneyResponse{Amount: m.Amount(), Currency: m.Currency()}
}

// ToOrderResponse maps a domain order to its outbound view.
func ToOrderResponse(o *order.Order) *OrderResponse {
	domainItems := o.Items()
	items := make([]ItemResponse, len(domainItems))
	for i, item := range domainItems {
		items[i] = ItemResponse{
			ID:        item.ID(),
			ProductID: item.ProductID(),
			Name:      item.Name(),
			UnitPrice: toMoneyResponse(item.UnitPrice()),
			Quantity:  item.Quantity(),
			Image:     item.Image(),
		}
	}

	domainHistory := o.StatusHistory()
	history := make([]StatusChangeResponse, len(domainHistory))
	for i, change := range domainHistory {
		history[i] = StatusChangeResponse{
			Status:    string(change.Status()),
			ChangedBy: change.ChangedBy(),
			ChangedAt: change.ChangedAt(),
		}
	}

	customer := o.Customer()
	return &OrderResponse{
		ID:           o.ID(),
		UserID:       o.UserID(),
		Items:        items,
		Total:        toMoneyResponse(o.Total()),
		Subtotal:     toMoneyResponse(o.Subtotal()),
		ShippingCost: toMoneyResponse(o.ShippingCost()),
		Discount:     toMoneyResponse(o.Discount()),
		Status:       string(o.Status()),
		Customer: CustomerResponse{
			Name:  customer.Name,
			Email: customer.Email,
			Phone: customer.Phone,
			Address: AddressResponse{
				Street:     customer.Address.Street,
				City:       customer.Address.City,
				PostalCode: customer.Address.PostalCode,
				Country:    customer.Address.Country,
			},
		},
		PaymentMethod: o.PaymentMethod(),
		History:       history,
		DeliveredAt:   o.DeliveredAt(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}
}

func toOrderResponses(orders []*order.Order) []*OrderResponse {
	responses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = ToOrderResponse(o)
	}
	return responses
}
