package order

import "time"

// CreateOrderRequest is the inbound payload for placing an order. The
// owner of the order comes from the authenticated principal, never
// from the body. Total is a pointer so a missing field is told apart
// from an explicit zero: the total is required input, not something
// the backend recomputes from the items.
type CreateOrderRequest struct {
	Items         []ItemRequest   `json:"items" binding:"required,min=1,dive"`
	Total         *int64          `json:"total" binding:"required"`
	Subtotal      int64           `json:"subtotal" binding:"min=0"`
	ShippingCost  int64           `json:"shipping_cost" binding:"min=0"`
	Discount      int64           `json:"discount" binding:"min=0"`
	Currency      string          `json:"currency"`
	Customer      CustomerRequest `json:"customer" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
}

// ItemRequest is one requested order line. ProductID is optional:
// free-form lines reference no catalog product and are skipped by the
// stock update on delivery.
type ItemRequest struct {
	ProductID *string `json:"product_id"`
	Name      string  `json:"name" binding:"required"`
	UnitPrice int64   `json:"unit_price" binding:"min=0"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Image     string  `json:"image"`
}

// CustomerRequest carries the contact and shipping snapshot.
type CustomerRequest struct {
	Name    string         `json:"name" binding:"required"`
	Email   string         `json:"email" binding:"required,email"`
	Phone   string         `json:"phone"`
	Address AddressRequest `json:"address"`
}

type AddressRequest struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// UpdateOrderStatusRequest carries the requested target status. The
// value is parsed into a typed status before any state is touched, so
// a misspelling can never reach the order.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderResponse is the outbound order view.
type OrderResponse struct {
	ID            string                 `json:"id"`
	UserID        string                 `json:"user_id"`
	Items         []ItemResponse         `json:"items"`
	Total         MoneyResponse          `json:"total"`
	Subtotal      MoneyResponse          `json:"subtotal"`
	ShippingCost  MoneyResponse          `json:"shipping_cost"`
	Discount      MoneyResponse          `json:"discount"`
	Status        string                 `json:"status"`
	Customer      CustomerResponse       `json:"customer"`
	PaymentMethod string                 `json:"payment_method"`
	History       []StatusChangeResponse `json:"status_history"`
	DeliveredAt   *time.Time             `json:"delivered_at,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

type ItemResponse struct {
	ID        string        `json:"id"`
	ProductID *string       `json:"product_id,omitempty"`
	Name      string        `json:"name"`
	UnitPrice MoneyResponse `json:"unit_price"`
	Quantity  int           `json:"quantity"`
	Image     string        `json:"image,omitempty"`
}

type CustomerResponse struct {
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Phone   string          `json:"phone,omitempty"`
	Address AddressResponse `json:"address"`
}

type AddressResponse struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

type StatusChangeResponse struct {
	Status    string    `json:"status"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

type MoneyResponse struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}
