package sale

import "time"

// SaleResponse is the outbound sale view. Sales are immutable, so
// there is no inbound mutation DTO.
type SaleResponse struct {
	ID            string           `json:"id"`
	OrderID       string           `json:"order_id"`
	UserID        string           `json:"user_id"`
	Items         []ItemResponse   `json:"items"`
	Total         MoneyResponse    `json:"total"`
	Subtotal      MoneyResponse    `json:"subtotal"`
	Discount      MoneyResponse    `json:"discount"`
	Customer      CustomerResponse `json:"customer"`
	PaymentMethod string           `json:"payment_method"`
	Status        string           `json:"status"`
	DeliveredAt   time.Time        `json:"delivered_at"`
	CreatedAt     time.Time        `json:"created_at"`
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
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type MoneyResponse struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// SalesReportResponse aggregates a reporting window.
type SalesReportResponse struct {
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	TotalSales   int64           `json:"total_sales"`
	TotalRevenue int64           `json:"total_revenue"`
	Sales        []*SaleResponse `json:"sales"`
}
