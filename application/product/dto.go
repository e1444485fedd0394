package product

import "time"

// CreateProductRequest is the inbound payload for adding a catalog
// entry. Stock set here is the opening inventory; later stock changes
// happen only through delivered orders.
type CreateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"min=0"`
	Currency    string `json:"currency"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	IsNew       bool   `json:"is_new"`
	IsSale      bool   `json:"is_sale"`
	Stock       int    `json:"stock" binding:"min=0"`
}

// UpdateProductRequest carries the editable catalog fields. Stock and
// purchase count are not editable through this path.
type UpdateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"min=0"`
	Currency    string `json:"currency"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	IsNew       bool   `json:"is_new"`
	IsSale      bool   `json:"is_sale"`
}

// ProductResponse is the outbound catalog view.
type ProductResponse struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	Price         MoneyResponse `json:"price"`
	Category      string        `json:"category,omitempty"`
	Image         string        `json:"image,omitempty"`
	IsNew         bool          `json:"is_new"`
	IsSale        bool          `json:"is_sale"`
	Stock         int           `json:"stock"`
	PurchaseCount int           `json:"purchase_count"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type MoneyResponse struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}
