package product

import "context"

// Repository persists Product aggregates. Repositories pick the active
// transaction up from ctx when called inside a unit of work, which is
// how the delivery transaction makes its stock writes atomic with the
// order save.
type Repository interface {
	Save(ctx context.Context, p *Product) error

	FindByID(ctx context.Context, id string) (*Product, error)

	FindAll(ctx context.Context) ([]*Product, error)

	FindByCategory(ctx context.Context, category string) ([]*Product, error)

	// SearchByName matches the query case-insensitively as a substring.
	SearchByName(ctx context.Context, query string) ([]*Product, error)

	FindNew(ctx context.Context) ([]*Product, error)

	FindOnSale(ctx context.Context) ([]*Product, error)

	ExistsByID(ctx context.Context, id string) (bool, error)

	Delete(ctx context.Context, id string) error
}
