package order

import (
	"context"
	"time"
)

// Repository persists Order aggregates.
//
// Save creates when Version() == 0 and updates otherwise; updates are
// guarded by the optimistic-lock version and return
// ErrConcurrentModification on a clash. Repositories pick the active
// transaction up from ctx when called inside a unit of work.
type Repository interface {
	Save(ctx context.Context, o *Order) error

	FindByID(ctx context.Context, id string) (*Order, error)

	// FindAll returns every order, newest first.
	FindAll(ctx context.Context) ([]*Order, error)

	// FindByUserID returns one user's orders, newest first.
	FindByUserID(ctx context.Context, userID string) ([]*Order, error)

	FindByStatus(ctx context.Context, status Status) ([]*Order, error)

	FindByCreatedAtBetween(ctx context.Context, start, end time.Time) ([]*Order, error)

	ExistsByID(ctx context.Context, id string) (bool, error)

	// Delete physically removes the order with its items and history.
	// Administrative operation: it bypasses the lifecycle entirely.
	Delete(ctx context.Context, id string) error
}
