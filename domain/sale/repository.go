package sale

import (
	"context"
	"time"
)

// Repository persists Sale records. Sales are write-once: there is no
// update path, and Save is only ever called with a freshly derived sale
// inside the delivery transaction.
type Repository interface {
	Save(ctx context.Context, s *Sale) error

	FindByID(ctx context.Context, id string) (*Sale, error)

	// FindAll returns every sale, newest first.
	FindAll(ctx context.Context) ([]*Sale, error)

	FindByUserID(ctx context.Context, userID string) ([]*Sale, error)

	FindByCreatedAtBetween(ctx context.Context, start, end time.Time) ([]*Sale, error)

	// SumTotalsBetween returns the revenue (sum of totals, in cents)
	// over sales created in the window.
	SumTotalsBetween(ctx context.Context, start, end time.Time) (int64, error)

	// CountBetween returns the number of sales created in the window.
	CountBetween(ctx context.Context, start, end time.Time) (int64, error)
}
