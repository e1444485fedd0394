package shared

import "context"

// UnitOfWork runs a function inside one transactional boundary.
// Repositories called within fn pick the transaction up from ctx, so
// every write either commits together or rolls back together.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}

// AggregateRoot is the entry point of an aggregate. All mutation goes
// through it, and its version drives optimistic concurrency control.
type AggregateRoot interface {
	ID() string
	Version() int
}
