package mocks

import (
	"context"

	"huerto/domain/shared"
)

// UnitOfWork is a pass-through unit of work for tests. The in-memory
// repositories are not transactional, so tests asserting rollback
// behavior check repository state directly after a failed Execute.
type UnitOfWork struct {
	// Calls counts how many times Execute ran the closure.
	Calls int

	// BeginErr, when set, fails Execute before running the closure.
	BeginErr error
}

func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{}
}

func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if u.BeginErr != nil {
		return u.BeginErr
	}
	u.Calls++
	return fn(ctx)
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)
