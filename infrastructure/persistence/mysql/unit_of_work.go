package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"huerto/domain/shared"
	"huerto/infrastructure/persistence"
	"huerto/infrastructure/persistence/retry"
)

// UnitOfWork runs business closures inside one database transaction.
// The transaction is injected into the context so repositories join it
// transparently. Retryable failures (optimistic-lock conflicts,
// deadlocks) re-run the whole closure, which reloads fresh state.
type UnitOfWork struct {
	db          *gorm.DB
	retryConfig retry.Config
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db, retryConfig: retry.DefaultConfig()}
}

// SetRetryConfig overrides the retry policy for this unit of work.
func (u *UnitOfWork) SetRetryConfig(config retry.Config) {
	u.retryConfig = config
}

// Execute begins a transaction, runs fn with the transaction in
// context, and commits on success or rolls back on error. The closure
// must be re-runnable: a retry attempt starts from a fresh transaction
// and must re-read all state.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	executeOnce := func(ctx context.Context) error {
		tx := u.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			return fmt.Errorf("failed to begin transaction: %w", tx.Error)
		}

		txCtx := persistence.ContextWithTx(ctx, tx)

		if err := fn(txCtx); err != nil {
			tx.Rollback()
			return err
		}

		if err := tx.Commit().Error; err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	}

	return u.retryConfig.ExecuteWithRetry(ctx, "unit_of_work", executeOnce)
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)
