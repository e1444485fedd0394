package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huerto/domain/order"
	"huerto/domain/shared"
	"huerto/infrastructure/persistence/mocks"
	"huerto/infrastructure/persistence/retry"
)

// fastConfig is DefaultConfig with delays shrunk so tests do not sleep.
func fastConfig() retry.Config {
	c := retry.DefaultConfig()
	c.InitialDelay = time.Millisecond
	c.MaxDelay = time.Millisecond
	c.JitterEnabled = false
	return c
}

func TestIsRetryableErrorClassification(t *testing.T) {
	cfg := retry.DefaultConfig()

	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil", nil, false},
		{"concurrent modification", order.NewConcurrentModificationError("o-1"), true},
		{"wrapped conflict class", shared.NewConflictError("order", "version mismatch"), true},
		{"mysql deadlock", &mysql.MySQLError{Number: 1213, Message: "Deadlock found"}, true},
		{"mysql lock wait timeout", &mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}, true},
		{"mysql duplicate key", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, false},
		{"deadlock by message", errors.New("Deadlock found when trying to get lock"), true},
		{"not found", order.NewOrderNotFoundError("o-1"), false},
		{"plain error", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, cfg.IsRetryableError(tt.err))
		})
	}
}

func TestIsRetryableErrorRespectsToggles(t *testing.T) {
	cfg := retry.DefaultConfig()
	cfg.RetryOnConflict = false
	assert.False(t, cfg.IsRetryableError(order.NewConcurrentModificationError("o-1")))
	assert.True(t, cfg.IsRetryableError(&mysql.MySQLError{Number: 1213}))

	cfg = retry.DefaultConfig()
	cfg.RetryOnDeadlock = false
	assert.True(t, cfg.IsRetryableError(order.NewConcurrentModificationError("o-1")))
	assert.False(t, cfg.IsRetryableError(&mysql.MySQLError{Number: 1213}))
}

func TestExecuteWithRetryRetriesConflictOnce(t *testing.T) {
	cfg := fastConfig()

	attempts := 0
	err := cfg.ExecuteWithRetry(context.Background(), "order_update", func(ctx context.Context) error {
		attempts++
		return order.NewConcurrentModificationError("o-1")
	})

	assert.Equal(t, 2, attempts, "a persistent conflict gets exactly one retry")
	assert.ErrorIs(t, err, order.ErrConcurrentModification)
}

func TestExecuteWithRetrySecondAttemptSucceeds(t *testing.T) {
	cfg := fastConfig()

	attempts := 0
	err := cfg.ExecuteWithRetry(context.Background(), "order_update", func(ctx context.Context) error {
		attempts++
		if attempts == 1 {
			return order.NewConcurrentModificationError("o-1")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestExecuteWithRetryStopsOnNonRetryableError(t *testing.T) {
	cfg := fastConfig()

	attempts := 0
	err := cfg.ExecuteWithRetry(context.Background(), "order_update", func(ctx context.Context) error {
		attempts++
		return order.NewOrderNotFoundError("o-1")
	})

	assert.Equal(t, 1, attempts)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestExecuteWithRetryDisabledRunsOnce(t *testing.T) {
	cfg := fastConfig()
	cfg.Enabled = false

	attempts := 0
	err := cfg.ExecuteWithRetry(context.Background(), "order_update", func(ctx context.Context) error {
		attempts++
		return order.NewConcurrentModificationError("o-1")
	})

	assert.Equal(t, 1, attempts)
	assert.ErrorIs(t, err, order.ErrConcurrentModification)
}

func seedOrder(t *testing.T, repo *mocks.OrderRepository) string {
	t.Helper()
	o, err := order.NewOrder(
		"user-1",
		[]order.ItemRequest{{Name: "Tomates", UnitPrice: *shared.NewMoney(250, "EUR"), Quantity: 2}},
		order.Totals{
			Total:    *shared.NewMoney(500, "EUR"),
			Subtotal: *shared.NewMoney(500, "EUR"),
		},
		order.Customer{Name: "Ana", Email: "ana@example.com"},
		"CARD",
		"user-1",
	)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), o))
	return o.ID()
}

func TestStaleVersionSaveReturnsConflict(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewOrderRepository()
	id := seedOrder(t, repo)

	stale, err := repo.FindByID(ctx, id)
	require.NoError(t, err)

	// Another writer commits in between, bumping the stored version.
	other, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	require.NoError(t, other.ApplyStatusChange(order.StatusProcessing, "admin-2"))
	require.NoError(t, repo.Save(ctx, other))

	require.NoError(t, stale.ApplyStatusChange(order.StatusShipped, "admin-1"))
	err = repo.Save(ctx, stale)
	assert.ErrorIs(t, err, order.ErrConcurrentModification)
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestConflictRetryReloadsFreshState(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewOrderRepository()
	id := seedOrder(t, repo)

	stale, err := repo.FindByID(ctx, id)
	require.NoError(t, err)

	other, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	require.NoError(t, other.ApplyStatusChange(order.StatusProcessing, "admin-2"))
	require.NoError(t, repo.Save(ctx, other))

	cfg := fastConfig()
	attempts := 0
	err = cfg.ExecuteWithRetry(ctx, "order_update", func(ctx context.Context) error {
		attempts++
		// First attempt works on the snapshot loaded before the other
		// writer committed; the re-run starts from a fresh read, the way
		// a retried transaction does.
		o := stale
		if attempts > 1 {
			var loadErr error
			o, loadErr = repo.FindByID(ctx, id)
			if loadErr != nil {
				return loadErr
			}
		}
		if applyErr := o.ApplyStatusChange(order.StatusShipped, "admin-1"); applyErr != nil {
			return applyErr
		}
		return repo.Save(ctx, o)
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts, "the stale first attempt conflicts, the reload succeeds")

	final, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, final.Status())
	assert.Equal(t, 3, final.Version())
}
