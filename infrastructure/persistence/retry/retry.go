// Package retry implements the retry policy for transactional work:
// optimistic-lock conflicts and MySQL deadlocks are transient, so the
// unit of work re-runs the business closure against fresh state.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"huerto/config"
	"huerto/domain/order"
	"huerto/domain/shared"
	"huerto/infrastructure/persistence"
	"huerto/pkg/logger"
)

// Config controls how transactional work is retried.
type Config struct {
	Enabled         bool
	MaxAttempts     int
	InitialDelay    time.Duration
	MaxDelay        time.Duration
	BackoffFactor   float64
	JitterEnabled   bool
	RetryOnConflict bool
	RetryOnDeadlock bool
}

// DefaultConfig retries a conflicting transaction exactly once.
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		MaxAttempts:     2,
		InitialDelay:    50 * time.Millisecond,
		MaxDelay:        1 * time.Second,
		BackoffFactor:   2.0,
		JitterEnabled:   true,
		RetryOnConflict: true,
		RetryOnDeadlock: true,
	}
}

// FromAppConfig builds a retry Config from the application settings,
// backfilling zero values with defaults.
func FromAppConfig(rc config.RetryConfig) Config {
	c := Config{
		Enabled:         rc.Enabled,
		MaxAttempts:     rc.MaxAttempts,
		InitialDelay:    rc.InitialDelay,
		MaxDelay:        rc.MaxDelay,
		BackoffFactor:   rc.BackoffFactor,
		JitterEnabled:   rc.JitterEnabled,
		RetryOnConflict: rc.RetryOnConflict,
		RetryOnDeadlock: rc.RetryOnDeadlock,
	}
	d := DefaultConfig()
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.InitialDelay <= 0 {
		c.InitialDelay = d.InitialDelay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = d.MaxDelay
	}
	if c.BackoffFactor <= 1 {
		c.BackoffFactor = d.BackoffFactor
	}
	return c
}

// MySQL server error numbers for lock problems.
const (
	mysqlErrDeadlock    = 1213
	mysqlErrLockTimeout = 1205
)

// IsRetryableError reports whether err is a transient error worth
// re-running the transaction for under the given config.
func (c Config) IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if c.RetryOnConflict {
		if errors.Is(err, order.ErrConcurrentModification) || errors.Is(err, shared.ErrConflict) {
			return true
		}
	}

	if c.RetryOnDeadlock {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) {
			if mysqlErr.Number == mysqlErrDeadlock || mysqlErr.Number == mysqlErrLockTimeout {
				return true
			}
		}
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "deadlock") || strings.Contains(msg, "lock wait timeout") {
			return true
		}
	}

	return false
}

// backoffDelay computes the delay before the given attempt (1-based),
// capped at MaxDelay, with optional jitter in [0.5, 1.5).
func (c Config) backoffDelay(attempt int) time.Duration {
	delay := float64(c.InitialDelay) * math.Pow(c.BackoffFactor, float64(attempt-1))
	if delay > float64(c.MaxDelay) {
		delay = float64(c.MaxDelay)
	}
	if c.JitterEnabled {
		delay = delay * (0.5 + rand.Float64())
	}
	return time.Duration(delay)
}

// ExecuteWithRetry runs fn, retrying on retryable errors up to
// MaxAttempts total attempts. The final error is returned unchanged so
// callers can keep matching with errors.Is.
func (c Config) ExecuteWithRetry(ctx context.Context, opName string, fn func(ctx context.Context) error) error {
	if !c.Enabled {
		return fn(ctx)
	}

	var lastErr error
	for attempt := 1; attempt <= c.MaxAttempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !c.IsRetryableError(lastErr) {
			return lastErr
		}
		if attempt == c.MaxAttempts {
			break
		}

		delay := c.backoffDelay(attempt)
		logger.Warn("retrying transactional operation",
			zap.String("request_id", persistence.RequestIDFromContext(ctx)),
			zap.String("operation", opName),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(lastErr),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return lastErr
}
