// Package persistence carries cross-cutting persistence concerns that
// both the mysql driver package and callers share: the transaction
// handle travelling through context and the request id used to
// correlate SQL logs with HTTP logs.
package persistence

import (
	"context"

	"gorm.io/gorm"
)

type contextKey string

const (
	txKey        contextKey = "persistence:tx"
	requestIDKey contextKey = "persistence:request_id"
)

// ContextWithTx returns a context carrying an open transaction. All
// repositories pick the transaction from the context, so work done
// inside a unit of work shares one transaction without the
// repositories knowing about transaction management.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// TxFromContext returns the transaction stored in ctx, or nil when the
// context carries none.
func TxFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// ContextWithRequestID attaches the request id to the context.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the request id stored in ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
