package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"huerto/infrastructure/persistence"

	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// GormLoggerConfig tunes the GORM log adapter.
type GormLoggerConfig struct {
	SlowThreshold             time.Duration
	IgnoreRecordNotFoundError bool
}

// DefaultGormLoggerConfig flags queries slower than 200ms.
func DefaultGormLoggerConfig() *GormLoggerConfig {
	return &GormLoggerConfig{
		SlowThreshold:             200 * time.Millisecond,
		IgnoreRecordNotFoundError: true,
	}
}

// GormLoggerAdapter routes GORM's logging through the zap logger,
// carrying the request id from context into every SQL log line.
type GormLoggerAdapter struct {
	logLevel logger.LogLevel
	config   *GormLoggerConfig
}

// NewGormLoggerAdapter creates an adapter with default config.
func NewGormLoggerAdapter(logLevel logger.LogLevel) *GormLoggerAdapter {
	return &GormLoggerAdapter{logLevel: logLevel, config: DefaultGormLoggerConfig()}
}

func (l *GormLoggerAdapter) LogMode(logLevel logger.LogLevel) logger.Interface {
	return &GormLoggerAdapter{logLevel: logLevel, config: l.config}
}

func (l *GormLoggerAdapter) contextLogger(ctx context.Context) *zap.Logger {
	base := log
	if base == nil {
		base = zap.NewNop()
	}
	if requestID := persistence.RequestIDFromContext(ctx); requestID != "" {
		base = base.With(zap.String("request_id", requestID))
	}
	return base
}

func (l *GormLoggerAdapter) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.logLevel >= logger.Info {
		l.contextLogger(ctx).Info(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLoggerAdapter) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.logLevel >= logger.Warn {
		l.contextLogger(ctx).Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLoggerAdapter) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.logLevel >= logger.Error {
		l.contextLogger(ctx).Error(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLoggerAdapter) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.logLevel <= logger.Silent {
		return
	}

	sql, rows := fc()
	elapsed := time.Since(begin)
	fields := []zap.Field{
		zap.String("sql", sql),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
	}
	zl := l.contextLogger(ctx)

	if err != nil && l.logLevel >= logger.Error {
		if errors.Is(err, logger.ErrRecordNotFound) && l.config.IgnoreRecordNotFoundError {
			return
		}
		zl.Error("database operation failed", append(fields, zap.Error(err))...)
		return
	}

	if l.config.SlowThreshold != 0 && elapsed > l.config.SlowThreshold && l.logLevel >= logger.Warn {
		zl.Warn("slow SQL query", fields...)
		return
	}

	if l.logLevel >= logger.Info {
		zl.Info("SQL query executed", fields...)
	}
}

var _ logger.Interface = (*GormLoggerAdapter)(nil)
