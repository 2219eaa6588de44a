package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"currypoint/config"
	deliverycontext "currypoint/internal/delivery/context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	slowQueryThreshold = 200 * time.Millisecond
	// document bodies are inlined into the SQL; cap what reaches the log
	maxLoggedSQL = 512
)

// gormSlogLogger routes gorm output to the request-scoped slog logger so
// queries line up with the docstore request that issued them.
type gormSlogLogger struct {
	fallback *slog.Logger
	level    logger.LogLevel
}

func newGormSlogLogger(base *slog.Logger, cfg *config.Config) logger.Interface {
	level := logger.Warn
	if cfg != nil && cfg.Env.Debug {
		level = logger.Info
	}

	return &gormSlogLogger{fallback: base, level: level}
}

func (l *gormSlogLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *gormSlogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Info, slog.LevelInfo, msg, args...)
}

func (l *gormSlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Warn, slog.LevelWarn, msg, args...)
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Error, slog.LevelError, msg, args...)
}

func (l *gormSlogLogger) printf(ctx context.Context, threshold logger.LogLevel, level slog.Level, msg string, args ...any) {
	if l.level < threshold || l.fallback == nil {
		return
	}

	l.scoped(ctx).LogAttrs(ctx, level, "GORM "+level.String(), slog.String("message", fmt.Sprintf(msg, args...)))
}

func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, sqlAndRows func() (string, int64), err error) {
	if l.fallback == nil || l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	var (
		level slog.Level
		msg   string
	)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= logger.Error:
		level, msg = slog.LevelError, "GORM query failed"
	case elapsed > slowQueryThreshold && l.level >= logger.Warn:
		level, msg = slog.LevelWarn, "GORM slow query"
	case l.level >= logger.Info:
		level, msg = slog.LevelDebug, "GORM query"
	default:
		return
	}

	sql, rows := sqlAndRows()
	if len(sql) > maxLoggedSQL {
		sql = sql[:maxLoggedSQL] + "..."
	}
	attrs := []slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}
	if level == slog.LevelError {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	l.scoped(ctx).LogAttrs(ctx, level, msg, attrs...)
}

func (l *gormSlogLogger) scoped(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, l.fallback)
}
