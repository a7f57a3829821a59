package logging

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SlowQueryThreshold is how long a statement may run before it is logged as slow.
const SlowQueryThreshold = 200 * time.Millisecond

type gormLogger struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// GormLogger returns a GORM logger that writes through zerolog. Failed
// statements are logged at error level, slow ones at warn and, in Info mode,
// every statement at debug.
func GormLogger() gormlogger.Interface {
	return gormLogger{level: gormlogger.Warn, slowThreshold: SlowQueryThreshold}
}

func (l gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	l.level = level
	return l
}

func (l gormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		log.Info().Str("component", "gorm").Msgf(msg, args...)
	}
}

func (l gormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		log.Warn().Str("component", "gorm").Msgf(msg, args...)
	}
}

func (l gormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		log.Error().Str("component", "gorm").Msgf(msg, args...)
	}
}

func (l gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	var event *zerolog.Event
	msg := "Query"
	switch {
	case err != nil && errors.Is(err, gorm.ErrRecordNotFound):
		return
	case err != nil && errors.Is(err, gorm.ErrDuplicatedKey) && l.level >= gormlogger.Warn:
		// Duplicates surface to callers as conflicts.
		event, msg = log.Warn().Err(err), "Duplicate key"
	case err != nil && l.level >= gormlogger.Error:
		event, msg = log.Error().Err(err), "Query failed"
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		event, msg = log.Warn().Dur("threshold", l.slowThreshold), "Slow query"
	case l.level >= gormlogger.Info:
		event = log.Debug()
	default:
		return
	}

	sql, rows := fc()
	event.Str("component", "gorm").
		Dur("elapsed", elapsed).
		Int64("rows", rows).
		Str("sql", sql).
		Msg(msg)
}
