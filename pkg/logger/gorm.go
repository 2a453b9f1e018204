package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const maxLoggedSQL = 1000

// QueryLogger adapts zap to gormlogger.Interface. Every line carries the
// request id of the HTTP request that issued the query, if any, and the
// SQL verb as "op".
type QueryLogger struct {
	log   *zap.Logger
	slow  time.Duration
	level gormlogger.LogLevel
}

// NewGormLogger returns a QueryLogger writing under the "gorm" logger name.
// Queries slower than slowQuerySeconds are warnings; a zero value disables
// the check. level is the LOG_LEVEL setting: "debug" logs every query.
func NewGormLogger(l *zap.Logger, slowQuerySeconds float64, level string) *QueryLogger {
	return &QueryLogger{
		log:   l.Named("gorm"),
		slow:  time.Duration(slowQuerySeconds * float64(time.Second)),
		level: gormLevel(level),
	}
}

func gormLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// LogMode implements gormlogger.Interface.
func (q *QueryLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *q
	cp.level = level
	return &cp
}

func (q *QueryLogger) Info(ctx context.Context, msg string, data ...any) {
	if q.level >= gormlogger.Info {
		WithContext(ctx, q.log).Sugar().Infof(msg, data...)
	}
}

func (q *QueryLogger) Warn(ctx context.Context, msg string, data ...any) {
	if q.level >= gormlogger.Warn {
		WithContext(ctx, q.log).Sugar().Warnf(msg, data...)
	}
}

func (q *QueryLogger) Error(ctx context.Context, msg string, data ...any) {
	if q.level >= gormlogger.Error {
		WithContext(ctx, q.log).Sugar().Errorf(msg, data...)
	}
}

// Trace logs one executed statement. Failed statements are errors, slow
// ones warnings, and the rest are only logged at debug. A missing record is
// a normal lookup result and never an error.
func (q *QueryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if q.level <= gormlogger.Silent {
		return
	}

	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
	elapsed := time.Since(begin)
	slow := q.slow > 0 && elapsed > q.slow

	switch {
	case failed && q.level >= gormlogger.Error:
		WithContext(ctx, q.log).Error("query failed", append(queryFields(fc, elapsed), zap.Error(err))...)
	case slow && q.level >= gormlogger.Warn:
		WithContext(ctx, q.log).Warn("slow query", append(queryFields(fc, elapsed), zap.Duration("threshold", q.slow))...)
	case q.level >= gormlogger.Info:
		WithContext(ctx, q.log).Debug("query", queryFields(fc, elapsed)...)
	}
}

func queryFields(fc func() (string, int64), elapsed time.Duration) []zap.Field {
	sql, rows := fc()
	fields := []zap.Field{
		zap.String("op", sqlVerb(sql)),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}
	if len(sql) > maxLoggedSQL {
		return append(fields, zap.String("sql", sql[:maxLoggedSQL]+"..."), zap.Bool("sql_truncated", true))
	}
	return append(fields, zap.String("sql", sql))
}

// sqlVerb returns the lower-cased first word of a statement.
func sqlVerb(sql string) string {
	sql = strings.TrimSpace(sql)
	if i := strings.IndexAny(sql, " \t\n("); i > 0 {
		sql = sql[:i]
	}
	return strings.ToLower(sql)
}
