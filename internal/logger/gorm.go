package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Gorm sends gorm's query and driver logs to zap.
type Gorm struct {
	log           *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

var _ gormlogger.Interface = (*Gorm)(nil)

func NewGorm(log *zap.Logger, level gormlogger.LogLevel) *Gorm {
	return &Gorm{
		log:           log.WithOptions(zap.AddCallerSkip(3)).Named("gorm"),
		level:         level,
		slowThreshold: 200 * time.Millisecond,
	}
}

func (g *Gorm) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *g
	clone.level = level
	return &clone
}

func (g *Gorm) Info(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Info {
		g.log.Info(fmt.Sprintf(msg, args...))
	}
}

func (g *Gorm) Warn(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Warn {
		g.log.Warn(fmt.Sprintf(msg, args...))
	}
}

func (g *Gorm) Error(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Error {
		g.log.Error(fmt.Sprintf(msg, args...))
	}
}

// Trace logs failed queries at error, slow ones at warn and the rest at
// debug when the level is Info.
func (g *Gorm) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	fields := func() []zap.Field {
		sql, rows := fc()
		return []zap.Field{
			zap.String("sql", sql),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed),
		}
	}

	switch {
	case err != nil && g.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		g.log.Error("query failed", append(fields(), zap.Error(err))...)
	case elapsed > g.slowThreshold && g.level >= gormlogger.Warn:
		g.log.Warn("slow query", fields()...)
	case g.level >= gormlogger.Info:
		g.log.Debug("query", fields()...)
	}
}
