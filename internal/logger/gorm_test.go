package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func query() (string, int64) { return "SELECT 1", 1 }

func TestGormTrace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g := NewGorm(zap.New(core), gormlogger.Warn)
	ctx := context.Background()

	g.Trace(ctx, time.Now(), query, nil)
	if logs.Len() != 0 {
		t.Errorf("fast query should not be logged at warn level, got %d entries", logs.Len())
	}

	g.Trace(ctx, time.Now(), query, gorm.ErrRecordNotFound)
	if logs.Len() != 0 {
		t.Error("record not found is not a failure")
	}

	g.Trace(ctx, time.Now(), query, errors.New("no such table"))
	failed := logs.FilterMessage("query failed").All()
	if len(failed) != 1 || failed[0].Level != zapcore.ErrorLevel {
		t.Fatalf("expected one error entry, got %+v", logs.All())
	}
	if failed[0].ContextMap()["sql"] != "SELECT 1" {
		t.Errorf("expected sql field, got %v", failed[0].ContextMap())
	}

	g.Trace(ctx, time.Now().Add(-time.Second), query, nil)
	if logs.FilterMessage("slow query").Len() != 1 {
		t.Error("expected slow query warning")
	}
}

func TestGormLogMode(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g := NewGorm(zap.New(core), gormlogger.Warn)

	g.LogMode(gormlogger.Silent).Error(context.Background(), "boom %d", 1)
	if logs.Len() != 0 {
		t.Error("silent mode should drop everything")
	}

	g.Info(context.Background(), "hidden")
	g.LogMode(gormlogger.Info).Info(context.Background(), "migrated %s", "users")
	entries := logs.All()
	if len(entries) != 1 || entries[0].Message != "migrated users" {
		t.Errorf("unexpected entries %+v", entries)
	}
}
