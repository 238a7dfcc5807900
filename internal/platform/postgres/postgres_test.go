package postgres

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestConnectOptionalWithoutDSN(t *testing.T) {
	var logs bytes.Buffer
	db, cleanup := ConnectOptional(context.Background(), Options{Logger: slog.New(slog.NewTextHandler(&logs, nil))})
	require.NotNil(t, cleanup)
	cleanup()
	assert.Nil(t, db)
	assert.Contains(t, logs.String(), "in-memory repositories")
}

func TestConnectRejectsEmptyDSN(t *testing.T) {
	_, err := Connect(context.Background(), Options{DSN: "  "})
	assert.Error(t, err)
}

func TestGormLoggerTrace(t *testing.T) {
	var logs bytes.Buffer
	logger := newGormLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})), 100*time.Millisecond)
	query := func() (string, int64) { return "SELECT 1", 1 }

	logger.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
	assert.Empty(t, logs.String())

	logger.Trace(context.Background(), time.Now(), query, errors.New("relation missing"))
	assert.Contains(t, logs.String(), "query failed")
	assert.Contains(t, logs.String(), "relation missing")

	logs.Reset()
	logger.Trace(context.Background(), time.Now().Add(-time.Second), query, nil)
	assert.Contains(t, logs.String(), "slow query")

	logs.Reset()
	logger.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now().Add(-time.Second), query, errors.New("x"))
	assert.Empty(t, logs.String())
}
