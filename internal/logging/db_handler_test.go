package logging

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/macormexico/sistema-pnc/internal/models"
	"github.com/macormexico/sistema-pnc/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBHandlerStoresErrorsOnly(t *testing.T) {
	db := testutil.NewDB(t)
	h := NewDBHandler(db, time.Hour)
	defer h.Stop()

	logger := slog.New(h).With("request_id", "req-1")
	logger.Info("ignored")
	logger.Error("report save failed",
		"path", "/api/pnc",
		"method", "POST",
		"status", 500,
		"error", "boom",
		"folio", "F-001",
	)
	h.Flush()

	var logs []models.SystemLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)

	got := logs[0]
	assert.Equal(t, "ERROR", got.Level)
	assert.Equal(t, "report save failed", got.Message)
	assert.Equal(t, "req-1", got.RequestID)
	assert.Equal(t, "/api/pnc", got.Path)
	assert.Equal(t, "POST", got.Method)
	assert.Equal(t, 500, got.Status)
	assert.Equal(t, "boom", got.Error)
	assert.JSONEq(t, `{"folio":"F-001"}`, string(got.Extra))
}

func TestDBHandlerStopFlushes(t *testing.T) {
	db := testutil.NewDB(t)
	h := NewDBHandler(db, time.Hour)

	require.NoError(t, h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelError, "late", 0)))
	h.Stop()
	h.Stop()

	var count int64
	require.NoError(t, db.Model(&models.SystemLog{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestPurgeBefore(t *testing.T) {
	db := testutil.NewDB(t)
	now := time.Now().UTC()
	require.NoError(t, db.Create(&[]models.SystemLog{
		{Timestamp: now.Add(-48 * time.Hour), Level: "ERROR", Message: "old"},
		{Timestamp: now, Level: "ERROR", Message: "new"},
	}).Error)

	n, err := PurgeBefore(db, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

type countingHandler struct {
	level slog.Level
	seen  int
}

func (c *countingHandler) Enabled(_ context.Context, l slog.Level) bool { return l >= c.level }

func (c *countingHandler) Handle(context.Context, slog.Record) error {
	c.seen++
	return nil
}

func (c *countingHandler) WithAttrs([]slog.Attr) slog.Handler { return c }

func (c *countingHandler) WithGroup(string) slog.Handler { return c }

func TestMultiHandlerRoutesByLevel(t *testing.T) {
	info := &countingHandler{level: slog.LevelInfo}
	errs := &countingHandler{level: slog.LevelError}
	logger := slog.New(NewMultiHandler(info, errs))

	logger.Info("hello")
	logger.Error("bad")

	assert.Equal(t, 2, info.seen)
	assert.Equal(t, 1, errs.seen)
}
