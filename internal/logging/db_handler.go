package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/macormexico/sistema-pnc/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const batchSize = 50

// DBHandler is an slog.Handler that batches ERROR+ logs into the system_logs table.
type DBHandler struct {
	sink  *dbSink
	attrs []slog.Attr
}

type dbSink struct {
	db     *gorm.DB
	mu     sync.Mutex
	buffer []models.SystemLog
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

func NewDBHandler(db *gorm.DB, interval time.Duration) *DBHandler {
	s := &dbSink{
		db:     db,
		buffer: make([]models.SystemLog, 0, batchSize),
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	s.wg.Add(1)
	go s.flushLoop()
	return &DBHandler{sink: s}
}

func (s *dbSink) flushLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ticker.C:
			s.flush()
		case <-s.done:
			s.flush()
			return
		}
	}
}

func (s *dbSink) flush() {
	s.mu.Lock()
	if len(s.buffer) == 0 {
		s.mu.Unlock()
		return
	}
	batch := s.buffer
	s.buffer = make([]models.SystemLog, 0, batchSize)
	s.mu.Unlock()

	if err := s.db.CreateInBatches(batch, batchSize).Error; err != nil {
		// WARN keeps the failure out of this handler.
		slog.Warn("failed to flush system logs to DB", "error", err, "count", len(batch))
	}
}

// Flush writes any buffered records immediately.
func (h *DBHandler) Flush() {
	h.sink.flush()
}

// Stop flushes the buffer and stops the background loop. Safe to call twice.
func (h *DBHandler) Stop() {
	h.sink.once.Do(func() {
		h.sink.ticker.Stop()
		close(h.sink.done)
	})
	h.sink.wg.Wait()
}

// Enabled only handles ERROR and above.
func (h *DBHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *DBHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]interface{})
	apply := func(a slog.Attr) bool {
		switch a.Key {
		case "request_id":
			entry.RequestID = a.Value.String()
		case "user_email":
			entry.UserEmail = a.Value.String()
		case "method":
			entry.Method = a.Value.String()
		case "path":
			entry.Path = a.Value.String()
		case "status":
			entry.Status = int(a.Value.Int64())
		case "error":
			entry.Error = a.Value.String()
		case "latency_ms":
			switch v := a.Value.Any().(type) {
			case float64:
				entry.LatencyMs = int(math.Round(v))
			case int64:
				entry.LatencyMs = int(v)
			}
		default:
			extra[a.Key] = a.Value.Any()
		}
		return true
	}
	for _, a := range h.attrs {
		apply(a)
	}
	record.Attrs(apply)

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	h.sink.mu.Lock()
	h.sink.buffer = append(h.sink.buffer, entry)
	needFlush := len(h.sink.buffer) >= batchSize
	h.sink.mu.Unlock()

	if needFlush {
		go h.sink.flush()
	}
	return nil
}

func (h *DBHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &DBHandler{sink: h.sink, attrs: merged}
}

func (h *DBHandler) WithGroup(string) slog.Handler {
	return h
}
