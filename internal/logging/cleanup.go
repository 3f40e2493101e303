package logging

import (
	"log/slog"
	"time"

	"github.com/macormexico/sistema-pnc/internal/models"
	"gorm.io/gorm"
)

// StartCleanup runs a daily goroutine that deletes system_logs older than retention.
func StartCleanup(db *gorm.DB, retention time.Duration, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n, err := PurgeBefore(db, time.Now().Add(-retention)); err != nil {
					slog.Error("log cleanup failed", "error", err)
				} else if n > 0 {
					slog.Info("log cleanup completed", "deleted", n)
				}
			case <-done:
				return
			}
		}
	}()
}

// PurgeBefore deletes stored logs older than cutoff and returns how many were removed.
func PurgeBefore(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}
