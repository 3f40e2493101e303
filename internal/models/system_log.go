package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SystemLog stores ERROR level records so failures can be inspected from the database.
type SystemLog struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Timestamp time.Time      `gorm:"not null;index" json:"timestamp"`
	Level     string         `gorm:"size:10;not null;index" json:"level"`
	Message   string         `gorm:"type:text" json:"message"`
	RequestID string         `gorm:"size:36;index" json:"request_id"`
	UserEmail string         `gorm:"size:255" json:"user_email"`
	Method    string         `gorm:"size:10" json:"method"`
	Path      string         `gorm:"size:255" json:"path"`
	Status    int            `json:"status"`
	Error     string         `gorm:"type:text" json:"error"`
	LatencyMs int            `json:"latency_ms"`
	Extra     datatypes.JSON `json:"extra"`
	CreatedAt time.Time      `json:"created_at"`
}

func (l *SystemLog) BeforeCreate(*gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
