package models

import "time"

// Session records an issued access token so it can be revoked on logout.
// ID is the token's jti claim.
type Session struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;index" json:"userId"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expiresAt"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Session) Active(now time.Time) bool {
	return !s.Revoked && now.Before(s.ExpiresAt)
}
