package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles a dashboard user can hold.
const (
	RoleUsuario   = "usuario"
	RoleModerador = "moderador"
	RoleAdmin     = "admin"
)

// ValidRole reports whether r is one of the recognised roles.
func ValidRole(r string) bool {
	switch r {
	case RoleUsuario, RoleModerador, RoleAdmin:
		return true
	}
	return false
}

// User is a person that can sign in to the dashboard.
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Nombre    string    `gorm:"size:255;not null" json:"nombre"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Rol       string    `gorm:"size:20;default:'usuario'" json:"rol"`
	Telefono  string    `gorm:"size:50" json:"telefono,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
