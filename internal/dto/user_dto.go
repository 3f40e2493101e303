package dto

import "github.com/macormexico/sistema-pnc/internal/models"

type CreateUserRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Rol      string `json:"rol"`
	Telefono string `json:"telefono,omitempty"`
}

// UpdateUserRequest replaces the profile; an empty password keeps the current one.
type UpdateUserRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Rol      string `json:"rol"`
	Telefono string `json:"telefono,omitempty"`
}

type UserListResponse struct {
	Success bool          `json:"success"`
	Users   []models.User `json:"users"`
}

type UserResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
}
