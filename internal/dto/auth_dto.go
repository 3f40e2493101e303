package dto

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionUser is the display data the dashboard caches after login.
type SessionUser struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
	Rol    string `json:"rol"`
}

type LoginResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	User      SessionUser `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt int64       `json:"expiresAt"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
	Plugins   int    `json:"plugins"`
}
