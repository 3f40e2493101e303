package handlers

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/macormexico/sistema-pnc/internal/dto"
	"github.com/macormexico/sistema-pnc/internal/identity"
	"github.com/macormexico/sistema-pnc/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid request body",
		})
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "email and password are required",
		})
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		slog.Error("login failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Internal server error",
		})
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	id, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Success: false, Message: "Unauthorized",
		})
	}

	if err := h.authService.Logout(id.SessionID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to logout",
		})
	}

	return c.JSON(dto.MessageResponse{Success: true, Message: "Logged out successfully"})
}

// Me returns the display data of the signed-in user.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	id, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Success: false, Message: "Unauthorized",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user": dto.SessionUser{
			ID:     id.UserID,
			Nombre: id.Nombre,
			Email:  id.Email,
			Rol:    id.Rol,
		},
	})
}
