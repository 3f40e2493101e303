package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/macormexico/sistema-pnc/internal/config"
	"github.com/macormexico/sistema-pnc/internal/dto"
	"github.com/macormexico/sistema-pnc/internal/identity"
	"github.com/macormexico/sistema-pnc/internal/models"
	"gorm.io/gorm"
)

// AdminRequired allows a request when:
// 1. the token email is listed in ADMIN_EMAILS, or
// 2. the stored user currently has the admin role.
//
// The role is read from the database so a demotion takes effect before the
// token expires.
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)

	return func(c *fiber.Ctx) error {
		id, err := identity.FromContext(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Success: false, Message: "Unauthorized",
			})
		}

		if contains(adminEmails, strings.ToLower(id.Email)) {
			return c.Next()
		}

		var user models.User
		if err := db.Select("id", "rol").First(&user, "id = ?", id.UserID).Error; err == nil {
			if user.Rol == models.RoleAdmin {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Success: false, Message: "Admin access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.ToLower(strings.TrimSpace(p))
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
