package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/macormexico/sistema-pnc/internal/config"
	"github.com/macormexico/sistema-pnc/internal/dto"
	"github.com/macormexico/sistema-pnc/internal/identity"

	jwtware "github.com/gofiber/contrib/jwt"
)

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Success: false,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// SessionValidator reports whether a token's session is still usable.
type SessionValidator interface {
	ValidateSession(sessionID string) error
}

// SessionActive rejects tokens whose session was revoked by logout. It must
// run after JWTProtected.
func SessionActive(sessions SessionValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := identity.FromContext(c)
		if err != nil || id.SessionID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Success: false, Message: "Unauthorized",
			})
		}
		if err := sessions.ValidateSession(id.SessionID); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Success: false, Message: "Unauthorized: session ended",
			})
		}
		c.Locals("user_email", id.Email)
		return c.Next()
	}
}
