// Package identity reads the signed-in user from request locals set by the
// JWT middleware.
package identity

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var ErrNoIdentity = errors.New("invalid token in context")

// Identity is the typed view of the access token claims.
type Identity struct {
	UserID    string
	Email     string
	Nombre    string
	Rol       string
	SessionID string
}

func (i Identity) IsAdmin() bool {
	return i.Rol == "admin"
}

// FromContext extracts the claims stored under the "user" local.
func FromContext(c *fiber.Ctx) (Identity, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return Identity{}, ErrNoIdentity
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("invalid claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Identity{}, errors.New("missing sub claim")
	}

	id := Identity{UserID: sub}
	id.Email, _ = claims["email"].(string)
	id.Nombre, _ = claims["nombre"].(string)
	id.Rol, _ = claims["rol"].(string)
	id.SessionID, _ = claims["jti"].(string)
	return id, nil
}
