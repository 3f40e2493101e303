package apps

import (
	"github.com/gofiber/fiber/v2"
	"github.com/macormexico/sistema-pnc/internal/config"
	"gorm.io/gorm"
)

// Guard carries the middleware chains plugins attach to their routes.
type Guard struct {
	// Auth validates the bearer token and its server-side session.
	Auth []fiber.Handler
	// Admin additionally requires the admin role. Use after Auth.
	Admin fiber.Handler
}

// Protect returns Auth followed by handlers.
func (g Guard) Protect(handlers ...fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(g.Auth)+len(handlers))
	out = append(out, g.Auth...)
	return append(out, handlers...)
}

// ProtectAdmin returns Auth, Admin and then handlers.
func (g Guard) ProtectAdmin(handlers ...fiber.Handler) []fiber.Handler {
	return g.Protect(append([]fiber.Handler{g.Admin}, handlers...)...)
}

// Plugin defines the interface every app must implement.
type Plugin interface {
	// ID returns the unique app identifier.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts app routes on the /api group. Routes that need
	// a signed-in user wrap their handlers with guard.
	RegisterRoutes(api fiber.Router, db *gorm.DB, cfg *config.Config, guard Guard)
}
