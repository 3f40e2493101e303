package dae

import (
	"github.com/gofiber/fiber/v2"
	"github.com/macormexico/sistema-pnc/internal/apps"
	"github.com/macormexico/sistema-pnc/internal/config"
	"gorm.io/gorm"
)

// Plugin serves catalog and user management under /api/dae.
type Plugin struct {
	sessions SessionRevoker
}

// New builds the plugin. sessions may be nil.
func New(sessions SessionRevoker) *Plugin {
	return &Plugin{sessions: sessions}
}

func (p *Plugin) ID() string { return "dae" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{&CatalogItem{}}
}

func (p *Plugin) RegisterRoutes(api fiber.Router, db *gorm.DB, _ *config.Config, guard apps.Guard) {
	catalogs := NewCatalogHandler(NewCatalogService(db))
	users := NewUserHandler(NewUserService(db, p.sessions))

	// Per-route guards: /dae/login shares the prefix and stays public.
	api.Get("/dae/catalogs", guard.Protect(catalogs.List)...)
	api.Post("/dae/catalogs", guard.Protect(catalogs.Create)...)
	api.Delete("/dae/catalogs/:id", guard.Protect(catalogs.Delete)...)

	api.Get("/dae/users", guard.Protect(users.List)...)
	api.Post("/dae/users", guard.ProtectAdmin(users.Create)...)
	api.Put("/dae/users/:id", guard.ProtectAdmin(users.Update)...)
	api.Delete("/dae/users/:id", guard.ProtectAdmin(users.Delete)...)
}
