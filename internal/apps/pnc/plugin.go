package pnc

import (
	"github.com/gofiber/fiber/v2"
	"github.com/macormexico/sistema-pnc/internal/apps"
	"github.com/macormexico/sistema-pnc/internal/config"
	"github.com/macormexico/sistema-pnc/internal/pdfform"
	"gorm.io/gorm"
)

// Plugin serves the Non-Conforming Product reports under /api/pnc.
type Plugin struct {
	archive Archiver
}

// New builds the plugin. archive may be nil.
func New(archive Archiver) *Plugin {
	return &Plugin{archive: archive}
}

func (p *Plugin) ID() string { return "pnc" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{&Report{}}
}

func (p *Plugin) RegisterRoutes(api fiber.Router, db *gorm.DB, _ *config.Config, guard apps.Guard) {
	reports := NewReportService(db)
	export := NewExportService(reports, pdfform.NewRenderer(pdfform.Standard()), p.archive)
	h := NewReportHandler(reports, export)

	g := api.Group("/pnc", guard.Auth...)

	// Fixed paths first so they are not captured by /:id.
	g.Get("/metrics", h.Metrics)
	g.Get("/summary", h.Summary)
	g.Get("/export/xlsx", h.XLSX)
	g.Post("/export/pdf", h.BundlePDF)

	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Get("/:id", h.Get)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
	g.Get("/:id/pdf", h.PDF)
}
