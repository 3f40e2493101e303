// Package server assembles the fiber application: global middleware, the
// auth routes and every registered plugin.
package server

import (
	"errors"
	"log/slog"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/macormexico/sistema-pnc/internal/apps"
	"github.com/macormexico/sistema-pnc/internal/config"
	"github.com/macormexico/sistema-pnc/internal/dto"
	"github.com/macormexico/sistema-pnc/internal/handlers"
	"github.com/macormexico/sistema-pnc/internal/middleware"
	"github.com/macormexico/sistema-pnc/internal/routes"
	"github.com/macormexico/sistema-pnc/internal/services"
	"gorm.io/gorm"
)

// New builds the HTTP application. db must already be migrated.
func New(cfg *config.Config, db *gorm.DB, authService *services.AuthService, plugins []apps.Plugin) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: errorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.ErrorLog())

	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(db, len(plugins))
	routes.Setup(app, cfg, db, authService, authHandler, healthHandler, plugins)

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{Success: false, Message: message})
}
