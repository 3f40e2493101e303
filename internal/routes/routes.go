package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/macormexico/sistema-pnc/internal/apps"
	"github.com/macormexico/sistema-pnc/internal/config"
	"github.com/macormexico/sistema-pnc/internal/handlers"
	"github.com/macormexico/sistema-pnc/internal/middleware"
	"github.com/macormexico/sistema-pnc/internal/services"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	plugins []apps.Plugin,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Login: 10 req/min per IP (stricter)
	api.Post("/dae/login", limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many login attempts, try again later",
			})
		},
	}), authHandler.Login)

	guard := apps.Guard{
		Auth: []fiber.Handler{
			middleware.JWTProtected(cfg),
			middleware.SessionActive(authService),
		},
		Admin: middleware.AdminRequired(db, cfg),
	}

	api.Post("/dae/logout", guard.Protect(authHandler.Logout)...)
	api.Get("/dae/me", guard.Protect(authHandler.Me)...)

	for _, p := range plugins {
		p.RegisterRoutes(api, db, cfg, guard)
	}
}
