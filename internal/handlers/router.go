package handlers

import (
	"server/internal/app"
	"server/internal/handlers/middleware"
	"server/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	setupWebSocketRoute(router, app)

	api := router.Group("/api")
	api.Use(app.Middleware.RequestLogger())
	api.Use(app.Middleware.EnsureSession())

	HealthHandler(api, app)
	NewApplicationHandler(*app, api).Register()
	NewOpportunityHandler(*app, api).Register()
	NewPreferencesHandler(*app, api).Register()
	NewSuggestionHandler(*app, api).Register()

	return nil
}

func setupWebSocketRoute(router fiber.Router, app *app.App) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/ws", websocket.New(func(c *websocket.Conn) {
		app.Websocket.HandleWebSocket(c)
	}))
}
