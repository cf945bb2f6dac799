package handlers

import (
	"server/internal/app"
	preferencesController "server/internal/controllers/preferences"
	"server/internal/logger"
	. "server/internal/models"

	"github.com/gofiber/fiber/v2"
)

type PreferencesHandler struct {
	Handler
	controller preferencesController.PreferencesController
}

func NewPreferencesHandler(app app.App, router fiber.Router) *PreferencesHandler {
	log := logger.New("handlers").File("preferences_handler")
	return &PreferencesHandler{
		controller: *app.PreferencesController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *PreferencesHandler) Register() {
	preferences := h.router.Group("/preferences")
	preferences.Get("/", h.get)
	preferences.Put("/", h.update)
}

func (h *PreferencesHandler) get(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "success", "preferences": h.controller.Get(c.Context())})
}

func (h *PreferencesHandler) update(c *fiber.Ctx) error {
	log := h.log.Function("update")

	var prefs UserPreferences
	if err := c.BodyParser(&prefs); err != nil {
		log.Er("failed to parse preferences body", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse preferences"})
	}

	saved, err := h.controller.Update(c.Context(), prefs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "failed to save preferences"})
	}

	return c.JSON(fiber.Map{"message": "success", "preferences": saved})
}
