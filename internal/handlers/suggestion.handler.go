package handlers

import (
	"errors"

	"server/internal/app"
	suggestionsController "server/internal/controllers/suggestions"
	"server/internal/handlers/middleware"
	"server/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type SuggestionHandler struct {
	Handler
	controller suggestionsController.SuggestionController
}

func NewSuggestionHandler(app app.App, router fiber.Router) *SuggestionHandler {
	log := logger.New("handlers").File("suggestion_handler")
	return &SuggestionHandler{
		controller: *app.SuggestionController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *SuggestionHandler) Register() {
	suggestions := h.router.Group("/suggestions")
	suggestions.Get("/captcha", h.captcha)
	suggestions.Post("/", h.submit)
}

func (h *SuggestionHandler) captcha(c *fiber.Ctx) error {
	captcha, err := h.controller.IssueCaptcha(c.Context(), middleware.SessionID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "failed to issue captcha"})
	}

	return c.JSON(fiber.Map{"message": "success", "captcha": captcha})
}

func (h *SuggestionHandler) submit(c *fiber.Ctx) error {
	log := h.log.Function("submit")

	var req suggestionsController.SuggestionRequest
	if err := c.BodyParser(&req); err != nil {
		log.Er("failed to parse suggestion body", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse suggestion"})
	}

	err := h.controller.Submit(c.Context(), middleware.SessionID(c), req)

	var validationErr *suggestionsController.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "error", "error": validationErr.Msg})
	case errors.Is(err, suggestionsController.ErrCaptchaFailed):
		return c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"message": "error", "error": "captcha validation failed"})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "failed to submit suggestion"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success"})
}
