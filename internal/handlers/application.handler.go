package handlers

import (
	"strings"

	"server/internal/app"
	applicationsController "server/internal/controllers/applications"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/views"

	"github.com/gofiber/fiber/v2"
)

type ApplicationHandler struct {
	Handler
	controller applicationsController.ApplicationController
}

func NewApplicationHandler(app app.App, router fiber.Router) *ApplicationHandler {
	log := logger.New("handlers").File("application_handler")
	return &ApplicationHandler{
		controller: *app.ApplicationController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ApplicationHandler) Register() {
	applications := h.router.Group("/applications")
	applications.Get("/", h.list)
	applications.Post("/", h.create)
	applications.Get("/board", h.board)
	applications.Get("/upcoming", h.upcoming)
	applications.Get("/:id", h.get)
	applications.Put("/:id", h.update)
	applications.Delete("/:id", h.delete)
}

func (h *ApplicationHandler) list(c *fiber.Ctx) error {
	filters := views.Filters{
		Search:        c.Query("search"),
		Status:        c.Query("status"),
		StatusInclude: splitCSV(c.Query("statusInclude")),
		StatusExclude: splitCSV(c.Query("statusExclude")),
		Platform:      c.Query("platform"),
		DateFrom:      c.Query("dateFrom"),
		DateTo:        c.Query("dateTo"),
	}

	return c.JSON(h.controller.List(c.Context(), filters))
}

func (h *ApplicationHandler) board(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"columns": h.controller.Board(c.Context())})
}

func (h *ApplicationHandler) upcoming(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"events": h.controller.Upcoming(c.Context())})
}

func (h *ApplicationHandler) get(c *fiber.Ctx) error {
	app, err := h.controller.Get(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "error", "error": "application not found"})
	}

	return c.JSON(fiber.Map{"message": "success", "application": app})
}

func (h *ApplicationHandler) create(c *fiber.Ctx) error {
	log := h.log.Function("create")

	var app JobApplication
	if err := c.BodyParser(&app); err != nil {
		log.Er("failed to parse application body", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse application"})
	}
	app.ID = ""

	if err := h.controller.Create(c.Context(), &app); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "failed to create application"})
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "application": app})
}

func (h *ApplicationHandler) update(c *fiber.Ctx) error {
	log := h.log.Function("update")

	var app JobApplication
	if err := c.BodyParser(&app); err != nil {
		log.Er("failed to parse application body", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse application"})
	}
	app.ID = c.Params("id")

	existing, err := h.controller.Get(c.Context(), app.ID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "error", "error": "application not found"})
	}
	app.CreatedAt = existing.CreatedAt

	if err := h.controller.Update(c.Context(), &app); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "failed to update application"})
	}

	return c.JSON(fiber.Map{"message": "success", "application": app})
}

func (h *ApplicationHandler) delete(c *fiber.Ctx) error {
	hard := c.QueryBool("hard")

	if err := h.controller.Delete(c.Context(), c.Params("id"), hard); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "failed to delete application"})
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func splitCSV(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
