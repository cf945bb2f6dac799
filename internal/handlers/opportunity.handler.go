package handlers

import (
	"server/internal/app"
	opportunitiesController "server/internal/controllers/opportunities"
	"server/internal/logger"
	. "server/internal/models"

	"github.com/gofiber/fiber/v2"
)

type OpportunityHandler struct {
	Handler
	controller opportunitiesController.OpportunityController
}

func NewOpportunityHandler(app app.App, router fiber.Router) *OpportunityHandler {
	log := logger.New("handlers").File("opportunity_handler")
	return &OpportunityHandler{
		controller: *app.OpportunityController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *OpportunityHandler) Register() {
	opportunities := h.router.Group("/opportunities")
	opportunities.Get("/", h.list)
	opportunities.Post("/", h.create)
	// Same pipeline as the manual form; the extension posts here.
	opportunities.Post("/capture", h.create)
	opportunities.Post("/:id/convert", h.convert)
	opportunities.Delete("/:id", h.delete)
}

func (h *OpportunityHandler) list(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"opportunities": h.controller.List(c.Context())})
}

func (h *OpportunityHandler) create(c *fiber.Ctx) error {
	log := h.log.Function("create")

	var opp JobOpportunity
	if err := c.BodyParser(&opp); err != nil {
		log.Er("failed to parse opportunity body", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse opportunity"})
	}
	opp.ID = ""

	if err := h.controller.Create(c.Context(), &opp); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "failed to create opportunity"})
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "opportunity": opp})
}

func (h *OpportunityHandler) convert(c *fiber.Ctx) error {
	app, err := h.controller.Convert(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "error", "error": "failed to convert opportunity"})
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "application": app})
}

func (h *OpportunityHandler) delete(c *fiber.Ctx) error {
	if err := h.controller.Delete(c.Context(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "failed to delete opportunity"})
	}

	return c.JSON(fiber.Map{"message": "success"})
}
