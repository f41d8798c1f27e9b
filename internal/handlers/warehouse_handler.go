package handlers

import (
	"tokoadmin/internal/middleware"
	"tokoadmin/internal/models"
	"tokoadmin/internal/services"
	"tokoadmin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// WarehouseHandler handles HTTP requests for warehouses and outlets.
type WarehouseHandler struct {
	service  *services.WarehouseService
	validate *validation.Validator
}

// NewWarehouseHandler creates a new WarehouseHandler.
func NewWarehouseHandler(service *services.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{service: service, validate: validation.New()}
}

// RegisterRoutes registers the warehouse routes.
func (h *WarehouseHandler) RegisterRoutes(router fiber.Router) {
	routes := router.Group("/warehouses")
	routes.Get("/", h.HandleList)
	routes.Post("/", h.HandleCreate)
	routes.Get("/:id/stocks", h.HandleStocks)
}

func (h *WarehouseHandler) HandleList(c *fiber.Ctx) error {
	warehouses, err := h.service.ListWarehouses()
	if err != nil {
		return respondError(c, "retrieve warehouses", err)
	}
	return c.JSON(fiber.Map{"data": warehouses})
}

func (h *WarehouseHandler) HandleCreate(c *fiber.Ctx) error {
	var w models.Warehouse
	if err := c.BodyParser(&w); err != nil {
		return badBody(c, err)
	}
	w.ID = ""
	if res := h.validate.Check(w); !res.Valid {
		return validationFailed(c, res)
	}
	if err := h.service.CreateWarehouse(middleware.ActorFrom(c), &w); err != nil {
		return respondError(c, "create warehouse", err)
	}
	return c.Status(fiber.StatusCreated).JSON(w)
}

func (h *WarehouseHandler) HandleStocks(c *fiber.Ctx) error {
	stocks, err := h.service.Stocks(middleware.ActorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, "retrieve stocks", err)
	}
	return c.JSON(fiber.Map{"data": stocks})
}
