package handlers

import (
	"tokoadmin/internal/middleware"
	"tokoadmin/internal/models"
	"tokoadmin/internal/repositories"
	"tokoadmin/internal/services"
	"tokoadmin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// RestockHandler handles HTTP requests for restock requests.
type RestockHandler struct {
	service  *services.RestockService
	validate *validation.Validator
	perPage  int
}

// NewRestockHandler creates a new RestockHandler.
func NewRestockHandler(service *services.RestockService, perPage int) *RestockHandler {
	return &RestockHandler{
		service:  service,
		validate: validation.New(),
		perPage:  perPage,
	}
}

// RegisterRoutes registers the restock request routes.
func (h *RestockHandler) RegisterRoutes(router fiber.Router) {
	routes := router.Group("/restock-requests")
	routes.Get("/", h.HandleList)
	routes.Get("/:id", h.HandleGet)
	routes.Post("/", h.HandleCreate)

	review := middleware.RequireRole(models.RoleOwner, models.RoleManager)
	routes.Post("/:id/approve", review, h.HandleApprove)
	routes.Post("/:id/reject", review, h.HandleReject)
}

// HandleList returns one page of restock requests, newest first.
func (h *RestockHandler) HandleList(c *fiber.Ctx) error {
	status, err := h.validate.Status(c.Query("status"))
	if err != nil {
		return respondError(c, "list restock requests", err)
	}

	filter := repositories.RestockFilter{Status: status, OutletID: c.Query("outlet_id")}
	page, err := h.service.ListRequests(middleware.ActorFrom(c), filter, c.QueryInt("page", 1), c.QueryInt("per_page", h.perPage))
	if err != nil {
		return respondError(c, "list restock requests", err)
	}
	return c.JSON(page)
}

// HandleGet returns a single restock request.
func (h *RestockHandler) HandleGet(c *fiber.Ctx) error {
	req, err := h.service.GetRequest(middleware.ActorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, "retrieve restock request", err)
	}
	return c.JSON(req)
}

// HandleCreate files a new restock request.
func (h *RestockHandler) HandleCreate(c *fiber.Ctx) error {
	var payload models.CreateRestockPayload
	if err := c.BodyParser(&payload); err != nil {
		return badBody(c, err)
	}
	if res := h.validate.Check(payload); !res.Valid {
		return validationFailed(c, res)
	}

	created, err := h.service.CreateRequest(middleware.ActorFrom(c), payload)
	if err != nil {
		return respondError(c, "create restock request", err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleApprove approves a pending restock request.
func (h *RestockHandler) HandleApprove(c *fiber.Ctx) error {
	updated, err := h.service.ApproveRequest(middleware.ActorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, "approve restock request", err)
	}
	return c.JSON(updated)
}

// HandleReject rejects a pending restock request. The body is optional.
func (h *RestockHandler) HandleReject(c *fiber.Ctx) error {
	var payload models.RejectPayload
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return badBody(c, err)
		}
		if res := h.validate.Check(payload); !res.Valid {
			return validationFailed(c, res)
		}
	}

	updated, err := h.service.RejectRequest(middleware.ActorFrom(c), c.Params("id"), payload.Reason)
	if err != nil {
		return respondError(c, "reject restock request", err)
	}
	return c.JSON(updated)
}
