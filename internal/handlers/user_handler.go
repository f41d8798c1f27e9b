package handlers

import (
	"tokoadmin/internal/middleware"
	"tokoadmin/internal/models"
	"tokoadmin/internal/services"
	"tokoadmin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// UserHandler lets owners manage back-office accounts.
type UserHandler struct {
	authService *services.AuthService
	validate    *validation.Validator
	perPage     int
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService, perPage int) *UserHandler {
	return &UserHandler{authService: authService, validate: validation.New(), perPage: perPage}
}

// RegisterRoutes registers the owner-only user routes.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	routes := router.Group("/users", middleware.RequireRole(models.RoleOwner))
	routes.Get("/", h.HandleList)
	routes.Post("/", h.HandleCreate)
}

func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	page, err := h.authService.ListUsers(middleware.ActorFrom(c), c.QueryInt("page", 1), c.QueryInt("per_page", h.perPage))
	if err != nil {
		return respondError(c, "retrieve users", err)
	}
	return c.JSON(page)
}

// HandleCreate creates an account with any role.
func (h *UserHandler) HandleCreate(c *fiber.Ctx) error {
	var draft validation.UserDraft
	if err := c.BodyParser(&draft); err != nil {
		return badBody(c, err)
	}
	user, err := h.validate.User(draft)
	if err != nil {
		return respondError(c, "create user", err)
	}

	if err := h.authService.CreateUser(middleware.ActorFrom(c), &user); err != nil {
		return registrationFailed(c, err)
	}
	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(user)
}
