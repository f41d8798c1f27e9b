package handlers

import (
	"errors"
	"log"

	"tokoadmin/internal/repositories"
	"tokoadmin/internal/services"
	"tokoadmin/internal/validation"
	"tokoadmin/internal/workflow"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors to the API's JSON error bodies.
func respondError(c *fiber.Ctx, action string, err error) error {
	var verr *validation.ValidationError
	var ite *workflow.InvalidTransitionError

	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  verr.Fields,
		})
	case errors.As(err, &ite):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": ite.Error(),
			"status":  ite.From,
		})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Forbidden",
			"error":   err.Error(),
		})
	}

	log.Printf("Error %s: %v", action, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not " + action,
		"error":   err.Error(),
	})
}

// validationFailed renders a validator Result as a 422 response.
func validationFailed(c *fiber.Ctx, res validation.Result) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  res.Errors,
	})
}

func badBody(c *fiber.Ctx, err error) error {
	log.Printf("Error parsing request body: %v", err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}
