package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/recapd/recapd-backend/internal/apperr"
	"github.com/recapd/recapd-backend/internal/services"
)

// respondError maps a service error to its HTTP status and JSON body.
// Wrapped causes are exposed as "message"; NotConfigured failures carry a
// remediation hint.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	body := fiber.Map{
		"error": appErr.Message,
	}
	if appErr.Err != nil {
		body["message"] = appErr.Err.Error()
	}
	if appErr.Kind == apperr.KindNotConfigured {
		body["setupInstructions"] = services.SetupInstructions
	}
	for k, v := range appErr.Details {
		body[k] = v
	}

	return c.Status(appErr.Kind.StatusCode()).JSON(body)
}
