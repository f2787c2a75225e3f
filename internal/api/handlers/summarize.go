package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/recapd/recapd-backend/internal/services"
)

// Summarize generates an AI summary for the posted text and persists it
func Summarize(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Text              string `json:"text"`
			CustomInstruction string `json:"customInstruction"`
			Title             string `json:"title"`
		}

		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		summary, err := svc.Summarizer.Summarize(c.Context(), req.Text, req.CustomInstruction, req.Title)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"summary": summary,
		})
	}
}
