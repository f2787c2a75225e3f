package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/recapd/recapd-backend/internal/services"
)

// ShareSummary emails summary content to a list of recipients
func ShareSummary(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			SummaryID      *int     `json:"summaryId"`
			Recipients     []string `json:"recipients"`
			Subject        string   `json:"subject"`
			Message        string   `json:"message"`
			SummaryContent string   `json:"summaryContent"`
		}

		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		result, err := svc.Share.Share(c.Context(), services.ShareInput{
			SummaryID:      req.SummaryID,
			Recipients:     req.Recipients,
			Subject:        req.Subject,
			Message:        req.Message,
			SummaryContent: req.SummaryContent,
		})
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(fiber.Map{
			"success":    true,
			"message":    "Summary shared successfully",
			"messageId":  result.MessageID,
			"recipients": result.Recipients,
		})
	}
}

// TestShareConfiguration verifies SMTP credentials without sending mail
func TestShareConfiguration(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Share.TestConfiguration(c.Context()); err != nil {
			return respondError(c, err)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Email configuration is valid",
		})
	}
}
