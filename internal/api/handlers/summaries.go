package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/recapd/recapd-backend/internal/services"
)

// ListSummaries returns all stored summaries, newest first
func ListSummaries(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summaries, err := svc.Summary.List(c.Context())
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(fiber.Map{
			"success":   true,
			"summaries": summaries,
		})
	}
}

// GetSummary returns a single summary by id
func GetSummary(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid summary id",
			})
		}

		summary, err := svc.Summary.Get(c.Context(), id)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"summary": summary,
		})
	}
}

// CreateSummary stores a summary provided by the client
func CreateSummary(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Title             string  `json:"title"`
			OriginalText      string  `json:"originalText"`
			CustomInstruction *string `json:"customInstruction"`
			GeneratedSummary  string  `json:"generatedSummary"`
			EditedSummary     string  `json:"editedSummary"`
		}

		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		id, err := svc.Summary.Create(c.Context(), services.CreateSummaryInput{
			Title:             req.Title,
			OriginalText:      req.OriginalText,
			CustomInstruction: req.CustomInstruction,
			GeneratedSummary:  req.GeneratedSummary,
			EditedSummary:     req.EditedSummary,
		})
		if err != nil {
			return respondError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success":   true,
			"message":   "Summary saved successfully",
			"summaryId": id,
		})
	}
}

// UpdateSummary changes the title and/or edited summary of a record.
// Absent JSON fields arrive as nil pointers and leave the column untouched.
func UpdateSummary(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid summary id",
			})
		}

		var req struct {
			Title         *string `json:"title"`
			EditedSummary *string `json:"editedSummary"`
		}

		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		if err := svc.Summary.Update(c.Context(), id, req.Title, req.EditedSummary); err != nil {
			return respondError(c, err)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Summary updated successfully",
		})
	}
}

// DeleteSummary permanently removes a summary and its email logs
func DeleteSummary(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid summary id",
			})
		}

		if err := svc.Summary.Delete(c.Context(), id); err != nil {
			return respondError(c, err)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Summary deleted successfully",
		})
	}
}
