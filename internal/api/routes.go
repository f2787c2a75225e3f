package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/recapd/recapd-backend/internal/api/handlers"
	"github.com/recapd/recapd-backend/internal/services"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, svc *services.Services) {
	api := app.Group("/api")

	// Summary CRUD
	api.Get("/summaries", handlers.ListSummaries(svc))
	api.Get("/summaries/:id", handlers.GetSummary(svc))
	api.Post("/summaries", handlers.CreateSummary(svc))
	api.Put("/summaries/:id", handlers.UpdateSummary(svc))
	api.Delete("/summaries/:id", handlers.DeleteSummary(svc))

	// AI summarization
	api.Post("/summarize", handlers.Summarize(svc))

	// Email sharing
	api.Post("/share", handlers.ShareSummary(svc))
	api.Get("/share/test", handlers.TestShareConfiguration(svc))

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "recapd-backend",
		})
	})
}
