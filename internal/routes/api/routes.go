package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/middleware"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(app *fiber.App) {
	apiGroup := app.Group("/api")

	// Game routes
	apiGroup.Post("/games", CreateGame)
	apiGroup.Get("/games/:id", GetGame)
	apiGroup.Post("/games/:id/moves", PlayMove)
	apiGroup.Post("/games/:id/cpu", PlayCPUMove)

	// Result routes
	apiGroup.Get("/results", middleware.AuthOrToken(), GetResults)
}
