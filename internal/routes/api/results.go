package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/repository"
	"github.com/lk16/reversi/internal/services"
)

// GetResults lists the most recently finished games.
func GetResults(c *fiber.Ctx) error {
	services := c.Locals("services").(*services.Services) //nolint: errcheck

	repo := repository.NewResultRepositoryFromServices(services)
	if repo == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Results archive is not configured",
		})
	}

	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "limit must not be negative",
		})
	}

	results, err := repo.ListResults(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(results)
}
