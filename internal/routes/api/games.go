package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/session"
)

func getController(c *fiber.Ctx) *game.Controller {
	return c.Locals("controller").(*game.Controller) //nolint: errcheck
}

// errorStatus maps game errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, session.ErrBusy), errors.Is(err, session.ErrGameOver), errors.Is(err, session.ErrNotYourTurn):
		return fiber.StatusConflict
	case errors.Is(err, othello.ErrIllegalMove), errors.Is(err, session.ErrNoCPU):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func parseGameID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, errors.New("invalid game id")
	}
	return id, nil
}

// CreateGame starts a new game.
func CreateGame(c *fiber.Ctx) error {
	var req models.NewGameRequest

	// An empty body starts a game with default options.
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}

	options, err := req.Options()
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err)
	}

	s, steps, err := getController(c).NewGame(c.Context(), options)
	if err != nil {
		return errorResponse(c, errorStatus(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.NewGameResponse(s, steps))
}

// GetGame returns the state of a game.
func GetGame(c *fiber.Ctx) error {
	id, err := parseGameID(c)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err)
	}

	s, err := getController(c).Game(c.Context(), id)
	if err != nil {
		return errorResponse(c, errorStatus(err), err)
	}

	return c.Status(fiber.StatusOK).JSON(models.NewGameView(s))
}

// PlayMove plays a human move, followed by the computer's reply if there is one.
func PlayMove(c *fiber.Ctx) error {
	id, err := parseGameID(c)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err)
	}

	var req models.MoveRequest
	if err = c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	move, err := req.ParseMove()
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err)
	}

	s, steps, err := getController(c).Move(c.Context(), id, move)
	if err != nil {
		return errorResponse(c, errorStatus(err), err)
	}

	return c.Status(fiber.StatusOK).JSON(models.NewGameResponse(s, steps))
}

// PlayCPUMove lets the computer play a move for the player to move.
func PlayCPUMove(c *fiber.Ctx) error {
	id, err := parseGameID(c)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err)
	}

	s, steps, err := getController(c).CPUMove(c.Context(), id)
	if err != nil {
		return errorResponse(c, errorStatus(err), err)
	}

	return c.Status(fiber.StatusOK).JSON(models.NewGameResponse(s, steps))
}
