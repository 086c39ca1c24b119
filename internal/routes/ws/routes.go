package ws

import (
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/ws"
)

func handleWs(c *websocket.Conn) {
	controller := c.Locals("controller").(*game.Controller) //nolint: errcheck

	h := ws.NewHandler(c, controller)
	err := h.Handle()
	if err != nil {
		slog.Error("ws handle error", "error", err)
	}
}

// upgradeRequired rejects plain HTTP requests to the websocket endpoint.
func upgradeRequired(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// SetupRoutes sets up the routes for the websocket.
func SetupRoutes(app *fiber.App) {
	app.Get("/ws", upgradeRequired, websocket.New(handleWs))
}
