package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/models"
)

const (
	requestTimeout = 30 * time.Second
)

// Connection is the part of a websocket connection used by Handler.
type Connection interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
}

type Handler struct {
	controller *game.Controller
	ws         Connection
}

// NewHandler creates a new Handler.
func NewHandler(ws Connection, controller *game.Controller) *Handler {
	return &Handler{controller: controller, ws: ws}
}

func (h *Handler) readMessage() (*Incoming, error) {
	var req Incoming

	msgType, msg, err := h.ws.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("ws read error: %w", err)
	}

	slog.Debug("read ws message", "msgType", msgType, "msg", string(msg))

	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("unexpected message type: %d", msgType)
	}

	if err = json.Unmarshal(msg, &req); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return &req, nil
}

func (h *Handler) writeMessage(outgoing *Outgoing) error {
	msg, err := json.Marshal(outgoing)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	slog.Debug("write ws message", "msg", string(msg))

	if err = h.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

func (h *Handler) handleMessage(ctx context.Context, req *Incoming) (any, error) {
	if req.Event == "" {
		return nil, errors.New("event field is either empty or missing")
	}

	switch req.Event {
	case "new_game":
		return h.handleNewGame(ctx, req)
	case "get_game":
		return h.handleGetGame(ctx, req)
	case "move":
		return h.handleMove(ctx, req)
	case "cpu_move":
		return h.handleCPUMove(ctx, req)
	default:
		return nil, fmt.Errorf("unknown event: %s", req.Event)
	}
}

// reply handles a message and creates the reply. Failures are reported to the client.
func (h *Handler) reply(req *Incoming) *Outgoing {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	data, err := h.handleMessage(ctx, req)
	if err != nil {
		slog.Debug("ws request failed", "event", req.Event, "id", req.ID, "error", err)
		return &Outgoing{ID: req.ID, Error: err.Error()}
	}

	return &Outgoing{ID: req.ID, Data: data}
}

// Handle handles the websocket connection until it is closed or sends something that is not a message.
func (h *Handler) Handle() error {
	for {
		req, err := h.readMessage()
		if err != nil {
			return fmt.Errorf("ws read error: %w", err)
		}

		if err = h.writeMessage(h.reply(req)); err != nil {
			return fmt.Errorf("ws write error: %w", err)
		}
	}
}

func (h *Handler) handleNewGame(ctx context.Context, req *Incoming) (any, error) {
	var reqData models.NewGameRequest
	if len(req.Data) > 0 {
		if err := json.Unmarshal(req.Data, &reqData); err != nil {
			return nil, fmt.Errorf("ws new game request unmarshal error: %w", err)
		}
	}

	options, err := reqData.Options()
	if err != nil {
		return nil, err
	}

	s, steps, err := h.controller.NewGame(ctx, options)
	if err != nil {
		return nil, err
	}

	return models.NewGameResponse(s, steps), nil
}

func (h *Handler) handleGetGame(ctx context.Context, req *Incoming) (any, error) {
	var reqData models.GameRequest
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		return nil, fmt.Errorf("ws get game request unmarshal error: %w", err)
	}

	s, err := h.controller.Game(ctx, reqData.ID)
	if err != nil {
		return nil, err
	}

	return models.NewGameView(s), nil
}

func (h *Handler) handleMove(ctx context.Context, req *Incoming) (any, error) {
	var reqData models.GameMoveRequest
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		return nil, fmt.Errorf("ws move request unmarshal error: %w", err)
	}

	move, err := reqData.ParseMove()
	if err != nil {
		return nil, err
	}

	s, steps, err := h.controller.Move(ctx, reqData.ID, move)
	if err != nil {
		return nil, err
	}

	return models.NewGameResponse(s, steps), nil
}

func (h *Handler) handleCPUMove(ctx context.Context, req *Incoming) (any, error) {
	var reqData models.GameRequest
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		return nil, fmt.Errorf("ws cpu move request unmarshal error: %w", err)
	}

	s, steps, err := h.controller.CPUMove(ctx, reqData.ID)
	if err != nil {
		return nil, err
	}

	return models.NewGameResponse(s, steps), nil
}
