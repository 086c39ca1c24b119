package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/session"
)

// SessionStore loads and saves game sessions.
type SessionStore interface {
	Load(ctx context.Context, id uuid.UUID) (*session.Session, error)
	Save(ctx context.Context, s *session.Session) error

	// Lock acquires exclusive access to a session until the returned function is called.
	Lock(ctx context.Context, id uuid.UUID) (func(), error)
}

// ResultArchive stores results of finished games.
type ResultArchive interface {
	SaveResult(ctx context.Context, result models.GameResult) error
}

// Controller runs games on behalf of the HTTP and websocket handlers.
type Controller struct {
	store    SessionStore
	archive  ResultArchive
	bot      session.MoveChooser
	cpuDelay time.Duration
}

// NewController creates a new Controller. The archive may be nil, in which case results are not kept.
func NewController(store SessionStore, archive ResultArchive, bot session.MoveChooser, cpuDelay time.Duration) *Controller {
	return &Controller{
		store:    store,
		archive:  archive,
		bot:      bot,
		cpuDelay: cpuDelay,
	}
}

// NewGame starts a new game. If the computer moves first, its moves are played right away.
func (c *Controller) NewGame(ctx context.Context, options session.Options) (*session.Session, []session.Step, error) {
	s, err := session.New(options)
	if err != nil {
		return nil, nil, err
	}

	steps, err := c.runCPU(ctx, s)
	if err != nil {
		return nil, nil, err
	}

	if err = c.save(ctx, s, false); err != nil {
		return nil, nil, err
	}

	slog.Info("game started", "id", s.ID, "mode", s.Mode, "difficulty", s.Difficulty)
	return s, steps, nil
}

// Game loads a game.
func (c *Controller) Game(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	return c.store.Load(ctx, id)
}

// Move plays a human move, followed by the computer's reply if it plays against one.
func (c *Controller) Move(ctx context.Context, id uuid.UUID, move othello.Move) (*session.Session, []session.Step, error) {
	return c.update(ctx, id, func(s *session.Session) ([]session.Step, error) {
		step, err := s.Play(move)
		if err != nil {
			return nil, err
		}

		steps, err := c.runCPU(ctx, s)
		return append([]session.Step{step}, steps...), err
	})
}

// CPUMove lets the computer play a move for the player to move.
func (c *Controller) CPUMove(ctx context.Context, id uuid.UUID) (*session.Session, []session.Step, error) {
	return c.update(ctx, id, func(s *session.Session) ([]session.Step, error) {
		step, err := s.CPUMove(c.bot)
		if err != nil {
			return nil, err
		}

		steps, err := c.runCPU(ctx, s)
		return append([]session.Step{step}, steps...), err
	})
}

// update runs play on a locked session and saves the result.
// Nothing is saved if play fails before any step was played.
func (c *Controller) update(
	ctx context.Context,
	id uuid.UUID,
	play func(s *session.Session) ([]session.Step, error),
) (*session.Session, []session.Step, error) {
	unlock, err := c.store.Lock(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	defer unlock()

	s, err := c.store.Load(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	wasTerminal := s.State.IsTerminal()

	steps, playErr := play(s)
	if len(steps) == 0 {
		return nil, nil, playErr
	}

	if err = c.save(ctx, s, wasTerminal); err != nil {
		return nil, nil, err
	}

	if playErr != nil {
		return nil, nil, playErr
	}

	return s, steps, nil
}

// runCPU plays computer moves until it is a human's turn or the game is over.
func (c *Controller) runCPU(ctx context.Context, s *session.Session) ([]session.Step, error) {
	var steps []session.Step

	for s.IsCPUTurn() {
		if c.cpuDelay > 0 {
			select {
			case <-ctx.Done():
				return steps, ctx.Err()
			case <-time.After(c.cpuDelay):
			}
		}

		step, err := s.CPUMove(c.bot)
		if err != nil {
			return steps, fmt.Errorf("computer could not move: %w", err)
		}

		slog.Debug("computer moved", "id", s.ID, "move", step.Move.String(), "player", step.Player)
		steps = append(steps, step)
	}

	return steps, nil
}

// save stores the session and archives its result if the game just ended.
func (c *Controller) save(ctx context.Context, s *session.Session, wasTerminal bool) error {
	if err := c.store.Save(ctx, s); err != nil {
		return err
	}

	if wasTerminal || !s.State.IsTerminal() {
		return nil
	}

	black, white := s.State.Score()
	slog.Info("game over", "id", s.ID, "black", black, "white", white)

	if c.archive == nil {
		return nil
	}

	result, err := models.NewGameResult(s)
	if err != nil {
		return err
	}

	// Failing to archive should not fail the move that ended the game.
	if err = c.archive.SaveResult(ctx, result); err != nil {
		slog.Error("failed to archive game result", "id", s.ID, "error", err)
	}

	return nil
}
