package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/ai"
	"github.com/lk16/reversi/internal/othello"
)

var (
	ErrGameOver    = errors.New("game is over")
	ErrNotYourTurn = errors.New("it is not the turn of a human player")
	ErrNoCPU       = errors.New("no computer move available")
	ErrNotFound    = errors.New("game session not found")
	ErrBusy        = errors.New("game session is busy")
)

// Mode tells who plays the game.
type Mode string

const (
	// CPU is a human playing against the computer.
	CPU Mode = "cpu"

	// PVP is two humans sharing a board.
	PVP Mode = "pvp"
)

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case CPU, PVP:
		return m, nil
	default:
		return "", fmt.Errorf("invalid mode: %q", s)
	}
}

// MoveChooser picks the move for the player to move.
type MoveChooser interface {
	BestMove(state othello.GameState, difficulty ai.Difficulty) (othello.Move, bool)
}

// Options configures a new session.
type Options struct {
	Mode Mode

	// HumanColor is the color of the human in CPU mode. It is ignored in PVP mode.
	HumanColor othello.Color

	// Difficulty of the computer player. In PVP mode it is used for hints.
	Difficulty ai.Difficulty
}

// Step is one move played in a session, with the turn outcome that followed it.
type Step struct {
	Move    othello.Move    `json:"move"`
	Player  othello.Color   `json:"player"`
	Flipped []othello.Move  `json:"flipped"`
	Outcome othello.Outcome `json:"outcome"`

	// Passed is the player that was skipped if Outcome is Pass.
	Passed othello.Color `json:"passed,omitempty"`
}

// Session is a game in progress together with the players' setup and its history.
type Session struct {
	ID         uuid.UUID         `json:"id"`
	Mode       Mode              `json:"mode"`
	HumanColor othello.Color     `json:"human_color,omitempty"`
	Difficulty ai.Difficulty     `json:"difficulty"`
	State      othello.GameState `json:"state"`
	History    []Step            `json:"history"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// New creates a session in the opening position.
func New(options Options) (*Session, error) {
	if _, err := ParseMode(string(options.Mode)); err != nil {
		return nil, err
	}

	if _, err := ai.ParseDifficulty(string(options.Difficulty)); err != nil {
		return nil, err
	}

	humanColor := options.HumanColor
	if options.Mode == PVP {
		humanColor = othello.EMPTY
	} else if humanColor != othello.BLACK && humanColor != othello.WHITE {
		return nil, fmt.Errorf("invalid human color: %s", humanColor)
	}

	now := time.Now().UTC()

	return &Session{
		ID:         uuid.New(),
		Mode:       options.Mode,
		HumanColor: humanColor,
		Difficulty: options.Difficulty,
		State:      othello.NewGame(),
		History:    make([]Step, 0),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// IsCPUTurn checks if the computer should play the next move.
func (s *Session) IsCPUTurn() bool {
	return s.Mode == CPU && !s.State.IsTerminal() && s.State.CurrentPlayer() != s.HumanColor
}

// LastMove returns the most recent move, or false if no move was played yet.
func (s *Session) LastMove() (othello.Move, bool) {
	if len(s.History) == 0 {
		return othello.Move{}, false
	}
	return s.History[len(s.History)-1].Move, true
}

// Moves returns the played moves in field notation.
func (s *Session) Moves() []string {
	moves := make([]string, len(s.History))
	for i, step := range s.History {
		moves[i] = step.Move.String()
	}
	return moves
}

// Play plays a move for the human player to move.
func (s *Session) Play(move othello.Move) (Step, error) {
	if s.State.IsTerminal() {
		return Step{}, ErrGameOver
	}

	if s.IsCPUTurn() {
		return Step{}, ErrNotYourTurn
	}

	return s.apply(move)
}

// CPUMove lets chooser play a move for the player to move.
// In PVP mode this is used to let the computer play a move for a human.
func (s *Session) CPUMove(chooser MoveChooser) (Step, error) {
	if s.State.IsTerminal() {
		return Step{}, ErrGameOver
	}

	move, ok := chooser.BestMove(s.State, s.Difficulty)
	if !ok {
		return Step{}, ErrNoCPU
	}

	return s.apply(move)
}

// RunCPU lets chooser play until it is a human's turn or the game is over.
func (s *Session) RunCPU(chooser MoveChooser) ([]Step, error) {
	var steps []Step
	for s.IsCPUTurn() {
		step, err := s.CPUMove(chooser)
		if err != nil {
			return steps, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func (s *Session) apply(move othello.Move) (Step, error) {
	player := s.State.CurrentPlayer()

	flipped, err := s.State.ApplyMove(move.Row, move.Col, player)
	if err != nil {
		return Step{}, err
	}

	step := Step{
		Move:    move,
		Player:  player,
		Flipped: flipped,
		Outcome: s.State.AdvanceTurn(),
	}

	if step.Outcome == othello.Pass {
		step.Passed = player.Opponent()
	}

	s.History = append(s.History, step)
	s.UpdatedAt = time.Now().UTC()

	return step, nil
}
