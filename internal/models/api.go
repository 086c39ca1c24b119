package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/ai"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/session"
)

// NewGameRequest represents the payload for starting a game.
type NewGameRequest struct {
	Mode       string `json:"mode"`
	Color      string `json:"color"`
	Difficulty string `json:"difficulty"`
}

// Options validates the request and converts it to session options.
// Missing fields default to a game against the computer on normal difficulty, with the human playing black.
func (r *NewGameRequest) Options() (session.Options, error) {
	options := session.Options{
		Mode:       session.CPU,
		HumanColor: othello.BLACK,
		Difficulty: ai.NORMAL,
	}

	if r.Mode != "" {
		mode, err := session.ParseMode(r.Mode)
		if err != nil {
			return session.Options{}, err
		}
		options.Mode = mode
	}

	if r.Color != "" {
		color, err := othello.ParseColor(r.Color)
		if err != nil {
			return session.Options{}, err
		}
		options.HumanColor = color
	}

	if r.Difficulty != "" {
		difficulty, err := ai.ParseDifficulty(r.Difficulty)
		if err != nil {
			return session.Options{}, err
		}
		options.Difficulty = difficulty
	}

	return options, nil
}

// MoveRequest represents a move, either in field notation or as row and column.
type MoveRequest struct {
	Move string `json:"move,omitempty"`
	Row  *int   `json:"row,omitempty"`
	Col  *int   `json:"col,omitempty"`
}

// ParseMove validates the request and returns the move.
func (r *MoveRequest) ParseMove() (othello.Move, error) {
	if r.Move != "" {
		if r.Row != nil || r.Col != nil {
			return othello.Move{}, errors.New("move cannot be combined with row and col")
		}
		return othello.FieldToMove(r.Move)
	}

	if r.Row == nil || r.Col == nil {
		return othello.Move{}, errors.New("either move or both row and col are required")
	}

	if !othello.InBounds(*r.Row, *r.Col) {
		return othello.Move{}, fmt.Errorf("row and col must be in [0,%d)", othello.Size)
	}

	return othello.Move{Row: *r.Row, Col: *r.Col}, nil
}

// GameRequest identifies a game in websocket messages.
type GameRequest struct {
	ID uuid.UUID `json:"id"`
}

// GameMoveRequest is a move for a game in websocket messages.
type GameMoveRequest struct {
	ID uuid.UUID `json:"id"`
	MoveRequest
}

// StepView is a played move as shown to clients.
type StepView struct {
	Move    string          `json:"move"`
	Player  othello.Color   `json:"player"`
	Flipped []string        `json:"flipped"`
	Outcome othello.Outcome `json:"outcome"`
	Passed  othello.Color   `json:"passed,omitempty"`
}

// NewStepView converts a session step.
func NewStepView(step session.Step) StepView {
	flipped := make([]string, len(step.Flipped))
	for i, f := range step.Flipped {
		flipped[i] = f.String()
	}

	return StepView{
		Move:    step.Move.String(),
		Player:  step.Player,
		Flipped: flipped,
		Outcome: step.Outcome,
		Passed:  step.Passed,
	}
}

// GameView is the state of a game session as shown to clients.
type GameView struct {
	ID            uuid.UUID     `json:"id"`
	Mode          session.Mode  `json:"mode"`
	HumanColor    othello.Color `json:"human_color,omitempty"`
	Difficulty    ai.Difficulty `json:"difficulty"`
	Board         []string      `json:"board"`
	CurrentPlayer othello.Color `json:"current_player"`
	LegalMoves    []string      `json:"legal_moves"`
	Black         int           `json:"black"`
	White         int           `json:"white"`
	Terminal      bool          `json:"terminal"`
	Winner        string        `json:"winner,omitempty"`
	LastMove      string        `json:"last_move,omitempty"`
	Moves         []string      `json:"moves"`
}

// NewGameView creates the client view of a session.
func NewGameView(s *session.Session) GameView {
	state := s.State
	boardString := state.Board().String()

	rows := make([]string, othello.Size)
	for row := range othello.Size {
		rows[row] = boardString[row*othello.Size : (row+1)*othello.Size]
	}

	legalMoves := make([]string, 0)
	if !state.IsTerminal() {
		for _, move := range state.LegalMoves(state.CurrentPlayer()) {
			legalMoves = append(legalMoves, move.String())
		}
	}

	black, white := state.Score()

	view := GameView{
		ID:            s.ID,
		Mode:          s.Mode,
		HumanColor:    s.HumanColor,
		Difficulty:    s.Difficulty,
		Board:         rows,
		CurrentPlayer: state.CurrentPlayer(),
		LegalMoves:    legalMoves,
		Black:         black,
		White:         white,
		Terminal:      state.IsTerminal(),
		Moves:         s.Moves(),
	}

	if state.IsTerminal() {
		view.Winner = winnerName(state.Winner())
	}

	if last, ok := s.LastMove(); ok {
		view.LastMove = last.String()
	}

	return view
}

// winnerName returns the name of the winner, or "draw".
func winnerName(winner othello.Color) string {
	if winner == othello.DRAW {
		return "draw"
	}
	return winner.String()
}

// GameResponse is returned after creating a game or playing moves.
type GameResponse struct {
	Game  GameView   `json:"game"`
	Steps []StepView `json:"steps"`
}

// NewGameResponse creates a response for a session and the steps that were just played.
func NewGameResponse(s *session.Session, steps []session.Step) GameResponse {
	views := make([]StepView, len(steps))
	for i, step := range steps {
		views[i] = NewStepView(step)
	}

	return GameResponse{
		Game:  NewGameView(s),
		Steps: views,
	}
}

// VersionResponse represents the response of the version endpoint.
type VersionResponse struct {
	Commit string `json:"commit"`
}
