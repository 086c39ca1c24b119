package othello

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrIllegalMove is returned when a move does not flip any disc, is on an occupied square or is off the board.
var ErrIllegalMove = errors.New("illegal move")

// Outcome is the result of advancing the turn.
type Outcome int

const (
	// Continue means the next player has a legal move.
	Continue Outcome = iota

	// Pass means the next player had no legal move and the turn went back to the player who just moved.
	Pass

	// GameOver means neither player can move.
	GameOver
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Pass:
		return "pass"
	case GameOver:
		return "gameover"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	for _, outcome := range []Outcome{Continue, Pass, GameOver} {
		if string(text) == outcome.String() {
			*o = outcome
			return nil
		}
	}
	return fmt.Errorf("invalid outcome: %q", text)
}

// GameState is a board with turn and pass bookkeeping.
// It has value semantics: assigning or cloning it yields an independent copy.
type GameState struct {
	board             Board
	currentPlayer     Color
	terminal          bool
	consecutivePasses int
}

// NewGame returns a game in the standard opening position with black to move.
func NewGame() GameState {
	return GameState{
		board:         NewBoardStart(),
		currentPlayer: BLACK,
	}
}

// NewGameState returns a game with a custom board and player to move.
func NewGameState(board Board, currentPlayer Color) GameState {
	return GameState{
		board:         board,
		currentPlayer: currentPlayer,
	}
}

// NewGameStateFromString parses a board string followed by "-b" or "-w" for the player to move.
func NewGameStateFromString(s string) (GameState, error) {
	if len(s) != Size*Size+2 {
		return GameState{}, fmt.Errorf("game string must be %d characters long, got %d", Size*Size+2, len(s))
	}

	board, err := NewBoardFromString(s[:Size*Size])
	if err != nil {
		return GameState{}, fmt.Errorf("invalid board: %w", err)
	}

	var turn Color
	switch s[Size*Size:] {
	case "-b":
		turn = BLACK
	case "-w":
		turn = WHITE
	default:
		return GameState{}, fmt.Errorf("invalid turn: %s", s[Size*Size:])
	}

	return NewGameState(board, turn), nil
}

// NewGameStateFromStringMust works like NewGameStateFromString but panics on invalid input.
func NewGameStateFromStringMust(s string) GameState {
	state, err := NewGameStateFromString(s)
	if err != nil {
		panic(err)
	}
	return state
}

// String returns the board string followed by the player to move.
func (s GameState) String() string {
	if s.currentPlayer == WHITE {
		return s.board.String() + "-w"
	}
	return s.board.String() + "-b"
}

// Clone returns an independent copy of the state.
func (s GameState) Clone() GameState {
	return s
}

// Board returns a copy of the board.
func (s GameState) Board() Board {
	return s.board
}

// CurrentPlayer returns the player to move.
func (s GameState) CurrentPlayer() Color {
	return s.currentPlayer
}

// IsTerminal checks if the game is over.
func (s GameState) IsTerminal() bool {
	return s.terminal
}

// ConsecutivePasses returns the pass counter used to detect the end of the game.
func (s GameState) ConsecutivePasses() int {
	return s.consecutivePasses
}

// Flippable returns the discs flipped if player played on the given square.
func (s GameState) Flippable(row, col int, player Color) []Move {
	return s.board.Flippable(row, col, player)
}

// IsLegal checks if player may play on the given square.
func (s GameState) IsLegal(row, col int, player Color) bool {
	return s.board.IsLegal(row, col, player)
}

// LegalMoves returns the legal moves of player in row-major order.
func (s GameState) LegalMoves(player Color) []Move {
	return s.board.LegalMoves(player)
}

// ApplyMove places a disc of player and flips the enclosed opponent discs.
// It returns the flipped discs. On an illegal move the state is not modified.
func (s *GameState) ApplyMove(row, col int, player Color) ([]Move, error) {
	flipped := s.board.Flippable(row, col, player)
	if len(flipped) == 0 {
		return nil, fmt.Errorf("%w: %s for %s", ErrIllegalMove, Move{Row: row, Col: col}, player)
	}

	s.board[row][col] = player
	for _, f := range flipped {
		s.board[f.Row][f.Col] = player
	}
	s.consecutivePasses = 0

	return flipped, nil
}

// AdvanceTurn hands the turn to the opponent, skipping a player without legal moves.
//
// The pass counter is only incremented when the next player is stuck, and only
// reset by a move or by finding a player that can move. Two stuck events without
// a reset in between end the game, even if the turn was handed back in between.
func (s *GameState) AdvanceTurn() Outcome {
	s.currentPlayer = s.currentPlayer.Opponent()

	if s.board.HasMoves(s.currentPlayer) {
		s.consecutivePasses = 0
		return Continue
	}

	s.consecutivePasses++
	if s.consecutivePasses >= 2 {
		s.terminal = true
		return GameOver
	}

	s.currentPlayer = s.currentPlayer.Opponent()
	if !s.board.HasMoves(s.currentPlayer) {
		s.terminal = true
		return GameOver
	}

	return Pass
}

// Score returns the disc counts of black and white.
func (s GameState) Score() (black, white int) {
	return s.board.Count(BLACK), s.board.Count(WHITE)
}

// CountDiscs returns the number of discs on the board.
func (s GameState) CountDiscs() int {
	black, white := s.Score()
	return black + white
}

// Winner returns the player with most discs, or DRAW. It is only meaningful once the game is over.
func (s GameState) Winner() Color {
	black, white := s.Score()
	switch {
	case black > white:
		return BLACK
	case white > black:
		return WHITE
	default:
		return DRAW
	}
}

// IsBoardFull checks if all squares are occupied.
func (s GameState) IsBoardFull() bool {
	return s.board.IsFull()
}

type gameStateJSON struct {
	Board             string `json:"board"`
	CurrentPlayer     Color  `json:"current_player"`
	Terminal          bool   `json:"terminal"`
	ConsecutivePasses int    `json:"consecutive_passes"`
}

// MarshalJSON implements json.Marshaler.
func (s GameState) MarshalJSON() ([]byte, error) {
	return json.Marshal(gameStateJSON{
		Board:             s.board.String(),
		CurrentPlayer:     s.currentPlayer,
		Terminal:          s.terminal,
		ConsecutivePasses: s.consecutivePasses,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *GameState) UnmarshalJSON(data []byte) error {
	var raw gameStateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	board, err := NewBoardFromString(raw.Board)
	if err != nil {
		return fmt.Errorf("invalid board: %w", err)
	}

	if raw.CurrentPlayer != BLACK && raw.CurrentPlayer != WHITE {
		return fmt.Errorf("invalid current player: %s", raw.CurrentPlayer)
	}

	if raw.ConsecutivePasses < 0 {
		return fmt.Errorf("invalid consecutive passes: %d", raw.ConsecutivePasses)
	}

	*s = GameState{
		board:             board,
		currentPlayer:     raw.CurrentPlayer,
		terminal:          raw.Terminal,
		consecutivePasses: raw.ConsecutivePasses,
	}
	return nil
}
