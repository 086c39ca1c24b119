package othello

import (
	"fmt"
	"strings"
)

// Size is the width and height of the board.
const Size = 8

// Color is the content of a square, or a player.
type Color int

const (
	EMPTY Color = iota
	BLACK
	WHITE

	// DRAW is returned by Winner when both players have the same disc count.
	DRAW = EMPTY
)

// Opponent returns the other player. EMPTY has no opponent and is returned unchanged.
func (c Color) Opponent() Color {
	switch c {
	case BLACK:
		return WHITE
	case WHITE:
		return BLACK
	default:
		return EMPTY
	}
}

// String returns the lowercase name of the color.
func (c Color) String() string {
	switch c {
	case BLACK:
		return "black"
	case WHITE:
		return "white"
	default:
		return "empty"
	}
}

// ParseColor parses a player name as returned by String.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(s) {
	case "black", "b":
		return BLACK, nil
	case "white", "w":
		return WHITE, nil
	default:
		return EMPTY, fmt.Errorf("invalid color: %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	if string(text) == "empty" {
		*c = EMPTY
		return nil
	}

	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Move is a square on the board, indexed by row and column.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds checks if a coordinate lies on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// String returns the field notation of the move, e.g. "d3" for row 2, column 3.
func (m Move) String() string {
	if !InBounds(m.Row, m.Col) {
		return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+m.Col, m.Row+1)
}

// FieldToMove converts a field notation (e.g. "a1", "h8") to a Move.
func FieldToMove(field string) (Move, error) {
	if len(field) != 2 {
		return Move{}, fmt.Errorf("invalid field length: %q", field)
	}

	field = strings.ToLower(field)

	if !('a' <= field[0] && field[0] <= 'h' && '1' <= field[1] && field[1] <= '8') {
		return Move{}, fmt.Errorf("invalid field: %q", field)
	}

	return Move{Row: int(field[1] - '1'), Col: int(field[0] - 'a')}, nil
}

// Board is an 8x8 grid of squares. It is a value type, copying it copies all squares.
type Board [Size][Size]Color

// NewBoardStart returns the standard opening position.
func NewBoardStart() Board {
	var b Board
	mid := Size / 2
	b[mid-1][mid-1] = WHITE
	b[mid-1][mid] = BLACK
	b[mid][mid-1] = BLACK
	b[mid][mid] = WHITE
	return b
}

// Get returns the content of a square.
func (b Board) Get(row, col int) Color {
	return b[row][col]
}

// Count returns the number of squares with the given content.
func (b Board) Count(color Color) int {
	count := 0
	for row := range Size {
		for col := range Size {
			if b[row][col] == color {
				count++
			}
		}
	}
	return count
}

// IsFull checks if no square is empty.
func (b Board) IsFull() bool {
	return b.Count(EMPTY) == 0
}

// squareChar maps a color to its character in the board string.
func squareChar(c Color) byte {
	switch c {
	case BLACK:
		return 'x'
	case WHITE:
		return 'o'
	default:
		return '-'
	}
}

// String returns the 64 squares in row-major order, using x for black, o for white and - for empty.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(Size * Size)
	for row := range Size {
		for col := range Size {
			sb.WriteByte(squareChar(b[row][col]))
		}
	}
	return sb.String()
}

// NewBoardFromString parses the output of Board.String.
func NewBoardFromString(s string) (Board, error) {
	var b Board

	if len(s) != Size*Size {
		return b, fmt.Errorf("board string must be %d characters long, got %d", Size*Size, len(s))
	}

	for i := range len(s) {
		var color Color
		switch s[i] {
		case 'x', 'X', '*':
			color = BLACK
		case 'o', 'O':
			color = WHITE
		case '-', '.':
			color = EMPTY
		default:
			return Board{}, fmt.Errorf("invalid square %q at index %d", s[i], i)
		}
		b[i/Size][i%Size] = color
	}

	return b, nil
}

// ASCIIArtLines returns the ascii art lines for the board, marking the legal moves of player.
func (b Board) ASCIIArtLines(player Color) []string {
	moves := make(map[Move]bool)
	for _, move := range b.LegalMoves(player) {
		moves[move] = true
	}

	lines := make([]string, Size+2)

	lines[0] = "+-a-b-c-d-e-f-g-h-+"
	for row := range Size {
		line := fmt.Sprintf("%d ", row+1)

		for col := range Size {
			switch {
			case b[row][col] == WHITE:
				line += "○ "
			case b[row][col] == BLACK:
				line += "● "
			case moves[Move{Row: row, Col: col}]:
				line += "· "
			default:
				line += "  "
			}
		}

		lines[row+1] = line + "|"
	}

	lines[Size+1] = "+-----------------+"

	return lines
}
