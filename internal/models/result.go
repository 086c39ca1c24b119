package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/lk16/reversi/internal/session"
)

// GameResult is the archived outcome of a finished game.
type GameResult struct {
	ID         uuid.UUID `json:"id"          db:"id"`
	Mode       string    `json:"mode"        db:"mode"`
	Difficulty string    `json:"difficulty"  db:"difficulty"`
	HumanColor string    `json:"human_color" db:"human_color"`
	Winner     string    `json:"winner"      db:"winner"`
	Black      int       `json:"black"       db:"black"`
	White      int       `json:"white"       db:"white"`
	Moves      MoveList  `json:"moves"       db:"moves"`
	FinishedAt time.Time `json:"finished_at" db:"finished_at"`
}

// NewGameResult creates the result of a finished session.
func NewGameResult(s *session.Session) (GameResult, error) {
	if !s.State.IsTerminal() {
		return GameResult{}, errors.New("game is not over yet")
	}

	black, white := s.State.Score()

	humanColor := ""
	if s.Mode == session.CPU {
		humanColor = s.HumanColor.String()
	}

	return GameResult{
		ID:         s.ID,
		Mode:       string(s.Mode),
		Difficulty: string(s.Difficulty),
		HumanColor: humanColor,
		Winner:     winnerName(s.State.Winner()),
		Black:      black,
		White:      white,
		Moves:      s.Moves(),
		FinishedAt: s.UpdatedAt,
	}, nil
}

// MoveList is a list of moves in field notation that implements sql.Scanner and driver.Valuer.
type MoveList []string

// Scan implements the sql.Scanner interface for MoveList.
func (m *MoveList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		if v == nil {
			return errors.New("cannot scan nil into MoveList")
		}
	case string:
	default:
		return fmt.Errorf("cannot scan %T into MoveList", value)
	}

	var moves pq.StringArray
	if err := moves.Scan(value); err != nil {
		return fmt.Errorf("error scanning MoveList: %w", err)
	}

	if moves == nil {
		moves = pq.StringArray{}
	}

	*m = MoveList(moves)
	return nil
}

// Value implements the driver.Valuer interface for MoveList.
func (m MoveList) Value() (driver.Value, error) {
	return pq.StringArray(m).Value()
}
