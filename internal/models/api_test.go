package models

import (
	"testing"

	"github.com/lk16/reversi/internal/ai"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int {
	return &i
}

func TestNewGameRequestOptions(t *testing.T) {
	tests := []struct {
		name        string
		request     NewGameRequest
		wantErr     bool
		wantErrMsg  string
		wantOptions session.Options
	}{
		{
			name:        "Defaults",
			request:     NewGameRequest{},
			wantOptions: session.Options{Mode: session.CPU, HumanColor: othello.BLACK, Difficulty: ai.NORMAL},
		},
		{
			name:        "OK",
			request:     NewGameRequest{Mode: "cpu", Color: "white", Difficulty: "hard"},
			wantOptions: session.Options{Mode: session.CPU, HumanColor: othello.WHITE, Difficulty: ai.HARD},
		},
		{
			name:        "PVP",
			request:     NewGameRequest{Mode: "pvp", Difficulty: "easy"},
			wantOptions: session.Options{Mode: session.PVP, HumanColor: othello.BLACK, Difficulty: ai.EASY},
		},
		{
			name:       "InvalidMode",
			request:    NewGameRequest{Mode: "online"},
			wantErr:    true,
			wantErrMsg: `invalid mode: "online"`,
		},
		{
			name:       "InvalidColor",
			request:    NewGameRequest{Color: "red"},
			wantErr:    true,
			wantErrMsg: `invalid color: "red"`,
		},
		{
			name:       "InvalidDifficulty",
			request:    NewGameRequest{Difficulty: "expert"},
			wantErr:    true,
			wantErrMsg: `invalid difficulty: "expert"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options, err := tt.request.Options()
			if tt.wantErr {
				assert.EqualError(t, err, tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantOptions, options)
			}
		})
	}
}

func TestMoveRequestParseMove(t *testing.T) {
	tests := []struct {
		name       string
		request    MoveRequest
		wantErr    bool
		wantErrMsg string
		wantMove   othello.Move
	}{
		{
			name:     "Field",
			request:  MoveRequest{Move: "d3"},
			wantMove: othello.Move{Row: 2, Col: 3},
		},
		{
			name:     "RowCol",
			request:  MoveRequest{Row: intPtr(0), Col: intPtr(7)},
			wantMove: othello.Move{Row: 0, Col: 7},
		},
		{
			name:       "Both",
			request:    MoveRequest{Move: "d3", Row: intPtr(2)},
			wantErr:    true,
			wantErrMsg: "move cannot be combined with row and col",
		},
		{
			name:       "MissingCol",
			request:    MoveRequest{Row: intPtr(2)},
			wantErr:    true,
			wantErrMsg: "either move or both row and col are required",
		},
		{
			name:       "OutOfBounds",
			request:    MoveRequest{Row: intPtr(2), Col: intPtr(8)},
			wantErr:    true,
			wantErrMsg: "row and col must be in [0,8)",
		},
		{
			name:       "BadField",
			request:    MoveRequest{Move: "z9"},
			wantErr:    true,
			wantErrMsg: `invalid field: "z9"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			move, err := tt.request.ParseMove()
			if tt.wantErr {
				assert.EqualError(t, err, tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantMove, move)
			}
		})
	}
}

func TestNewGameView(t *testing.T) {
	s, err := session.New(session.Options{Mode: session.CPU, HumanColor: othello.BLACK, Difficulty: ai.EASY})
	require.NoError(t, err)

	view := NewGameView(s)
	require.Equal(t, s.ID, view.ID)
	require.Equal(t, []string{
		"--------",
		"--------",
		"--------",
		"---ox---",
		"---xo---",
		"--------",
		"--------",
		"--------",
	}, view.Board)
	require.Equal(t, othello.BLACK, view.CurrentPlayer)
	require.Equal(t, []string{"d3", "c4", "f5", "e6"}, view.LegalMoves)
	require.Equal(t, 2, view.Black)
	require.Equal(t, 2, view.White)
	require.False(t, view.Terminal)
	require.Empty(t, view.Winner)
	require.Empty(t, view.LastMove)

	step, err := s.Play(othello.Move{Row: 2, Col: 3})
	require.NoError(t, err)

	response := NewGameResponse(s, []session.Step{step})
	require.Equal(t, "d3", response.Game.LastMove)
	require.Equal(t, []string{"d3"}, response.Game.Moves)
	require.Equal(t, 4, response.Game.Black)
	require.Equal(t, 1, response.Game.White)
	require.Equal(t, []StepView{{
		Move:    "d3",
		Player:  othello.BLACK,
		Flipped: []string{"d4"},
		Outcome: othello.Continue,
	}}, response.Steps)
}

func TestWinnerName(t *testing.T) {
	require.Equal(t, "black", winnerName(othello.BLACK))
	require.Equal(t, "white", winnerName(othello.WHITE))
	require.Equal(t, "draw", winnerName(othello.DRAW))
}
