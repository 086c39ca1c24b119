package session

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/lk16/reversi/internal/ai"
	"github.com/lk16/reversi/internal/othello"
	"github.com/stretchr/testify/require"
)

// firstMove always plays the first legal move.
type firstMove struct{}

func (firstMove) BestMove(state othello.GameState, _ ai.Difficulty) (othello.Move, bool) {
	moves := state.LegalMoves(state.CurrentPlayer())
	if len(moves) == 0 {
		return othello.Move{}, false
	}
	return moves[0], true
}

// whitePassesAfterC1 has black to move; after c1 white must pass and black can play f1.
var whitePassesAfterC1 = "xo-xo---" + strings.Repeat("-", 56) + "-b"

func newSession(t *testing.T, options Options) *Session {
	t.Helper()

	s, err := New(options)
	require.NoError(t, err)
	return s
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		options     Options
		wantErr     string
		wantHuman   othello.Color
		wantCPUTurn bool
	}{
		{
			name:      "human black",
			options:   Options{Mode: CPU, HumanColor: othello.BLACK, Difficulty: ai.NORMAL},
			wantHuman: othello.BLACK,
		},
		{
			name:        "human white",
			options:     Options{Mode: CPU, HumanColor: othello.WHITE, Difficulty: ai.HARD},
			wantHuman:   othello.WHITE,
			wantCPUTurn: true,
		},
		{
			name:      "pvp ignores color",
			options:   Options{Mode: PVP, HumanColor: othello.WHITE, Difficulty: ai.EASY},
			wantHuman: othello.EMPTY,
		},
		{
			name:    "invalid mode",
			options: Options{Mode: "online", HumanColor: othello.BLACK, Difficulty: ai.EASY},
			wantErr: `invalid mode: "online"`,
		},
		{
			name:    "invalid difficulty",
			options: Options{Mode: CPU, HumanColor: othello.BLACK, Difficulty: "expert"},
			wantErr: `invalid difficulty: "expert"`,
		},
		{
			name:    "cpu without color",
			options: Options{Mode: CPU, Difficulty: ai.EASY},
			wantErr: "invalid human color: empty",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, err := New(test.options)
			if test.wantErr != "" {
				require.EqualError(t, err, test.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, test.wantHuman, s.HumanColor)
			require.Equal(t, test.wantCPUTurn, s.IsCPUTurn())
			require.Equal(t, othello.NewGame(), s.State)
			require.Empty(t, s.History)
			require.NotEqual(t, s.ID.String(), newSession(t, test.options).ID.String())
		})
	}
}

func TestPlayAndRunCPU(t *testing.T) {
	s := newSession(t, Options{Mode: CPU, HumanColor: othello.BLACK, Difficulty: ai.NORMAL})

	step, err := s.Play(othello.Move{Row: 2, Col: 3})
	require.NoError(t, err)
	require.Equal(t, Step{
		Move:    othello.Move{Row: 2, Col: 3},
		Player:  othello.BLACK,
		Flipped: []othello.Move{{Row: 3, Col: 3}},
		Outcome: othello.Continue,
	}, step)
	require.True(t, s.IsCPUTurn())

	_, err = s.Play(othello.Move{Row: 2, Col: 2})
	require.ErrorIs(t, err, ErrNotYourTurn)

	steps, err := s.RunCPU(firstMove{})
	require.NoError(t, err)
	require.Len(t, steps, 1)
	require.Equal(t, othello.WHITE, steps[0].Player)
	require.Equal(t, othello.Move{Row: 2, Col: 2}, steps[0].Move)
	require.False(t, s.IsCPUTurn())

	require.Equal(t, []string{"d3", "c3"}, s.Moves())
	last, ok := s.LastMove()
	require.True(t, ok)
	require.Equal(t, othello.Move{Row: 2, Col: 2}, last)
}

func TestPlayIllegalMove(t *testing.T) {
	s := newSession(t, Options{Mode: PVP, Difficulty: ai.EASY})
	before := s.State

	_, err := s.Play(othello.Move{Row: 0, Col: 0})
	require.ErrorIs(t, err, othello.ErrIllegalMove)
	require.Equal(t, before, s.State)
	require.Empty(t, s.History)

	_, ok := s.LastMove()
	require.False(t, ok)
}

func TestPlayReportsPass(t *testing.T) {
	s := newSession(t, Options{Mode: CPU, HumanColor: othello.BLACK, Difficulty: ai.EASY})
	s.State = othello.NewGameStateFromStringMust(whitePassesAfterC1)

	step, err := s.Play(othello.Move{Row: 0, Col: 2})
	require.NoError(t, err)
	require.Equal(t, othello.Pass, step.Outcome)
	require.Equal(t, othello.WHITE, step.Passed)
	require.Equal(t, othello.BLACK, s.State.CurrentPlayer())

	// The computer was skipped, so it is the human's turn again.
	require.False(t, s.IsCPUTurn())
	steps, err := s.RunCPU(firstMove{})
	require.NoError(t, err)
	require.Empty(t, steps)
}

func TestPlayAfterGameOver(t *testing.T) {
	s := newSession(t, Options{Mode: PVP, Difficulty: ai.NORMAL})
	s.State = othello.NewGameStateFromStringMust(whitePassesAfterC1)

	_, err := s.Play(othello.Move{Row: 0, Col: 2})
	require.NoError(t, err)

	// Black plays f1, now white has no discs left and nobody can move.
	step, err := s.Play(othello.Move{Row: 0, Col: 5})
	require.NoError(t, err)
	require.Equal(t, othello.GameOver, step.Outcome)
	require.True(t, s.State.IsTerminal())
	require.Equal(t, othello.BLACK, s.State.Winner())

	_, err = s.Play(othello.Move{Row: 0, Col: 6})
	require.ErrorIs(t, err, ErrGameOver)

	_, err = s.CPUMove(firstMove{})
	require.ErrorIs(t, err, ErrGameOver)
}

func TestCPUMoveInPVP(t *testing.T) {
	s := newSession(t, Options{Mode: PVP, Difficulty: ai.NORMAL})
	require.False(t, s.IsCPUTurn())

	step, err := s.CPUMove(ai.NewBotWithSeed(1))
	require.NoError(t, err)
	require.Equal(t, othello.BLACK, step.Player)
	require.Equal(t, othello.Move{Row: 2, Col: 3}, step.Move)
	require.Equal(t, othello.WHITE, s.State.CurrentPlayer())
}

func TestRunCPUAsBlack(t *testing.T) {
	s := newSession(t, Options{Mode: CPU, HumanColor: othello.WHITE, Difficulty: ai.EASY})

	steps, err := s.RunCPU(ai.NewBotWithSeed(5))
	require.NoError(t, err)
	require.Len(t, steps, 1)
	require.Equal(t, othello.BLACK, steps[0].Player)
	require.Equal(t, othello.WHITE, s.State.CurrentPlayer())
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("pvp")
	require.NoError(t, err)
	require.Equal(t, PVP, mode)

	_, err = ParseMode("PVP")
	require.Error(t, err)
}

func TestSessionJSON(t *testing.T) {
	s := newSession(t, Options{Mode: CPU, HumanColor: othello.WHITE, Difficulty: ai.HARD})
	_, err := s.RunCPU(firstMove{})
	require.NoError(t, err)

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded Session
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Equal(t, s.ID, decoded.ID)
	require.Equal(t, s.Mode, decoded.Mode)
	require.Equal(t, s.HumanColor, decoded.HumanColor)
	require.Equal(t, s.Difficulty, decoded.Difficulty)
	require.Equal(t, s.State, decoded.State)
	require.Equal(t, s.History, decoded.History)
	require.True(t, s.CreatedAt.Equal(decoded.CreatedAt))
	require.True(t, s.UpdatedAt.Equal(decoded.UpdatedAt))
}
