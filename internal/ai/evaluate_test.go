package ai //nolint:testpackage

import (
	"strings"
	"testing"

	"github.com/lk16/reversi/internal/othello"
	"github.com/stretchr/testify/require"
)

const (
	midgamePosition  = "---------x---x----xxx----xxxx-----xooxooxoxoxxx-o--oooox------xo-b"
	lateGamePosition = "o-x---o-xxxx-o--xxxxooooxxxoxxxoxxxxxoooxxxxooooo-xooooo--oooooo-w"
	endgamePosition  = "oox-o-o-xoooooo-xooxooooxoxooxxoxoxoooooxooxooooxoxoooooxxoooooo-b"
)

func TestEvaluateOpeningIsBalanced(t *testing.T) {
	state := othello.NewGame()

	require.InDelta(t, 0.0, Evaluate(state, othello.BLACK), 1e-9)
	require.InDelta(t, 0.0, Evaluate(state, othello.WHITE), 1e-9)
}

func TestEvaluateAfterOpeningMove(t *testing.T) {
	state := othello.NewGame()
	_, err := state.ApplyMove(2, 3, othello.BLACK)
	require.NoError(t, err)

	board := state.Board()
	require.InDelta(t, 9.0, positionScore(board, othello.BLACK), 1e-9)
	require.InDelta(t, 0.0, mobilityScore(board, othello.BLACK), 1e-9)
	require.InDelta(t, 0.0, cornerScore(board, othello.BLACK), 1e-9)
	require.InDelta(t, -60.0, frontierScore(board, othello.BLACK), 1e-9)

	require.InDelta(t, -102.0, Evaluate(state, othello.BLACK), 1e-9)
	require.InDelta(t, 102.0, Evaluate(state, othello.WHITE), 1e-9)
}

func TestEvaluatePhases(t *testing.T) {
	tests := []struct {
		name         string
		position     string
		player       othello.Color
		wantPosition float64
		wantMobility float64
		wantCorner   float64
		wantFrontier float64
		want         float64
	}{
		{
			name:         "midgame",
			position:     midgamePosition,
			player:       othello.BLACK,
			wantPosition: -55,
			wantMobility: -27.272727272727273,
			wantCorner:   -25,
			wantFrontier: -20,
			want:         -302.04545454545456,
		},
		{
			name:         "late game",
			position:     lateGamePosition,
			player:       othello.BLACK,
			wantPosition: -203,
			wantMobility: 11.11111111111111,
			wantCorner:   -50,
			wantFrontier: -5.2631578947368425,
			want:         -456.15204678362574,
		},
		{
			name:         "late game white",
			position:     lateGamePosition,
			player:       othello.WHITE,
			wantPosition: 203,
			wantMobility: -11.11111111111111,
			wantCorner:   50,
			wantFrontier: 5.2631578947368425,
			want:         456.15204678362574,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			state := othello.NewGameStateFromStringMust(test.position)
			board := state.Board()

			require.InDelta(t, test.wantPosition, positionScore(board, test.player), 1e-9)
			require.InDelta(t, test.wantMobility, mobilityScore(board, test.player), 1e-9)
			require.InDelta(t, test.wantCorner, cornerScore(board, test.player), 1e-9)
			require.InDelta(t, test.wantFrontier, frontierScore(board, test.player), 1e-9)
			require.InDelta(t, test.want, Evaluate(state, test.player), 1e-9)
		})
	}
}

func TestEvaluateEndgameIgnoresHeuristics(t *testing.T) {
	state := othello.NewGameStateFromStringMust(endgamePosition)
	require.Equal(t, 60, state.CountDiscs())

	// The heuristic components are all non-zero here, only the disc difference counts.
	require.NotZero(t, positionScore(state.Board(), othello.BLACK))
	require.NotZero(t, mobilityScore(state.Board(), othello.BLACK))

	require.Equal(t, -28000.0, Evaluate(state, othello.BLACK))
	require.Equal(t, 28000.0, Evaluate(state, othello.WHITE))
}

func TestEvaluateFiftyEightDiscs(t *testing.T) {
	board, err := othello.NewBoardFromString(strings.Repeat("x", 40) + strings.Repeat("o", 18) + strings.Repeat("-", 6))
	require.NoError(t, err)

	state := othello.NewGameState(board, othello.BLACK)
	require.Equal(t, 22000.0, Evaluate(state, othello.BLACK))
	require.Equal(t, -22000.0, Evaluate(state, othello.WHITE))
}

func TestEvaluateTerminal(t *testing.T) {
	board, err := othello.NewBoardFromString("xx" + strings.Repeat("-", 61) + "o")
	require.NoError(t, err)

	state := othello.NewGameState(board, othello.BLACK)
	require.Equal(t, othello.GameOver, state.AdvanceTurn())

	require.Equal(t, 1000.0, Evaluate(state, othello.BLACK))
	require.Equal(t, -1000.0, Evaluate(state, othello.WHITE))
}

func TestRatio(t *testing.T) {
	require.InDelta(t, 0.0, ratio(0, 0), 1e-9)
	require.InDelta(t, 100.0, ratio(3, 0), 1e-9)
	require.InDelta(t, -50.0, ratio(1, 3), 1e-9)
}
