package ai

import (
	"fmt"
	"math"

	"github.com/lk16/reversi/internal/othello"
)

// play returns the state after the player to move plays move and the turn is advanced.
// The move must be legal.
func play(state othello.GameState, move othello.Move) othello.GameState {
	child := state.Clone()
	if _, err := child.ApplyMove(move.Row, move.Col, child.CurrentPlayer()); err != nil {
		panic(fmt.Sprintf("search tried to play an illegal move: %v", err))
	}
	child.AdvanceTurn()
	return child
}

// Search runs minimax with alpha-beta pruning and returns the score of state from the perspective of player.
// If maximizing is true, the player to move in state tries to maximize that score.
// A depth of zero or less evaluates state without searching.
func Search(state othello.GameState, depth int, alpha, beta float64, maximizing bool, player othello.Color) float64 {
	if depth <= 0 || state.IsTerminal() {
		return Evaluate(state, player)
	}

	moves := state.LegalMoves(state.CurrentPlayer())

	if len(moves) == 0 {
		passed := state.Clone()
		if passed.AdvanceTurn() == othello.GameOver {
			return Evaluate(state, player)
		}
		return Search(passed, depth-1, alpha, beta, !maximizing, player)
	}

	if maximizing {
		best := math.Inf(-1)
		for _, move := range moves {
			score := Search(play(state, move), depth-1, alpha, beta, false, player)
			best = math.Max(best, score)
			alpha = math.Max(alpha, score)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := math.Inf(1)
	for _, move := range moves {
		score := Search(play(state, move), depth-1, alpha, beta, true, player)
		best = math.Min(best, score)
		beta = math.Min(beta, score)
		if beta <= alpha {
			break
		}
	}
	return best
}

// SearchRoot scores every legal move of the player to move at the given depth and returns the best one.
// Ties are won by the move that comes first in row-major order. It returns false if there are no legal moves.
// The depth includes the root move, a depth below 1 searches like depth 1.
func SearchRoot(state othello.GameState, depth int) (othello.Move, float64, bool) {
	depth = max(depth, 1)

	player := state.CurrentPlayer()
	moves := state.LegalMoves(player)
	if len(moves) == 0 {
		return othello.Move{}, 0, false
	}

	bestMove := moves[0]
	bestScore := math.Inf(-1)

	for _, move := range moves {
		score := Search(play(state, move), depth-1, math.Inf(-1), math.Inf(1), false, player)
		if score > bestScore {
			bestScore = score
			bestMove = move
		}
	}

	return bestMove, bestScore, true
}
