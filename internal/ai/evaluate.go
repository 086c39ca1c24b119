package ai

import (
	"github.com/lk16/reversi/internal/othello"
)

const (
	// endgameDiscs is the disc count from which only the disc difference is evaluated.
	endgameDiscs = 58

	openingDiscs = 20
	lateDiscs    = 50

	cornerValue = 25
)

// weights rates each square. Corners are most valuable, squares next to corners least.
var weights = [othello.Size][othello.Size]float64{
	{120, -20, 20, 5, 5, 20, -20, 120},
	{-20, -40, -5, -5, -5, -5, -40, -20},
	{20, -5, 15, 3, 3, 15, -5, 20},
	{5, -5, 3, 3, 3, 3, -5, 5},
	{5, -5, 3, 3, 3, 3, -5, 5},
	{20, -5, 15, 3, 3, 15, -5, 20},
	{-20, -40, -5, -5, -5, -5, -40, -20},
	{120, -20, 20, 5, 5, 20, -20, 120},
}

var corners = [4]othello.Move{{Row: 0, Col: 0}, {Row: 0, Col: 7}, {Row: 7, Col: 0}, {Row: 7, Col: 7}}

// Evaluate scores a state from the perspective of player. Higher is better for player.
func Evaluate(state othello.GameState, player othello.Color) float64 {
	board := state.Board()
	opponent := player.Opponent()

	own := board.Count(player)
	opp := board.Count(opponent)
	discDiff := float64(own - opp)

	if state.IsTerminal() || own+opp >= endgameDiscs {
		return discDiff * 1000
	}

	position := positionScore(board, player)
	mobility := mobilityScore(board, player)
	corner := cornerScore(board, player)
	stability := frontierScore(board, player)

	switch total := own + opp; {
	case total < openingDiscs:
		return 2*position + 3*mobility + 4*corner + 2*stability
	case total < lateDiscs:
		return 1.5*position + 2*mobility + 5*corner + 2*stability
	default:
		return position + mobility + 5*corner + stability + 3*discDiff
	}
}

// positionScore sums the square weights of player's discs minus those of the opponent.
func positionScore(board othello.Board, player othello.Color) float64 {
	score := 0.0
	for row := range othello.Size {
		for col := range othello.Size {
			switch board.Get(row, col) {
			case player:
				score += weights[row][col]
			case player.Opponent():
				score -= weights[row][col]
			}
		}
	}
	return score
}

// ratio returns 100 * (own - opp) / (own + opp), or 0 if both are 0.
func ratio(own, opp int) float64 {
	if own+opp == 0 {
		return 0
	}
	return 100 * float64(own-opp) / float64(own+opp)
}

func mobilityScore(board othello.Board, player othello.Color) float64 {
	own := len(board.LegalMoves(player))
	opp := len(board.LegalMoves(player.Opponent()))
	return ratio(own, opp)
}

func cornerScore(board othello.Board, player othello.Color) float64 {
	score := 0.0
	for _, corner := range corners {
		switch board.Get(corner.Row, corner.Col) {
		case player:
			score += cornerValue
		case player.Opponent():
			score -= cornerValue
		}
	}
	return score
}

// frontierScore rewards having fewer discs next to empty squares than the opponent.
func frontierScore(board othello.Board, player othello.Color) float64 {
	own, opp := 0, 0
	for row := range othello.Size {
		for col := range othello.Size {
			if !board.IsFrontier(row, col) {
				continue
			}
			if board.Get(row, col) == player {
				own++
			} else {
				opp++
			}
		}
	}
	return -ratio(own, opp)
}
