package othello

// directions lists the 8 compass directions as (row, col) offsets. The order
// determines the order of discs returned by Flippable.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Flippable returns the opponent discs that would be flipped if player played on the given square.
// Discs are grouped per direction. The result is empty if the square is occupied or off the board.
func (b Board) Flippable(row, col int, player Color) []Move {
	if !InBounds(row, col) || b[row][col] != EMPTY {
		return nil
	}

	opponent := player.Opponent()
	var flipped []Move

	for _, dir := range directions {
		dr, dc := dir[0], dir[1]
		r, c := row+dr, col+dc
		run := 0

		for InBounds(r, c) && b[r][c] == opponent {
			run++
			r += dr
			c += dc
		}

		if run == 0 || !InBounds(r, c) || b[r][c] != player {
			continue
		}

		for dist := 1; dist <= run; dist++ {
			flipped = append(flipped, Move{Row: row + dist*dr, Col: col + dist*dc})
		}
	}

	return flipped
}

// IsLegal checks if player may play on the given square.
func (b Board) IsLegal(row, col int, player Color) bool {
	if !InBounds(row, col) || b[row][col] != EMPTY {
		return false
	}
	return len(b.Flippable(row, col, player)) > 0
}

// LegalMoves returns all legal moves of player in row-major order.
func (b Board) LegalMoves(player Color) []Move {
	var moves []Move
	for row := range Size {
		for col := range Size {
			if b.IsLegal(row, col, player) {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}
	return moves
}

// HasMoves checks if player has at least one legal move.
func (b Board) HasMoves(player Color) bool {
	for row := range Size {
		for col := range Size {
			if b.IsLegal(row, col, player) {
				return true
			}
		}
	}
	return false
}

// IsFrontier checks if the square is occupied and has at least one empty neighbor.
func (b Board) IsFrontier(row, col int) bool {
	if b[row][col] == EMPTY {
		return false
	}

	for _, dir := range directions {
		r, c := row+dir[0], col+dir[1]
		if InBounds(r, c) && b[r][c] == EMPTY {
			return true
		}
	}
	return false
}
