package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lk16/reversi/internal/othello"
)

func main() {
	boardString := flag.String("board", "", "the board to show, optionally followed by -b or -w for the player to move")
	flag.Parse()

	state, err := parseState(*boardString)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	for _, line := range state.Board().ASCIIArtLines(state.CurrentPlayer()) {
		fmt.Println(line)
	}

	black, white := state.Score()
	fmt.Printf("black: %d, white: %d, to move: %s\n", black, white, state.CurrentPlayer())
}

// parseState accepts a board string, with black to move, or a game string.
func parseState(s string) (othello.GameState, error) {
	if len(s) == othello.Size*othello.Size {
		board, err := othello.NewBoardFromString(s)
		if err != nil {
			return othello.GameState{}, err
		}
		return othello.NewGameState(board, othello.BLACK), nil
	}

	return othello.NewGameStateFromString(s)
}
