package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lk16/reversi/internal/ai"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/othello"
)

func main() {
	blackFlag := flag.String("black", "hard", "difficulty of black: easy, normal or hard")
	whiteFlag := flag.String("white", "easy", "difficulty of white: easy, normal or hard")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "seed for random moves") //nolint:gosec
	games := flag.Int("games", 1, "number of games to play")
	verbose := flag.Bool("v", false, "print the board after every move")
	flag.Parse()

	config.SetLogLevel()

	difficulties := make(map[othello.Color]ai.Difficulty)
	for color, value := range map[othello.Color]string{othello.BLACK: *blackFlag, othello.WHITE: *whiteFlag} {
		difficulty, err := ai.ParseDifficulty(value)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		difficulties[color] = difficulty
	}

	bot := ai.NewBotWithSeed(*seed)
	wins := make(map[othello.Color]int)

	for game := range *games {
		state, err := playGame(bot, difficulties, *verbose)
		if err != nil {
			slog.Error("Game failed", "game", game+1, "error", err)
			os.Exit(1)
		}

		black, white := state.Score()
		winner := state.Winner()
		wins[winner]++

		fmt.Printf("game %d: black %d - %d white, winner: %s\n", game+1, black, white, winnerName(winner))
	}

	fmt.Printf("black (%s) won %d, white (%s) won %d, %d draws\n",
		difficulties[othello.BLACK], wins[othello.BLACK],
		difficulties[othello.WHITE], wins[othello.WHITE],
		wins[othello.DRAW],
	)
}

// playGame plays a game between two computer players and returns the final state.
func playGame(bot *ai.Bot, difficulties map[othello.Color]ai.Difficulty, verbose bool) (othello.GameState, error) {
	state := othello.NewGame()

	for !state.IsTerminal() {
		player := state.CurrentPlayer()

		move, ok := bot.BestMove(state, difficulties[player])
		if !ok {
			return state, fmt.Errorf("%s has no moves in %s", player, state)
		}

		if _, err := state.ApplyMove(move.Row, move.Col, player); err != nil {
			return state, err
		}

		outcome := state.AdvanceTurn()

		if verbose {
			fmt.Printf("%s plays %s (%s)\n", player, move, outcome)
			for _, line := range state.Board().ASCIIArtLines(state.CurrentPlayer()) {
				fmt.Println(line)
			}
		}
	}

	return state, nil
}

func winnerName(winner othello.Color) string {
	if winner == othello.DRAW {
		return "draw"
	}
	return winner.String()
}
