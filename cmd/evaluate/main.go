//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"
	"time"

	"github.com/lk16/reversi/internal/ai"
	"github.com/lk16/reversi/internal/othello"
)

var bot = ai.NewBotWithSeed(uint64(time.Now().UnixNano())) //nolint:gosec

func errorResult(format string, args ...any) map[string]interface{} {
	message := fmt.Sprintf(format, args...)
	fmt.Println(message)
	return map[string]interface{}{
		"error": message,
	}
}

// parseState reads a game string from the first of wantArgs string arguments.
func parseState(name string, args []js.Value, wantArgs int) (othello.GameState, error) {
	if len(args) != wantArgs {
		return othello.GameState{}, fmt.Errorf("%s called with wrong number of args", name)
	}

	for i, arg := range args {
		if arg.Type() != js.TypeString {
			return othello.GameState{}, fmt.Errorf("%s called with wrong type of arg %d", name, i)
		}
	}

	state, err := othello.NewGameStateFromString(args[0].String())
	if err != nil {
		return othello.GameState{}, fmt.Errorf("error parsing game: %w", err)
	}

	return state, nil
}

// evaluatePosition returns the heuristic score for the player to move.
func evaluatePosition(_ js.Value, args []js.Value) interface{} {
	state, err := parseState("evaluatePosition", args, 1)
	if err != nil {
		return errorResult("%s", err)
	}

	return map[string]interface{}{
		"score": ai.Evaluate(state, state.CurrentPlayer()),
	}
}

// bestMove returns the move the computer plays for the player to move.
func bestMove(_ js.Value, args []js.Value) interface{} {
	state, err := parseState("bestMove", args, 2)
	if err != nil {
		return errorResult("%s", err)
	}

	difficulty, err := ai.ParseDifficulty(args[1].String())
	if err != nil {
		return errorResult("%s", err)
	}

	move, ok := bot.BestMove(state, difficulty)
	if !ok {
		return map[string]interface{}{
			"move": nil,
		}
	}

	return map[string]interface{}{
		"move": move.String(),
		"row":  move.Row,
		"col":  move.Col,
	}
}

func main() {
	// Register the engine functions in the global scope
	js.Global().Set("evaluatePosition", js.FuncOf(evaluatePosition))
	js.Global().Set("bestMove", js.FuncOf(bestMove))

	// Keep the program running
	select {}
}
