package ai

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lk16/reversi/internal/othello"
	"golang.org/x/exp/rand"
)

// Difficulty selects how the bot picks its moves.
type Difficulty string

const (
	EASY   Difficulty = "easy"
	NORMAL Difficulty = "normal"
	HARD   Difficulty = "hard"
)

// Depth returns the search depth for the difficulty. EASY does not search.
func (d Difficulty) Depth() int {
	switch d {
	case EASY:
		return 0
	case HARD:
		return 5
	default:
		return 3
	}
}

// ParseDifficulty parses a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(s)); d {
	case EASY, NORMAL, HARD:
		return d, nil
	default:
		return "", fmt.Errorf("invalid difficulty: %q", s)
	}
}

// Bot picks moves for a computer player.
type Bot struct {
	// rng is used for EASY moves
	rng *rand.Rand

	// rngMutex protects rng
	rngMutex sync.Mutex
}

// NewBot creates a bot that draws EASY moves from rng.
func NewBot(rng *rand.Rand) *Bot {
	return &Bot{rng: rng}
}

// NewBotWithSeed creates a bot with a deterministic random source.
func NewBotWithSeed(seed uint64) *Bot {
	return NewBot(rand.New(rand.NewSource(seed)))
}

// BestMove returns the move of the player to move for the given difficulty.
// It returns false if the player to move has no legal moves.
func (b *Bot) BestMove(state othello.GameState, difficulty Difficulty) (othello.Move, bool) {
	moves := state.LegalMoves(state.CurrentPlayer())
	if len(moves) == 0 {
		return othello.Move{}, false
	}

	if difficulty == EASY {
		return moves[b.intn(len(moves))], true
	}

	startTime := time.Now()
	depth := difficulty.Depth()

	move, score, _ := SearchRoot(state, depth)

	slog.Debug("search done",
		"player", state.CurrentPlayer(),
		"depth", depth,
		"moves", len(moves),
		"best", move.String(),
		"score", score,
		"elapsed", time.Since(startTime),
	)

	return move, true
}

func (b *Bot) intn(n int) int {
	b.rngMutex.Lock()
	defer b.rngMutex.Unlock()

	return b.rng.Intn(n)
}
