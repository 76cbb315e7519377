// bot.go
package bots

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/notnil/chess"
	"github.com/samber/lo"

	"negachess/board"
	"negachess/search"
)

var ErrUnknownBot = errors.New("unknown bot")

// ChessBot интерфейс для всех ботов
type ChessBot interface {
	// BestMove returns a legal move for the side to move. b is left as it
	// was found.
	BestMove(ctx context.Context, b *board.ChessBoard) (*chess.Move, error)
	Name() string
}

type Options struct {
	Depth     int
	Threads   int
	TimeLimit time.Duration
	Evaluator search.Evaluator
	// Seed drives RandomBot. Zero picks a fresh seed.
	Seed uint64
}

const randomName = "random"

// New builds a bot by name: any search strategy name, or "random".
func New(name string, opts Options) (ChessBot, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == randomName {
		return NewRandomBot(opts.Seed), nil
	}
	strategy, err := search.ParseStrategy(name)
	if err != nil {
		return nil, fmt.Errorf("%w %q; recognized: %s", ErrUnknownBot, name, strings.Join(Names(), ", "))
	}
	bot := NewSearchBot(strategy, opts.Depth, opts.TimeLimit)
	bot.Threads = opts.Threads
	if opts.Evaluator != nil {
		bot.Evaluator = opts.Evaluator
	}
	return bot, nil
}

// Names lists every name New accepts.
func Names() []string {
	names := append(search.StrategyNames(), randomName)
	names = lo.Uniq(names)
	sort.Strings(names)
	return names
}
