package bots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"

	"negachess/board"
	"negachess/eval"
	"negachess/search"
)

// SearchBot plays the move picked by a fixed-depth search.
type SearchBot struct {
	Depth     int
	Strategy  search.Strategy
	Threads   int
	TimeLimit time.Duration
	Evaluator search.Evaluator
}

func NewSearchBot(strategy search.Strategy, depth int, timeLimit time.Duration) *SearchBot {
	return &SearchBot{
		Depth:     depth,
		Strategy:  strategy,
		Threads:   1,
		TimeLimit: timeLimit,
		Evaluator: eval.New(eval.DefaultWeights()),
	}
}

func (b *SearchBot) Name() string {
	return fmt.Sprintf("%s bot (depth %d)", b.Strategy, b.Depth)
}

func (b *SearchBot) config(depth int) search.Config {
	return search.Config{MaxDepth: depth, Strategy: b.Strategy, Threads: b.Threads}
}

func (b *SearchBot) BestMove(ctx context.Context, cb *board.ChessBoard) (*chess.Move, error) {
	if cb == nil {
		return nil, errors.New("no board")
	}
	// ищем на копии, доска игры не трогается
	snapshot := cb.Snapshot()

	sctx := ctx
	if b.TimeLimit > 0 {
		var cancel context.CancelFunc
		sctx, cancel = context.WithTimeout(ctx, b.TimeLimit)
		defer cancel()
	}
	res, err := search.ChooseMove(sctx, snapshot, b.config(b.Depth), b.Evaluator)

	// Простое падение глубины, если не успели
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil && b.Depth > 1 {
		log.Warn().Dur("time-limit", b.TimeLimit).Int("depth", b.Depth).Msg("search-timed-out-falling-back-to-depth-1")
		res, err = search.ChooseMove(ctx, snapshot, b.config(1), b.Evaluator)
	}
	if err != nil {
		return nil, err
	}

	m, ok := res.Move.(*chess.Move)
	if !ok {
		return nil, fmt.Errorf("%w: move of type %T", search.ErrInvariantViolation, res.Move)
	}
	log.Debug().Str("bot", b.Name()).Str("move", m.String()).Float64("score", res.Score).Msg("bot-move")
	return m, nil
}
