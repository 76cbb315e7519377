package search

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"negachess/board"
)

// Evaluator scores a position for the side to move.
type Evaluator interface {
	Evaluate(pos board.Position) float64
}

// EvaluatorFunc adapts a plain function to Evaluator.
type EvaluatorFunc func(pos board.Position) float64

func (f EvaluatorFunc) Evaluate(pos board.Position) float64 { return f(pos) }

type Config struct {
	MaxDepth int
	Strategy Strategy
	// Threads > 1 splits the root moves across workers, each on its own
	// snapshot of the position.
	Threads int
}

// Result is the chosen move and its value for the side to move. Move is
// never nil when the error is nil.
type Result struct {
	Score float64
	Move  board.Move
	Stats Stats
}

type Engine struct {
	cfg  Config
	eval Evaluator
}

func New(cfg Config, ev Evaluator) (*Engine, error) {
	if cfg.MaxDepth < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDepth, cfg.MaxDepth)
	}
	if !cfg.Strategy.valid() {
		return nil, fmt.Errorf("%w %q", ErrUnknownStrategy, cfg.Strategy)
	}
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	return &Engine{cfg: cfg, eval: ev}, nil
}

func (e *Engine) Config() Config {
	return e.cfg
}

// ChooseMove builds an engine for cfg and searches pos once.
func ChooseMove(ctx context.Context, pos board.Position, cfg Config, ev Evaluator) (Result, error) {
	e, err := New(cfg, ev)
	if err != nil {
		return Result{}, err
	}
	return e.Search(ctx, pos)
}

// Search picks the best move for the side to move in pos. pos is mutated
// while the search runs and is back in its original state when Search
// returns; nothing else may touch it meanwhile.
func (e *Engine) Search(ctx context.Context, pos board.Position) (Result, error) {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return Result{}, ErrNoLegalMoves
	}
	log.Debug().
		Str("strategy", e.cfg.Strategy.String()).
		Int("depth", e.cfg.MaxDepth).
		Int("threads", e.cfg.Threads).
		Int("root-moves", len(moves)).
		Msg("search-config")

	tstart := time.Now()
	key := pos.Key()
	stats := &counters{}

	var (
		score float64
		best  board.Move
		err   error
	)
	if e.cfg.Threads > 1 && len(moves) > 1 {
		score, best, err = e.searchParallel(ctx, pos, moves, stats)
	} else {
		s := e.searcher(ctx, pos, stats)
		score, best, err = s.scan(moves, 0, fullWindow())
	}
	if pos.Key() != key {
		return Result{}, fmt.Errorf("%w: position changed from %s to %s", ErrInvariantViolation, key, pos.Key())
	}
	if err != nil {
		return Result{}, err
	}
	if best == nil {
		return Result{}, fmt.Errorf("%w: no best move among %d root moves", ErrInvariantViolation, len(moves))
	}

	res := Result{Score: score, Move: best, Stats: stats.snapshot()}
	log.Debug().
		Str("move", best.String()).
		Float64("score", score).
		Uint64("nodes", res.Stats.Nodes).
		Uint64("leaves", res.Stats.Leaves).
		Uint64("researches", res.Stats.Researches).
		Uint64("cutoffs", res.Stats.Cutoffs).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("search-returning")
	return res, nil
}

func (e *Engine) searcher(ctx context.Context, pos board.Position, stats *counters) *searcher {
	return &searcher{
		ctx:      ctx,
		pos:      pos,
		eval:     e.eval,
		strategy: e.cfg.Strategy,
		maxDepth: e.cfg.MaxDepth,
		stats:    stats,
	}
}

type rootResult struct {
	score float64
	move  board.Move
}

// searchParallel splits the root moves into contiguous chunks, searches
// each chunk on its own snapshot with a full window, and keeps the best
// score, earliest chunk first on ties. That is the same answer the
// single-threaded scan gives.
func (e *Engine) searchParallel(ctx context.Context, pos board.Position, moves []board.Move, stats *counters) (float64, board.Move, error) {
	size := int(math.Ceil(float64(len(moves)) / float64(e.cfg.Threads)))
	chunks := lo.Chunk(moves, size)
	results := make([]rootResult, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		snapshot := pos.Clone()
		g.Go(func() error {
			s := e.searcher(gctx, snapshot, stats)
			v, m, err := s.scan(chunk, 0, fullWindow())
			if err != nil {
				return err
			}
			results[i] = rootResult{score: v, move: m}
			log.Debug().Int("worker", i).Int("moves", len(chunk)).Float64("score", v).Msg("root-chunk-done")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, nil, err
	}

	best := results[0]
	for _, r := range results[1:] {
		if r.score > best.score {
			best = r
		}
	}
	// each chunk counted the root as a node
	stats.nodes.Add(1 - uint64(len(chunks)))
	return best.score, best.move, nil
}
