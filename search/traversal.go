package search

import (
	"context"
	"fmt"
	"math"

	"negachess/board"
)

/*
function pvs(node, depth, α, β) is
    if depth = 0 or node is terminal then
        return the heuristic value of node
    for each child of node do
        if child is first child then
            score := −pvs(child, depth − 1, −β, −α)
        else
            score := −pvs(child, depth − 1, −α − 1, −α) (* null window *)
            if α < score < β then
                score := −pvs(child, depth − 1, −β, −α) (* re-search *)
        α := max(α, score)
        if α ≥ β then
            break (* cut-off *)
    return α
*/

type window struct {
	alpha, beta float64
}

func fullWindow() window {
	return window{alpha: math.Inf(-1), beta: math.Inf(1)}
}

// searcher walks one position. Depth counts up from the root (0) to
// maxDepth, where positions are evaluated.
type searcher struct {
	ctx      context.Context
	pos      board.Position
	eval     Evaluator
	strategy Strategy
	maxDepth int
	stats    *counters
}

// search returns the value of the current position for the side to move
// and the first move that reaches it. The move is nil at leaves and
// terminal positions.
func (s *searcher) search(depth int, w window) (float64, board.Move, error) {
	if depth == s.maxDepth {
		s.stats.leaves.Add(1)
		return s.eval.Evaluate(s.pos), nil, nil
	}
	if err := s.ctx.Err(); err != nil {
		return 0, nil, err
	}
	moves := s.pos.LegalMoves()
	if len(moves) == 0 || s.pos.IsInsufficientMaterial() {
		s.stats.terminals.Add(1)
		return s.eval.Evaluate(s.pos), nil, nil
	}
	return s.scan(moves, depth, w)
}

// scan scores moves in order and keeps the first one with the highest
// value. Pruning strategies raise alpha and stop once it reaches beta.
func (s *searcher) scan(moves []board.Move, depth int, w window) (float64, board.Move, error) {
	s.stats.nodes.Add(1)
	best := math.Inf(-1)
	var bestMove board.Move
	for i, m := range moves {
		v, err := s.score(m, i == 0, depth, w)
		if err != nil {
			return 0, nil, err
		}
		if v > best {
			best, bestMove = v, m
		}
		if !s.strategy.prunes() {
			continue
		}
		if best > w.alpha {
			w.alpha = best
		}
		if w.alpha >= w.beta {
			s.stats.cutoffs.Add(1)
			break
		}
	}
	return best, bestMove, nil
}

// score values move m from the point of view of the side playing it.
// Negamax searches every child with the full window. Under Scout and PVS
// the first sibling at each node gets the parent's full (alpha, beta)
// window and only later siblings start with a null window, so the first
// move's subtree is searched with alpha-beta bounds under both strategies.
func (s *searcher) score(m board.Move, first bool, depth int, w window) (float64, error) {
	if !s.strategy.prunes() {
		return s.child(m, depth, fullWindow())
	}
	if first {
		return s.child(m, depth, window{-w.beta, -w.alpha})
	}

	probe, err := s.child(m, depth, window{-(w.alpha + 1), -w.alpha})
	if err != nil || probe <= w.alpha || probe >= w.beta {
		return probe, err
	}

	switch s.strategy {
	case Scout:
		// Children of the last internal ply are leaves, whose values do
		// not depend on the window, so the probe is already exact there.
		if depth >= s.maxDepth-1 {
			return probe, nil
		}
		s.stats.researches.Add(1)
		v, err := s.child(m, depth, window{-w.beta, -probe})
		if err != nil {
			return 0, err
		}
		return math.Max(probe, v), nil
	default:
		s.stats.researches.Add(1)
		return s.child(m, depth, window{-w.beta, -w.alpha})
	}
}

// child applies m, searches one ply deeper and undoes m on every path
// out, returning the negated child value.
func (s *searcher) child(m board.Move, depth int, w window) (v float64, err error) {
	if aerr := s.pos.Apply(m); aerr != nil {
		return 0, fmt.Errorf("%w: apply %s: %v", ErrInvariantViolation, m, aerr)
	}
	defer func() {
		if uerr := s.pos.Undo(); uerr != nil && err == nil {
			err = fmt.Errorf("%w: undo %s: %v", ErrInvariantViolation, m, uerr)
		}
	}()
	v, _, err = s.search(depth+1, w)
	return -v, err
}
