package eval

import (
	"github.com/notnil/chess"

	"negachess/board"
)

// MateScore is the magnitude returned for a checkmated side to move.
const MateScore = 9999.0

// DefaultDevelopmentMoves is the full-move number at which the
// development bonus switches off.
const DefaultDevelopmentMoves = 10

type Evaluator struct {
	weights     Weights
	tieBreak    TieBreaker
	development Development
}

type Option func(*Evaluator)

func WithTieBreaker(tb TieBreaker) Option {
	return func(e *Evaluator) {
		if tb != nil {
			e.tieBreak = tb
		}
	}
}

// WithDevelopment rewards having more legal moves than the opponent while
// the full-move number is below moves.
func WithDevelopment(weight float64, moves int) Option {
	return func(e *Evaluator) {
		e.development = Development{Weight: weight, Moves: moves}
	}
}

func New(w Weights, opts ...Option) *Evaluator {
	e := &Evaluator{weights: w, tieBreak: NoTieBreak{}}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Weights returns the evaluator's table. Weights has no exported mutable
// state, so the copy cannot change the evaluator.
func (e *Evaluator) Weights() Weights {
	return e.weights
}

// Evaluate scores pos from the side to move's point of view. Terminal
// positions get fixed scores: a mated side to move gets -MateScore, a
// stalemate or a dead draw gets 0 whatever the material.
func (e *Evaluator) Evaluate(pos board.Position) float64 {
	switch {
	case pos.IsCheckmate():
		return -MateScore
	case pos.IsStalemate(), pos.IsInsufficientMaterial():
		return 0
	}

	score := e.Material(pos) + e.Positional(pos)
	if pos.SideToMove() == chess.Black {
		score = -score
	}
	score += e.development.bonus(pos)
	return e.tieBreak.Adjust(score)
}

// Material is White's material minus Black's: the sum over piece kinds of
// value times the difference in counts. Equal material is exactly 0.
func (e *Evaluator) Material(pos board.Position) float64 {
	var diff [chess.Pawn + 1]int
	e.scan(pos, func(p chess.Piece, _ int) {
		if p.Color() == chess.White {
			diff[p.Type()]++
		} else {
			diff[p.Type()]--
		}
	})
	var score float64
	for _, pt := range pieceKinds {
		if diff[pt] != 0 {
			score += e.weights.Value(pt) * float64(diff[pt])
		}
	}
	return score
}

// Positional is White's table bonus minus Black's, summed in table units
// and scaled once. Tables are drawn from White's side, so White pieces read
// the mirrored square.
func (e *Evaluator) Positional(pos board.Position) float64 {
	units := 0
	e.scan(pos, func(p chess.Piece, idx int) {
		if p.Color() == chess.White {
			units += e.weights.Entry(p.Type(), idx)
		} else {
			units -= e.weights.Entry(p.Type(), idx)
		}
	})
	return float64(units) * e.weights.Scale()
}

// scan visits every piece with its table index.
func (e *Evaluator) scan(pos board.Position, visit func(p chess.Piece, idx int)) {
	for sq := chess.A1; sq <= chess.H8; sq++ {
		p := pos.PieceAt(sq)
		if p == chess.NoPiece {
			continue
		}
		idx := int(sq)
		if p.Color() == chess.White {
			idx = int(pos.MirrorSquare(sq))
		}
		visit(p, idx)
	}
}

// Development is the opening mobility bonus. A zero Weight disables it.
type Development struct {
	Weight float64
	Moves  int
}

func (d Development) bonus(pos board.Position) float64 {
	if d.Weight == 0 || pos.FullmoveNumber() >= d.Moves {
		return 0
	}
	us := pos.SideToMove()
	return d.Weight * float64(pos.MoveCount(us)-pos.MoveCount(us.Other()))
}
