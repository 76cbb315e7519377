package board

import "github.com/notnil/chess"

// Move is an opaque token for one legal transition. Only the Position that
// generated it may apply it.
type Move interface {
	String() string
}

// Position is everything the search engine and the evaluator need from the
// rules side. Implementations mutate in place: every Apply must be paired
// with exactly one Undo, last in first out.
type Position interface {
	// LegalMoves returns the legal moves of the side to move in a fixed
	// order. Repeated calls on the same position return the same order.
	LegalMoves() []Move
	Apply(m Move) error
	Undo() error

	IsCheckmate() bool
	IsStalemate() bool
	IsInsufficientMaterial() bool

	SideToMove() chess.Color
	FullmoveNumber() int
	// MoveCount is the number of legal moves color would have if it were
	// on move in this position.
	MoveCount(c chess.Color) int

	PieceAt(sq chess.Square) chess.Piece
	MirrorSquare(sq chess.Square) chess.Square

	// Key identifies the current position; equal keys mean the same
	// observable state.
	Key() string
	// Clone returns an independent snapshot of the current position that
	// shares no mutable state with the receiver.
	Clone() Position
}
