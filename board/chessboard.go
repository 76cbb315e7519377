package board

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/notnil/chess"
)

var (
	ErrUndoEmpty       = errors.New("undo without a matching apply")
	ErrIllegalMove     = errors.New("move is not legal in this position")
	ErrForeignMove     = errors.New("move was not produced by a chess board")
	ErrUnparseableMove = errors.New("cannot parse move")
)

// ChessBoard adapts notnil/chess to Position. Positions from the library are
// immutable, so apply pushes the successor and undo pops it.
type ChessBoard struct {
	stack []*chess.Position
}

func NewChessBoard() *ChessBoard {
	return &ChessBoard{stack: []*chess.Position{chess.StartingPosition()}}
}

// FromFEN builds a board from a FEN record.
func FromFEN(fen string) (*ChessBoard, error) {
	opt, err := chess.FEN(strings.TrimSpace(fen))
	if err != nil {
		return nil, fmt.Errorf("decode fen %q: %w", fen, err)
	}
	return &ChessBoard{stack: []*chess.Position{chess.NewGame(opt).Position()}}, nil
}

func (b *ChessBoard) top() *chess.Position {
	return b.stack[len(b.stack)-1]
}

// Position returns the current library position. Callers must not hold it
// across Apply/Undo.
func (b *ChessBoard) Position() *chess.Position {
	return b.top()
}

// Ply is the number of applied moves not yet undone.
func (b *ChessBoard) Ply() int {
	return len(b.stack) - 1
}

// LegalMoves returns the legal moves in ascending order of their UCI text
// (a2a3 before a2a4 before b1a3), independent of the library's generation
// order.
func (b *ChessBoard) LegalMoves() []Move {
	valid := b.top().ValidMoves()
	moves := make([]Move, len(valid))
	for i, m := range valid {
		moves[i] = m
	}
	sortMoves(moves)
	return moves
}

func sortMoves(moves []Move) {
	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].String() < moves[j].String()
	})
}

func (b *ChessBoard) legal(m *chess.Move) (*chess.Move, bool) {
	for _, v := range b.top().ValidMoves() {
		if v == m || (v.S1() == m.S1() && v.S2() == m.S2() && v.Promo() == m.Promo()) {
			return v, true
		}
	}
	return nil, false
}

func (b *ChessBoard) Apply(m Move) error {
	cm, ok := m.(*chess.Move)
	if !ok {
		return fmt.Errorf("%w: %T", ErrForeignMove, m)
	}
	lm, ok := b.legal(cm)
	if !ok {
		return fmt.Errorf("%w: %s in %s", ErrIllegalMove, cm, b.FEN())
	}
	b.stack = append(b.stack, b.top().Update(lm))
	return nil
}

func (b *ChessBoard) Undo() error {
	if len(b.stack) < 2 {
		return ErrUndoEmpty
	}
	b.stack[len(b.stack)-1] = nil
	b.stack = b.stack[:len(b.stack)-1]
	return nil
}

func (b *ChessBoard) IsCheckmate() bool {
	return b.top().Status() == chess.Checkmate
}

func (b *ChessBoard) IsStalemate() bool {
	return b.top().Status() == chess.Stalemate
}

func (b *ChessBoard) IsInsufficientMaterial() bool {
	return insufficientMaterial(b.top().Board())
}

func (b *ChessBoard) SideToMove() chess.Color {
	return b.top().Turn()
}

func (b *ChessBoard) FullmoveNumber() int {
	fields := strings.Fields(b.FEN())
	if len(fields) < 6 {
		return 1
	}
	n, err := strconv.Atoi(fields[5])
	if err != nil {
		return 1
	}
	return n
}

func (b *ChessBoard) MoveCount(c chess.Color) int {
	if c == b.SideToMove() {
		return len(b.top().ValidMoves())
	}
	fields := strings.Fields(b.FEN())
	if len(fields) < 4 {
		return 0
	}
	fields[1] = "w"
	if c == chess.Black {
		fields[1] = "b"
	}
	// the en passant target belongs to the real side to move
	fields[3] = "-"
	opt, err := chess.FEN(strings.Join(fields, " "))
	if err != nil {
		return 0
	}
	return len(chess.NewGame(opt).Position().ValidMoves())
}

func (b *ChessBoard) PieceAt(sq chess.Square) chess.Piece {
	return b.top().Board().Piece(sq)
}

// MirrorSquare flips the rank: a1 <-> a8, e2 <-> e7.
func (b *ChessBoard) MirrorSquare(sq chess.Square) chess.Square {
	return Mirror(sq)
}

func Mirror(sq chess.Square) chess.Square {
	return chess.Square(int(sq) ^ 56)
}

func (b *ChessBoard) Key() string {
	return b.FEN()
}

func (b *ChessBoard) FEN() string {
	return b.top().String()
}

// Clone returns a board holding only the current position, decoded afresh
// so no library position is shared with b.
func (b *ChessBoard) Clone() Position {
	return b.Snapshot()
}

func (b *ChessBoard) Snapshot() *ChessBoard {
	c, err := FromFEN(b.FEN())
	if err != nil {
		// the FEN came from the library itself
		panic(err)
	}
	return c
}

// Outcome reports the result of the current position if it is terminal.
func (b *ChessBoard) Outcome() (chess.Outcome, chess.Method) {
	switch {
	case b.IsCheckmate():
		if b.SideToMove() == chess.White {
			return chess.BlackWon, chess.Checkmate
		}
		return chess.WhiteWon, chess.Checkmate
	case b.IsStalemate():
		return chess.Draw, chess.Stalemate
	case b.IsInsufficientMaterial():
		return chess.Draw, chess.InsufficientMaterial
	}
	return chess.NoOutcome, chess.NoMethod
}

var uciMove = regexp.MustCompile(`^[a-h][1-8][a-h][1-8][qrbn]?$`)

// ParseMove reads a move in UCI coordinates or standard algebraic notation
// and returns the matching legal move. Coordinate text is never read as
// SAN: the SAN decoder would take "g1f3" for the pawn move f3.
func (b *ChessBoard) ParseMove(text string) (*chess.Move, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty input", ErrUnparseableMove)
	}

	var m *chess.Move
	if uciMove.MatchString(text) {
		um, err := chess.UCINotation{}.Decode(b.top(), text)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnparseableMove, text)
		}
		m = um
	} else {
		sm, err := chess.AlgebraicNotation{}.Decode(b.top(), text)
		// the decoder is lenient; only take moves that encode back to the input
		if err != nil || stripCheck(chess.AlgebraicNotation{}.Encode(b.top(), sm)) != stripCheck(text) {
			return nil, fmt.Errorf("%w: %q", ErrUnparseableMove, text)
		}
		m = sm
	}

	lm, ok := b.legal(m)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrIllegalMove, text)
	}
	return lm, nil
}

func stripCheck(san string) string {
	return strings.TrimRight(san, "+#")
}

// Encode renders m in standard algebraic notation for the current position.
func (b *ChessBoard) Encode(m *chess.Move) string {
	return chess.AlgebraicNotation{}.Encode(b.top(), m)
}

func (b *ChessBoard) Draw() string {
	return b.top().Board().Draw()
}
