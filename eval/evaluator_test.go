package eval

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"negachess/board"
)

func mustBoard(t *testing.T, fen string) *board.ChessBoard {
	t.Helper()
	b, err := board.FromFEN(fen)
	require.NoError(t, err)
	return b
}

func TestStartingPositionIsLevel(t *testing.T) {
	start := board.NewChessBoard()
	assert.Equal(t, 0.0, New(DefaultWeights()).Evaluate(start))
	assert.Equal(t, 0.0, New(MaterialOnly()).Evaluate(start))
}

func TestCheckmateScoresAsLossForSideToMove(t *testing.T) {
	e := New(DefaultWeights())

	// White is mated despite being up nothing in material.
	foolsMate := mustBoard(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	assert.Equal(t, -MateScore, e.Evaluate(foolsMate))

	// Black is mated on the back rank.
	backRank := mustBoard(t, "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")
	assert.True(t, backRank.IsCheckmate())
	assert.Equal(t, -MateScore, e.Evaluate(backRank))
}

func TestDrawsScoreZero(t *testing.T) {
	e := New(DefaultWeights(), WithTieBreaker(NewJitter(7, 0.1)), WithDevelopment(0.5, 10))

	// White is a queen up, but Black to move has no legal move.
	stalemate := mustBoard(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	assert.Equal(t, 0.0, e.Evaluate(stalemate))

	for _, fen := range []string{
		"8/8/8/4k3/8/8/8/3BK3 w - - 0 1",
		"8/8/8/4k3/8/8/8/3BK3 b - - 0 1",
		"8/8/8/4k3/8/8/8/3NK3 w - - 0 1",
	} {
		assert.Equal(t, 0.0, e.Evaluate(mustBoard(t, fen)), fen)
	}
}

func TestLevelMaterialScoresExactlyZero(t *testing.T) {
	e := New(MaterialOnly())
	for _, fen := range []string{
		// 1.a3 Na6 and 1.Na3 a5: level, but not mirror images
		"r1bqkbnr/pppppppp/n7/8/8/P7/1PPPPPPP/RNBQKBNR w KQkq - 1 2",
		"rnbqkbnr/1ppppppp/8/p7/8/N7/PPPPPPPP/R1BQKBNR w KQkq a6 0 2",
		"r1bqkb1r/pppppppp/2n2n2/8/8/P1N5/1PPPPPPP/R1BQKBNR w KQkq - 1 3",
	} {
		assert.Equal(t, 0.0, e.Evaluate(mustBoard(t, fen)), fen)
		assert.Equal(t, 0.0, e.Material(mustBoard(t, fen)), fen)
	}

	// table units are summed as integers, so equal units cancel exactly
	d := New(DefaultWeights())
	b := mustBoard(t, "rnbqkb1r/pppppppp/5n2/8/8/5N2/PPPPPPPP/RNBQKB1R w KQkq - 2 2")
	assert.Equal(t, 0.0, d.Positional(b))
	assert.Equal(t, 0.0, d.Evaluate(b))
}

func TestWeightsAreIndependent(t *testing.T) {
	a := DefaultWeights()
	delete(a.tables, chess.Pawn)
	a.material[chess.Queen] = 1

	e := New(DefaultWeights())
	assert.True(t, e.Weights().HasTable(chess.Pawn))
	assert.Equal(t, 8.8, e.Weights().Value(chess.Queen))
	assert.True(t, MaterialOnly().Scale() == DefaultTableScale)
}

func TestJitterWithoutSeedStillBounded(t *testing.T) {
	j := NewJitter(0, 0.1)
	for i := 0; i < 20; i++ {
		v := j.Adjust(1)
		assert.GreaterOrEqual(t, v, 0.9)
		assert.Less(t, v, 1.1)
	}
}

func TestScoreIsSideToMoveRelative(t *testing.T) {
	e := New(MaterialOnly())
	white := mustBoard(t, "4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	black := mustBoard(t, "4k3/8/8/8/8/8/8/3QK3 b - - 0 1")

	assert.InDelta(t, 8.8, e.Evaluate(white), 1e-9)
	assert.InDelta(t, -8.8, e.Evaluate(black), 1e-9)
	assert.InDelta(t, 8.8, e.Material(black), 1e-9)
}

func TestMirroredPositionsScoreTheSame(t *testing.T) {
	e := New(DefaultWeights())
	// White pawn on e4 with White to move against its color-flipped twin.
	a := mustBoard(t, "4k3/8/8/8/4P3/8/8/4K3 w - - 0 1")
	b := mustBoard(t, "4k3/8/8/4p3/8/8/8/4K3 b - - 0 1")

	assert.Equal(t, e.Evaluate(a), e.Evaluate(b))
	assert.InDelta(t, 1.2, e.Evaluate(a), 1e-9)
	assert.InDelta(t, 0.2, e.Positional(a), 1e-9)
}

func TestDevelopmentBonus(t *testing.T) {
	plain := New(DefaultWeights())
	dev := New(DefaultWeights(), WithDevelopment(0.1, DefaultDevelopmentMoves))

	start := board.NewChessBoard()
	assert.Equal(t, 0.0, dev.Evaluate(start))

	b := board.NewChessBoard()
	m, err := b.ParseMove("e4")
	require.NoError(t, err)
	require.NoError(t, b.Apply(m))
	// Black to move has 20 moves, White would have 30.
	assert.InDelta(t, plain.Evaluate(b)-1.0, dev.Evaluate(b), 1e-9)

	late := mustBoard(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 12")
	assert.Equal(t, plain.Evaluate(late), dev.Evaluate(late))
}

func TestJitterIsSeeded(t *testing.T) {
	a := NewJitter(42, 0.05)
	b := NewJitter(42, 0.05)
	c := NewJitter(43, 0.05)

	var same, differ int
	for i := 0; i < 50; i++ {
		va, vb, vc := a.Adjust(10), b.Adjust(10), c.Adjust(10)
		assert.Equal(t, va, vb)
		assert.GreaterOrEqual(t, va, 9.5)
		assert.Less(t, va, 10.5)
		if va == vc {
			same++
		} else {
			differ++
		}
	}
	assert.Greater(t, differ, same)
	assert.Equal(t, 3.0, NoTieBreak{}.Adjust(3.0))
}

func TestLoadWeights(t *testing.T) {
	row := strings.Repeat("0, ", 63) + "50"
	doc := "material:\n  pawn: 1\n  queen: 9\nscale: 0.01\ntables:\n  knight: [" + row + "]\n"
	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	w, err := LoadWeights(path)
	require.NoError(t, err)
	assert.Equal(t, 9.0, w.Value(chess.Queen))
	assert.Equal(t, 3.2, w.Value(chess.Knight))
	assert.InDelta(t, 0.5, w.Bonus(chess.Knight, 63), 1e-12)
	assert.Equal(t, 0.0, w.Bonus(chess.Bishop, 0))

	_, err = ParseWeights([]byte("material:\n  dragon: 4\n"))
	assert.Error(t, err)
	_, err = ParseWeights([]byte("tables:\n  rook: [1, 2, 3]\n"))
	assert.Error(t, err)
}
