package bots

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"

	"negachess/board"
	"negachess/search"
)

const (
	kiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	backRankFEN = "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1"
	mateFEN     = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func mustBoard(t *testing.T, fen string) *board.ChessBoard {
	t.Helper()
	b, err := board.FromFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestNewByName(t *testing.T) {
	is := is.New(t)

	bot, err := New("PVS", Options{Depth: 3, Threads: 2})
	is.NoErr(err)
	sb, ok := bot.(*SearchBot)
	is.True(ok)
	is.Equal(sb.Strategy, search.PVS)
	is.Equal(sb.Depth, 3)
	is.Equal(sb.Threads, 2)
	is.Equal(bot.Name(), "pvs bot (depth 3)")

	bot, err = New("negascout", Options{Depth: 2})
	is.NoErr(err)
	is.Equal(bot.(*SearchBot).Strategy, search.Scout)

	bot, err = New("random", Options{Seed: 1})
	is.NoErr(err)
	_, ok = bot.(*RandomBot)
	is.True(ok)

	_, err = New("minimax", Options{Depth: 2})
	is.True(errors.Is(err, ErrUnknownBot))

	is.Equal(Names(), []string{"negamax", "negascout", "pvs", "random", "scout", "vps"})
}

func TestSearchBotFindsMate(t *testing.T) {
	is := is.New(t)
	for _, name := range []string{"negamax", "scout", "pvs"} {
		bot, err := New(name, Options{Depth: 2})
		is.NoErr(err)

		b := mustBoard(t, backRankFEN)
		key := b.Key()
		m, err := bot.BestMove(context.Background(), b)
		is.NoErr(err)
		is.Equal(m.String(), "a1a8")
		is.Equal(b.Key(), key) // board untouched
		is.NoErr(b.Apply(m))
		is.True(b.IsCheckmate())
	}
}

func TestSearchBotFallsBackWhenOutOfTime(t *testing.T) {
	is := is.New(t)
	bot := NewSearchBot(search.PVS, 4, time.Nanosecond)
	b := mustBoard(t, kiwipeteFEN)

	m, err := bot.BestMove(context.Background(), b)
	is.NoErr(err)
	_, err = b.ParseMove(m.String())
	is.NoErr(err) // a legal move
}

func TestSearchBotRespectsCallerCancel(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bot := NewSearchBot(search.Negamax, 3, time.Minute)
	_, err := bot.BestMove(ctx, mustBoard(t, kiwipeteFEN))
	is.True(errors.Is(err, context.Canceled))
}

func TestNoMoveInFinishedGame(t *testing.T) {
	is := is.New(t)
	for _, bot := range []ChessBot{NewSearchBot(search.Scout, 2, 0), NewRandomBot(5)} {
		_, err := bot.BestMove(context.Background(), mustBoard(t, mateFEN))
		is.True(errors.Is(err, search.ErrNoLegalMoves))
	}
}

func TestRandomBotIsSeeded(t *testing.T) {
	is := is.New(t)
	play := func(seed uint64) []string {
		bot := NewRandomBot(seed)
		b := board.NewChessBoard()
		var moves []string
		for i := 0; i < 12; i++ {
			m, err := bot.BestMove(context.Background(), b)
			is.NoErr(err)
			is.NoErr(b.Apply(m))
			moves = append(moves, m.String())
		}
		return moves
	}
	is.Equal(play(42), play(42))
	is.True(len(play(0)) == 12)
}

func TestNewEvaluator(t *testing.T) {
	is := is.New(t)
	start := board.NewChessBoard()

	ev, err := NewEvaluator(EvaluatorConfig{})
	is.NoErr(err)
	is.Equal(ev.Evaluate(start), 0.0)

	ev, err = NewEvaluator(EvaluatorConfig{MaterialOnly: true})
	is.NoErr(err)
	is.True(!ev.Weights().HasTable(chess.Pawn))

	dir := t.TempDir()
	path := filepath.Join(dir, "weights.yaml")
	is.NoErr(os.WriteFile(path, []byte("material: {queen: 10}\n"), 0o644))
	ev, err = NewEvaluator(EvaluatorConfig{WeightsFile: path})
	is.NoErr(err)
	is.Equal(ev.Weights().Value(chess.Queen), 10.0)

	_, err = NewEvaluator(EvaluatorConfig{WeightsFile: filepath.Join(dir, "missing.yaml")})
	is.True(err != nil)

	// after 1. e4 White has 30 moves to Black's 20
	is.NoErr(start.Apply(mustMove(t, start, "e4")))
	ev, err = NewEvaluator(EvaluatorConfig{MaterialOnly: true, DevelopmentBonus: 0.1})
	is.NoErr(err)
	is.Equal(ev.Evaluate(start), -1.0)
}

func mustMove(t *testing.T, b *board.ChessBoard, san string) board.Move {
	t.Helper()
	m, err := b.ParseMove(san)
	if err != nil {
		t.Fatal(err)
	}
	return m
}
