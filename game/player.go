package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/notnil/chess"
	"github.com/samber/lo"

	"negachess/board"
	"negachess/bots"
)

// ErrQuit is returned when a human player leaves the game.
var ErrQuit = errors.New("player quit")

// LineReader is satisfied by *readline.Instance.
type LineReader interface {
	Readline() (string, error)
}

type Player interface {
	Move(ctx context.Context, b *board.ChessBoard) (*chess.Move, error)
	Name() string
}

// HumanPlayer reads moves in algebraic notation (UCI also accepted) until
// one of them is legal.
type HumanPlayer struct {
	In  LineReader
	Out io.Writer
}

func (h *HumanPlayer) Name() string {
	return "Human"
}

func (h *HumanPlayer) Move(ctx context.Context, b *board.ChessBoard) (*chess.Move, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		moves := lo.Map(b.LegalMoves(), func(m board.Move, _ int) string {
			return b.Encode(m.(*chess.Move))
		})
		fmt.Fprintf(h.Out, "Possible moves: %s\n", strings.Join(moves, " "))

		line, err := h.In.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return nil, ErrQuit
		}
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "quit", "exit", "bye":
			return nil, ErrQuit
		}

		m, err := b.ParseMove(line)
		if err != nil {
			fmt.Fprintf(h.Out, "Not a legal move: %v\n", err)
			continue
		}
		return m, nil
	}
}

// BotPlayer announces and plays the move chosen by Bot.
type BotPlayer struct {
	Bot bots.ChessBot
	Out io.Writer
}

func (p *BotPlayer) Name() string {
	return p.Bot.Name()
}

func (p *BotPlayer) Move(ctx context.Context, b *board.ChessBoard) (*chess.Move, error) {
	m, err := p.Bot.BestMove(ctx, b)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(p.Out, "BEST MOVE: %s\n", b.Encode(m))
	return m, nil
}
