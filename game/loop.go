package game

import (
	"context"
	"fmt"
	"io"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"

	"negachess/board"
)

// Loop alternates the two players until the game is over.
type Loop struct {
	White Player
	Black Player
	Out   io.Writer
	// MaxPlies stops the game after that many moves; zero means no limit.
	MaxPlies int
}

type Result struct {
	Outcome chess.Outcome
	Method  chess.Method
	Plies   int
}

func (l *Loop) player(c chess.Color) Player {
	if c == chess.White {
		return l.White
	}
	return l.Black
}

// Run plays on b from its current position. It returns the outcome when the
// position is checkmate, stalemate or a dead draw, and NoOutcome when the
// ply limit is hit. A player error (ErrQuit included) ends the game.
func (l *Loop) Run(ctx context.Context, b *board.ChessBoard) (Result, error) {
	plies := 0
	for {
		fmt.Fprintln(l.Out, b.Draw())

		if outcome, method := b.Outcome(); outcome != chess.NoOutcome {
			fmt.Fprintf(l.Out, "Game over: %s by %s\n", outcome, method)
			log.Info().Str("outcome", string(outcome)).Str("method", method.String()).Int("plies", plies).Msg("game-over")
			return Result{Outcome: outcome, Method: method, Plies: plies}, nil
		}
		if l.MaxPlies > 0 && plies >= l.MaxPlies {
			fmt.Fprintf(l.Out, "Stopping after %d plies\n", plies)
			return Result{Outcome: chess.NoOutcome, Method: chess.NoMethod, Plies: plies}, nil
		}

		side := b.SideToMove()
		p := l.player(side)
		fmt.Fprintf(l.Out, "%s to move (%s)\n", side.Name(), p.Name())

		m, err := p.Move(ctx, b)
		if err != nil {
			return Result{Outcome: chess.NoOutcome, Method: chess.NoMethod, Plies: plies}, err
		}
		san := b.Encode(m)
		if err := b.Apply(m); err != nil {
			return Result{Outcome: chess.NoOutcome, Method: chess.NoMethod, Plies: plies}, fmt.Errorf("%s played %s: %w", p.Name(), m, err)
		}
		plies++
		log.Debug().Str("player", p.Name()).Str("move", san).Int("ply", plies).Msg("move-played")
	}
}
