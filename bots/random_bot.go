package bots

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/notnil/chess"
	"lukechampine.com/frand"

	"negachess/board"
	"negachess/search"
)

// RandomBot plays a uniformly random legal move.
type RandomBot struct {
	mu  sync.Mutex
	rng *frand.RNG
}

// NewRandomBot seeds the bot; bots with the same non-zero seed play the
// same moves.
func NewRandomBot(seed uint64) *RandomBot {
	if seed == 0 {
		return &RandomBot{rng: frand.New()}
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	return &RandomBot{rng: frand.NewCustom(key[:], 1024, 12)}
}

func (b *RandomBot) BestMove(_ context.Context, cb *board.ChessBoard) (*chess.Move, error) {
	moves := cb.LegalMoves()
	if len(moves) == 0 {
		return nil, search.ErrNoLegalMoves
	}
	b.mu.Lock()
	i := b.rng.Intn(len(moves))
	b.mu.Unlock()
	return moves[i].(*chess.Move), nil
}

func (b *RandomBot) Name() string {
	return "Random Bot"
}
