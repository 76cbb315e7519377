package board

import "github.com/notnil/chess"

type tally struct {
	pieces  int
	pawns   int
	knights int
	bishops int
	rooks   int
	queens  int
}

// insufficientMaterial reports whether neither side can possibly mate.
func insufficientMaterial(b *chess.Board) bool {
	var (
		count          = map[chess.Color]*tally{chess.White: {}, chess.Black: {}}
		light, dark    bool
		pawns, knights int
	)
	for sq := chess.A1; sq <= chess.H8; sq++ {
		p := b.Piece(sq)
		if p == chess.NoPiece {
			continue
		}
		t := count[p.Color()]
		t.pieces++
		switch p.Type() {
		case chess.Pawn:
			t.pawns++
			pawns++
		case chess.Knight:
			t.knights++
			knights++
		case chess.Bishop:
			t.bishops++
			if (int(sq.File())+int(sq.Rank()))%2 == 0 {
				dark = true
			} else {
				light = true
			}
		case chess.Rook:
			t.rooks++
		case chess.Queen:
			t.queens++
		}
	}

	cannotMate := func(own, opp *tally) bool {
		if own.pawns+own.rooks+own.queens > 0 {
			return false
		}
		if own.knights > 0 {
			// a lone knight only fails against a king that has nothing
			// to block with
			return own.pieces <= 2 && opp.pieces-1-opp.queens == 0
		}
		if own.bishops > 0 {
			return !(light && dark) && pawns == 0 && knights == 0
		}
		return true
	}
	return cannotMate(count[chess.White], count[chess.Black]) &&
		cannotMate(count[chess.Black], count[chess.White])
}
