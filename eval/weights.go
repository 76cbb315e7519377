package eval

import (
	"fmt"
	"os"
	"strings"

	"github.com/notnil/chess"
	"gopkg.in/yaml.v3"
)

// PieceTable holds a per-square bonus in table units, laid out the way a
// board is drawn from White's side: index 0 is a8, index 63 is h1. Entries
// are integers so table sums are exact; Weights scales the total once.
type PieceTable [64]int

// Weights is the scoring table. It is immutable: the maps are private and
// every constructor builds its own.
type Weights struct {
	material map[chess.PieceType]float64
	tables   map[chess.PieceType]PieceTable
	scale    float64
}

var pieceNames = map[string]chess.PieceType{
	"pawn":   chess.Pawn,
	"knight": chess.Knight,
	"bishop": chess.Bishop,
	"rook":   chess.Rook,
	"queen":  chess.Queen,
	"king":   chess.King,
}

// pieceKinds fixes the order material terms are summed in.
var pieceKinds = []chess.PieceType{chess.Pawn, chess.Knight, chess.Bishop, chess.Rook, chess.Queen, chess.King}

// DefaultTableScale turns centipawn tables into pawn units.
const DefaultTableScale = 0.01

func defaultMaterial() map[chess.PieceType]float64 {
	return map[chess.PieceType]float64{
		chess.Pawn:   1,
		chess.Knight: 3.2,
		chess.Bishop: 3.33,
		chess.Rook:   5.1,
		chess.Queen:  8.8,
	}
}

// MaterialOnly scores piece counts and nothing else.
func MaterialOnly() Weights {
	return Weights{material: defaultMaterial(), tables: map[chess.PieceType]PieceTable{}, scale: DefaultTableScale}
}

// DefaultWeights is material plus centipawn piece-square tables.
func DefaultWeights() Weights {
	w := MaterialOnly()
	for pt, t := range centipawnTables {
		w.tables[pt] = t
	}
	return w
}

// Value is the material value of a piece kind.
func (w Weights) Value(pt chess.PieceType) float64 {
	return w.material[pt]
}

// Entry is the raw table entry for a piece kind at a table index.
func (w Weights) Entry(pt chess.PieceType, idx int) int {
	t, ok := w.tables[pt]
	if !ok {
		return 0
	}
	return t[idx]
}

// Bonus is the scaled positional entry for a piece kind at a table index.
func (w Weights) Bonus(pt chess.PieceType, idx int) float64 {
	return float64(w.Entry(pt, idx)) * w.scale
}

func (w Weights) HasTable(pt chess.PieceType) bool {
	_, ok := w.tables[pt]
	return ok
}

func (w Weights) Scale() float64 {
	return w.scale
}

type weightsFile struct {
	Material map[string]float64 `yaml:"material"`
	Tables   map[string][]int   `yaml:"tables"`
	Scale    float64            `yaml:"scale"`
}

// LoadWeights reads a YAML weight file. Piece kinds missing from the file
// keep their default material value and get no table. Table entries are
// integers multiplied by scale, which defaults to 0.01 (centipawns).
//
//	material: {pawn: 1, knight: 3, bishop: 3, rook: 5, queen: 9}
//	scale: 0.01
//	tables:
//	  knight: [64 values, a8 first]
func LoadWeights(path string) (Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Weights{}, err
	}
	return ParseWeights(data)
}

func ParseWeights(data []byte) (Weights, error) {
	var f weightsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Weights{}, fmt.Errorf("parse weights: %w", err)
	}
	w := MaterialOnly()
	for name, v := range f.Material {
		pt, ok := pieceNames[strings.ToLower(name)]
		if !ok {
			return Weights{}, fmt.Errorf("unknown piece kind %q in material", name)
		}
		w.material[pt] = v
	}
	if f.Scale != 0 {
		w.scale = f.Scale
	}
	for name, vals := range f.Tables {
		pt, ok := pieceNames[strings.ToLower(name)]
		if !ok {
			return Weights{}, fmt.Errorf("unknown piece kind %q in tables", name)
		}
		if len(vals) != 64 {
			return Weights{}, fmt.Errorf("table %s has %d entries, want 64", name, len(vals))
		}
		var t PieceTable
		copy(t[:], vals)
		w.tables[pt] = t
	}
	return w, nil
}

// Centipawn tables after Tomasz Michniewski's simplified evaluation
// function, from White's side, a8 first.
var centipawnTables = map[chess.PieceType]PieceTable{
	chess.Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		50, 50, 50, 50, 50, 50, 50, 50,
		10, 10, 20, 30, 30, 20, 10, 10,
		5, 5, 10, 25, 25, 10, 5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, -5, -10, 0, 0, -10, -5, 5,
		5, 10, 10, -20, -20, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	chess.Knight: {
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	},
	chess.Bishop: {
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	chess.Rook: {
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, 10, 10, 10, 10, 5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		0, 0, 0, 5, 5, 0, 0, 0,
	},
	chess.Queen: {
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		0, 0, 5, 5, 5, 5, 0, -5,
		-10, 5, 5, 5, 5, 5, 0, -10,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
	chess.King: {
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		20, 20, 0, 0, 0, 0, 20, 20,
		20, 30, 10, 0, 0, 10, 30, 20,
	},
}
