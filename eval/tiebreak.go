package eval

import (
	"encoding/binary"
	"sync"

	"lukechampine.com/frand"
)

// TieBreaker perturbs a final score. Implementations must be safe for
// concurrent use.
type TieBreaker interface {
	Adjust(score float64) float64
}

// NoTieBreak leaves scores untouched.
type NoTieBreak struct{}

func (NoTieBreak) Adjust(score float64) float64 { return score }

// Jitter scales scores by a factor drawn uniformly from [1-scale, 1+scale).
// Two Jitters built with the same non-zero seed produce the same sequence;
// seed 0 draws a fresh key.
type Jitter struct {
	mu    sync.Mutex
	rng   *frand.RNG
	scale float64
}

func NewJitter(seed uint64, scale float64) *Jitter {
	if seed == 0 {
		return &Jitter{rng: frand.New(), scale: scale}
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	return &Jitter{
		rng:   frand.NewCustom(key[:], 1024, 12),
		scale: scale,
	}
}

func (j *Jitter) Adjust(score float64) float64 {
	j.mu.Lock()
	u := j.rng.Float64()
	j.mu.Unlock()
	return score * (1 + j.scale*(2*u-1))
}
