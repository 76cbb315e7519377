package bots

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"negachess/eval"
)

// EvaluatorConfig describes the evaluator a search bot scores leaves with.
// The zero value is the deterministic default: built-in weights, no noise,
// no development bonus.
type EvaluatorConfig struct {
	// WeightsFile is a YAML weights file; empty means the built-in tables.
	WeightsFile string
	// MaterialOnly drops the positional tables.
	MaterialOnly bool
	// Noise is the jitter scale. Zero disables jitter.
	Noise float64
	Seed  uint64
	// DevelopmentBonus weighs the legal move difference in the opening.
	DevelopmentBonus float64
	DevelopmentMoves int
}

func NewEvaluator(cfg EvaluatorConfig) (*eval.Evaluator, error) {
	w := eval.DefaultWeights()
	switch {
	case cfg.WeightsFile != "":
		var err error
		w, err = eval.LoadWeights(cfg.WeightsFile)
		if err != nil {
			return nil, fmt.Errorf("evaluator weights: %w", err)
		}
	case cfg.MaterialOnly:
		w = eval.MaterialOnly()
	}

	var opts []eval.Option
	if cfg.Noise > 0 {
		opts = append(opts, eval.WithTieBreaker(eval.NewJitter(cfg.Seed, cfg.Noise)))
	}
	if cfg.DevelopmentBonus != 0 {
		moves := cfg.DevelopmentMoves
		if moves <= 0 {
			moves = eval.DefaultDevelopmentMoves
		}
		opts = append(opts, eval.WithDevelopment(cfg.DevelopmentBonus, moves))
	}
	log.Debug().
		Str("weights", cfg.WeightsFile).
		Bool("material-only", cfg.MaterialOnly).
		Float64("noise", cfg.Noise).
		Uint64("seed", cfg.Seed).
		Float64("development-bonus", cfg.DevelopmentBonus).
		Msg("evaluator-config")
	return eval.New(w, opts...), nil
}
