package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/notnil/chess"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"negachess/bots"
	"negachess/search"
)

const (
	ConfigDepth            = "depth"
	ConfigStrategy         = "strategy"
	ConfigAIColor          = "ai-color"
	ConfigOpponent         = "opponent"
	ConfigThreads          = "threads"
	ConfigSeed             = "seed"
	ConfigNoise            = "noise"
	ConfigDevelopmentBonus = "development-bonus"
	ConfigWeights          = "weights"
	ConfigMaterialOnly     = "material-only"
	ConfigFEN              = "fen"
	ConfigTimeLimit        = "time-limit"
	ConfigMaxPlies         = "max-plies"
	ConfigDebug            = "debug"
	ConfigConfigFile       = "config"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const humanOpponent = "human"

// Config is the layered settings store: flags over environment
// (NEGACHESS_*) over an optional config file over defaults.
type Config struct {
	*viper.Viper
	flags *pflag.FlagSet

	Search   search.Config
	AIColor  chess.Color
	Opponent string
}

func (c *Config) Load(args []string) error {
	c.Viper = viper.New()

	fs := pflag.NewFlagSet("negachess", pflag.ContinueOnError)
	// the caller prints Usage
	fs.SetOutput(io.Discard)
	fs.Int(ConfigDepth, 3, "search depth in plies")
	fs.String(ConfigStrategy, "negamax", "search strategy: "+strings.Join(search.StrategyNames(), ", "))
	fs.String(ConfigAIColor, "black", "the color the engine plays: white or black")
	fs.String(ConfigOpponent, humanOpponent, "who plays the other side: human, or a bot name ("+strings.Join(bots.Names(), ", ")+")")
	fs.Int(ConfigThreads, 1, "workers for the root move split")
	fs.Uint64(ConfigSeed, 0, "seed for evaluation noise and the random bot; 0 picks one")
	fs.Float64(ConfigNoise, 0, "multiplicative evaluation jitter, e.g. 0.01; 0 disables it")
	fs.Float64(ConfigDevelopmentBonus, 0, "opening bonus per legal move of advantage; 0 disables it")
	fs.String(ConfigWeights, "", "YAML file with material values and piece-square tables")
	fs.Bool(ConfigMaterialOnly, false, "score material only, without piece-square tables")
	fs.String(ConfigFEN, "", "start from this FEN instead of the initial position")
	fs.Duration(ConfigTimeLimit, 0, "per-move search time limit; 0 means none")
	fs.Int(ConfigMaxPlies, 0, "stop the game after this many plies; 0 means no limit")
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigConfigFile, "", "optional YAML config file")
	c.flags = fs

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.SetEnvPrefix("negachess")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if path := c.GetString(ConfigConfigFile); path != "" {
		c.SetConfigFile(path)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return c.validate()
}

func (c *Config) validate() error {
	strategy, err := search.ParseStrategy(c.GetString(ConfigStrategy))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	depth := c.GetInt(ConfigDepth)
	if depth < 1 {
		return fmt.Errorf("%w: %s must be at least 1, got %d", ErrInvalidConfig, ConfigDepth, depth)
	}
	c.Search = search.Config{MaxDepth: depth, Strategy: strategy, Threads: max(1, c.GetInt(ConfigThreads))}

	switch strings.ToLower(c.GetString(ConfigAIColor)) {
	case "white", "w":
		c.AIColor = chess.White
	case "black", "b":
		c.AIColor = chess.Black
	default:
		return fmt.Errorf("%w: %s must be white or black, got %q", ErrInvalidConfig, ConfigAIColor, c.GetString(ConfigAIColor))
	}

	c.Opponent = strings.ToLower(strings.TrimSpace(c.GetString(ConfigOpponent)))
	if c.Opponent != humanOpponent {
		if _, err := bots.New(c.Opponent, bots.Options{Depth: depth}); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, ConfigOpponent, err)
		}
	}
	if c.GetDuration(ConfigTimeLimit) < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, ConfigTimeLimit)
	}
	if c.GetBool(ConfigMaterialOnly) && c.GetString(ConfigWeights) != "" {
		return fmt.Errorf("%w: %s and %s are exclusive", ErrInvalidConfig, ConfigMaterialOnly, ConfigWeights)
	}
	if c.GetFloat64(ConfigNoise) < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, ConfigNoise)
	}
	return nil
}

// HumanOpponent reports whether a person plays against the engine.
func (c *Config) HumanOpponent() bool {
	return c.Opponent == humanOpponent
}

func (c *Config) TimeLimit() time.Duration {
	return c.GetDuration(ConfigTimeLimit)
}

// Evaluator collects the evaluation settings.
func (c *Config) Evaluator() bots.EvaluatorConfig {
	return bots.EvaluatorConfig{
		WeightsFile:      c.GetString(ConfigWeights),
		MaterialOnly:     c.GetBool(ConfigMaterialOnly),
		Noise:            c.GetFloat64(ConfigNoise),
		Seed:             c.GetUint64(ConfigSeed),
		DevelopmentBonus: c.GetFloat64(ConfigDevelopmentBonus),
	}
}

// Usage is the flag summary printed on a configuration error.
func (c *Config) Usage() string {
	if c.flags == nil {
		return ""
	}
	return "Usage of negachess:\n" + c.flags.FlagUsages()
}

// SanitizedSettings is the effective configuration for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
