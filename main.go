package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"negachess/board"
	"negachess/bots"
	"negachess/config"
	"negachess/game"
)

func setupLogging(debug bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprint(os.Stdout, cfg.Usage())
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "negachess: %v\n\n%s", err, cfg.Usage())
		os.Exit(2)
	}
	setupLogging(cfg.GetBool(config.ConfigDebug))
	log.Debug().Msgf("Loaded config: %v", cfg.SanitizedSettings())

	ev, err := bots.NewEvaluator(cfg.Evaluator())
	if err != nil {
		log.Fatal().Err(err).Msg("")
	}

	engine := bots.NewSearchBot(cfg.Search.Strategy, cfg.Search.MaxDepth, cfg.TimeLimit())
	engine.Threads = cfg.Search.Threads
	engine.Evaluator = ev

	b := board.NewChessBoard()
	if fen := cfg.GetString(config.ConfigFEN); fen != "" {
		b, err = board.FromFEN(fen)
		if err != nil {
			fmt.Fprintf(os.Stderr, "negachess: %v\n", err)
			os.Exit(2)
		}
	}

	var opponent game.Player
	if cfg.HumanOpponent() {
		home, _ := os.UserHomeDir()
		console, err := game.NewConsole(filepath.Join(home, ".negachess_history"))
		if err != nil {
			log.Fatal().Err(err).Msg("")
		}
		defer console.Close()
		opponent = &game.HumanPlayer{In: console, Out: os.Stdout}
	} else {
		bot, err := bots.New(cfg.Opponent, bots.Options{
			Depth:     cfg.Search.MaxDepth,
			Threads:   cfg.Search.Threads,
			TimeLimit: cfg.TimeLimit(),
			Evaluator: ev,
			Seed:      cfg.GetUint64(config.ConfigSeed),
		})
		if err != nil {
			log.Fatal().Err(err).Msg("")
		}
		opponent = &game.BotPlayer{Bot: bot, Out: os.Stdout}
	}

	loop := &game.Loop{Out: os.Stdout, MaxPlies: cfg.GetInt(config.ConfigMaxPlies)}
	ai := &game.BotPlayer{Bot: engine, Out: os.Stdout}
	if cfg.AIColor == chess.White {
		loop.White, loop.Black = ai, opponent
	} else {
		loop.White, loop.Black = opponent, ai
	}
	log.Info().Str("engine", engine.Name()).Str("plays", cfg.AIColor.Name()).Str("opponent", opponent.Name()).Msg("starting-game")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := loop.Run(ctx, b)
	switch {
	case errors.Is(err, game.ErrQuit), errors.Is(err, context.Canceled):
		log.Info().Int("plies", res.Plies).Msg("game-abandoned")
	case err != nil:
		log.Error().Err(err).Msg("game-failed")
		stop()
		os.Exit(1)
	}
}
