package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"draughts/config"
	"draughts/engine"
	"draughts/experiments"
	"draughts/msgcat"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	catalog, err := msgcat.New(cfg.MessageDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load message catalog")
	}

	log.Info().Int("games", cfg.Games).Msg("running self-play experiment")

	summary := experiments.RunSelfPlay(experiments.Config{
		Games:      cfg.Games,
		MaxPlies:   cfg.MaxPlies,
		AgentDelay: cfg.AgentDelay,
		Seed:       cfg.Seed,
	}, engine.WithCatalog(catalog))

	log.Info().
		Int("white_wins", summary.Wins["white"]).
		Int("black_wins", summary.Wins["black"]).
		Int("draws", summary.Draws).
		Msg("experiment finished")

	if cfg.MetricsDir != "" {
		writer, err := experiments.NewWriter(cfg.MetricsDir)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create metrics writer")
		}
		if err := writer.WriteGames(summary.Games); err != nil {
			log.Fatal().Err(err).Msg("failed to write game metrics")
		}
		if err := writer.WriteMoves(summary.Moves); err != nil {
			log.Fatal().Err(err).Msg("failed to write move metrics")
		}
		log.Info().Str("dir", writer.Dir()).Msg("metrics written")
	}
}
