// Package main is the entry point for the interactive nightfield demo.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/nightfield/internal/config"
	"github.com/Faultbox/nightfield/internal/game"
	"github.com/Faultbox/nightfield/internal/game/states"
	"github.com/Faultbox/nightfield/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.InitWithFileConfig(cfg.Logging.Level, logger.FileConfig{
		Path:       cfg.Logging.LogFile,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	}, true); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== nightfield ===", zap.String("scene", cfg.Scene.Name))
	logger.Sugar.Debugf("Config: %+v", cfg)

	initial, err := newState(cfg)
	if err != nil {
		logger.Error("failed to prepare scene", zap.Error(err))
		os.Exit(1)
	}

	g, err := game.New(cfg, "nightfield - "+cfg.Scene.Name, initial)
	if err != nil {
		logger.Error("failed to create game", zap.Error(err))
		os.Exit(1)
	}
	defer g.Close()

	if err := g.Run(); err != nil {
		logger.Error("game error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("game closed normally")
}

// newState returns the state for the configured scene name.
func newState(cfg *config.Config) (states.State, error) {
	switch cfg.Scene.Name {
	case config.SceneTransformer:
		return states.NewTransformer(cfg)
	default:
		return states.NewNight(cfg)
	}
}
