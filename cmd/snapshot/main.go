// Package main renders a scene headlessly to a WebP image, optionally after
// replaying a scripted input sequence.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/nightfield/internal/config"
	"github.com/Faultbox/nightfield/internal/engine/debug"
	"github.com/Faultbox/nightfield/internal/engine/raster"
	"github.com/Faultbox/nightfield/internal/engine/texture"
	"github.com/Faultbox/nightfield/internal/game/states"
	"github.com/Faultbox/nightfield/internal/logger"
	"github.com/Faultbox/nightfield/internal/snapshot"
)

var (
	flagScript   = flag.String("script", "", "YAML input script to replay before rendering")
	flagOut      = flag.String("out", "", "Output file (default: timestamped name in the snapshot dir)")
	flagTextures = flag.Bool("textures", false, "Write the procedural textures and exit")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("snapshot failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if *flagTextures {
		return writeTextures(cfg)
	}

	script := &snapshot.Script{}
	if *flagScript != "" {
		sc, err := snapshot.Load(*flagScript)
		if err != nil {
			return fmt.Errorf("loading script: %w", err)
		}
		script = sc
	}
	if script.Scene != "" {
		cfg.Scene.Name = script.Scene
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("script scene: %w", err)
		}
	}

	var s states.State
	var err error
	switch cfg.Scene.Name {
	case config.SceneTransformer:
		s, err = states.NewTransformer(cfg)
	default:
		s, err = states.NewNight(cfg)
	}
	if err != nil {
		return err
	}

	rate := cfg.Snapshot.FrameRate
	if rate <= 0 {
		rate = 60
	}
	frames, err := snapshot.Play(s, script, 1/rate)
	if err != nil {
		return err
	}

	start := time.Now()
	opts := raster.Options{
		Width:       cfg.Snapshot.Width,
		Height:      cfg.Snapshot.Height,
		Supersample: cfg.Snapshot.Supersample,
	}
	img := raster.Render(s.Scene(), s.Camera(), opts)

	path := *flagOut
	if path == "" && script.Output != "" {
		path = filepath.Join(cfg.Snapshot.OutputDir, script.Output)
	}
	if path == "" {
		path = debug.NewCapture(cfg.Snapshot.OutputDir, cfg.Scene.Name).Filename()
	}
	if err := debug.WriteWebP(path, img); err != nil {
		return err
	}

	logger.Info("snapshot written",
		zap.String("path", path),
		zap.String("scene", cfg.Scene.Name),
		zap.Int("frames", frames),
		zap.Duration("render", time.Since(start)),
	)
	return nil
}

// writeTextures dumps the procedural textures with the seeds the night
// scene uses.
func writeTextures(cfg *config.Config) error {
	seed := cfg.Scene.Seed
	textures := []struct {
		name string
		img  image.Image
	}{
		{"floral_field.webp", texture.FloralField(seed)},
		{"starry_sky.webp", texture.StarrySky(seed + 1)},
	}
	for _, tex := range textures {
		path := filepath.Join(cfg.Snapshot.OutputDir, tex.name)
		if err := debug.WriteWebP(path, tex.img); err != nil {
			return fmt.Errorf("%s: %w", tex.name, err)
		}
		logger.Info("texture written", zap.String("path", path))
	}
	return nil
}
