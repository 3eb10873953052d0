package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging and the FPS counter")

	flagScene     = flag.String("scene", "", "Scene to run (night, transformer)")
	flagSeed      = flag.Uint64("seed", 0, "Seed for procedural textures")
	flagHeightMap = flag.String("heightmap", "", "Grayscale image displacing the terrain")
	flagFolded    = flag.Bool("folded", false, "Start the transformer in truck form")

	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies command-line overrides. Flags left at their zero
// value keep the configured setting.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Graphics.ShowFPS = true
	}

	if *flagScene != "" {
		cfg.Scene.Name = *flagScene
	}
	if *flagSeed != 0 {
		cfg.Scene.Seed = *flagSeed
	}
	if *flagHeightMap != "" {
		cfg.Scene.HeightMap = *flagHeightMap
	}
	if *flagFolded {
		cfg.Scene.Transformer.StartFolded = true
	}

	switch {
	case *flagFullscreen:
		cfg.Graphics.Fullscreen = true
	case *flagWindowed:
		cfg.Graphics.Fullscreen = false
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
