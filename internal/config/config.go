// Package config handles demo configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Scene names accepted by SceneConfig.Name.
const (
	SceneNight       = "night"
	SceneTransformer = "transformer"
)

// Scenes lists every scene name in the order they are offered.
var Scenes = []string{SceneNight, SceneTransformer}

// ErrUnknownScene is returned when the configured scene does not exist.
var ErrUnknownScene = errors.New("unknown scene")

func knownScene(name string) bool {
	return slices.Contains(Scenes, name)
}

// Config holds all demo settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Controls ControlsConfig `yaml:"controls"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	ShowFPS    bool `yaml:"show_fps"`
	// MSAA is the multisample count of the window back buffer.
	MSAA int `yaml:"msaa"`
}

// SceneConfig selects and seeds the scene.
type SceneConfig struct {
	Name string `yaml:"name"`
	// Seed drives the procedural textures. Equal seeds give equal images.
	Seed uint64 `yaml:"seed"`
	// HeightMap is an optional grayscale image displacing the terrain.
	HeightMap   string  `yaml:"height_map"`
	HeightScale float32 `yaml:"height_scale"`

	Night       NightTuning       `yaml:"night"`
	Transformer TransformerTuning `yaml:"transformer"`
}

// NightTuning holds the ovni flight parameters.
type NightTuning struct {
	DomeRadius float32 `yaml:"dome_radius"`
	// Margin keeps the ovni this far inside the dome.
	Margin       float32 `yaml:"margin"`
	AngularSpeed float32 `yaml:"angular_speed"`
	Speed        float32 `yaml:"speed"`
}

// TransformerTuning holds per-frame joint steps and docking parameters.
type TransformerTuning struct {
	TrailerStep   float32 `yaml:"trailer_step"`
	LegStep       float32 `yaml:"leg_step"`
	FootStep      float32 `yaml:"foot_step"`
	ArmStep       float32 `yaml:"arm_step"`
	HeadStep      float32 `yaml:"head_step"`
	DockSpeed     float32 `yaml:"dock_speed"`
	DockTolerance float32 `yaml:"dock_tolerance"`
	DockX         float32 `yaml:"dock_x"`
	DockZ         float32 `yaml:"dock_z"`
	MaxApproachX  float32 `yaml:"max_approach_x"`
	// StartFolded enters the scene in truck form.
	StartFolded bool `yaml:"start_folded"`
}

// ControlsConfig overrides key bindings. Keys are action names, values are
// key names such as "Left" or "7".
type ControlsConfig struct {
	Bindings map[string]string `yaml:"bindings"`
}

// SnapshotConfig controls the headless renderer.
type SnapshotConfig struct {
	OutputDir   string  `yaml:"output_dir"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Supersample int     `yaml:"supersample"`
	FrameRate   float64 `yaml:"frame_rate"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			MSAA:       4,
		},
		Scene: SceneConfig{
			Name:        SceneNight,
			Seed:        1,
			HeightScale: 5,
			Night: NightTuning{
				DomeRadius:   64,
				Margin:       5,
				AngularSpeed: math.Pi / 2,
				Speed:        20,
			},
			Transformer: TransformerTuning{
				TrailerStep:   0.3,
				LegStep:       0.1,
				FootStep:      0.3,
				ArmStep:       0.3,
				HeadStep:      0.3,
				DockSpeed:     10,
				DockTolerance: 0.2,
				DockX:         20,
				MaxApproachX:  13,
			},
		},
		Snapshot: SnapshotConfig{
			OutputDir:   "snapshots",
			Width:       640,
			Height:      360,
			Supersample: 2,
			FrameRate:   60,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}

// Validate reports settings no component can run with.
func (c *Config) Validate() error {
	if !knownScene(c.Scene.Name) {
		return fmt.Errorf("%w: %q", ErrUnknownScene, c.Scene.Name)
	}
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height)
	}
	if n := c.Scene.Night; n.Margin >= n.DomeRadius {
		return fmt.Errorf("ovni margin %.1f leaves no room inside dome radius %.1f", n.Margin, n.DomeRadius)
	}
	if t := c.Scene.Transformer; t.DockSpeed <= 0 || t.DockTolerance <= 0 {
		return fmt.Errorf("docking speed %.2f and tolerance %.2f must be positive", t.DockSpeed, t.DockTolerance)
	}
	if c.Snapshot.Supersample < 1 {
		return fmt.Errorf("snapshot supersample %d must be at least 1", c.Snapshot.Supersample)
	}
	return nil
}
