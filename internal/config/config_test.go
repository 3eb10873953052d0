package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Scene.Name != SceneNight {
		t.Errorf("expected scene %q, got %q", SceneNight, cfg.Scene.Name)
	}
	if cfg.Scene.HeightScale != 5 {
		t.Errorf("expected height scale 5, got %f", cfg.Scene.HeightScale)
	}
	if cfg.Snapshot.Supersample != 2 {
		t.Errorf("expected supersample 2, got %d", cfg.Snapshot.Supersample)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

scene:
  name: transformer
  seed: 42
  height_map: heights.png
  transformer:
    dock_speed: 15

controls:
  bindings:
    wireframe: "8"

snapshot:
  output_dir: out
  supersample: 3

logging:
  level: "debug"
  log_file: "nightfield.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Scene.Name != SceneTransformer {
		t.Errorf("expected scene transformer, got %s", cfg.Scene.Name)
	}
	if cfg.Scene.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Scene.Seed)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Scene.HeightScale != 5 {
		t.Errorf("expected default height scale 5, got %f", cfg.Scene.HeightScale)
	}
	if cfg.Scene.Transformer.DockSpeed != 15 {
		t.Errorf("expected dock speed 15, got %f", cfg.Scene.Transformer.DockSpeed)
	}
	if cfg.Scene.Transformer.TrailerStep != 0.3 {
		t.Errorf("expected default trailer step 0.3, got %f", cfg.Scene.Transformer.TrailerStep)
	}
	if cfg.Controls.Bindings["wireframe"] != "8" {
		t.Errorf("expected wireframe bound to 8, got %q", cfg.Controls.Bindings["wireframe"])
	}
	if cfg.Snapshot.OutputDir != "out" || cfg.Snapshot.Supersample != 3 {
		t.Errorf("unexpected snapshot config %+v", cfg.Snapshot)
	}
	if cfg.Logging.LogFile != "nightfield.log" {
		t.Errorf("expected log file 'nightfield.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Scene.Name = "daytime"
	if err := cfg.Validate(); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Validate() = %v, want ErrUnknownScene", err)
	}

	cfg = Default()
	cfg.Snapshot.Supersample = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() with supersample 0 = nil, want error")
	}

	cfg = Default()
	cfg.Scene.Night.Margin = cfg.Scene.Night.DomeRadius
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() with margin equal to dome radius = nil, want error")
	}

	cfg = Default()
	cfg.Scene.Transformer.DockSpeed = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() with zero docking speed = nil, want error")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Scene.Name = SceneTransformer
	cfg.Controls.Bindings = map[string]string{"head_up": "G"}

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile() error = %v", err)
	}
	if loaded.Scene.Name != SceneTransformer || loaded.Controls.Bindings["head_up"] != "G" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Graphics.ShowFPS {
					t.Error("expected show_fps to be enabled with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "scene flag",
			setup: func() { *flagScene = SceneTransformer },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.Name != SceneTransformer {
					t.Errorf("expected scene transformer, got %s", cfg.Scene.Name)
				}
			},
			teardown: func() { *flagScene = "" },
		},
		{
			name:  "seed flag",
			setup: func() { *flagSeed = 99 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.Seed != 99 {
					t.Errorf("expected seed 99, got %d", cfg.Scene.Seed)
				}
			},
			teardown: func() { *flagSeed = 0 },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "height map and folded flags",
			setup: func() {
				*flagHeightMap = "hills.png"
				*flagFolded = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.HeightMap != "hills.png" {
					t.Errorf("expected height map hills.png, got %q", cfg.Scene.HeightMap)
				}
				if !cfg.Scene.Transformer.StartFolded {
					t.Error("expected the transformer to start folded")
				}
			},
			teardown: func() {
				*flagHeightMap = ""
				*flagFolded = false
			},
		},
		{
			name: "fullscreen wins over windowed",
			setup: func() {
				*flagFullscreen = true
				*flagWindowed = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen when both flags are set")
				}
			},
			teardown: func() {
				*flagFullscreen = false
				*flagWindowed = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsUnknownScene(t *testing.T) {
	*flagScene = "noon"
	defer func() { *flagScene = "" }()

	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)
	os.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if _, err := Load(); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Load() error = %v, want ErrUnknownScene", err)
	}
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoadFileResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(t.TempDir(), "shots")
	path := writeConfig(t, dir, `
scene:
  height_map: maps/hills.png
snapshot:
  output_dir: `+abs+`
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if want := filepath.Join(dir, "maps", "hills.png"); cfg.Scene.HeightMap != want {
		t.Errorf("height map = %q, want %q", cfg.Scene.HeightMap, want)
	}
	if cfg.Snapshot.OutputDir != abs {
		t.Errorf("absolute output dir rewritten to %q", cfg.Snapshot.OutputDir)
	}
	// Defaults the file does not mention stay relative to the working dir.
	if cfg.Logging.LogFile != "" {
		t.Errorf("log file = %q, want empty", cfg.Logging.LogFile)
	}
}

func TestLoadFileDefaultsKeepWorkingDir(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, t.TempDir(), "graphics:\n  width: 800\n"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Snapshot.OutputDir != "snapshots" {
		t.Errorf("default output dir = %q, want snapshots", cfg.Snapshot.OutputDir)
	}
}

func TestLoadFileSceneName(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, t.TempDir(), "scene:\n  name: \"  Transformer \"\n"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Scene.Name != SceneTransformer {
		t.Errorf("scene = %q, want %q", cfg.Scene.Name, SceneTransformer)
	}

	path := writeConfig(t, t.TempDir(), "scene:\n  name: noon\n")
	_, err = LoadFile(path)
	if !errors.Is(err, ErrUnknownScene) {
		t.Fatalf("LoadFile() error = %v, want ErrUnknownScene", err)
	}
	if !strings.Contains(err.Error(), path) || !strings.Contains(err.Error(), "night, transformer") {
		t.Errorf("error %q should name the file and the known scenes", err)
	}
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	_, err := LoadFile(writeConfig(t, t.TempDir(), "scene:\n  heigth_map: hills.png\n"))
	if err == nil {
		t.Fatal("expected an error for a misspelled key")
	}
	if !strings.Contains(err.Error(), "heigth_map") {
		t.Errorf("error %q should name the key", err)
	}
}

func TestLoadFileEmpty(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, t.TempDir(), ""))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Scene.Name != SceneNight || cfg.Graphics.Width != 1280 {
		t.Errorf("empty file should give defaults, got %+v", cfg)
	}
}

func TestSaveToReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "graphics:\n  width: 800\n")

	cfg := Default()
	cfg.Scene.Transformer.StartFolded = true
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only config.yaml in %s, found %d entries", dir, len(entries))
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o644 {
		t.Errorf("mode = %v, want 0644", perm)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if loaded.Graphics.Width != 1280 || !loaded.Scene.Transformer.StartFolded {
		t.Errorf("saved config not reloaded: %+v", loaded.Graphics)
	}
}
