// Package game implements the interactive loop: window, input, the current
// scene state and its GPU rendering.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/nightfield/internal/config"
	"github.com/Faultbox/nightfield/internal/engine/debug"
	"github.com/Faultbox/nightfield/internal/engine/input"
	"github.com/Faultbox/nightfield/internal/engine/raster"
	"github.com/Faultbox/nightfield/internal/engine/renderer"
	"github.com/Faultbox/nightfield/internal/engine/window"
	"github.com/Faultbox/nightfield/internal/game/controls"
	"github.com/Faultbox/nightfield/internal/game/states"
	"github.com/Faultbox/nightfield/internal/logger"
)

const (
	screenshotKey = "F12"
	leftButton    = 1
	// maxFrameTime caps dt after stalls such as window drags.
	maxFrameTime = 0.1
)

// Game is the main game instance.
type Game struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	states   *states.Manager
	intents  *controls.Intents
	capture  *debug.Capture
	dragging bool
}

// New opens the window and schedules initial as the first state.
func New(cfg *config.Config, title string, initial states.State) (*Game, error) {
	g := &Game{
		cfg:     cfg,
		log:     logger.Named("game"),
		states:  states.NewManager(),
		intents: controls.NewIntents(),
		capture: debug.NewCapture(cfg.Snapshot.OutputDir, cfg.Scene.Name),
	}
	g.log.Info("initializing game",
		zap.String("scene", cfg.Scene.Name),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	var err error
	g.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    cfg.Graphics.MSAA,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window just created.
	w, h := g.window.Size()
	g.renderer, err = renderer.New(renderer.Config{Width: w, Height: h, VSync: cfg.Graphics.VSync})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.input = input.New()
	g.states.Change(initial)
	return g, nil
}

// Run starts the main loop and returns when the window closes or the quit
// action fires.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	var frameBudget time.Duration
	if g.cfg.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(g.cfg.Graphics.FPSLimit)
	}

	g.log.Info("starting game loop")

	for g.running {
		now := time.Now()
		dt := min(now.Sub(lastTime).Seconds(), maxFrameTime)
		lastTime = now

		if g.input.Update() {
			break
		}
		shot := g.handleEvents()

		if g.intents.JustPressed(controls.Quit) {
			break
		}
		if err := g.states.Update(dt, g.intents); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		g.render()
		if shot {
			g.screenshot()
		}
		g.window.SwapBuffers()
		g.intents.EndFrame()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			if g.cfg.Graphics.ShowFPS {
				g.window.SetTitle(fmt.Sprintf("nightfield - %s - %d fps", g.cfg.Scene.Name, frameCount))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if spent := time.Since(now); spent < frameBudget {
				time.Sleep(frameBudget - spent)
			}
		}
	}

	g.running = false
	return nil
}

// handleEvents feeds this frame's events to the intents and the camera.
// Reports whether a screenshot was requested.
func (g *Game) handleEvents() bool {
	var keys controls.Keymap
	current := g.states.Current()
	if current != nil {
		keys = current.Keys()
	}

	shot := false
	for _, ev := range g.input.Events() {
		switch ev.Type {
		case input.EventWindowResize:
			w, h := g.window.Size()
			g.renderer.Resize(w, h)
		case input.EventFocusLost:
			// Key-up events sent while unfocused never arrive.
			g.intents.Reset()
			g.dragging = false
		case input.EventKeyDown:
			if ev.Repeat {
				continue
			}
			if ev.Key == screenshotKey {
				shot = true
				continue
			}
			keys.Press(g.intents, ev.Key)
		case input.EventKeyUp:
			keys.Release(g.intents, ev.Key)
		case input.EventMouseDown:
			if ev.Button == leftButton {
				g.dragging = true
			}
		case input.EventMouseUp:
			if ev.Button == leftButton {
				g.dragging = false
			}
		case input.EventMouseMove:
			if g.dragging && current != nil {
				current.Drag(ev.DX, ev.DY)
			}
		case input.EventMouseWheel:
			if current != nil {
				current.Zoom(ev.DY)
			}
		}
	}
	return shot
}

func (g *Game) render() {
	current := g.states.Current()
	if current == nil || current.Scene() == nil {
		g.renderer.Begin([3]float32{})
		return
	}
	scene := current.Scene()
	g.renderer.Begin(scene.Background)
	g.renderer.DrawScene(scene, current.Camera())
	for _, l := range current.Overlay() {
		g.renderer.DrawLines(l.Vertices, l.Color)
	}
}

// screenshot redraws the frame offscreen at the snapshot supersample factor
// and filters it down to the window size.
func (g *Game) screenshot() {
	w, h := g.renderer.Size()
	ss := max(g.cfg.Snapshot.Supersample, 1)
	pixels, err := g.renderer.Offscreen(w*ss, h*ss, g.render)
	if err != nil {
		g.log.Error("screenshot failed", zap.Error(err))
		return
	}
	img, err := debug.FlipRows(pixels, w*ss, h*ss)
	if err != nil {
		g.log.Error("screenshot failed", zap.Error(err))
		return
	}
	path, err := g.capture.FromImage(raster.Downsample(img, w, h))
	if err != nil {
		g.log.Error("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path), zap.Int("supersample", ss))
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	if current := g.states.Current(); current != nil {
		if err := current.Exit(); err != nil {
			g.log.Warn("state exit failed", zap.Error(err))
		}
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
