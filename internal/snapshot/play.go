package snapshot

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/nightfield/internal/game/controls"
	"github.com/Faultbox/nightfield/internal/game/states"
	"github.com/Faultbox/nightfield/internal/logger"
)

// Play enters s and runs the script at a fixed dt, feeding keys through the
// state's own keymap. It returns the number of frames advanced after Enter.
func Play(s states.State, sc *Script, dt float64) (int, error) {
	log := logger.Named("snapshot")
	m := states.NewManager()
	in := controls.NewIntents()

	// The first update enters the state without advancing time.
	m.Change(s)
	if err := m.Update(0, in); err != nil {
		return 0, fmt.Errorf("entering state: %w", err)
	}
	in.EndFrame()

	keys := s.Keys()
	frame := 0
	for i, step := range sc.Steps {
		if step.Drag != [2]float32{} {
			s.Drag(step.Drag[0], step.Drag[1])
		}
		if step.Zoom != 0 {
			s.Zoom(step.Zoom)
		}
		for _, k := range step.Keys {
			if _, ok := keys[k]; !ok {
				log.Warn("key not bound in this scene", zap.Int("step", i), zap.String("key", k))
			}
			keys.Press(in, k)
		}
		for n := step.frames(); n > 0; n-- {
			if err := m.Update(dt, in); err != nil {
				return frame, fmt.Errorf("step %d frame %d: %w", i, frame, err)
			}
			in.EndFrame()
			frame++
		}
		for _, k := range step.Keys {
			keys.Release(in, k)
		}
	}
	log.Debug("script finished", zap.Int("frames", frame))
	return frame, nil
}
