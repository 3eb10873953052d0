// Package states implements the scene states the demo runs and the manager
// that switches between them.
package states

import (
	"github.com/Faultbox/nightfield/internal/engine/camera"
	sg "github.com/Faultbox/nightfield/internal/engine/scenegraph"
	"github.com/Faultbox/nightfield/internal/game/controls"
)

// Lines is an unlit overlay drawn on top of the scene.
type Lines struct {
	Vertices []float32 // xyz pairs, one segment per two vertices
	Color    [3]float32
}

// State is a runnable scene.
type State interface {
	// Enter is called when entering this state.
	Enter() error

	// Exit is called when leaving this state.
	Exit() error

	// Update advances one frame with the intents held this frame.
	Update(dt float64, in *controls.Intents) error

	// Keys returns the layout that feeds this state's intents.
	Keys() controls.Keymap

	// Drag and Zoom forward pointer motion to the camera.
	Drag(dx, dy float32)
	Zoom(delta float32)

	Scene() *sg.Scene
	Camera() camera.Camera
	Overlay() []Lines
}

// Manager manages state transitions.
type Manager struct {
	current State
	next    State
}

// NewManager creates a new state manager.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the current state.
func (m *Manager) Current() State {
	return m.current
}

// Change schedules a state change for the next Update.
func (m *Manager) Change(next State) {
	m.next = next
}

// Update processes state changes and updates current state.
func (m *Manager) Update(dt float64, in *controls.Intents) error {
	if m.next != nil {
		if m.current != nil {
			if err := m.current.Exit(); err != nil {
				return err
			}
		}
		m.current = m.next
		m.next = nil
		// Keys held in the previous state must not leak into the new one.
		in.Reset()
		if err := m.current.Enter(); err != nil {
			return err
		}
	}

	if m.current != nil {
		return m.current.Update(dt, in)
	}
	return nil
}
