// Package controls turns key edges into logical intents. Held intents drive
// continuous motion; one-shot toggles read the press edge so a key held
// through many frames fires once.
package controls

// Action is a logical input such as "move_up" or "wireframe".
type Action string

// Intents records which actions are held and which were pressed since the
// last EndFrame.
type Intents struct {
	held    map[Action]bool
	pressed map[Action]bool
}

// NewIntents creates an empty intent set.
func NewIntents() *Intents {
	return &Intents{
		held:    make(map[Action]bool),
		pressed: make(map[Action]bool),
	}
}

// Press marks a held. Key repeats while already held are not new presses.
func (in *Intents) Press(a Action) {
	if !in.held[a] {
		in.pressed[a] = true
	}
	in.held[a] = true
}

// Release marks a no longer held.
func (in *Intents) Release(a Action) {
	delete(in.held, a)
}

// Held reports whether a is down.
func (in *Intents) Held(a Action) bool {
	return in.held[a]
}

// JustPressed reports whether a went down during the current frame.
func (in *Intents) JustPressed(a Action) bool {
	return in.pressed[a]
}

// EndFrame forgets this frame's press edges. Presses recorded after it
// belong to the next frame.
func (in *Intents) EndFrame() {
	clear(in.pressed)
}

// Reset releases everything, used when focus leaves the window.
func (in *Intents) Reset() {
	clear(in.held)
	clear(in.pressed)
}
