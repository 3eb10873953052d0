// Package docking drives a trailer toward a truck, blocks moves that would
// push it through the truck, and hitches it automatically once the truck
// is folded and the trailer arrives close enough.
package docking

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	sg "github.com/Faultbox/nightfield/internal/engine/scenegraph"
	"github.com/Faultbox/nightfield/internal/logger"
	"github.com/Faultbox/nightfield/pkg/math"
)

// Direction is a trailer movement intent.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every movement intent in evaluation order.
var Directions = [...]Direction{Up, Down, Left, Right}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// delta is the cargo-frame displacement of one step in direction d.
func (d Direction) delta() math.Vec3 {
	switch d {
	case Up:
		return math.Vec3{X: -1}
	case Down:
		return math.Vec3{X: 1}
	case Left:
		return math.Vec3{Z: 1}
	default:
		return math.Vec3{Z: -1}
	}
}

// State is the docking phase.
type State int

const (
	// Free means the trailer moves at will.
	Free State = iota
	// Colliding means the boxes overlap and at least one direction is blocked.
	Colliding
	// Animating means the trailer is being pulled onto the hitch.
	Animating
	// Connected means the trailer is hitched.
	Connected
)

func (s State) String() string {
	switch s {
	case Free:
		return "free"
	case Colliding:
		return "colliding"
	case Animating:
		return "animating"
	case Connected:
		return "connected"
	default:
		return "unknown"
	}
}

// Body is the truck the trailer docks to.
type Body interface {
	IsTruck() bool
	Node() *sg.Node
}

// Trailer is the moving cargo. Positions are in the cargo's parent frame.
type Trailer interface {
	Node() *sg.Node
	UpdateX(dx float32)
	UpdateZ(dz float32)
	Position() math.Vec3
	SetPosition(p math.Vec3)
	Highlight(on bool)
}

// Config tunes the machine.
type Config struct {
	// Step is the distance moved per frame while a direction is held.
	Step float32
	// Speed is the hitching speed in units per second.
	Speed float32
	// Tolerance is the distance at which hitching snaps onto the target.
	Tolerance float32
	// Target is the hitched cargo position; only X and Z are driven.
	Target math.Vec3
	// MaxApproachX is the cargo X below which a collision with the folded
	// truck starts hitching. Deeper overlaps come from the side or from
	// undocking and never hitch.
	MaxApproachX float32
	// Undock is the only direction accepted while connected.
	Undock Direction
}

// DefaultConfig returns the tuning used by the transformer scene.
func DefaultConfig() Config {
	return Config{
		Step:         0.3,
		Speed:        10,
		Tolerance:    0.2,
		Target:       math.Vec3{X: 20},
		MaxApproachX: 13,
		Undock:       Up,
	}
}

// Machine tracks the docking state of one trailer against one body.
type Machine struct {
	cfg     Config
	body    Body
	trailer Trailer
	log     *zap.Logger

	state   State
	blocked [len(Directions)]bool
	docks   int

	elapsed   float32
	startedAt float32

	bodyBox    math.Box3
	trailerBox math.Box3
}

// New creates a machine in the Free state.
func New(cfg Config, body Body, trailer Trailer) *Machine {
	m := &Machine{
		cfg:     cfg,
		body:    body,
		trailer: trailer,
		log:     logger.Named("docking"),
	}
	m.refreshBoxes()
	return m
}

// State returns the current phase.
func (m *Machine) State() State {
	return m.state
}

// Blocked reports whether moves in d are currently refused.
func (m *Machine) Blocked(d Direction) bool {
	return m.blocked[d]
}

// Docks returns how many times hitching has started.
func (m *Machine) Docks() int {
	return m.docks
}

// Boxes returns the world-space boxes from the last update.
func (m *Machine) Boxes() (body, trailer math.Box3) {
	return m.bodyBox, m.trailerBox
}

// Update advances one frame. held reports which movement intents are
// active; dt is the frame time in seconds. A frame with dt <= 0 moves
// nothing but still re-checks the collision.
func (m *Machine) Update(dt float32, held func(Direction) bool) {
	if dt > 0 {
		m.elapsed += dt
		m.step(dt, held)
	}
	m.refreshBoxes()
	m.resolve()
}

func (m *Machine) step(dt float32, held func(Direction) bool) {
	switch m.state {
	case Animating:
		m.animate(dt)
	case Connected:
		if held(m.cfg.Undock) && !m.blocked[m.cfg.Undock] {
			m.move(m.cfg.Undock)
			m.clearBlocked()
		}
	default:
		moved := false
		for _, d := range Directions {
			if held(d) && !m.blocked[d] {
				m.move(d)
				moved = true
			}
		}
		if moved {
			m.clearBlocked()
		}
	}
}

func (m *Machine) move(d Direction) {
	step := d.delta().Scale(m.cfg.Step)
	if step.X != 0 {
		m.trailer.UpdateX(step.X)
	}
	if step.Z != 0 {
		m.trailer.UpdateZ(step.Z)
	}
}

func (m *Machine) clearBlocked() {
	m.blocked = [len(Directions)]bool{}
}

func (m *Machine) refreshBoxes() {
	m.bodyBox = sg.BoundingBox(m.body.Node())
	m.trailerBox = sg.BoundingBox(m.trailer.Node())
}

func (m *Machine) resolve() {
	if !m.bodyBox.Intersects(m.trailerBox) {
		m.clearBlocked()
		if m.state == Colliding || m.state == Connected {
			m.setState(Free)
		}
		return
	}
	if m.state == Animating {
		return
	}

	d := m.towardBody()
	m.blocked[d] = true
	if m.state == Free {
		m.setState(Colliding)
		m.log.Debug("collision", zap.Stringer("blocked", d))
	}

	if m.state == Colliding && m.body.IsTruck() && m.trailer.Position().X < m.cfg.MaxApproachX {
		m.docks++
		m.startedAt = m.elapsed
		m.trailer.Highlight(true)
		m.setState(Animating)
	}
}

// towardBody returns the direction whose world motion points most directly
// into the body along the axis of least penetration.
func (m *Machine) towardBody() Direction {
	overlap := m.bodyBox.Overlap(m.trailerBox)
	toBody := m.bodyBox.Center().Sub(m.trailerBox.Center())

	var axis math.Vec3
	if overlap.X < overlap.Z {
		axis.X = sign(toBody.X)
	} else {
		axis.Z = sign(toBody.Z)
	}

	frame := math.Identity()
	if p := m.trailer.Node().Parent(); p != nil {
		frame = p.World()
	}

	best, bestDot := Up, math32.Inf(-1)
	for _, d := range Directions {
		dot := frame.TransformDirection(d.delta()).Dot(axis)
		if dot > bestDot {
			best, bestDot = d, dot
		}
	}
	return best
}

func (m *Machine) animate(dt float32) {
	p := m.trailer.Position()
	t := m.cfg.Target
	step := m.cfg.Speed * dt

	// Line up sideways first, then pull straight in.
	switch {
	case math32.Abs(p.Z-t.Z) > m.cfg.Tolerance:
		p.Z = m.approach(p.Z, t.Z, step)
	case math32.Abs(p.X-t.X) > m.cfg.Tolerance:
		p.X = m.approach(p.X, t.X, step)
	default:
		p.X, p.Z = t.X, t.Z
		m.trailer.Highlight(false)
		m.setState(Connected)
		m.log.Info("trailer connected", zap.Float32("seconds", m.elapsed-m.startedAt))
	}
	m.trailer.SetPosition(p)
}

func (m *Machine) approach(from, to, step float32) float32 {
	diff := to - from
	if math32.Abs(diff) <= step {
		from = to
	} else {
		from += sign(diff) * step
	}
	if math32.Abs(to-from) <= m.cfg.Tolerance {
		return to
	}
	return from
}

func (m *Machine) setState(s State) {
	if s == m.state {
		return
	}
	m.log.Debug("state change", zap.Stringer("from", m.state), zap.Stringer("to", s))
	m.state = s
}

func sign(x float32) float32 {
	if x < 0 {
		return -1
	}
	return 1
}
