package physics

import "math"

// Default coefficients, matching the behavior the simulator was tuned with.
const (
	DefaultDrag        = 0.9999
	DefaultElasticity  = 0.8
	DefaultSeekDamping = 0.1
)

// Config holds the energy-loss model and optional gravity. Coefficients are
// validated once at world construction; after that every tick is total.
type Config struct {
	// Drag multiplies speed every tick. 1 means lossless.
	Drag float64
	// Elasticity multiplies speed on every wall bounce and collision.
	Elasticity float64
	// SeekDamping scales the catch-up speed of a dragged body.
	SeekDamping float64
	// Gravity is a constant acceleration vector added to the velocity each
	// tick. Zero disables it. +Y points down.
	Gravity Vec2
}

// DefaultConfig returns the standard coefficients with gravity off.
func DefaultConfig() Config {
	return Config{
		Drag:        DefaultDrag,
		Elasticity:  DefaultElasticity,
		SeekDamping: DefaultSeekDamping,
	}
}

func (c Config) validate() error {
	if math.IsNaN(c.Drag) || c.Drag <= 0 || c.Drag > 1 {
		return invalid("drag", "%v, must be in (0, 1]", c.Drag)
	}
	if math.IsNaN(c.Elasticity) || c.Elasticity <= 0 || c.Elasticity > 1 {
		return invalid("elasticity", "%v, must be in (0, 1]", c.Elasticity)
	}
	if math.IsNaN(c.SeekDamping) || c.SeekDamping <= 0 || c.SeekDamping > 1 {
		return invalid("seek damping", "%v, must be in (0, 1]", c.SeekDamping)
	}
	if !c.Gravity.IsFinite() {
		return invalid("gravity", "(%v, %v) is not finite", c.Gravity.X, c.Gravity.Y)
	}
	return nil
}

// State is the world lifecycle phase.
type State int

const (
	StateIdle    State = iota // constructed, no tick yet
	StateRunning              // ticking
	StateStopped              // terminal, ticks are no-ops
)

// Snapshot is the read-only per-body view handed to the presentation layer
// after a tick.
type Snapshot struct {
	Position Vec2
	Radius   float64
	Color    Color
}

// World owns the body collection and advances the simulation one tick at a
// time. It is single-owner and not safe for concurrent use: the host must
// not read snapshots or supply input while Tick runs.
type World struct {
	bounds Bounds
	cfg    Config
	bodies []*Body
	state  State

	// Per-tick seek input, consumed by the next Tick.
	tracked   int
	target    Vec2
	hasTarget bool
}

// NewWorld validates the bounds and coefficients and takes ownership of the
// bodies. Body order is preserved; it defines handle values and the pairwise
// iteration order, nothing more.
func NewWorld(width, height float64, bodies []*Body, cfg Config) (*World, error) {
	if math.IsNaN(width) || math.IsInf(width, 0) || width <= 0 {
		return nil, invalid("width", "%v, must be a positive finite number", width)
	}
	if math.IsNaN(height) || math.IsInf(height, 0) || height <= 0 {
		return nil, invalid("height", "%v, must be a positive finite number", height)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &World{
		bounds:  Bounds{Width: width, Height: height},
		cfg:     cfg,
		bodies:  bodies,
		tracked: -1,
	}, nil
}

// Bounds returns the world rectangle.
func (w *World) Bounds() Bounds { return w.bounds }

// Config returns the active coefficients.
func (w *World) Config() Config { return w.cfg }

// State returns the lifecycle phase.
func (w *World) State() State { return w.state }

// Len returns the number of bodies.
func (w *World) Len() int { return len(w.bodies) }

// SetTarget supplies the per-tick seek input: on the next Tick the body with
// the given handle steers toward target instead of coasting. The input is
// consumed by that tick; a host dragging a body re-supplies it every frame.
// Out-of-range handles and non-finite targets are ignored.
func (w *World) SetTarget(handle int, target Vec2) {
	if handle < 0 || handle >= len(w.bodies) || !target.IsFinite() {
		return
	}
	w.tracked = handle
	w.target = target
	w.hasTarget = true
}

// ClearTarget discards any pending seek input.
func (w *World) ClearTarget() {
	w.tracked = -1
	w.hasTarget = false
}

// FindBodyAt returns the handle of the first body, in collection order,
// whose disk contains p. It is a read-only query for pointer selection.
func (w *World) FindBodyAt(p Vec2) (int, bool) {
	for i, b := range w.bodies {
		if b.Contains(p) {
			return i, true
		}
	}
	return -1, false
}

// Stop moves the world to its terminal state. Further ticks do nothing.
func (w *World) Stop() {
	w.state = StateStopped
}

// Tick advances the simulation by one step:
//
//  1. pending seek input steers its body (integration still follows),
//  2. every body integrates and reflects off the bounds,
//  3. every unordered pair is resolved exactly once, in index order.
//
// Tick cannot fail on a validly constructed world.
func (w *World) Tick() {
	if w.state == StateStopped {
		return
	}
	w.state = StateRunning

	if w.hasTarget {
		w.bodies[w.tracked].Seek(w.target, w.cfg.SeekDamping)
		w.hasTarget = false
	}

	for _, b := range w.bodies {
		b.Step(w.cfg)
		b.ReflectOffBounds(w.bounds, w.cfg.Elasticity)
	}

	for i := 0; i < len(w.bodies); i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			Resolve(w.bodies[i], w.bodies[j], w.cfg.Elasticity)
		}
	}
}

// Snapshots appends the current per-body views to dst and returns it.
// Passing dst[:0] between frames reuses the backing array.
func (w *World) Snapshots(dst []Snapshot) []Snapshot {
	for _, b := range w.bodies {
		dst = append(dst, Snapshot{Position: b.pos, Radius: b.radius, Color: b.color})
	}
	return dst
}
