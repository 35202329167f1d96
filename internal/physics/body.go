package physics

import "math"

// Color is a presentation hint carried through to snapshots. The core never
// interprets it.
type Color struct {
	R, G, B uint8
}

// Bounds is the rectangular area bodies are confined to. The origin is the
// top-left corner; x grows right and y grows down, matching terminal space.
type Bounds struct {
	Width, Height float64
}

// Body is a circular particle. Velocity is stored canonically as an
// (angle, speed) pair; the vector form is derived on demand and the two
// representations are kept consistent by setVelocity. Mass and radius are
// fixed at construction.
type Body struct {
	pos    Vec2
	angle  float64 // radians, 0 pointing right, positive toward +y
	speed  float64 // always >= 0
	mass   float64
	radius float64
	color  Color
}

// NewBody validates and creates a body. Velocity is given in (angle, speed)
// form. A nil error guarantees the body can be ticked forever without
// faulting.
func NewBody(pos Vec2, radius, mass, angle, speed float64) (*Body, error) {
	if !pos.IsFinite() {
		return nil, invalid("position", "(%v, %v) is not finite", pos.X, pos.Y)
	}
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius <= 0 {
		return nil, invalid("radius", "%v, must be a positive finite number", radius)
	}
	if math.IsNaN(mass) || math.IsInf(mass, 0) || mass <= 0 {
		return nil, invalid("mass", "%v, must be a positive finite number", mass)
	}
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return nil, invalid("angle", "%v is not finite", angle)
	}
	if math.IsNaN(speed) || math.IsInf(speed, 0) || speed < 0 {
		return nil, invalid("speed", "%v, must be finite and >= 0", speed)
	}
	return &Body{pos: pos, angle: angle, speed: speed, mass: mass, radius: radius}, nil
}

// MassFromDensity derives a mass from a density and radius the way the
// scene generator couples appearance to physics: density times circle area.
func MassFromDensity(density, radius float64) float64 {
	return density * math.Pi * radius * radius
}

// Position returns the body's center.
func (b *Body) Position() Vec2 { return b.pos }

// Radius returns the body's radius.
func (b *Body) Radius() float64 { return b.radius }

// Mass returns the body's mass.
func (b *Body) Mass() float64 { return b.mass }

// Angle returns the heading in radians.
func (b *Body) Angle() float64 { return b.angle }

// Speed returns the scalar speed.
func (b *Body) Speed() float64 { return b.speed }

// Color returns the presentation hint.
func (b *Body) Color() Color { return b.color }

// SetColor sets the presentation hint.
func (b *Body) SetColor(c Color) { b.color = c }

// Velocity returns the velocity in vector form, derived from (angle, speed).
func (b *Body) Velocity() Vec2 {
	return Vec2{math.Cos(b.angle) * b.speed, math.Sin(b.angle) * b.speed}
}

// setVelocity replaces the velocity from vector form, recomputing the
// canonical (angle, speed) pair so both representations agree.
func (b *Body) setVelocity(v Vec2) {
	b.speed = v.Magnitude()
	if b.speed > 0 {
		b.angle = math.Atan2(v.Y, v.X)
	}
}

// Step advances the body by one tick: drag first, then the optional gravity
// vector is summed into the velocity, then the position is translated by
// the resulting velocity. dt is one tick.
func (b *Body) Step(cfg Config) {
	b.speed *= cfg.Drag
	if cfg.Gravity != (Vec2{}) {
		b.setVelocity(b.Velocity().Add(cfg.Gravity))
	}
	b.pos = b.pos.Add(b.Velocity())
}

// Seek points the velocity from the current position at target, with speed
// proportional to the remaining distance. The damping factor keeps the body
// trailing behind a moving target, which is what makes dragging feel like a
// fling rather than a snap.
func (b *Body) Seek(target Vec2, damping float64) {
	delta := target.Sub(b.pos)
	b.speed = delta.Magnitude() * damping
	if b.speed > 0 {
		b.angle = math.Atan2(delta.Y, delta.X)
	}
}

// ReflectOffBounds bounces the body off any boundary its leading edge has
// crossed. Each axis is handled independently so a corner hit resolves both
// in the same tick. The overshoot is doubled back inside the bound (the
// bounce happened mid-step, not at the end of it) and elasticity is applied
// to the speed once per reflected axis.
func (b *Body) ReflectOffBounds(bounds Bounds, elasticity float64) {
	if b.pos.X <= b.radius {
		b.angle = math.Pi - b.angle
		b.pos.X += 2 * (b.radius - b.pos.X)
		b.speed *= elasticity
	} else if b.pos.X >= bounds.Width-b.radius {
		b.angle = math.Pi - b.angle
		b.pos.X -= 2 * (b.pos.X + b.radius - bounds.Width)
		b.speed *= elasticity
	}

	if b.pos.Y <= b.radius {
		b.angle = -b.angle
		b.pos.Y += 2 * (b.radius - b.pos.Y)
		b.speed *= elasticity
	} else if b.pos.Y >= bounds.Height-b.radius {
		b.angle = -b.angle
		b.pos.Y -= 2 * (b.pos.Y + b.radius - bounds.Height)
		b.speed *= elasticity
	}
}

// Contains reports whether the point lies inside the body's disk.
func (b *Body) Contains(p Vec2) bool {
	return p.Sub(b.pos).Magnitude() <= b.radius
}
