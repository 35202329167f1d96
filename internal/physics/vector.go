// Package physics implements the discrete-time particle simulation core:
// 2D vector algebra, per-tick body integration, pairwise elastic collision
// resolution and boundary reflection. It exposes plain data only; rendering
// and input live in the host packages.
package physics

import "math"

// Vec2 is an immutable 2D vector. Every operation returns a new value.
type Vec2 struct {
	X, Y float64
}

// Add returns the component-wise sum of v and o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns the component-wise difference v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v multiplied by the scalar k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{v.X * k, v.Y * k}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Magnitude returns the length of v.
func (v Vec2) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

// Unit returns the vector of length 1 pointing in the direction of v.
// A zero vector has no direction; callers must guard for ErrZeroVector.
func (v Vec2) Unit() (Vec2, error) {
	m := v.Magnitude()
	if m == 0 {
		return Vec2{}, ErrZeroVector
	}
	return Vec2{v.X / m, v.Y / m}, nil
}

// Perp returns the counter-clockwise perpendicular of v (the tangent
// direction when v is a collision normal).
func (v Vec2) Perp() Vec2 {
	return Vec2{-v.Y, v.X}
}

// IsFinite reports whether both components are finite numbers.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
