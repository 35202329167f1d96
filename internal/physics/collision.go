package physics

// Overlap returns how deeply two bodies interpenetrate: the sum of their
// radii minus the distance between centers. Positive means colliding.
func Overlap(a, b *Body) float64 {
	return a.radius + b.radius - a.pos.Sub(b.pos).Magnitude()
}

// Resolve detects and resolves a collision between two bodies. It is a
// no-op unless the bodies overlap. The exchange happens only along the
// collision normal: velocities are decomposed into normal and tangential
// components, the normal components are run through the 1-D elastic
// collision formula for unequal masses, and the tangential components pass
// through untouched (frictionless, non-rotating disks). Elasticity is then
// applied to both resulting speeds, and the bodies are pushed apart along
// the normal so they separate by exactly the overlap amount.
//
// The effect is symmetric in argument order.
func Resolve(a, b *Body, elasticity float64) {
	overlap := Overlap(a, b)
	if overlap <= 0 {
		return
	}

	// Coincident centers leave the normal undefined; fall back to the x
	// axis instead of letting the division-by-zero escape.
	normal, err := a.pos.Sub(b.pos).Unit()
	if err != nil {
		normal = Vec2{X: 1}
	}
	tangent := normal.Perp()

	v1 := a.Velocity()
	v2 := b.Velocity()

	n1 := v1.Dot(normal)
	t1 := v1.Dot(tangent)
	n2 := v2.Dot(normal)
	t2 := v2.Dot(tangent)

	m1 := a.mass
	m2 := b.mass
	n1After := (n1*(m1-m2) + 2*m2*n2) / (m1 + m2)
	n2After := (n2*(m2-m1) + 2*m1*n1) / (m1 + m2)

	a.setVelocity(normal.Scale(n1After).Add(tangent.Scale(t1)))
	b.setVelocity(normal.Scale(n2After).Add(tangent.Scale(t2)))

	// Energy loss in the collision itself, on top of the exact exchange.
	a.speed *= elasticity
	b.speed *= elasticity

	// Split the positional correction evenly so the total separation added
	// equals the overlap; without this, bodies that interpenetrate between
	// ticks stick together.
	half := normal.Scale(overlap / 2)
	a.pos = a.pos.Add(half)
	b.pos = b.pos.Sub(half)
}
