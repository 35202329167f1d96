package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func losslessConfig() Config {
	return Config{Drag: 1, Elasticity: 1, SeekDamping: 0.1}
}

func TestNewWorldValidation(t *testing.T) {
	tests := []struct {
		name   string
		width  float64
		height float64
		cfg    Config
	}{
		{"zero width", 0, 800, DefaultConfig()},
		{"negative height", 800, -1, DefaultConfig()},
		{"nan width", math.NaN(), 800, DefaultConfig()},
		{"zero drag", 800, 800, Config{Drag: 0, Elasticity: 1, SeekDamping: 0.1}},
		{"drag above one", 800, 800, Config{Drag: 1.5, Elasticity: 1, SeekDamping: 0.1}},
		{"zero elasticity", 800, 800, Config{Drag: 1, Elasticity: 0, SeekDamping: 0.1}},
		{"negative damping", 800, 800, Config{Drag: 1, Elasticity: 1, SeekDamping: -0.1}},
		{"infinite gravity", 800, 800, Config{Drag: 1, Elasticity: 1, SeekDamping: 0.1, Gravity: Vec2{0, math.Inf(1)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWorld(tt.width, tt.height, nil, tt.cfg)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestWorldStateMachine(t *testing.T) {
	w, err := NewWorld(800, 800, nil, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, StateIdle, w.State())

	w.Tick()
	require.Equal(t, StateRunning, w.State())

	w.Stop()
	require.Equal(t, StateStopped, w.State())
}

func TestTickAfterStopIsNoOp(t *testing.T) {
	b := mustBody(t, Vec2{100, 100}, 5, 1, 0, 3)
	w, err := NewWorld(800, 800, []*Body{b}, losslessConfig())
	require.NoError(t, err)

	w.Stop()
	w.Tick()

	require.Equal(t, Vec2{100, 100}, b.Position())
	require.Equal(t, StateStopped, w.State())
}

func TestTickBoundsContainment(t *testing.T) {
	// A fast body ricocheting for a long time must always end the tick with
	// its center inside [radius, dimension-radius] on both axes.
	angles := []float64{0.3, 1.2, 2.5, -0.7, -2.1}
	for _, angle := range angles {
		b := mustBody(t, Vec2{400, 300}, 10, 1, angle, 35)
		w, err := NewWorld(800, 600, []*Body{b}, losslessConfig())
		require.NoError(t, err)

		for i := 0; i < 1000; i++ {
			w.Tick()
			p := b.Position()
			require.GreaterOrEqual(t, p.X, b.Radius(), "angle %v tick %d", angle, i)
			require.LessOrEqual(t, p.X, 800-b.Radius(), "angle %v tick %d", angle, i)
			require.GreaterOrEqual(t, p.Y, b.Radius(), "angle %v tick %d", angle, i)
			require.LessOrEqual(t, p.Y, 600-b.Radius(), "angle %v tick %d", angle, i)
		}
	}
}

func TestTickIdempotentWhenSettled(t *testing.T) {
	// No overlap, no wall contact, zero velocity, no gravity: ticking must
	// leave every position untouched.
	a := mustBody(t, Vec2{100, 100}, 5, 1, 0, 0)
	b := mustBody(t, Vec2{300, 300}, 8, 2, 0, 0)
	c := mustBody(t, Vec2{500, 200}, 3, 1, 0, 0)
	w, err := NewWorld(800, 800, []*Body{a, b, c}, losslessConfig())
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		w.Tick()
	}

	require.Equal(t, Vec2{100, 100}, a.Position())
	require.Equal(t, Vec2{300, 300}, b.Position())
	require.Equal(t, Vec2{500, 200}, c.Position())
}

func TestTickIsDeterministic(t *testing.T) {
	mk := func() *World {
		a := mustBody(t, Vec2{100, 100}, 10, 2, 0.5, 3)
		b := mustBody(t, Vec2{130, 110}, 12, 3, 2.5, 2)
		c := mustBody(t, Vec2{115, 140}, 8, 1, -1.2, 4)
		w, err := NewWorld(400, 400, []*Body{a, b, c}, DefaultConfig())
		require.NoError(t, err)
		return w
	}

	w1 := mk()
	w2 := mk()
	var s1, s2 []Snapshot
	for i := 0; i < 200; i++ {
		w1.Tick()
		w2.Tick()
	}
	s1 = w1.Snapshots(s1[:0])
	s2 = w2.Snapshots(s2[:0])
	require.Equal(t, s1, s2)
}

func TestTickResolvesPairOverlap(t *testing.T) {
	// Two overlapping bodies placed at rest: after one tick the resolver
	// must have pushed them apart to at least touching distance.
	a := mustBody(t, Vec2{200, 200}, 10, 1, 0, 0)
	b := mustBody(t, Vec2{212, 200}, 10, 1, 0, 0)
	w, err := NewWorld(800, 800, []*Body{a, b}, losslessConfig())
	require.NoError(t, err)

	w.Tick()

	dist := b.Position().Sub(a.Position()).Magnitude()
	require.GreaterOrEqual(t, dist, a.Radius()+b.Radius()-1e-9)
}

func TestFindBodyAt(t *testing.T) {
	a := mustBody(t, Vec2{100, 100}, 10, 1, 0, 0)
	b := mustBody(t, Vec2{105, 100}, 10, 1, 0, 0) // overlaps a
	w, err := NewWorld(800, 800, []*Body{a, b}, DefaultConfig())
	require.NoError(t, err)

	// First body in collection order wins inside the overlap region.
	handle, ok := w.FindBodyAt(Vec2{104, 100})
	require.True(t, ok)
	require.Equal(t, 0, handle)

	// Point only inside b.
	handle, ok = w.FindBodyAt(Vec2{114, 100})
	require.True(t, ok)
	require.Equal(t, 1, handle)

	// Point on the rim counts as inside.
	handle, ok = w.FindBodyAt(Vec2{90, 100})
	require.True(t, ok)
	require.Equal(t, 0, handle)

	_, ok = w.FindBodyAt(Vec2{500, 500})
	require.False(t, ok)
}

func TestSetTargetSeeksTrackedBody(t *testing.T) {
	b := mustBody(t, Vec2{100, 100}, 5, 1, 0, 0)
	w, err := NewWorld(800, 800, []*Body{b}, losslessConfig())
	require.NoError(t, err)

	w.SetTarget(0, Vec2{200, 100})
	w.Tick()

	// Seek sets speed to distance * damping, then integration moves the
	// body by that much toward the target.
	require.InDelta(t, 110.0, b.Position().X, 1e-9)
	require.InDelta(t, 100.0, b.Position().Y, 1e-9)

	// The input was consumed: the next tick coasts instead of re-seeking.
	w.Tick()
	require.InDelta(t, 120.0, b.Position().X, 1e-9)
}

func TestSetTargetInvalidHandleIgnored(t *testing.T) {
	b := mustBody(t, Vec2{100, 100}, 5, 1, 0, 0)
	w, err := NewWorld(800, 800, []*Body{b}, losslessConfig())
	require.NoError(t, err)

	w.SetTarget(5, Vec2{200, 100})
	w.SetTarget(-1, Vec2{200, 100})
	w.SetTarget(0, Vec2{math.NaN(), 100})
	w.Tick()

	require.Equal(t, Vec2{100, 100}, b.Position())
}

func TestClearTargetDropsPendingInput(t *testing.T) {
	b := mustBody(t, Vec2{100, 100}, 5, 1, 0, 0)
	w, err := NewWorld(800, 800, []*Body{b}, losslessConfig())
	require.NoError(t, err)

	w.SetTarget(0, Vec2{200, 100})
	w.ClearTarget()
	w.Tick()

	require.Equal(t, Vec2{100, 100}, b.Position())
}

func TestSnapshotsMatchBodies(t *testing.T) {
	a := mustBody(t, Vec2{100, 100}, 5, 1, 0, 0)
	a.SetColor(Color{R: 255, G: 100, B: 100})
	b := mustBody(t, Vec2{300, 300}, 8, 2, 0, 0)
	w, err := NewWorld(800, 800, []*Body{a, b}, DefaultConfig())
	require.NoError(t, err)

	snaps := w.Snapshots(nil)
	require.Len(t, snaps, 2)
	require.Equal(t, Vec2{100, 100}, snaps[0].Position)
	require.Equal(t, 5.0, snaps[0].Radius)
	require.Equal(t, Color{R: 255, G: 100, B: 100}, snaps[0].Color)
	require.Equal(t, Vec2{300, 300}, snaps[1].Position)
	require.Equal(t, 8.0, snaps[1].Radius)
}
