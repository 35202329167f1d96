package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ThomScottW/particlesim/internal/physics"
)

func TestDefaultSceneBuilds(t *testing.T) {
	w, err := Default().Build()
	require.NoError(t, err)
	require.Equal(t, 10, w.Len())
	require.Equal(t, physics.Bounds{Width: 800, Height: 800}, w.Bounds())
	require.Equal(t, physics.DefaultConfig(), w.Config())
}

func TestGeneratedBodiesStartInBounds(t *testing.T) {
	s := &Scene{
		Width:  400,
		Height: 300,
		Random: &RandomSpec{Count: 50, Seed: 42},
	}
	w, err := s.Build()
	require.NoError(t, err)

	snaps := w.Snapshots(nil)
	require.Len(t, snaps, 50)
	for i, snap := range snaps {
		require.GreaterOrEqual(t, snap.Position.X, snap.Radius, "body %d", i)
		require.LessOrEqual(t, snap.Position.X, 400-snap.Radius, "body %d", i)
		require.GreaterOrEqual(t, snap.Position.Y, snap.Radius, "body %d", i)
		require.LessOrEqual(t, snap.Position.Y, 300-snap.Radius, "body %d", i)
	}
}

func TestSeededGenerationIsReproducible(t *testing.T) {
	mk := func() []physics.Snapshot {
		s := &Scene{Random: &RandomSpec{Count: 20, Seed: 7}}
		w, err := s.Build()
		require.NoError(t, err)
		return w.Snapshots(nil)
	}
	require.Equal(t, mk(), mk())
}

func TestExplicitBodyDensityDerivesMass(t *testing.T) {
	s := &Scene{
		Bodies: []BodySpec{
			{Pos: [2]float64{100, 100}, Radius: 5, Density: 10, Angle: 0, Speed: 1},
		},
	}
	w, err := s.Build()
	require.NoError(t, err)
	require.Equal(t, 1, w.Len())

	snap := w.Snapshots(nil)[0]
	require.Equal(t, physics.Vec2{X: 100, Y: 100}, snap.Position)
	require.NotEqual(t, physics.Color{}, snap.Color)
}

func TestBodyWithoutMassOrDensityRejected(t *testing.T) {
	s := &Scene{
		Bodies: []BodySpec{{Pos: [2]float64{100, 100}, Radius: 5}},
	}
	_, err := s.Build()
	require.Error(t, err)
}

func TestSceneCoefficientsOverrideDefaults(t *testing.T) {
	s := &Scene{
		Drag:        0.95,
		Elasticity:  0.5,
		SeekDamping: 0.2,
		Gravity:     0.002,
	}
	w, err := s.Build()
	require.NoError(t, err)

	cfg := w.Config()
	require.Equal(t, 0.95, cfg.Drag)
	require.Equal(t, 0.5, cfg.Elasticity)
	require.Equal(t, 0.2, cfg.SeekDamping)
	require.Equal(t, physics.Vec2{Y: 0.002}, cfg.Gravity)
}

func TestInvalidCoefficientRejectedAtBuild(t *testing.T) {
	s := &Scene{Drag: 1.5}
	_, err := s.Build()
	var verr *physics.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestLoadSceneFile(t *testing.T) {
	content := `
name: two body head-on
width: 400
height: 200
elasticity: 0.999
bodies:
  - pos: [100, 100]
    radius: 10
    density: 5
    angle: 0
    speed: 1
  - pos: [300, 100]
    radius: 10
    density: 5
    angle: 3.14159
    speed: 1
`
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "two body head-on", s.Name)
	require.Len(t, s.Bodies, 2)

	w, err := s.Build()
	require.NoError(t, err)
	require.Equal(t, 2, w.Len())
	require.Equal(t, 0.999, w.Config().Elasticity)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestRandomRangeValidation(t *testing.T) {
	s := &Scene{Random: &RandomSpec{Count: 5, MinRadius: 30, MaxRadius: 10}}
	_, err := s.Build()
	require.Error(t, err)
}
