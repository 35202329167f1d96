// Package scene builds simulation worlds from YAML scene files or random
// generation. It owns the creation-time coupling between appearance and
// physics: density picks both the mass and the color hint of a body.
package scene

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/ThomScottW/particlesim/internal/physics"
)

// Default world and generation parameters, matching the tuning the
// simulator ships with.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 800.0

	defaultCount      = 10
	defaultMinRadius  = 2.0
	defaultMaxRadius  = 20.0
	defaultMinDensity = 1.0
	defaultMaxDensity = 20.0
	defaultMaxSpeed   = 1.0
)

// BodySpec describes one body in a scene file. Mass is optional: when zero
// it is derived from density and radius.
type BodySpec struct {
	Pos     [2]float64 `yaml:"pos"`
	Radius  float64    `yaml:"radius"`
	Density float64    `yaml:"density"`
	Mass    float64    `yaml:"mass"`
	Angle   float64    `yaml:"angle"`
	Speed   float64    `yaml:"speed"`
}

// RandomSpec asks the builder to fill the scene with randomly generated
// bodies. Zero-valued ranges fall back to the defaults above.
type RandomSpec struct {
	Count      int     `yaml:"count"`
	MinRadius  float64 `yaml:"min_radius"`
	MaxRadius  float64 `yaml:"max_radius"`
	MinDensity float64 `yaml:"min_density"`
	MaxDensity float64 `yaml:"max_density"`
	MaxSpeed   float64 `yaml:"max_speed"`
	Seed       int64   `yaml:"seed"`
}

// Scene is the on-disk description of a world: bounds, coefficients and
// bodies. Zero-valued coefficients take the physics defaults, so a minimal
// scene file only needs to name what it changes.
type Scene struct {
	Name        string      `yaml:"name"`
	Width       float64     `yaml:"width"`
	Height      float64     `yaml:"height"`
	Drag        float64     `yaml:"drag"`
	Elasticity  float64     `yaml:"elasticity"`
	SeekDamping float64     `yaml:"seek_damping"`
	Gravity     float64     `yaml:"gravity"` // downward acceleration per tick
	Bodies      []BodySpec  `yaml:"bodies"`
	Random      *RandomSpec `yaml:"random"`
}

// Default returns the scene used when no file is supplied: the classic
// 800x800 box with ten random particles.
func Default() *Scene {
	return &Scene{
		Name:   "random particles",
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Random: &RandomSpec{Count: defaultCount},
	}
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	return &s, nil
}

// Build validates the scene and constructs the world. Explicit bodies come
// first, in file order, followed by any randomly generated ones.
func (s *Scene) Build() (*physics.World, error) {
	width := s.Width
	if width == 0 {
		width = DefaultWidth
	}
	height := s.Height
	if height == 0 {
		height = DefaultHeight
	}

	cfg := physics.DefaultConfig()
	if s.Drag != 0 {
		cfg.Drag = s.Drag
	}
	if s.Elasticity != 0 {
		cfg.Elasticity = s.Elasticity
	}
	if s.SeekDamping != 0 {
		cfg.SeekDamping = s.SeekDamping
	}
	cfg.Gravity = physics.Vec2{Y: s.Gravity}

	var bodies []*physics.Body
	for i, spec := range s.Bodies {
		b, err := buildBody(spec)
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		bodies = append(bodies, b)
	}

	if s.Random != nil {
		random, err := generate(*s.Random, width, height)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, random...)
	}

	return physics.NewWorld(width, height, bodies, cfg)
}

func buildBody(spec BodySpec) (*physics.Body, error) {
	mass := spec.Mass
	density := spec.Density
	if mass == 0 {
		if density == 0 {
			return nil, fmt.Errorf("scene: body needs a mass or a density")
		}
		mass = physics.MassFromDensity(density, spec.Radius)
	}

	b, err := physics.NewBody(
		physics.Vec2{X: spec.Pos[0], Y: spec.Pos[1]},
		spec.Radius, mass, spec.Angle, spec.Speed,
	)
	if err != nil {
		return nil, err
	}
	b.SetColor(densityColor(density))
	return b, nil
}

// generate fills the scene with random bodies placed fully inside the
// bounds, each with a random heading and a density that drives both mass
// and color.
func generate(spec RandomSpec, width, height float64) ([]*physics.Body, error) {
	if spec.Count < 0 {
		return nil, fmt.Errorf("scene: random count %d, must be >= 0", spec.Count)
	}
	if spec.MinRadius == 0 {
		spec.MinRadius = defaultMinRadius
	}
	if spec.MaxRadius == 0 {
		spec.MaxRadius = defaultMaxRadius
	}
	if spec.MinDensity == 0 {
		spec.MinDensity = defaultMinDensity
	}
	if spec.MaxDensity == 0 {
		spec.MaxDensity = defaultMaxDensity
	}
	if spec.MaxSpeed == 0 {
		spec.MaxSpeed = defaultMaxSpeed
	}
	if spec.MinRadius > spec.MaxRadius {
		return nil, fmt.Errorf("scene: min_radius %v > max_radius %v", spec.MinRadius, spec.MaxRadius)
	}
	if spec.MinDensity > spec.MaxDensity {
		return nil, fmt.Errorf("scene: min_density %v > max_density %v", spec.MinDensity, spec.MaxDensity)
	}

	seed := spec.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	bodies := make([]*physics.Body, 0, spec.Count)
	for i := 0; i < spec.Count; i++ {
		radius := spec.MinRadius + rng.Float64()*(spec.MaxRadius-spec.MinRadius)
		density := spec.MinDensity + rng.Float64()*(spec.MaxDensity-spec.MinDensity)

		pos := physics.Vec2{
			X: radius + rng.Float64()*(width-2*radius),
			Y: radius + rng.Float64()*(height-2*radius),
		}
		angle := rng.Float64() * 2 * math.Pi
		speed := rng.Float64() * spec.MaxSpeed

		b, err := physics.NewBody(pos, radius, physics.MassFromDensity(density, radius), angle, speed)
		if err != nil {
			return nil, fmt.Errorf("scene: generated body %d: %w", i, err)
		}
		b.SetColor(densityColor(density))
		bodies = append(bodies, b)
	}
	return bodies, nil
}

// densityColor maps a density to the body's color hint: denser bodies get
// deeper, more saturated reds.
func densityColor(density float64) physics.Color {
	t := (density - defaultMinDensity) / (defaultMaxDensity - defaultMinDensity)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	c := colorful.Hsv(12, 0.25+0.7*t, 1-0.35*t)
	r, g, b := c.RGB255()
	return physics.Color{R: r, G: g, B: b}
}
