package loop

import (
	"github.com/ThomScottW/particlesim/internal/input"
	"github.com/ThomScottW/particlesim/internal/physics"
)

// Cursor speed in world units per frame.
const (
	cursorSpeed     = 3.0
	cursorFastSpeed = 9.0
)

// State holds the host-side session state: the pick cursor, the grabbed
// body handle and the previous frame's grab key for edge detection. The
// simulation itself lives in the world.
type State struct {
	Cursor   physics.Vec2
	Grabbed  int // body handle, -1 when nothing is held
	Running  bool
	prevGrab bool
}

// NewState creates session state with the cursor centered in the world.
func NewState(bounds physics.Bounds) *State {
	return &State{
		Cursor:  physics.Vec2{X: bounds.Width / 2, Y: bounds.Height / 2},
		Grabbed: -1,
		Running: true,
	}
}

// applyInput moves the cursor, toggles grabbing and feeds the per-tick seek
// target to the world. Called once per frame before the tick.
func (s *State) applyInput(inp input.Input, world *physics.World) {
	if inp.Quit {
		s.Running = false
		return
	}

	speed := cursorSpeed
	if inp.Fast {
		speed = cursorFastSpeed
	}
	if inp.Left {
		s.Cursor.X -= speed
	}
	if inp.Right {
		s.Cursor.X += speed
	}
	if inp.Up {
		s.Cursor.Y -= speed
	}
	if inp.Down {
		s.Cursor.Y += speed
	}
	s.Cursor = clampToBounds(s.Cursor, world.Bounds())

	// Toggle on the rising edge so a held key doesn't flap grab/release.
	if inp.Grab && !s.prevGrab {
		if s.Grabbed >= 0 {
			s.Grabbed = -1
			world.ClearTarget()
		} else if handle, ok := world.FindBodyAt(s.Cursor); ok {
			s.Grabbed = handle
		}
	}
	s.prevGrab = inp.Grab

	if inp.Release && s.Grabbed >= 0 {
		s.Grabbed = -1
		world.ClearTarget()
	}

	if s.Grabbed >= 0 {
		world.SetTarget(s.Grabbed, s.Cursor)
	}
}

func clampToBounds(p physics.Vec2, b physics.Bounds) physics.Vec2 {
	if p.X < 0 {
		p.X = 0
	}
	if p.X > b.Width {
		p.X = b.Width
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.Y > b.Height {
		p.Y = b.Height
	}
	return p
}
