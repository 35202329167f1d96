// Package loop runs the interactive host around the simulation: it reads
// input, supplies the per-tick seek target, advances the world and draws
// the resulting snapshots. The physics core never sees the terminal.
package loop

import (
	"bufio"
	"io"
	"time"

	"github.com/ThomScottW/particlesim/internal/draw"
	"github.com/ThomScottW/particlesim/internal/input"
	"github.com/ThomScottW/particlesim/internal/physics"
)

const targetFPS = 60
const targetFrameTime = time.Second / targetFPS

// Options configures a session.
type Options struct {
	// TermSizeFunc reports the terminal size each frame. Defaults to the
	// local stdout terminal; the SSH server supplies a per-session tracker.
	TermSizeFunc draw.TermSizeFunc
	// Title is shown in the HUD.
	Title string
}

// Run drives the Input → Tick → Draw cycle at a fixed frame rate until the
// user quits or the input stream closes. It owns the world for the duration
// of the session and stops it on the way out.
func Run(r *bufio.Reader, w io.Writer, world *physics.World, opts Options) error {
	sizeFunc := opts.TermSizeFunc
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}

	stream := input.StartStream(r)
	state := NewState(world.Bounds())

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	defer world.Stop()
	draw.ClearScreen(w)

	termWidth, termHeight, err := sizeFunc()
	if err != nil {
		return err
	}
	bounds := world.Bounds()
	canvas := draw.NewCanvas(termWidth, termHeight-1, bounds.Width, bounds.Height)
	canvas.SetOffset(0, 1) // Row 1 is the HUD

	var snaps []physics.Snapshot

	for state.Running {
		frameStart := time.Now()

		// ===== INPUT PHASE =====
		inp := input.ReadInput(stream)
		state.applyInput(inp, world)

		// ===== UPDATE PHASE =====
		if tw, th, err := sizeFunc(); err == nil && (tw != termWidth || th != termHeight) {
			termWidth, termHeight = tw, th
			canvas.Resize(termWidth, termHeight-1)
			draw.ClearScreen(w)
		}
		world.Tick()
		snaps = world.Snapshots(snaps[:0])

		// ===== DRAW PHASE =====
		drawFrame(w, canvas, snaps, state, opts.Title)

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < targetFrameTime {
			time.Sleep(targetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(w)
	return nil
}
