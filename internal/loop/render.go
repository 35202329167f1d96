package loop

import (
	"fmt"
	"io"

	"github.com/ThomScottW/particlesim/internal/draw"
	"github.com/ThomScottW/particlesim/internal/physics"
)

const crosshairArm = 6.0 // World units

var cursorColor = draw.RGB{R: 90, G: 220, B: 90}

// drawFrame clears the screen and draws the snapshots, the pick cursor and
// the HUD line.
func drawFrame(w io.Writer, canvas *draw.Canvas, snaps []physics.Snapshot, state *State, title string) {
	draw.ClearScreen(w)
	canvas.Clear()

	for _, snap := range snaps {
		canvas.FillCircle(
			draw.Point{X: snap.Position.X, Y: snap.Position.Y},
			snap.Radius,
			draw.RGB{R: snap.Color.R, G: snap.Color.G, B: snap.Color.B},
		)
	}

	// Tether from the cursor to the held body, so the fling reads visually.
	if state.Grabbed >= 0 && state.Grabbed < len(snaps) {
		held := snaps[state.Grabbed].Position
		canvas.DrawLine(
			draw.Point{X: state.Cursor.X, Y: state.Cursor.Y},
			draw.Point{X: held.X, Y: held.Y},
			draw.White,
		)
	}

	drawCrosshair(canvas, state.Cursor)

	canvas.Render(w)
	drawHUD(w, state, title, len(snaps))
}

// drawCrosshair marks the pick cursor with a small plus.
func drawCrosshair(canvas *draw.Canvas, cursor physics.Vec2) {
	canvas.DrawLine(
		draw.Point{X: cursor.X - crosshairArm, Y: cursor.Y},
		draw.Point{X: cursor.X + crosshairArm, Y: cursor.Y},
		cursorColor,
	)
	canvas.DrawLine(
		draw.Point{X: cursor.X, Y: cursor.Y - crosshairArm},
		draw.Point{X: cursor.X, Y: cursor.Y + crosshairArm},
		cursorColor,
	)
}

// drawHUD writes the status line on the top row.
func drawHUD(w io.Writer, state *State, title string, bodies int) {
	grab := "move: wasd/arrows  grab: space  quit: q"
	if state.Grabbed >= 0 {
		grab = fmt.Sprintf("holding body %d (space or esc drops it)", state.Grabbed)
	}
	draw.MoveCursor(w, 1, 1)
	fmt.Fprintf(w, "\033[2K %s · %d bodies · %s", title, bodies, grab)
}
