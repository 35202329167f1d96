// Package draw renders the simulation to a terminal using half-block
// characters, giving 2x vertical resolution and 24-bit color per sub-pixel.
package draw

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// Point represents a 2D coordinate in logical (world) space.
type Point struct {
	X, Y float64
}

// RGB is a 24-bit terminal color.
type RGB struct {
	R, G, B uint8
}

// White is the default foreground for overlays and cursors.
var White = RGB{R: 255, G: 255, B: 255}

// Block characters for half-block rendering.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

type pixel struct {
	on    bool
	color RGB
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block
// characters, scaled from logical world coordinates to terminal cells.
// Each sub-pixel carries its own color; a cell with both sub-pixels lit is
// rendered as an upper-half block with separate foreground and background.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []pixel // Flat slice: [y * termWidth + x]

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area inside a larger terminal.
	offsetCol int
	offsetRow int

	renderBuf strings.Builder // Reused between frames
}

// NewCanvas creates a canvas that scales from logical world coordinates to
// terminal cells. logicalWidth/Height are the world dimensions used by the
// simulation; termWidth/Height are the actual terminal dimensions.
func NewCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	subPixelHeight := termHeight * 2
	return &Canvas{
		termWidth:      termWidth,
		termHeight:     termHeight,
		subPixelHeight: subPixelHeight,
		pixels:         make([]pixel, subPixelHeight*termWidth),
		logicalWidth:   logicalWidth,
		logicalHeight:  logicalHeight,
		scaleX:         float64(termWidth) / logicalWidth,
		scaleY:         float64(subPixelHeight) / logicalHeight,
	}
}

// Resize updates the canvas for new terminal dimensions while keeping the
// logical world size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]pixel, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel lights a pixel at terminal sub-pixel coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, color RGB) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = pixel{on: true, color: color}
	}
}

// SetFloat lights a pixel at logical coordinates (applies scaling).
func (c *Canvas) SetFloat(x, y float64, color RGB) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	c.setPixel(px, py, color)
}

// FillCircle rasterises a filled circle given in logical coordinates.
// The inside test runs per sub-pixel in logical space, so circles stay
// round even though terminal cells are not square.
func (c *Canvas) FillCircle(center Point, radius float64, color RGB) {
	pxMin := int(math.Floor((center.X - radius) * c.scaleX))
	pxMax := int(math.Ceil((center.X + radius) * c.scaleX))
	pyMin := int(math.Floor((center.Y - radius) * c.scaleY))
	pyMax := int(math.Ceil((center.Y + radius) * c.scaleY))

	r2 := radius * radius
	for py := pyMin; py <= pyMax; py++ {
		ly := (float64(py) + 0.5) / c.scaleY
		dy := ly - center.Y
		for px := pxMin; px <= pxMax; px++ {
			lx := (float64(px) + 0.5) / c.scaleX
			dx := lx - center.X
			if dx*dx+dy*dy <= r2 {
				c.setPixel(px, py, color)
			}
		}
	}
}

// DrawLine draws a line between two logical points using Bresenham's
// algorithm in sub-pixel space.
func (c *Canvas) DrawLine(p1, p2 Point, color RGB) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, color)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network
// flow. 1400 bytes stays under typical MTU size for smooth SSH transmission.
const maxChunkSize = 1400

// Render outputs the canvas to the writer using colored half-block
// characters. Every emitted cell resets the SGR state so overlays drawn
// afterwards start clean.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 24) // Estimate ~24 bytes per lit cell

	for row := 0; row < c.termHeight; row++ {
		topY := row * 2
		bottomY := row*2 + 1
		topOffset := topY * c.termWidth
		bottomOffset := bottomY * c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			var bottom pixel
			if bottomY < c.subPixelHeight {
				bottom = c.pixels[bottomOffset+col]
			}
			if !top.on && !bottom.on {
				continue // Skip empty cells
			}

			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, col+1+c.offsetCol)
			switch {
			case top.on && bottom.on:
				fmt.Fprintf(&c.renderBuf, "\033[38;2;%d;%d;%dm\033[48;2;%d;%d;%dm%c\033[0m",
					top.color.R, top.color.G, top.color.B,
					bottom.color.R, bottom.color.G, bottom.color.B,
					BlockUpperHalf)
			case top.on:
				fmt.Fprintf(&c.renderBuf, "\033[38;2;%d;%d;%dm%c\033[0m",
					top.color.R, top.color.G, top.color.B, BlockUpperHalf)
			default:
				fmt.Fprintf(&c.renderBuf, "\033[38;2;%d;%d;%dm%c\033[0m",
					bottom.color.R, bottom.color.G, bottom.color.B, BlockLowerHalf)
			}
		}
	}

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

// LogicalWidth returns the logical world width.
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical world height.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based terminal
// position, for placing text overlays next to canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1 + c.offsetCol, py/2 + 1 + c.offsetRow
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
