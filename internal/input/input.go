// Package input reads raw terminal bytes and turns them into per-frame
// input state for the simulation host.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// Input represents the current frame's input state. Left/Right/Up/Down move
// the pick cursor, Grab toggles dragging the body under it.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Grab    bool
	Release bool
	Fast    bool // Cursor moves faster while held
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit    time.Time
	left    time.Time
	right   time.Time
	up      time.Time
	down    time.Time
	grab    time.Time
	release time.Time
	fast    time.Time
}

// Stream delivers input bytes via a channel and tracks key state so held
// keys and combinations survive frame boundaries.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking),
// handles arrow-key escape sequences and builds the frame's input from the
// key state: a key counts as pressed if seen within the hold window.
func ReadInput(s *Stream) Input {
	now := time.Now()
	var buf []byte

	// Drain all available bytes
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
			} else {
				buf = append(buf, b)
			}
		default:
			goto parse
		}
	}

parse:
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code> (arrow keys)
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.up = now
				i += 2
				continue
			case 'B':
				s.state.down = now
				i += 2
				continue
			case 'C':
				s.state.right = now
				i += 2
				continue
			case 'D':
				s.state.left = now
				i += 2
				continue
			}
		}

		applyByteToState(&s.state, b, now)
	}

	return Input{
		// A closed stream (disconnected client) quits too.
		Quit:    s.closed || now.Sub(s.state.quit) < keyHoldDuration,
		Left:    now.Sub(s.state.left) < keyHoldDuration,
		Right:   now.Sub(s.state.right) < keyHoldDuration,
		Up:      now.Sub(s.state.up) < keyHoldDuration,
		Down:    now.Sub(s.state.down) < keyHoldDuration,
		Grab:    now.Sub(s.state.grab) < keyHoldDuration,
		Release: now.Sub(s.state.release) < keyHoldDuration,
		Fast:    now.Sub(s.state.fast) < keyHoldDuration,
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03': // q or ctrl-c
		state.quit = now
	case 'a', 'h':
		state.left = now
	case 'd', 'l':
		state.right = now
	case 'w', 'k':
		state.up = now
	case 's', 'j':
		state.down = now
	case 'A', 'H':
		state.left = now
		state.fast = now
	case 'D', 'L':
		state.right = now
		state.fast = now
	case 'W', 'K':
		state.up = now
		state.fast = now
	case 'S', 'J':
		state.down = now
		state.fast = now
	case ' ', '\n', '\r':
		state.grab = now
	case '\x1b', '\x7f':
		state.release = now
	}
}
