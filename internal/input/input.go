package input

import (
	"bufio"
	"strconv"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// Input is the snapshot of player intent for one frame.
type Input struct {
	Left    bool
	Right   bool
	Fire    bool
	Start   bool
	Restart bool
	Quit    bool
	Pointer Pointer
	Pressed []byte
}

// Pointer is the last mouse report seen this frame. Col and Row are 1-based
// terminal cells; X and Y are logical coordinates filled in by whoever knows
// the mapping from screen to playfield. Click does not set Fire or Start;
// consumers decide whether the pointer is enabled.
type Pointer struct {
	Col, Row int
	X, Y     float64
	Moved    bool
	Click    bool
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	left    time.Time
	right   time.Time
	fire    time.Time
	start   time.Time
	restart time.Time
	quit    time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
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

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 128)}
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool { return s.closed }

// ReadInput drains all available bytes from the stream (non-blocking).
// Keys stay pressed for a short hold window after their last byte so that
// terminal key repeat reads as a held key.
func ReadInput(s *Stream) Input {
	return s.readAt(time.Now())
}

func (s *Stream) readAt(now time.Time) Input {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	ptr := parse(&s.state, buf, now)

	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }
	in := Input{
		Left:    held(s.state.left),
		Right:   held(s.state.right),
		Fire:    held(s.state.fire),
		Start:   held(s.state.start),
		Restart: held(s.state.restart),
		Quit:    held(s.state.quit),
		Pointer: ptr,
		Pressed: buf,
	}
	return in
}

// parse updates key timestamps from raw terminal bytes and returns the last
// mouse report found in buf.
func parse(state *keyState, buf []byte, now time.Time) Pointer {
	var ptr Pointer
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			// CSI sequence: ESC [ <code>
			switch buf[i+2] {
			case 'C': // Right arrow
				state.right = now
				i += 2
				continue
			case 'D': // Left arrow
				state.left = now
				i += 2
				continue
			case 'A', 'B':
				i += 2
				continue
			case '<':
				if n, p, ok := parseMouse(buf[i+3:]); ok {
					i += 2 + n
					if p.Moved {
						p.Click = p.Click || ptr.Click
						ptr = p
					}
					continue
				}
			}
		}

		applyByteToState(state, b, now)
	}
	return ptr
}

// parseMouse decodes the body of an SGR mouse report "b;col;row(M|m)" and
// returns the number of bytes consumed. Wheel reports are consumed but do
// not move the pointer.
func parseMouse(buf []byte) (int, Pointer, bool) {
	var fields [3]int
	field, start := 0, 0
	for i, b := range buf {
		switch {
		case b >= '0' && b <= '9':
			continue
		case b == ';' && field < 2:
			v, err := strconv.Atoi(string(buf[start:i]))
			if err != nil {
				return 0, Pointer{}, false
			}
			fields[field] = v
			field++
			start = i + 1
		case (b == 'M' || b == 'm') && field == 2:
			v, err := strconv.Atoi(string(buf[start:i]))
			if err != nil {
				return 0, Pointer{}, false
			}
			fields[2] = v
			button := fields[0]
			if button >= 64 {
				return i + 1, Pointer{}, true
			}
			p := Pointer{Col: fields[1], Row: fields[2], Moved: true}
			// Left button press without the motion bit.
			p.Click = b == 'M' && button&3 == 0 && button&32 == 0
			return i + 1, p, true
		default:
			return 0, Pointer{}, false
		}
	}
	return 0, Pointer{}, false
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = now
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case ' ', '1':
		state.fire = now
		state.start = now
	case '\n', '\r':
		state.start = now
	case 'r', 'R':
		state.restart = now
	}
}
