// Package input turns raw terminal bytes into discrete key and pointer events.
package input

import (
	"bufio"
	"strconv"
	"time"
)

// escapeTimeout is how long a lone ESC waits for the rest of a sequence
// before it is reported as the Escape key.
const escapeTimeout = 50 * time.Millisecond

// Kind identifies an input event.
type Kind int

const (
	KindKey   Kind = iota // Printable or control key
	KindClick             // Left pointer button pressed
	KindQuit              // q, Q or Ctrl-C
)

// Special key values carried in Event.Key.
const (
	KeySpace  = ' '
	KeyEnter  = '\r'
	KeyEscape = 0x1b
)

// Event is a single edge-triggered input.
type Event struct {
	Kind Kind
	Key  rune // For KindKey
	Col  int  // 1-based pointer column for KindClick
	Row  int  // 1-based pointer row for KindClick
}

// Stream delivers input bytes via a channel and keeps any partial escape
// sequence between reads.
type Stream struct {
	ch        chan byte
	pending   []byte
	pendingAt time.Time
	closed    bool
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

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadEvents drains all available bytes from the stream (non-blocking) and
// parses them into events.
func ReadEvents(s *Stream) []Event {
	buf := s.pending
	s.pending = nil
	stale := len(buf)

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

	events, rest := Parse(buf)
	if len(rest) == 0 {
		return events
	}
	// A partial sequence that stopped growing, or whose reader has ended,
	// will never complete: it was a bare Escape key.
	if s.closed || (stale > 0 && len(buf) == stale && time.Since(s.pendingAt) > escapeTimeout) {
		return append(events, Event{Kind: KindKey, Key: KeyEscape})
	}
	if len(buf) != stale || s.pendingAt.IsZero() {
		s.pendingAt = time.Now()
	}
	s.pending = append([]byte(nil), rest...)
	return events
}

// Parse converts raw bytes into events. Bytes of an escape sequence that is
// not yet complete are returned as rest.
func Parse(buf []byte) (events []Event, rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == 0x1b {
			ev, n, complete := parseEscape(buf[i:])
			if !complete {
				return events, buf[i:]
			}
			if ev != nil {
				events = append(events, *ev)
			}
			i += n - 1
			continue
		}

		switch b {
		case 'q', 'Q', 0x03:
			events = append(events, Event{Kind: KindQuit})
		case '\r', '\n':
			events = append(events, Event{Kind: KindKey, Key: KeyEnter})
		default:
			events = append(events, Event{Kind: KindKey, Key: rune(b)})
		}
	}
	return events, nil
}

// parseEscape parses a sequence starting with ESC. It returns the event (nil
// for sequences that carry nothing the game uses), the number of bytes
// consumed and whether the sequence was complete.
func parseEscape(buf []byte) (*Event, int, bool) {
	if len(buf) == 1 {
		return nil, 0, false
	}
	if buf[1] != '[' {
		// ESC followed by something else: a bare Escape key press.
		return &Event{Kind: KindKey, Key: KeyEscape}, 1, true
	}
	if len(buf) == 2 {
		return nil, 0, false
	}

	if buf[2] == '<' {
		return parseSGRMouse(buf)
	}

	// Other CSI sequence (arrows, function keys): skip to the final byte.
	for j := 2; j < len(buf); j++ {
		if buf[j] >= 0x40 && buf[j] <= 0x7e {
			return nil, j + 1, true
		}
	}
	return nil, 0, false
}

// parseSGRMouse parses "ESC [ < b ; x ; y (M|m)".
func parseSGRMouse(buf []byte) (*Event, int, bool) {
	end := -1
	for j := 3; j < len(buf); j++ {
		if buf[j] == 'M' || buf[j] == 'm' {
			end = j
			break
		}
		if (buf[j] < '0' || buf[j] > '9') && buf[j] != ';' {
			// Malformed; drop what we have.
			return nil, j + 1, true
		}
	}
	if end < 0 {
		return nil, 0, false
	}

	fields := splitFields(buf[3:end])
	if len(fields) != 3 || buf[end] != 'M' {
		return nil, end + 1, true
	}
	button, col, row := fields[0], fields[1], fields[2]

	// Low two bits select the button; 32 is motion, 64 is the wheel.
	if button&3 != 0 || button&(32|64) != 0 {
		return nil, end + 1, true
	}
	return &Event{Kind: KindClick, Col: col, Row: row}, end + 1, true
}

func splitFields(b []byte) []int {
	var out []int
	start := 0
	for i := 0; i <= len(b); i++ {
		if i == len(b) || b[i] == ';' {
			n, err := strconv.Atoi(string(b[start:i]))
			if err != nil {
				return nil
			}
			out = append(out, n)
			start = i + 1
		}
	}
	return out
}
