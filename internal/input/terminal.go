package input

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/kode4food/flagstaff/pkg/log"
)

type (
	// Terminal is a Source reading key presses from a raw-mode console.
	// Consoles report presses but not releases, so each press holds its
	// key for a fixed duration
	Terminal struct {
		in          io.Reader
		state       *term.State
		held        map[string]time.Time
		now         func() time.Time
		onInterrupt func()
		stop        chan struct{}
		hold        time.Duration
		fd          int
		mu          sync.Mutex
		wg          sync.WaitGroup
	}

	// TerminalOption configures a Terminal
	TerminalOption func(*Terminal)
)

// DefaultHold is how long a console key press is reported as held
const DefaultHold = 150 * time.Millisecond

const ctrlC = 0x03

var ErrNotTerminal = errors.New("input is not a terminal")

var escapeKeys = map[string]string{
	"\x1b[A":  "up arrow",
	"\x1b[B":  "down arrow",
	"\x1b[C":  "right arrow",
	"\x1b[D":  "left arrow",
	"\x1bOA":  "up arrow",
	"\x1bOB":  "down arrow",
	"\x1bOC":  "right arrow",
	"\x1bOD":  "left arrow",
	"\x1b[1~": "home",
	"\x1b[4~": "end",
}

// NewTerminal creates a Terminal reading from in
func NewTerminal(in io.Reader, opts ...TerminalOption) *Terminal {
	t := &Terminal{
		in:   in,
		held: map[string]time.Time{},
		now:  time.Now,
		hold: DefaultHold,
		fd:   -1,
		stop: make(chan struct{}),
	}
	if f, ok := in.(*os.File); ok {
		t.fd = int(f.Fd())
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// WithHold sets how long a press is held
func WithHold(d time.Duration) TerminalOption {
	return func(t *Terminal) {
		t.hold = d
	}
}

// WithClock sets the time source used to expire presses
func WithClock(now func() time.Time) TerminalOption {
	return func(t *Terminal) {
		t.now = now
	}
}

// WithInterrupt sets the function called when Ctrl-C is read. Raw mode
// suppresses the console's own interrupt signal
func WithInterrupt(fn func()) TerminalOption {
	return func(t *Terminal) {
		t.onInterrupt = fn
	}
}

// Start switches the console to raw mode and begins reading keys
func (t *Terminal) Start() error {
	if t.fd < 0 || !term.IsTerminal(t.fd) {
		return ErrNotTerminal
	}
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	t.state = state
	t.wg.Go(t.readLoop)
	return nil
}

// Stop restores the console mode
func (t *Terminal) Stop() error {
	select {
	case <-t.stop:
		return nil
	default:
		close(t.stop)
	}
	if t.state == nil {
		return nil
	}
	if err := term.Restore(t.fd, t.state); err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}
	t.state = nil
	return nil
}

// Snapshot implements Source
func (t *Terminal) Snapshot() Snapshot {
	now := t.now()
	t.mu.Lock()
	defer t.mu.Unlock()

	var keys []string
	for k, until := range t.held {
		if now.Before(until) {
			keys = append(keys, k)
			continue
		}
		delete(t.held, k)
	}
	slices.Sort(keys)
	return Snapshot{Keys: keys}
}

// Feed parses raw console bytes as key presses
func (t *Terminal) Feed(data []byte) {
	for _, key := range t.parse(data) {
		t.press(key)
	}
}

func (t *Terminal) readLoop() {
	buf := make([]byte, 64)
	for {
		n, err := t.in.Read(buf)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				slog.Debug("Terminal read failed", log.Error(err))
			}
			return
		}
		select {
		case <-t.stop:
			return
		default:
		}
		t.Feed(buf[:n])
	}
}

func (t *Terminal) parse(data []byte) []string {
	var res []string
	for i := 0; i < len(data); {
		if data[i] == 0x1b {
			if key, n := matchEscape(data[i:]); n > 0 {
				res = append(res, key)
				i += n
				continue
			}
			i++
			continue
		}

		b := data[i]
		i++
		switch {
		case b == ctrlC:
			if t.onInterrupt != nil {
				t.onInterrupt()
			}
		case b == '\r' || b == '\n':
			res = append(res, "enter")
		case b == ' ':
			res = append(res, "space")
		case b >= 0x21 && b < 0x7f:
			res = append(res, NormalizeKey(string(b)))
		}
	}
	return res
}

func (t *Terminal) press(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.held[key] = t.now().Add(t.hold)
}

func matchEscape(data []byte) (string, int) {
	s := string(data)
	for seq, key := range escapeKeys {
		if strings.HasPrefix(s, seq) {
			return key, len(seq)
		}
	}
	return "", 0
}
