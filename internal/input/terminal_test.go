package input_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/flagstaff/internal/input"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func TestTerminalFeed(t *testing.T) {
	clk := &fakeClock{now: time.Unix(1000, 0)}
	term := input.NewTerminal(&bytes.Buffer{},
		input.WithClock(clk.Now),
		input.WithHold(100*time.Millisecond),
	)

	term.Feed([]byte("a \x1b[A\r"))
	assert.Equal(t,
		[]string{"a", "enter", "space", "up arrow"},
		term.Snapshot().Keys,
	)

	clk.now = clk.now.Add(150 * time.Millisecond)
	assert.Empty(t, term.Snapshot().Keys)
}

func TestTerminalUppercase(t *testing.T) {
	term := input.NewTerminal(&bytes.Buffer{})
	term.Feed([]byte("Q"))
	assert.True(t, term.Snapshot().KeyDown("q"))
}

func TestTerminalInterrupt(t *testing.T) {
	interrupted := false
	term := input.NewTerminal(&bytes.Buffer{},
		input.WithInterrupt(func() { interrupted = true }),
	)
	term.Feed([]byte{0x03})
	assert.True(t, interrupted)
	assert.Empty(t, term.Snapshot().Keys)
}

func TestTerminalStartRequiresConsole(t *testing.T) {
	term := input.NewTerminal(&bytes.Buffer{})
	assert.ErrorIs(t, term.Start(), input.ErrNotTerminal)
	assert.NoError(t, term.Stop())
}
