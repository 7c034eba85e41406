package assert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/flagstaff/internal/config"
	"github.com/kode4food/flagstaff/internal/engine"
	"github.com/kode4food/flagstaff/pkg/api"
)

// Wrapper wraps testify assertions with Flagstaff-specific helpers
type Wrapper struct {
	*testing.T
	*assert.Assertions
	Require *assert.Assertions
}

// DefaultRetryInterval is the default polling interval for Eventually checks
const DefaultRetryInterval = 100 * time.Millisecond

// New creates a new test assertion wrapper with both assert and require from
// testify plus Flagstaff-specific helpers
func New(t *testing.T) *Wrapper {
	return &Wrapper{
		T:          t,
		Assertions: assert.New(t),
		Require:    assert.New(t),
	}
}

// ConfigValid asserts that a configuration is valid
func (w *Wrapper) ConfigValid(cfg *config.Config) {
	w.Helper()
	w.NoError(cfg.Validate())
	w.True(cfg.APIPort > 0 && cfg.APIPort <= config.MaxTCPPort)
	w.True(cfg.FPS > 0)
	w.True(cfg.FrameInterval() > 0)
}

// ConfigInvalid asserts that a configuration is invalid
func (w *Wrapper) ConfigInvalid(cfg *config.Config, contains string) {
	w.Helper()
	err := cfg.Validate()
	w.Error(err)
	if err != nil && contains != "" {
		w.Contains(err.Error(), contains)
	}
}

// SpriteAt asserts the position of a sprite
func (w *Wrapper) SpriteAt(s *engine.Sprite, x, y float64) {
	w.Helper()
	w.InDelta(x, s.X, 1e-9, "x position of %s", s.Name)
	w.InDelta(y, s.Y, 1e-9, "y position of %s", s.Name)
}

// ValueEquals asserts that a Value has the expected kind and display form
func (w *Wrapper) ValueEquals(expected, actual api.Value) {
	w.Helper()
	w.Equal(expected.Kind(), actual.Kind())
	w.Equal(expected.AsString(), actual.AsString())
}

// Queued asserts that a chain is suspended in the engine's wait queue
// exactly once
func (w *Wrapper) Queued(eng *engine.Engine, ch *engine.Chain) {
	w.Helper()
	w.True(eng.Waiting().Contains(ch), "chain %s should be queued", ch.ID())
	count := 0
	for _, c := range eng.Waiting().Chains(eng.World().Sprites()) {
		if c == ch {
			count++
		}
	}
	w.Equal(1, count, "chain %s queued more than once", ch.ID())
}

// NotQueued asserts that a chain is absent from the engine's wait queue
func (w *Wrapper) NotQueued(eng *engine.Engine, ch *engine.Chain) {
	w.Helper()
	w.False(eng.Waiting().Contains(ch), "chain %s should not be queued", ch.ID())
}

// Eventually runs a condition repeatedly until it passes or times out
func (w *Wrapper) Eventually(
	condition func() bool, timeout time.Duration, msg string, args ...any,
) {
	w.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(DefaultRetryInterval)
	}
	w.Fail(msg, args...)
}

// EventuallyWithError runs a condition that returns an error until it succeeds
// or times out
func (w *Wrapper) EventuallyWithError(
	condition func() error, timeout time.Duration, msg string, args ...any,
) {
	w.Helper()
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		err := condition()
		if err == nil {
			return
		}
		lastErr = err
		time.Sleep(DefaultRetryInterval)
	}
	if lastErr != nil {
		w.Fail(msg+": last error: "+lastErr.Error(), args...)
		return
	}
	w.Fail(msg, args...)
}
