package engine_test

import (
	"testing"
	"time"

	"github.com/kode4food/flagstaff/internal/assert"
	"github.com/kode4food/flagstaff/internal/assert/helpers"
	"github.com/kode4food/flagstaff/internal/engine"
)

func TestSuspensionConstructors(t *testing.T) {
	as := assert.New(t)

	cd := engine.CountDown(3)
	as.Equal(engine.CountingDown, cd.Kind)
	as.Equal(3, cd.Remaining)

	as.Equal(engine.Looping, engine.Looped().Kind)
	as.Equal(engine.AwaitingBody, engine.Body().Kind)

	w := engine.WaiterFunc(func() bool { return true })
	aw := engine.Await(w)
	as.Equal(engine.AwaitingExternal, aw.Kind)
	as.True(aw.Waiter.Ready())

	as.Equal("looping", engine.Looping.String())
	as.Equal("idle", engine.Idle.String())
	as.Equal("unknown", engine.SuspendKind(99).String())
}

func TestUntilFollowsClock(t *testing.T) {
	as := assert.New(t)
	clock := helpers.NewFixedClock()
	w := engine.Until(clock.Now, clock.Now().Add(time.Second))
	as.False(w.Ready())

	clock.Advance(999 * time.Millisecond)
	as.False(w.Ready())

	clock.Advance(time.Millisecond)
	as.True(w.Ready())
}
