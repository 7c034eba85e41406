package engine_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/kode4food/flagstaff/internal/assert"
	"github.com/kode4food/flagstaff/internal/assert/helpers"
	"github.com/kode4food/flagstaff/internal/engine"
	"github.com/kode4food/flagstaff/pkg/api"
)

type fakeTimer struct {
	mu     sync.Mutex
	ch     chan time.Time
	delays []time.Duration
}

func newFakeTimer() *fakeTimer {
	return &fakeTimer{ch: make(chan time.Time, 1)}
}

func (f *fakeTimer) constructor() engine.TimerConstructor {
	return func(time.Duration) engine.Timer {
		return f
	}
}

func (f *fakeTimer) Channel() <-chan time.Time {
	return f.ch
}

func (f *fakeTimer) Reset(d time.Duration) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delays = append(f.delays, d)
	return true
}

func (f *fakeTimer) Stop() bool {
	return true
}

func (f *fakeTimer) fire() {
	f.ch <- time.Time{}
}

func TestLoopStepClicksFlag(t *testing.T) {
	cat := helpers.NewSprite("Cat")
	helpers.Script(cat, helpers.Do(api.OpWhenFlagClicked),
		helpers.Do(api.OpChangeXBy, helpers.Num("DX", 5)),
	)

	helpers.WithTestEnv(t, helpers.NewProject(cat), func(env *helpers.TestEngineEnv) {
		as := assert.New(t)
		var frames []*api.Frame
		l := engine.NewLoop(env.Engine, engine.RendererFunc(
			func(fr *api.Frame) {
				frames = append(frames, fr)
			},
		))

		l.Step()
		as.SpriteAt(env.Sprite(t, "Cat"), 0, 0)
		l.Step()
		as.SpriteAt(env.Sprite(t, "Cat"), 5, 0)
		l.Step()

		as.Equal(uint64(3), l.Frames())
		as.Require.Len(frames, 3)
		as.Equal(uint64(1), frames[0].Number)
		as.Equal(uint64(3), frames[2].Number)
		as.Len(frames[2].Sprites, 2)
		as.Equal(480.0, frames[2].Width)
	})
}

func TestLoopWithoutGreenFlag(t *testing.T) {
	cat := helpers.NewSprite("Cat")
	helpers.Script(cat, helpers.Do(api.OpWhenFlagClicked),
		helpers.Do(api.OpChangeXBy, helpers.Num("DX", 5)),
	)

	helpers.WithTestEnv(t, helpers.NewProject(cat), func(env *helpers.TestEngineEnv) {
		l := engine.NewLoop(env.Engine, nil, engine.WithoutGreenFlag())
		for range 3 {
			l.Step()
		}
		assert.New(t).SpriteAt(env.Sprite(t, "Cat"), 0, 0)
	})
}

func TestLoopRun(t *testing.T) {
	cat := helpers.NewSprite("Cat")
	helpers.WithTestEnv(t, helpers.NewProject(cat), func(env *helpers.TestEngineEnv) {
		as := assert.New(t)
		timer := newFakeTimer()
		rendered := make(chan uint64, 8)
		l := engine.NewLoop(env.Engine, engine.RendererFunc(
			func(fr *api.Frame) {
				rendered <- fr.Number
			},
		), engine.WithTimer(timer.constructor()))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- l.Run(ctx)
		}()

		for i := range 3 {
			timer.fire()
			as.Equal(uint64(i+1), <-rendered)
		}
		cancel()
		as.ErrorIs(<-done, context.Canceled)

		timer.mu.Lock()
		defer timer.mu.Unlock()
		as.Len(timer.delays, 3)
	})
}

func TestLoopRunStopsWithEngine(t *testing.T) {
	cat := helpers.NewSprite("Cat")
	helpers.WithTestEnv(t, helpers.NewProject(cat), func(env *helpers.TestEngineEnv) {
		as := assert.New(t)
		timer := newFakeTimer()
		l := engine.NewLoop(env.Engine, nil, engine.WithTimer(timer.constructor()))
		as.NoError(env.Engine.Stop())

		timer.fire()
		as.ErrorIs(l.Run(context.Background()), engine.ErrEngineStopped)
	})
}

func TestFrameTimer(t *testing.T) {
	as := assert.New(t)
	timer := engine.NewTimer(time.Millisecond)
	select {
	case <-timer.Channel():
	case <-time.After(time.Second):
		as.Fail("frame timer did not fire")
	}

	as.False(timer.Reset(time.Hour))
	as.True(timer.Stop())
	as.False(timer.Stop())
}

func TestEngineNowFollowsClock(t *testing.T) {
	cat := helpers.NewSprite("Cat")
	helpers.WithTestEnv(t, helpers.NewProject(cat), func(env *helpers.TestEngineEnv) {
		as := assert.New(t)
		start := env.Engine.Now()
		as.Equal(env.Clock.Now(), start)

		env.Ticks(2)
		as.Equal(2*env.Config.FrameInterval(), env.Engine.Now().Sub(start))
	})
}
