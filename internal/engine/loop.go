package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/kode4food/flagstaff/pkg/api"
	"github.com/kode4food/flagstaff/pkg/log"
)

type (
	// Clock reads the current time. The sensing timer, timed waits, glides
	// and say durations all read it, so tests can step time by hand
	Clock func() time.Time

	// Timer gates the Loop between frames. Reset is called once per frame
	// with the time left until the next one
	Timer interface {
		Channel() <-chan time.Time
		Reset(delay time.Duration) bool
		Stop() bool
	}

	// TimerConstructor creates the Loop's frame Timer, first firing after
	// delay
	TimerConstructor func(delay time.Duration) Timer

	frameTimer struct {
		t *time.Timer
	}

	// Renderer presents one frame. It is called from the loop goroutine
	// once per tick and must not block
	Renderer interface {
		RenderFrame(*api.Frame)
	}

	// RendererFunc adapts a function to the Renderer interface
	RendererFunc func(*api.Frame)

	// Loop drives an Engine at its configured frame rate: each frame it
	// ticks the engine, updates audio, and renders the result
	Loop struct {
		engine    *Engine
		renderer  Renderer
		newTimer  TimerConstructor
		greenFlag bool
		frames    uint64
	}

	// LoopOption configures a Loop
	LoopOption func(*Loop)
)

// NewLoop creates a Loop for the engine. A nil renderer discards frames
func NewLoop(e *Engine, r Renderer, opts ...LoopOption) *Loop {
	if r == nil {
		r = RendererFunc(func(*api.Frame) {})
	}
	l := &Loop{
		engine:    e,
		renderer:  r,
		newTimer:  NewTimer,
		greenFlag: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// WithTimer replaces the frame timer constructor
func WithTimer(fn TimerConstructor) LoopOption {
	return func(l *Loop) {
		l.newTimer = fn
	}
}

// WithoutGreenFlag keeps the loop from clicking the green flag after the
// first frame
func WithoutGreenFlag() LoopOption {
	return func(l *Loop) {
		l.greenFlag = false
	}
}

// RenderFrame implements Renderer
func (f RendererFunc) RenderFrame(fr *api.Frame) {
	f(fr)
}

// Step runs a single frame
func (l *Loop) Step() {
	e := l.engine
	e.Tick()
	e.sounds.Update()
	if fr := e.LastFrame(); fr != nil {
		l.renderer.RenderFrame(fr)
	}
	l.frames++
	if l.frames == 1 && l.greenFlag {
		e.GreenFlag()
	}
}

// Run steps the engine once per frame interval until the context is done
// or the engine is stopped
func (l *Loop) Run(ctx context.Context) error {
	e := l.engine
	interval := e.config.FrameInterval()
	next := e.clock()
	t := l.newTimer(0)
	defer t.Stop()

	slog.Info("Loop started",
		slog.Int("fps", e.config.FPS),
		slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			slog.Info("Loop stopped", log.Frame(e.FrameNumber()))
			return ctx.Err()

		case <-t.Channel():
			if e.Stopped() {
				return ErrEngineStopped
			}
			l.Step()
			next = next.Add(interval)
			now := e.clock()
			if next.Before(now) {
				next = now
			}
			t.Reset(next.Sub(now))
		}
	}
}

// Frames returns the number of frames stepped
func (l *Loop) Frames() uint64 {
	return l.frames
}

// NewTimer creates a frame Timer on the runtime's timer wheel
func NewTimer(delay time.Duration) Timer {
	return frameTimer{t: time.NewTimer(delay)}
}

func (f frameTimer) Channel() <-chan time.Time {
	return f.t.C
}

func (f frameTimer) Reset(delay time.Duration) bool {
	return f.t.Reset(delay)
}

func (f frameTimer) Stop() bool {
	return f.t.Stop()
}
