package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/kode4food/flagstaff/internal/audio"
	"github.com/kode4food/flagstaff/internal/config"
	"github.com/kode4food/flagstaff/internal/input"
	"github.com/kode4food/flagstaff/pkg/api"
	"github.com/kode4food/flagstaff/pkg/log"
	"github.com/kode4food/flagstaff/pkg/util"
)

type (
	// Engine runs one loaded project. Tick and every method that changes
	// world state must be called from the goroutine driving the engine;
	// other goroutines use Post, Subscribe, Status and LastFrame
	Engine struct {
		config     *config.Config
		world      *World
		waiting    *WaitQueue
		dispatcher *Dispatcher
		handlers   Registry
		sounds     *SoundManager
		inbox      *Inbox
		notify     *Notifier
		input      input.Source
		cloud      CloudStore
		clock      Clock
		rand       *rand.Rand
		unknown    util.Set[api.Opcode]
		starts     []*Chain
		questions  []*question
		drag       *drag
		timerStart time.Time
		answer     string
		keys       input.Snapshot
		frame      uint64
		status     atomic.Pointer[api.EngineStatus]
		last       atomic.Pointer[api.Frame]
		stopped    atomic.Bool
	}

	// Dependencies are the collaborators an Engine consumes. Nil members
	// are replaced with headless defaults
	Dependencies struct {
		Audio    audio.Player
		Input    input.Source
		Assets   Assets
		Cloud    CloudStore
		Clock    Clock
		Rand     *rand.Rand
		Handlers Registry
	}

	// Assets provides costume and sound bytes by their md5ext file name
	Assets interface {
		Asset(name string) ([]byte, bool)
	}

	// CloudStore receives cloud variable writes. Implementations must not
	// block
	CloudStore interface {
		Set(name string, value api.Value)
	}

	noAssets struct{}
)

var (
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrInvalidProject = errors.New("invalid project")
	ErrNoTargets      = errors.New("project has no targets")
	ErrEngineStopped  = errors.New("engine stopped")
)

// New creates an Engine for the project, building one sprite per target
func New(cfg *config.Config, proj *api.Project, deps Dependencies) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if proj == nil {
		return nil, ErrInvalidProject
	}
	if len(proj.Targets) == 0 {
		return nil, ErrNoTargets
	}

	deps = deps.withDefaults(cfg)
	e := &Engine{
		config:     cfg,
		world:      NewWorld(float64(cfg.StageWidth), float64(cfg.StageHeight)),
		waiting:    NewWaitQueue(),
		dispatcher: NewDispatcher(),
		handlers:   deps.Handlers,
		inbox:      NewInbox(),
		notify:     NewNotifier(),
		input:      deps.Input,
		cloud:      deps.Cloud,
		clock:      deps.Clock,
		rand:       deps.Rand,
		unknown:    util.Set[api.Opcode]{},
	}
	e.sounds = NewSoundManager(deps.Audio, deps.Assets, cfg.TrackCacheSize)
	e.timerStart = e.clock()

	if proj.Stage() == nil {
		e.world.Add(newSprite(newProgram(&api.Target{
			Name:    "Stage",
			IsStage: true,
			Visible: true,
		}, e.handlers)))
	}
	for _, t := range proj.Targets {
		e.world.Add(newSprite(newProgram(t, e.handlers)))
	}
	e.world.sortLayers()

	if !deps.Audio.Init() {
		slog.Warn("Audio backend unavailable")
	}
	e.snapshot()
	return e, nil
}

func (d Dependencies) withDefaults(cfg *config.Config) Dependencies {
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.Audio == nil {
		d.Audio = audio.NewMixer(audio.Clock(d.Clock))
	}
	if d.Input == nil {
		d.Input = input.None{}
	}
	if d.Assets == nil {
		d.Assets = noAssets{}
	}
	if d.Rand == nil {
		seed := uint64(d.Clock().UnixNano())
		d.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	reg := DefaultRegistry()
	for op, h := range d.Handlers {
		reg.Register(op, h)
	}
	d.Handlers = reg
	return d
}

// World returns the sprite collection
func (e *Engine) World() *World {
	return e.world
}

// Waiting returns the queue of suspended chains
func (e *Engine) Waiting() *WaitQueue {
	return e.waiting
}

// Dispatcher returns the pending trigger collection
func (e *Engine) Dispatcher() *Dispatcher {
	return e.dispatcher
}

// Config returns the engine configuration
func (e *Engine) Config() *config.Config {
	return e.config
}

// FrameNumber returns the number of ticks run so far
func (e *Engine) FrameNumber() uint64 {
	return e.frame
}

// Post delivers a message to the engine from any goroutine
func (e *Engine) Post(m Message) {
	if e.stopped.Load() {
		return
	}
	e.inbox.Post(m)
}

// GreenFlag stops everything, resets the timer, and starts the flag hats
// on the next dispatch
func (e *Engine) GreenFlag() {
	e.StopAll()
	e.timerStart = e.clock()
	e.dispatcher.Enqueue(Trigger{Opcode: api.OpWhenFlagClicked})
	e.publish(&api.Event{Type: api.EventTypeGreenFlag})
}

// Broadcast raises a named broadcast, returning the ticket that reports
// when the chains it starts have finished
func (e *Engine) Broadcast(name string) *Ticket {
	slog.Debug("Broadcast raised", log.Broadcast(name))
	return e.dispatcher.Enqueue(Trigger{
		Opcode: api.OpWhenBroadcastReceived,
		Match:  name,
	})
}

// StopAll halts every chain, deletes all clones, stops all sounds and
// drops pending triggers and questions
func (e *Engine) StopAll() {
	for _, s := range e.world.Sprites() {
		for _, ch := range s.chains {
			e.halt(ch)
		}
		s.Bubble = Bubble{}
		if s.IsClone {
			e.deleteClone(s)
		}
	}
	e.waiting.Clear()
	e.dispatcher.Clear()
	e.starts = nil
	e.questions = nil
	e.drag = nil
	e.sounds.StopAll()
	e.publish(&api.Event{Type: api.EventTypeStopAll})
}

// Stop halts the project and releases the engine's topics. A stopped
// engine ignores further ticks and posts
func (e *Engine) Stop() error {
	if !e.stopped.CompareAndSwap(false, true) {
		return ErrEngineStopped
	}
	e.StopAll()
	e.world.Sweep()
	e.snapshot()
	e.inbox.Close()
	e.notify.Close()
	slog.Info("Engine stopped", log.Frame(e.frame))
	return nil
}

// Stopped reports whether Stop has been called
func (e *Engine) Stopped() bool {
	return e.stopped.Load()
}

// Timer returns the seconds elapsed since the timer was last reset
func (e *Engine) Timer() float64 {
	return e.clock().Sub(e.timerStart).Seconds()
}

// ResetTimer restarts the sensing timer from zero
func (e *Engine) ResetTimer() {
	e.timerStart = e.clock()
}

// Status returns the most recent engine status. Safe for concurrent use
func (e *Engine) Status() *api.EngineStatus {
	return e.status.Load()
}

// LastFrame returns the most recent render frame. Safe for concurrent use
func (e *Engine) LastFrame() *api.Frame {
	return e.last.Load()
}

func (e *Engine) snapshot() {
	sprites := e.world.Layered()
	frame := &api.Frame{
		Number:  e.frame,
		Width:   float64(e.config.StageWidth),
		Height:  float64(e.config.StageHeight),
		Sprites: make([]*api.SpriteState, 0, len(sprites)),
	}
	for _, s := range sprites {
		frame.Sprites = append(frame.Sprites, s.state())
	}
	e.last.Store(frame)
	e.status.Store(&api.EngineStatus{
		Frame:   e.frame,
		Sprites: len(sprites),
		Clones:  e.world.CloneCount(),
		Waiting: e.waiting.Len(),
		Pending: e.dispatcher.Pending(),
		Timer:   e.Timer(),
		Stopped: e.stopped.Load(),
	})
}

func (noAssets) Asset(string) ([]byte, bool) {
	return nil, false
}

// Now returns the time on the engine's clock
func (e *Engine) Now() time.Time {
	return e.clock()
}
