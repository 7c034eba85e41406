package helpers

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kode4food/flagstaff/internal/config"
	"github.com/kode4food/flagstaff/internal/engine"
	"github.com/kode4food/flagstaff/internal/input"
	"github.com/kode4food/flagstaff/pkg/api"
)

// TestEngineEnv holds all the components needed for engine testing
type TestEngineEnv struct {
	Engine  *engine.Engine
	Project *api.Project
	Config  *config.Config
	Clock   *FixedClock
	Audio   *MockAudio
	Input   *input.Manual
	Assets  MapAssets
	Cloud   *MockCloud
	Cleanup func()
}

// NewTestConfig creates a default configuration with debug logging enabled
func NewTestConfig() *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.LogLevel = "debug"
	return cfg
}

// NewTestEngine creates an engine for the project with a fixed clock, a
// mock audio player, manual input and in-memory assets
func NewTestEngine(t *testing.T, proj *api.Project) *TestEngineEnv {
	t.Helper()

	env := &TestEngineEnv{
		Project: proj,
		Config:  NewTestConfig(),
		Clock:   NewFixedClock(),
		Audio:   NewMockAudio(),
		Input:   input.NewManual(),
		Assets:  MapAssets{},
		Cloud:   NewMockCloud(),
	}

	eng, err := env.NewEngineInstance()
	require.NoError(t, err)
	env.Engine = eng
	env.Cleanup = func() {
		_ = eng.Stop()
	}
	return env
}

// Dependencies returns the collaborators the environment's engines use
func (e *TestEngineEnv) Dependencies() engine.Dependencies {
	return engine.Dependencies{
		Audio:  e.Audio,
		Input:  e.Input,
		Assets: e.Assets,
		Cloud:  e.Cloud,
		Clock:  e.Clock.Now,
		Rand:   rand.New(rand.NewPCG(1, 2)),
	}
}

// NewEngineInstance creates another engine sharing the environment's
// project and collaborators
func (e *TestEngineEnv) NewEngineInstance() (*engine.Engine, error) {
	return engine.New(e.Config, e.Project, e.Dependencies())
}

// Sprite returns the original sprite with the given name
func (e *TestEngineEnv) Sprite(t *testing.T, name string) *engine.Sprite {
	t.Helper()
	s := e.Engine.World().Original(name)
	require.NotNil(t, s, "sprite %s", name)
	return s
}

// Chain returns the chain of the named sprite started by the given hat
func (e *TestEngineEnv) Chain(
	t *testing.T, name string, hat api.BlockID,
) *engine.Chain {
	t.Helper()
	ch := e.Sprite(t, name).Chain(hat)
	require.NotNil(t, ch, "chain %s of %s", hat, name)
	return ch
}

// Ticks runs the engine for n ticks, advancing the clock by one frame
// before each
func (e *TestEngineEnv) Ticks(n int) {
	for range n {
		e.Clock.Advance(e.Config.FrameInterval())
		e.Engine.Tick()
	}
}

// Flag clicks the green flag and runs the tick that starts the flag hats
func (e *TestEngineEnv) Flag() {
	e.Engine.GreenFlag()
	e.Ticks(1)
}

// WithTestEnv creates a test engine environment, executes the provided
// function with it, and ensures cleanup happens automatically
func WithTestEnv(t *testing.T, proj *api.Project, fn func(*TestEngineEnv)) {
	t.Helper()
	env := NewTestEngine(t, proj)
	defer env.Cleanup()
	fn(env)
}

// WithEngine creates a test engine, executes the provided function with it,
// and ensures cleanup happens automatically
func WithEngine(t *testing.T, proj *api.Project, fn func(*engine.Engine)) {
	t.Helper()
	WithTestEnv(t, proj, func(env *TestEngineEnv) {
		fn(env.Engine)
	})
}
