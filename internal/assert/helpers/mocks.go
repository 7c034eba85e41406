package helpers

import (
	"sync"
	"time"

	"github.com/kode4food/flagstaff/internal/audio"
	"github.com/kode4food/flagstaff/pkg/api"
)

type (
	// FixedClock is a manually advanced clock
	FixedClock struct {
		now time.Time
		mu  sync.Mutex
	}

	// MockAudio is an audio.Player whose tracks play until Finish is
	// called
	MockAudio struct {
		tracks  map[int][]byte
		playing map[int]bool
		played  []int
		next    int
		mu      sync.Mutex
	}

	// MapAssets serves assets from memory, keyed by md5ext file name
	MapAssets map[string][]byte

	// MockCloud records cloud variable writes
	MockCloud struct {
		values map[string]api.Value
		writes int
		mu     sync.Mutex
	}
)

// FailingTrack is asset data that MockAudio refuses to load
var FailingTrack = []byte("fail")

// NewFixedClock creates a clock starting at a fixed instant
func NewFixedClock() *FixedClock {
	return &FixedClock{
		now: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Now returns the current time of the clock
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// NewMockAudio creates an empty MockAudio
func NewMockAudio() *MockAudio {
	return &MockAudio{
		tracks:  map[int][]byte{},
		playing: map[int]bool{},
	}
}

// Init implements audio.Player
func (m *MockAudio) Init() bool {
	return true
}

// LoadTrack implements audio.Player
func (m *MockAudio) LoadTrack(data []byte) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if string(data) == string(FailingTrack) {
		return audio.InvalidTrack
	}
	id := m.next
	m.next++
	m.tracks[id] = data
	return id
}

// UnloadTrack implements audio.Player
func (m *MockAudio) UnloadTrack(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tracks, id)
	delete(m.playing, id)
}

// PlayTrack implements audio.Player
func (m *MockAudio) PlayTrack(id int, _ bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tracks[id]; !ok {
		return
	}
	m.playing[id] = true
	m.played = append(m.played, id)
}

// StopTrack implements audio.Player
func (m *MockAudio) StopTrack(id int) {
	m.Finish(id)
}

// StopAllTracks implements audio.Player
func (m *MockAudio) StopAllTracks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.playing)
}

// IsTrackPlaying implements audio.Player
func (m *MockAudio) IsTrackPlaying(id int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing[id]
}

// Update implements audio.Player
func (m *MockAudio) Update() {}

// Finish ends playback of a track
func (m *MockAudio) Finish(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.playing, id)
}

// Played returns the ids of every track started, in order
func (m *MockAudio) Played() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.played...)
}

// Loaded returns the number of tracks loaded
func (m *MockAudio) Loaded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tracks)
}

// Asset implements engine.Assets
func (a MapAssets) Asset(name string) ([]byte, bool) {
	data, ok := a[name]
	return data, ok
}

// NewMockCloud creates an empty MockCloud
func NewMockCloud() *MockCloud {
	return &MockCloud{values: map[string]api.Value{}}
}

// Set implements engine.CloudStore
func (c *MockCloud) Set(name string, v api.Value) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[name] = v
	c.writes++
}

// Get returns the last value written for a cloud variable
func (c *MockCloud) Get(name string) (api.Value, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[name]
	return v, ok
}

// Writes returns the number of writes received
func (c *MockCloud) Writes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writes
}
