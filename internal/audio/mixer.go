package audio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/kode4food/flagstaff/pkg/log"
)

type (
	// Mixer is a headless Player. It decodes only the headers of loaded
	// tracks and reports a track as playing until its duration has elapsed
	// on the clock
	Mixer struct {
		clock    Clock
		tracks   map[int]time.Duration
		playing  map[int]*channel
		channels [Channels]bool
		nextID   int
		ready    bool
		mu       sync.Mutex
	}

	channel struct {
		started time.Time
		index   int
		loop    bool
	}
)

// NewMixer creates a Mixer driven by the given clock
func NewMixer(clock Clock) *Mixer {
	if clock == nil {
		clock = time.Now
	}
	return &Mixer{
		clock:   clock,
		tracks:  map[int]time.Duration{},
		playing: map[int]*channel{},
	}
}

// Init implements Player
func (m *Mixer) Init() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ready = true
	return true
}

// LoadTrack implements Player. Data with an unreadable header yields
// InvalidTrack
func (m *Mixer) LoadTrack(data []byte) int {
	d, err := Duration(data)
	if err != nil {
		slog.Warn("Failed to load track",
			slog.Int("bytes", len(data)),
			log.Error(err))
		return InvalidTrack
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.tracks[id] = d
	return id
}

// UnloadTrack implements Player, stopping the track if it is playing
func (m *Mixer) UnloadTrack(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.release(id)
	delete(m.tracks, id)
}

// Tracks returns the number of loaded tracks
func (m *Mixer) Tracks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tracks)
}

// PlayTrack implements Player. A track that is already playing restarts
// on its channel
func (m *Mixer) PlayTrack(id int, loop bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ready {
		return
	}
	if _, ok := m.tracks[id]; !ok {
		return
	}
	if ch, ok := m.playing[id]; ok {
		ch.started = m.clock()
		ch.loop = loop
		return
	}
	idx := m.freeChannel()
	if idx < 0 {
		slog.Debug("No available channels", slog.Int("track", id))
		return
	}
	m.channels[idx] = true
	m.playing[id] = &channel{
		index:   idx,
		started: m.clock(),
		loop:    loop,
	}
}

// StopTrack implements Player
func (m *Mixer) StopTrack(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.release(id)
}

// StopAllTracks implements Player
func (m *Mixer) StopAllTracks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.playing)
	m.channels = [Channels]bool{}
}

// IsTrackPlaying implements Player
func (m *Mixer) IsTrackPlaying(id int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.playing[id]
	return ok && !m.finished(id, ch)
}

// Update implements Player, freeing the channels of finished tracks
func (m *Mixer) Update() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, ch := range m.playing {
		if m.finished(id, ch) {
			m.release(id)
		}
	}
}

// Active returns the number of channels in use
func (m *Mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.playing)
}

func (m *Mixer) finished(id int, ch *channel) bool {
	if ch.loop {
		return false
	}
	return m.clock().Sub(ch.started) >= m.tracks[id]
}

func (m *Mixer) freeChannel() int {
	for i, used := range m.channels {
		if !used {
			return i
		}
	}
	return -1
}

func (m *Mixer) release(id int) {
	if ch, ok := m.playing[id]; ok {
		m.channels[ch.index] = false
		delete(m.playing, id)
	}
}
