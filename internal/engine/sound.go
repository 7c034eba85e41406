package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kode4food/lru"

	"github.com/kode4food/flagstaff/internal/audio"
	"github.com/kode4food/flagstaff/pkg/api"
	"github.com/kode4food/flagstaff/pkg/log"
	"github.com/kode4food/flagstaff/pkg/util"
)

// SoundManager loads sound assets into the audio backend and keeps track
// of the tracks it started. A sound evicted from the track cache is loaded
// again on next use, releasing its previous backend track, so the backend
// holds at most one track per sound
type SoundManager struct {
	player audio.Player
	assets Assets
	tracks *lru.Cache[int]
	loaded map[string]int
	failed util.Set[string]
	active util.Set[int]
}

var (
	ErrSoundMissing = errors.New("sound asset missing")
	ErrSoundDecode  = errors.New("sound could not be decoded")
)

// NewSoundManager creates a SoundManager caching up to size track ids
func NewSoundManager(p audio.Player, a Assets, size int) *SoundManager {
	return &SoundManager{
		player: p,
		assets: a,
		tracks: lru.NewCache[int](max(size, 1)),
		loaded: map[string]int{},
		failed: util.Set[string]{},
		active: util.Set[int]{},
	}
}

// Lookup resolves a sound menu value against the sprite's sounds: first by
// name, then by 1-based index wrapping around the sound list
func (m *SoundManager) Lookup(s *Sprite, key api.Value) *api.Sound {
	if len(s.Sounds) == 0 {
		return nil
	}
	name := key.AsString()
	for _, snd := range s.Sounds {
		if snd.Name == name {
			return snd
		}
	}
	if !key.IsNumeric() {
		return nil
	}
	n := len(s.Sounds)
	idx := ((key.AsInt()-1)%n + n) % n
	return s.Sounds[idx]
}

// Play starts the sound and returns its track id. Sounds that fail to load
// report false and are not retried
func (m *SoundManager) Play(snd *api.Sound) (int, bool) {
	id, err := m.Load(snd)
	if err != nil {
		return audio.InvalidTrack, false
	}
	m.player.PlayTrack(id, false)
	m.active.Add(id)
	return id, true
}

// Load returns the track id of the sound, loading its asset on first use
func (m *SoundManager) Load(snd *api.Sound) (int, error) {
	key := soundKey(snd)
	if m.failed.Contains(key) {
		return audio.InvalidTrack, ErrSoundDecode
	}
	id, err := m.tracks.Get(key, func() (int, error) {
		data, ok := m.assets.Asset(key)
		if !ok {
			return audio.InvalidTrack, fmt.Errorf("%w: %s", ErrSoundMissing, key)
		}
		m.unload(key)
		id := m.player.LoadTrack(data)
		if id == audio.InvalidTrack {
			return id, fmt.Errorf("%w: %s", ErrSoundDecode, key)
		}
		m.loaded[key] = id
		return id, nil
	})
	if err != nil {
		m.failed.Add(key)
		slog.Warn("Sound unavailable",
			log.Sound(snd.Name),
			log.Error(err))
		return audio.InvalidTrack, err
	}
	return id, nil
}

// IsPlaying reports whether the track is still playing
func (m *SoundManager) IsPlaying(id int) bool {
	return id != audio.InvalidTrack && m.player.IsTrackPlaying(id)
}

// Stop halts one track
func (m *SoundManager) Stop(id int) {
	m.player.StopTrack(id)
	m.active.Remove(id)
}

// StopAll halts every playing track
func (m *SoundManager) StopAll() {
	m.player.StopAllTracks()
	clear(m.active)
}

// Update lets the audio backend reclaim finished channels
func (m *SoundManager) Update() {
	m.player.Update()
	for id := range m.active {
		if !m.player.IsTrackPlaying(id) {
			m.active.Remove(id)
		}
	}
}

// Playing returns the number of tracks started by the engine that are
// still playing
func (m *SoundManager) Playing() int {
	return len(m.active)
}

func (m *SoundManager) unload(key string) {
	old, ok := m.loaded[key]
	if !ok {
		return
	}
	delete(m.loaded, key)
	m.active.Remove(old)
	m.player.UnloadTrack(old)
}

func soundKey(snd *api.Sound) string {
	if snd.FullName != "" {
		return snd.FullName
	}
	return snd.ID + "." + strings.TrimPrefix(snd.DataFormat, ".")
}
