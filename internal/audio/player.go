package audio

import "time"

type (
	// Player plays loaded tracks on a fixed set of channels. Track ids are
	// issued by LoadTrack and released by UnloadTrack. Playing, stopping or
	// querying an unknown id is a no-op
	Player interface {
		Init() bool
		LoadTrack(data []byte) int
		UnloadTrack(id int)
		PlayTrack(id int, loop bool)
		StopTrack(id int)
		StopAllTracks()
		IsTrackPlaying(id int) bool
		Update()
	}

	// Clock provides the current time for playback bookkeeping
	Clock func() time.Time
)

const (
	// Channels is the number of tracks that may play at once
	Channels = 24

	// InvalidTrack is returned by LoadTrack when data cannot be decoded
	InvalidTrack = -1
)
