// Package audio defines the sound playback contract used by the engine and
// provides Mixer, a headless implementation that tracks how long loaded
// tracks play without producing output
package audio
