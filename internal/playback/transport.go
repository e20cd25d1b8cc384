// Package playback moves a playhead through a decoded track, either audibly
// through the system audio device or silently against a clock.
package playback

import (
	"errors"
	"time"
)

// ErrNoDevice is returned when no audio output device can be opened.
var ErrNoDevice = errors.New("no audio output device")

// Transport starts and stops playback and reports the playhead.
type Transport interface {
	// Play starts or resumes playback. A finished track restarts from the top.
	Play() error
	// Pause stops playback, keeping the position.
	Pause()
	// Paused reports whether playback is stopped, including after the end.
	Paused() bool
	// Position is the audible playhead.
	Position() time.Duration
}
