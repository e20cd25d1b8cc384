//go:build headless

package playback

import (
	"time"

	"github.com/linuxmatters/kolam/internal/audio"
)

// OtoTransport is unavailable in headless builds.
type OtoTransport struct{}

// NewOtoTransport always fails in headless builds.
func NewOtoTransport(*audio.Track) (*OtoTransport, error) {
	return nil, ErrNoDevice
}

func (o *OtoTransport) Play() error             { return ErrNoDevice }
func (o *OtoTransport) Pause()                  {}
func (o *OtoTransport) Paused() bool            { return true }
func (o *OtoTransport) Position() time.Duration { return 0 }
