//go:build headless

package window

import (
	"github.com/linuxmatters/kolam/internal/audio"
	"github.com/linuxmatters/kolam/internal/engine"
	"github.com/linuxmatters/kolam/internal/playback"
)

// Options configures the window.
type Options struct {
	Title     string
	Width     int
	Height    int
	Spectrum  audio.SpectrumSource
	Transport playback.Transport
	Engine    engine.Options
}

// Run always fails in headless builds.
func Run(Options) error {
	return ErrUnavailable
}
