// Package window shows the mosaic in a desktop window.
package window

import (
	"errors"
	"image/color"

	"github.com/linuxmatters/kolam/internal/config"
	"github.com/linuxmatters/kolam/internal/renderer"
)

// ErrUnavailable is returned when the binary was built without window
// support.
var ErrUnavailable = errors.New("window support not built in")

// resizableSurface is the engine's view of the window. The backing image
// surface is replaced on every resize; the engine keeps the same pointer.
type resizableSurface struct {
	*renderer.ImageSurface
	background    color.RGBA
	width, height int
}

func newResizableSurface(background color.RGBA) *resizableSurface {
	s := &resizableSurface{background: background}
	s.resize(1, 1)
	return s
}

// resize reallocates the backing image when the size changes and reports
// whether it did.
func (s *resizableSurface) resize(width, height int) bool {
	width, height = max(width, 1), max(height, 1)
	if s.ImageSurface != nil && width == s.width && height == s.height {
		return false
	}
	s.width, s.height = width, height
	s.ImageSurface = renderer.NewImageSurface(width, height, config.TileSize, s.background)
	return true
}
