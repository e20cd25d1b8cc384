// Package renderer paints the mosaic into images: a tile surface over an
// RGBA buffer, animated GIF output and captioned PNG snapshots.
package renderer

import (
	"image"
	"image/color"
	"sync"

	"github.com/linuxmatters/kolam/internal/config"
)

var framePool = sync.Pool{
	New: func() interface{} {
		return image.NewRGBA(image.Rect(0, 0, config.RenderWidth, config.RenderHeight))
	},
}

// ImageSurface paints tiles into an RGBA image. The tile grid is centred in
// the image, leaving any remainder as background margin.
type ImageSurface struct {
	img        *image.RGBA
	background color.RGBA
	clearRow   []byte

	tile             int
	cols, rows       int
	originX, originY int
	pooled           bool
}

// NewImageSurface returns a width×height surface with tiles of tile pixels.
func NewImageSurface(width, height, tile int, background color.RGBA) *ImageSurface {
	return newSurface(image.NewRGBA(image.Rect(0, 0, width, height)), tile, background, false)
}

// AcquireRenderSurface returns a surface at the default render size backed
// by a pooled image. Call Release when done.
func AcquireRenderSurface(tile int, background color.RGBA) *ImageSurface {
	return newSurface(framePool.Get().(*image.RGBA), tile, background, true)
}

func newSurface(img *image.RGBA, tile int, background color.RGBA, pooled bool) *ImageSurface {
	width, height := img.Rect.Dx(), img.Rect.Dy()
	tile = max(1, tile)
	cols, rows := width/tile, height/tile
	s := &ImageSurface{
		img:        img,
		background: background,
		tile:       tile,
		cols:       cols,
		rows:       rows,
		originX:    (width - cols*tile) / 2,
		originY:    (height - rows*tile) / 2,
		pooled:     pooled,
	}

	// One row of background pixels, copied row by row on Clear
	s.clearRow = make([]byte, width*4)
	for i := 0; i < len(s.clearRow); i += 4 {
		s.clearRow[i] = background.R
		s.clearRow[i+1] = background.G
		s.clearRow[i+2] = background.B
		s.clearRow[i+3] = 255
	}
	return s
}

// Grid returns the tile dimensions of the surface.
func (s *ImageSurface) Grid() (cols, rows int) {
	return s.cols, s.rows
}

// Image returns the backing image. It is overwritten by the next frame.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Clear fills the image with the background colour.
func (s *ImageSurface) Clear() {
	h := s.img.Rect.Dy()
	for y := 0; y < h; y++ {
		copy(s.img.Pix[y*s.img.Stride:], s.clearRow)
	}
}

// FillTile paints tile (x, y). Tiles outside the grid are ignored.
func (s *ImageSurface) FillTile(x, y int, rgb uint32) {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows {
		return
	}
	r, g, b := uint8(rgb>>16), uint8(rgb>>8), uint8(rgb)

	px0 := s.originX + x*s.tile
	py0 := s.originY + y*s.tile

	// Paint the first row of the tile, then copy it down
	first := s.img.PixOffset(px0, py0)
	row := s.img.Pix[first : first+s.tile*4]
	for i := 0; i < len(row); i += 4 {
		row[i], row[i+1], row[i+2], row[i+3] = r, g, b, 255
	}
	for dy := 1; dy < s.tile; dy++ {
		off := s.img.PixOffset(px0, py0+dy)
		copy(s.img.Pix[off:off+s.tile*4], row)
	}
}

// Release returns a pooled image. The surface must not be used afterwards.
func (s *ImageSurface) Release() {
	if s.pooled {
		framePool.Put(s.img)
	}
	s.img = nil
}
