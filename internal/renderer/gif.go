package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"

	"github.com/linuxmatters/kolam/internal/config"
	"golang.org/x/image/draw"
)

// GIFWriter collects frames for an animated GIF. Every frame uses the
// palette's four colours, so frames map onto the GIF palette exactly.
type GIFWriter struct {
	palette color.Palette
	fps     int
	anim    gif.GIF
}

// NewGIFWriter returns a writer for frames shown at fps, clamped to
// 1..MaxGIFFPS.
func NewGIFWriter(p config.Palette, fps int) *GIFWriter {
	return &GIFWriter{
		palette: color.Palette(p.Colors()),
		fps:     min(max(fps, 1), config.MaxGIFFPS),
		anim:    gif.GIF{LoopCount: 0},
	}
}

// frameDelay returns the delay of frame i in centiseconds. Delays follow the
// rounded-down timeline, so n frames always last exactly n/fps seconds to
// the nearest centisecond.
func (w *GIFWriter) frameDelay(i int) int {
	return (i+1)*100/w.fps - i*100/w.fps
}

// AddFrame quantises img onto the palette and appends it.
func (w *GIFWriter) AddFrame(img image.Image) {
	b := img.Bounds()
	frame := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), w.palette)
	draw.Draw(frame, frame.Rect, img, b.Min, draw.Src)
	w.anim.Delay = append(w.anim.Delay, w.frameDelay(len(w.anim.Image)))
	w.anim.Image = append(w.anim.Image, frame)
}

// Frames returns the number of frames added so far.
func (w *GIFWriter) Frames() int {
	return len(w.anim.Image)
}

// Encode writes the animation to out.
func (w *GIFWriter) Encode(out io.Writer) error {
	if len(w.anim.Image) == 0 {
		return fmt.Errorf("no frames to encode")
	}
	return gif.EncodeAll(out, &w.anim)
}
