package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/linuxmatters/kolam/internal/config"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// captionMargin is the gap between the caption and the image edge, in pixels.
const captionMargin = 12

// LoadCaptionFace returns the built-in caption face at size points.
func LoadCaptionFace(size float64) (font.Face, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// measureText returns the width and bounds of rendered text
func measureText(face font.Face, text string) (int, fixed.Rectangle26_6) {
	d := &font.Drawer{Face: face}
	bounds, _ := d.BoundString(text)
	return (bounds.Max.X - bounds.Min.X).Ceil(), bounds
}

// DrawCaption writes text in the bottom-left corner of img over a band of
// the background colour so it stays readable on top of tiles.
func DrawCaption(img *image.RGBA, face font.Face, text string, fg, bg color.RGBA) {
	if text == "" {
		return
	}

	width, bounds := measureText(face, text)

	x := captionMargin
	baseline := img.Rect.Max.Y - captionMargin - bounds.Max.Y.Ceil()

	band := image.Rect(x-4, baseline+bounds.Min.Y.Floor()-4, x+width+4, baseline+bounds.Max.Y.Ceil()+4)
	draw.Draw(img, band.Intersect(img.Rect), image.NewUniform(bg), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  freetype.Pt(x, baseline),
	}
	d.DrawString(text)
}

// Scale enlarges img by an integer factor with nearest-neighbour sampling,
// which keeps tile edges crisp.
func Scale(img *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// SavePNG writes img to path.
func SavePNG(img image.Image, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Snapshot describes a still image of one pattern.
type Snapshot struct {
	Width, Height int
	Scale         int
	Palette       config.Palette
	Caption       string
}

// Render paints the full pattern produced by paint onto a new image and
// captions it. paint receives a surface sized for the snapshot.
func (s Snapshot) Render(paint func(surface *ImageSurface)) (*image.RGBA, error) {
	surface := NewImageSurface(s.Width, s.Height, config.TileSize, s.Palette.Background)
	surface.Clear()
	paint(surface)
	img := surface.Image()

	if s.Caption != "" {
		face, err := LoadCaptionFace(float64(max(12, s.Height/36)))
		if err != nil {
			return nil, err
		}
		defer face.Close()
		DrawCaption(img, face, s.Caption, s.Palette.Cream, s.Palette.Background)
	}

	return Scale(img, s.Scale), nil
}

// Save renders the snapshot and writes it as PNG.
func (s Snapshot) Save(path string, paint func(surface *ImageSurface)) error {
	img, err := s.Render(paint)
	if err != nil {
		return err
	}
	if err := SavePNG(img, path); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}
