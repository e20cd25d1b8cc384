package config

import (
	"errors"
	"fmt"
	"image/color"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned when a colour string is not a hex colour.
var ErrInvalidColor = errors.New("not a hex colour")

var hexColorPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ParseHexColor parses "rgb", "rrggbb", "#rgb" or "#rrggbb" into its channels.
func ParseHexColor(s string) (r, g, b uint8, err error) {
	m := hexColorPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, 0, fmt.Errorf("%q: %w", s, ErrInvalidColor)
	}

	digits := m[1]
	if len(digits) == 3 {
		var sb strings.Builder
		for _, c := range digits {
			sb.WriteRune(c)
			sb.WriteRune(c)
		}
		digits = sb.String()
	}

	c, err := colorful.Hex("#" + strings.ToLower(digits))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%q: %w", s, ErrInvalidColor)
	}
	r, g, b = c.RGB255()
	return r, g, b, nil
}

// Palette holds the background and the three inks every pattern uses.
type Palette struct {
	Background color.RGBA
	Cream      color.RGBA
	Haldi      color.RGBA
	Ink        color.RGBA
}

// Pack returns c as 0xRRGGBB.
func Pack(c color.RGBA) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Unpack is the inverse of Pack. Alpha is always opaque.
func Unpack(p uint32) color.RGBA {
	return color.RGBA{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p), A: 255}
}

// Colors returns the palette in a fixed order: background, cream, haldi, ink.
func (p Palette) Colors() []color.Color {
	return []color.Color{p.Background, p.Cream, p.Haldi, p.Ink}
}

// RuntimeConfig holds user overrides. Nil fields fall back to the defaults.
type RuntimeConfig struct {
	Background *string
	Cream      *string
	Haldi      *string
	Ink        *string
}

// GetBackground returns the configured background hex string or the default.
func (c *RuntimeConfig) GetBackground() string {
	return valueOr(c.Background, DefaultBackground)
}

// GetCream returns the configured cream hex string or the default.
func (c *RuntimeConfig) GetCream() string {
	return valueOr(c.Cream, DefaultCream)
}

// GetHaldi returns the configured haldi hex string or the default.
func (c *RuntimeConfig) GetHaldi() string {
	return valueOr(c.Haldi, DefaultHaldi)
}

// GetInk returns the configured ink hex string or the default.
func (c *RuntimeConfig) GetInk() string {
	return valueOr(c.Ink, DefaultInk)
}

// Palette validates every configured colour and returns the parsed palette.
// The first invalid colour aborts with an error naming it.
func (c *RuntimeConfig) Palette() (Palette, error) {
	var p Palette
	fields := []struct {
		name string
		hex  string
		dst  *color.RGBA
	}{
		{"background", c.GetBackground(), &p.Background},
		{"cream", c.GetCream(), &p.Cream},
		{"haldi", c.GetHaldi(), &p.Haldi},
		{"ink", c.GetInk(), &p.Ink},
	}
	for _, f := range fields {
		r, g, b, err := ParseHexColor(f.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("%s colour: %w", f.name, err)
		}
		*f.dst = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return p, nil
}

// DefaultPalette returns the built-in palette.
func DefaultPalette() Palette {
	p, err := (&RuntimeConfig{}).Palette()
	if err != nil {
		panic(err) // defaults are constants
	}
	return p
}

func valueOr(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}
