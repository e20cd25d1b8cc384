package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/linuxmatters/kolam/internal/config"
)

// upperHalf draws the top tile of a cell in the foreground colour and the
// bottom tile in the background colour.
const upperHalf = "▀"

// TermSurface paints tiles into terminal cells. Each cell holds two tiles
// stacked vertically, so a terminal of w×h cells shows a w×2h tile grid.
type TermSurface struct {
	cols, rows int
	background uint32
	cells      []uint32
}

// NewTermSurface returns a surface with no tiles; call Resize before use.
func NewTermSurface(background color.RGBA) *TermSurface {
	return &TermSurface{background: config.Pack(background)}
}

// Resize sets the tile grid to cols×rows and clears it.
func (s *TermSurface) Resize(cols, rows int) {
	s.cols, s.rows = max(cols, 0), max(rows, 0)
	if cap(s.cells) >= s.cols*s.rows {
		s.cells = s.cells[:s.cols*s.rows]
	} else {
		s.cells = make([]uint32, s.cols*s.rows)
	}
	s.Clear()
}

// Grid returns the tile grid size.
func (s *TermSurface) Grid() (cols, rows int) {
	return s.cols, s.rows
}

// Clear fills every tile with the background.
func (s *TermSurface) Clear() {
	for i := range s.cells {
		s.cells[i] = s.background
	}
}

// FillTile paints tile (x, y). Tiles outside the grid are ignored.
func (s *TermSurface) FillTile(x, y int, rgb uint32) {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows {
		return
	}
	s.cells[y*s.cols+x] = rgb
}

// At returns the packed colour of tile (x, y), or the background outside
// the grid.
func (s *TermSurface) At(x, y int) uint32 {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows {
		return s.background
	}
	return s.cells[y*s.cols+x]
}

// Render draws the tiles with ANSI 24-bit colour, one line per pair of
// tile rows. Escape codes are only emitted when a colour changes.
func (s *TermSurface) Render() string {
	if s.cols == 0 || s.rows == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(s.cols * (s.rows + 1) / 2 * 24)

	for y := 0; y < s.rows; y += 2 {
		fg, bg := uint32(1<<24), uint32(1<<24)
		for x := 0; x < s.cols; x++ {
			top, bottom := s.At(x, y), s.At(x, y+1)
			if top != fg {
				fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm", top>>16&0xff, top>>8&0xff, top&0xff)
				fg = top
			}
			if bottom != bg {
				fmt.Fprintf(&sb, "\x1b[48;2;%d;%d;%dm", bottom>>16&0xff, bottom>>8&0xff, bottom&0xff)
				bg = bottom
			}
			sb.WriteString(upperHalf)
		}
		sb.WriteString("\x1b[0m")
		if y+2 < s.rows {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
