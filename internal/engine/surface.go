package engine

import (
	"math"

	"github.com/linuxmatters/kolam/internal/pattern"
)

// Surface receives tile fills in grid coordinates.
type Surface interface {
	// Clear paints the whole surface with the background.
	Clear()
	// FillTile paints tile (x, y) with a packed 0xRRGGBB colour.
	FillTile(x, y int, rgb uint32)
}

// Paint fills every painted cell of g that lies within radius of the centre.
// A radius at or beyond the corner paints the whole pattern.
func Paint(s Surface, g *pattern.Grid, radius float64) {
	if g == nil || radius < 0 {
		return
	}
	cx, cy := g.Center()
	r2 := radius * radius
	for y := 0; y < g.Rows; y++ {
		dy := y - cy
		for x := 0; x < g.Cols; x++ {
			c := g.At(x, y)
			if c == pattern.Empty {
				continue
			}
			dx := x - cx
			if float64(dx*dx+dy*dy) > r2 {
				continue
			}
			s.FillTile(x, y, c)
		}
	}
}

// FullBloom is a radius that reaches every cell of g.
func FullBloom(g *pattern.Grid) float64 {
	return math.Ceil(g.MaxRadius()) + 1
}
