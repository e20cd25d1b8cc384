package pattern

import (
	"image"
	"math"
)

// Empty marks an unpainted cell. It lies outside the 24-bit colour range.
const Empty uint32 = 0xFFFFFFFF

// Grid is the painted tile buffer for one pattern at one viewport size.
// Cells are row-major packed 0xRRGGBB colours or Empty.
type Grid struct {
	Cols, Rows int
	cells      []uint32
}

// NewGrid returns an all-empty grid.
func NewGrid(cols, rows int) *Grid {
	cols, rows = max(cols, 0), max(rows, 0)
	g := &Grid{Cols: cols, Rows: rows, cells: make([]uint32, cols*rows)}
	for i := range g.cells {
		g.cells[i] = Empty
	}
	return g
}

// Center returns the centre cell.
func (g *Grid) Center() (cx, cy int) {
	return g.Cols / 2, g.Rows / 2
}

// MaxOffsets returns the largest horizontal and vertical distance from the
// centre to any cell.
func (g *Grid) MaxOffsets() (maxDx, maxDy int) {
	cx, cy := g.Center()
	return max(cx, g.Cols-1-cx), max(cy, g.Rows-1-cy)
}

// MaxRadius is the distance from the centre to the farthest corner, never
// less than 1.
func (g *Grid) MaxRadius() float64 {
	maxDx, maxDy := g.MaxOffsets()
	r := math.Sqrt(float64(maxDx*maxDx + maxDy*maxDy))
	if r == 0 {
		return 1
	}
	return r
}

// At returns the colour at (x, y), or Empty outside the grid.
func (g *Grid) At(x, y int) uint32 {
	if x < 0 || y < 0 || x >= g.Cols || y >= g.Rows {
		return Empty
	}
	return g.cells[y*g.Cols+x]
}

// Painted counts the non-empty cells.
func (g *Grid) Painted() int {
	n := 0
	for _, c := range g.cells {
		if c != Empty {
			n++
		}
	}
	return n
}

// Stamp writes packed to every mirror image of the first-octant offset
// (dx, dy) around the centre: (±dx, ±dy) and (±dy, ±dx). Images that
// coincide on a symmetry axis are written once and images outside the grid
// are dropped. Stamp is the only way cells change.
func (g *Grid) Stamp(dx, dy int, packed uint32) {
	cx, cy := g.Center()
	pts := [8]image.Point{
		{cx + dx, cy + dy}, {cx - dx, cy + dy}, {cx + dx, cy - dy}, {cx - dx, cy - dy},
		{cx + dy, cy + dx}, {cx - dy, cy + dx}, {cx + dy, cy - dx}, {cx - dy, cy - dx},
	}

	for i, pt := range pts {
		if pt.X < 0 || pt.Y < 0 || pt.X >= g.Cols || pt.Y >= g.Rows {
			continue
		}
		dup := false
		for _, prev := range pts[:i] {
			if prev == pt {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		g.cells[pt.Y*g.Cols+pt.X] = packed
	}
}
