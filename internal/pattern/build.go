package pattern

import "github.com/linuxmatters/kolam/internal/config"

// Build assembles the grid for p at cols×rows. The first-octant triangle
// 0 ≤ dy ≤ dx is evaluated once and mirrored into the other seven octants,
// so the result is exactly 8-fold symmetric about the centre. Build returns
// an empty grid when either dimension is not positive.
func Build(p Params, cols, rows int, inks Inks) *Grid {
	g := NewGrid(cols, rows)
	if g.Cols == 0 || g.Rows == 0 {
		return g
	}

	maxDx, maxDy := g.MaxOffsets()
	maxR := g.MaxRadius()
	extent := max(maxDx, maxDy)

	for dx := 0; dx <= extent; dx++ {
		for dy := 0; dy <= dx; dy++ {
			s := p.Evaluate(dx, dy)
			if !p.Admits(s) {
				continue
			}

			ink := p.AssignInk(s)
			if ink == NoInk {
				continue
			}

			// Fade the interior out at the rim; stitch lines stay crisp.
			if s.R/maxR > config.RimFade && !s.Edge {
				continue
			}

			g.Stamp(dx, dy, inks.Packed(ink))
		}
	}

	stampSignature(g, &p, inks)
	return g
}

// stampSignature paints one small octant set per ink close to the centre so
// every pattern shows all three colours whatever the parameter draws.
func stampSignature(g *Grid, p *Params, inks Inks) {
	s := p.Spacing
	a := 1 + int(Hash2(101, 102, p.Seed)%2)
	b := 1 + int(Hash2(103, 104, p.Seed)%2)

	dxC, dyC := max(2, s-1), 0
	dxH := max(2, s)
	dyH := min(dxH, a)
	dxB := max(2, s+1)
	dyB := min(dxB, b)

	g.Stamp(dxC, dyC, inks.Cream)
	g.Stamp(dxH, dyH, inks.Haldi)
	g.Stamp(dxB, dyB, inks.Dark)
}
