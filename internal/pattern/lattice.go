package pattern

// Salts keep each hashed gate independent of the parameter draws.
const (
	latticeSalt uint32 = 0x13579BDF
	colorSalt   uint32 = 0x0BADC0DE
)

func (p *Params) latticeA(dx, dy int) bool {
	return (dx+p.OX1)%p.Spacing == 0 && (dy+p.OY1)%p.Spacing == 0
}

func (p *Params) latticeB(dx, dy int) bool {
	return (dx+p.OX2)%p.Spacing == 0 && (dy+p.OY2)%p.Spacing == 0
}

// OnLattice reports whether (dx, dy) is a dot of the primary lattice, or of
// the secondary lattice when its hashed gate falls under LatticeMix.
func (p *Params) OnLattice(dx, dy int) bool {
	if p.latticeA(dx, dy) {
		return true
	}
	return p.latticeB(dx, dy) && Hash01(dx, dy, p.Seed^latticeSalt) < p.LatticeMix
}

// EdgeGate thins stitch lines to every third diagonal.
func (p *Params) EdgeGate(dx, dy int) bool {
	return (dx+dy+int(p.Seed&7))%3 == 0
}

// Admits reports whether a sample may be painted at all.
func (p *Params) Admits(s Sample) bool {
	return p.OnLattice(s.DX, s.DY) || (s.Edge && p.EdgeGate(s.DX, s.DY))
}
