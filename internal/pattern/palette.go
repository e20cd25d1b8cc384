package pattern

// Ink identifies one of the three paint colours.
type Ink uint8

const (
	NoInk Ink = iota
	Cream
	Haldi
	Dark
)

func (i Ink) String() string {
	switch i {
	case Cream:
		return "cream"
	case Haldi:
		return "haldi"
	case Dark:
		return "dark"
	default:
		return "none"
	}
}

// Accent probabilities per density tier.
const (
	creamTierAccent = 0.18
	haldiTierAccent = 0.65
)

// Inks maps each Ink onto a packed 0xRRGGBB colour.
type Inks struct {
	Cream uint32
	Haldi uint32
	Dark  uint32
}

// Packed returns the colour for ink, or Empty for NoInk.
func (k Inks) Packed(ink Ink) uint32 {
	switch ink {
	case Cream:
		return k.Cream
	case Haldi:
		return k.Haldi
	case Dark:
		return k.Dark
	default:
		return Empty
	}
}

// AssignInk picks the ink for a sample. Stitch lines are always dark; other
// points split into a mostly-cream top tier, a mostly-haldi middle tier and
// an unpainted remainder.
func (p *Params) AssignInk(s Sample) Ink {
	if s.Edge {
		return Dark
	}
	u := Hash01(s.DX, s.DY, p.Seed^colorSalt)
	switch {
	case s.Density >= p.TCream:
		if u < creamTierAccent {
			return Haldi
		}
		return Cream
	case s.Density >= p.THaldi:
		if u < haldiTierAccent {
			return Haldi
		}
		return Cream
	default:
		return NoInk
	}
}
