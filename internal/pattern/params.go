package pattern

import (
	"fmt"
	"math"
)

// Mode selects the field function that shapes a pattern.
type Mode int

const (
	Rosette Mode = iota
	Diamond
	Weave
	Scallop
	Petal
)

// Modes lists every field mode in selection order.
var Modes = [...]Mode{Rosette, Diamond, Weave, Scallop, Petal}

func (m Mode) String() string {
	switch m {
	case Rosette:
		return "Rosette Dots"
	case Diamond:
		return "Diamond Dots"
	case Weave:
		return "Weave Dots"
	case Scallop:
		return "Scallop Dots"
	case Petal:
		return "Petal Dots"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

var (
	petalChoices = [...]int{6, 8, 10, 12, 14, 16}
	twistChoices = [...]float64{0.0, 0.16, 0.28, 0.42, 0.6}
)

// Params is the complete, immutable description of one pattern.
type Params struct {
	Seed uint32
	Mode Mode

	// Field shape
	F1, F2, F3 float64
	Phase      float64
	Petals     int
	Twist      float64

	// Dot lattices
	Spacing    int
	OX1, OY1   int
	OX2, OY2   int
	LatticeMix float64

	// Paint thresholds
	EdgeWidth float64
	THaldi    float64
	TCream    float64
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func pickMode(seed uint32) Mode {
	return Modes[Hash2(int(seed), int(seed^0xA3), 0xC0FFEE)%uint32(len(Modes))]
}

// NewParams derives a pattern from seed. Each field draws from its own
// coordinate pair so the fields are independent of one another.
func NewParams(seed uint32) Params {
	u1 := Hash01(1, 2, seed)
	u2 := Hash01(3, 4, seed)
	u3 := Hash01(5, 6, seed)
	u4 := Hash01(7, 8, seed)
	u5 := Hash01(9, 10, seed)
	u6 := Hash01(11, 12, seed)

	spacing := 4 + Hash2(21, 22, seed)%4
	ox1 := Hash2(31, 32, seed) % spacing
	oy1 := Hash2(41, 42, seed) % spacing
	ox2 := Hash2(33, 34, seed) % spacing
	oy2 := Hash2(43, 44, seed) % spacing
	if ox2 == ox1 {
		ox2 = (ox2 + 1) % spacing
	}
	if oy2 == oy1 {
		oy2 = (oy2 + 1) % spacing
	}

	return Params{
		Seed: seed,
		Mode: pickMode(seed),

		F1:     lerp(0.12, 0.44, u1),
		F2:     lerp(0.10, 0.62, u2),
		F3:     lerp(0.08, 0.38, u3),
		Phase:  u4 * 2 * math.Pi,
		Petals: petalChoices[int(math.Floor(u5*6))%len(petalChoices)],
		Twist:  twistChoices[int(math.Floor(u6*5))%len(twistChoices)],

		Spacing:    int(spacing),
		OX1:        int(ox1),
		OY1:        int(oy1),
		OX2:        int(ox2),
		OY2:        int(oy2),
		LatticeMix: lerp(0.35, 0.70, Hash01(81, 82, seed)),

		EdgeWidth: lerp(0.03, 0.07, Hash01(51, 52, seed)),
		THaldi:    lerp(0.82, 0.89, Hash01(61, 62, seed)),
		TCream:    lerp(0.89, 0.94, Hash01(71, 72, seed)),
	}
}

func (p Params) String() string {
	return fmt.Sprintf("%s seed=%d spacing=%d petals=%d twist=%.2f", p.Mode, p.Seed, p.Spacing, p.Petals, p.Twist)
}
