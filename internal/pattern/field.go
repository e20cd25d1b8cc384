package pattern

import "math"

// angleEpsilon keeps atan2 away from the dx=0 singularity.
const angleEpsilon = 1e-6

// Sample is the field evaluated at one first-octant offset.
type Sample struct {
	DX, DY  int
	R       float64 // distance from the pattern centre
	Value   float64 // raw field value
	Density float64 // paint density in (0, 1)
	Edge    bool    // on a stitch line
}

// Field evaluates the raw field value for mode at offset (dx, dy) with
// radius r and angle th.
func Field(mode Mode, dx, dy, r, th float64, p *Params) float64 {
	switch mode {
	case Rosette:
		return math.Sin(r*p.F1+p.Phase) + 0.95*math.Cos(th*float64(p.Petals)+p.Phase*0.7)
	case Diamond:
		return math.Sin((dx+dy)*p.F1+p.Phase) + 0.55*math.Sin(dx*p.F2+p.Phase*1.1) - 0.40*math.Cos(dy*p.F3+p.Phase*0.9)
	case Weave:
		return math.Sin(dx*p.F1+p.Phase) + math.Sin(dy*p.F2+p.Phase*0.8) + 0.55*math.Sin((dx-dy)*p.F3+p.Phase*1.2)
	case Scallop:
		return math.Cos(dx*p.F1+p.Phase)*math.Cos(dy*p.F1+p.Phase) + 0.9*math.Sin(r*p.F3+p.Phase*0.6)
	case Petal:
		return math.Cos((th+p.Twist*r)*float64(p.Petals)+p.Phase) + 0.85*math.Sin(r*p.F2+p.Phase*0.4)
	default:
		return math.Sin(r*0.2 + p.Phase)
	}
}

// Evaluate computes the field, density and stitch-line membership at (dx, dy).
func (p *Params) Evaluate(dx, dy int) Sample {
	fx, fy := float64(dx), float64(dy)
	r := math.Sqrt(fx*fx + fy*fy)
	th := math.Atan2(fy, fx+angleEpsilon)

	v := Field(p.Mode, fx, fy, r, th, p)
	return Sample{
		DX:      dx,
		DY:      dy,
		R:       r,
		Value:   v,
		Density: 0.5 + 0.5*math.Tanh(v*0.95),
		Edge:    math.Abs(math.Sin(v)) < p.EdgeWidth,
	}
}
