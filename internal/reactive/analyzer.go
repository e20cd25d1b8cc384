package reactive

import (
	"github.com/linuxmatters/kolam/internal/audio"
	"github.com/linuxmatters/kolam/internal/config"
)

// Bands holds the average byte level of each analysis band.
type Bands struct {
	Low      float64
	Mid      float64
	High     float64
	MidDrums float64
}

// Raw is the weighted blend of the fullness bands, in [0, 1].
func (b Bands) Raw() float64 {
	return (config.FullnessLowWeight*b.Low +
		config.FullnessMidWeight*b.Mid +
		config.FullnessHighWeight*b.High) / 255
}

// BeatEnergy weights kick-range energy with a little snare-range energy.
func (b Bands) BeatEnergy() float64 {
	return config.BeatEnergyLowWeight*b.Low + config.BeatEnergyMidWeight*b.MidDrums
}

// bandAvg averages spectrum[lo..hi] inclusive, clamped to the slice.
func bandAvg(spectrum []uint8, lo, hi int) float64 {
	lo = max(0, lo)
	hi = min(len(spectrum)-1, hi)
	if hi < lo {
		return 0
	}
	sum := 0
	for _, v := range spectrum[lo : hi+1] {
		sum += int(v)
	}
	return float64(sum) / float64(hi-lo+1)
}

// MeasureBands averages the analysis bands of a byte spectrum.
func MeasureBands(spectrum []uint8) Bands {
	return Bands{
		Low:      bandAvg(spectrum, config.LowBandLo, config.LowBandHi),
		Mid:      bandAvg(spectrum, config.MidBandLo, config.MidBandHi),
		High:     bandAvg(spectrum, config.HighBandLo, config.HighBandHi),
		MidDrums: bandAvg(spectrum, config.MidDrumsBandLo, config.MidDrumsBandHi),
	}
}

// Fullness normalises the smoothed band level against a slowly decaying
// running maximum, so quiet and loud tracks both use the whole range.
type Fullness struct {
	EMA float64
	Max float64
}

// NewFullness returns a tracker in its reset state.
func NewFullness() Fullness {
	return Fullness{Max: config.FullnessMaxInitial}
}

// Reset restores the initial state.
func (f *Fullness) Reset() {
	*f = NewFullness()
}

// Update folds in one raw level and returns the fullness in [0, 1].
func (f *Fullness) Update(raw float64) float64 {
	f.EMA += config.FullnessEMA * (raw - f.EMA)
	f.Max = max(f.EMA, f.Max*config.FullnessMaxDecay)
	return min(1, f.EMA/max(config.FullnessMaxFloor, f.Max))
}

// Reading is the result of analysing one spectrum sample.
type Reading struct {
	Bands
	Fullness   float64
	BeatEnergy float64
}

// Analyzer samples a SpectrumSource and tracks fullness across calls.
type Analyzer struct {
	Fullness Fullness
	buf      []uint8
}

// NewAnalyzer returns an analyzer in its reset state.
func NewAnalyzer() *Analyzer {
	return &Analyzer{Fullness: NewFullness()}
}

// Reset clears the fullness history.
func (a *Analyzer) Reset() {
	a.Fullness.Reset()
}

// Analyze reads the current spectrum from src and updates fullness.
func (a *Analyzer) Analyze(src audio.SpectrumSource) Reading {
	n := src.FrequencyBinCount()
	if cap(a.buf) < n {
		a.buf = make([]uint8, n)
	}
	a.buf = a.buf[:n]
	src.ByteFrequencyData(a.buf)
	return a.AnalyzeBytes(a.buf)
}

// AnalyzeBytes is Analyze over an already captured spectrum.
func (a *Analyzer) AnalyzeBytes(spectrum []uint8) Reading {
	b := MeasureBands(spectrum)
	return Reading{
		Bands:      b,
		Fullness:   a.Fullness.Update(b.Raw()),
		BeatEnergy: b.BeatEnergy(),
	}
}
