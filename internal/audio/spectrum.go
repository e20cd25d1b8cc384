package audio

import (
	"math"
	"time"

	"github.com/argusdusty/gofft"
	"github.com/linuxmatters/kolam/internal/config"
)

// SpectrumSource exposes a periodically sampled byte frequency spectrum.
type SpectrumSource interface {
	// FrequencyBinCount is the length of the spectrum.
	FrequencyBinCount() int
	// ByteFrequencyData fills dst with the current spectrum, 0..255 per bin.
	ByteFrequencyData(dst []uint8)
}

// Playhead reports how far playback has progressed.
type Playhead interface {
	Position() time.Duration
}

// Analyser is a SpectrumSource over a decoded Track. It behaves like a
// browser analyser node: the most recent FFTSize samples before the playhead
// are Blackman-windowed and transformed, magnitudes are smoothed over time
// and mapped from decibels onto bytes.
type Analyser struct {
	track *Track
	head  Playhead

	size      int
	smoothing float64
	minDB     float64
	maxDB     float64

	window   []float64
	buf      []complex128
	smoothed []float64
}

// NewAnalyser returns an Analyser reading track at the position of head.
func NewAnalyser(track *Track, head Playhead) (*Analyser, error) {
	if err := gofft.Prepare(config.FFTSize); err != nil {
		return nil, err
	}
	return &Analyser{
		track:     track,
		head:      head,
		size:      config.FFTSize,
		smoothing: config.AnalyserSmoothing,
		minDB:     config.AnalyserMinDecibel,
		maxDB:     config.AnalyserMaxDecibel,
		window:    BlackmanWindow(config.FFTSize),
		buf:       make([]complex128, config.FFTSize),
		smoothed:  make([]float64, config.FFTSize/2),
	}, nil
}

// FrequencyBinCount returns half the FFT size.
func (a *Analyser) FrequencyBinCount() int {
	return a.size / 2
}

// Reset forgets the smoothing history.
func (a *Analyser) Reset() {
	clear(a.smoothed)
}

// ByteFrequencyData fills dst with the spectrum at the current playhead.
func (a *Analyser) ByteFrequencyData(dst []uint8) {
	end := a.track.IndexAt(a.head.Position())
	start := end - a.size

	for i := range a.buf {
		var s float64
		if j := start + i; j >= 0 && j < len(a.track.Samples) {
			s = a.track.Samples[j]
		}
		a.buf[i] = complex(s*a.window[i], 0)
	}

	if err := gofft.FFT(a.buf); err != nil {
		// Only fails on a non power-of-two length, which NewAnalyser rules out
		return
	}

	n := float64(a.size)
	for k := range a.smoothed {
		mag := math.Hypot(real(a.buf[k]), imag(a.buf[k])) / n
		a.smoothed[k] = a.smoothing*a.smoothed[k] + (1-a.smoothing)*mag
	}

	for k := 0; k < len(dst) && k < len(a.smoothed); k++ {
		dst[k] = DecibelByte(a.smoothed[k], a.minDB, a.maxDB)
	}
}

// DecibelByte maps a linear magnitude onto 0..255 across [minDB, maxDB].
func DecibelByte(mag, minDB, maxDB float64) uint8 {
	if mag <= 0 {
		return 0
	}
	db := 20 * math.Log10(mag)
	v := math.Floor(255 / (maxDB - minDB) * (db - minDB))
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}

// BlackmanWindow returns the n-point Blackman window.
func BlackmanWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		x := 2 * math.Pi * float64(i) / float64(n)
		w[i] = 0.42 - 0.5*math.Cos(x) + 0.08*math.Cos(2*x)
	}
	return w
}
