// Package engine runs the frame loop: it reacts to the spectrum, changes
// pattern on onsets and paints the bloomed grid onto a Surface.
package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/linuxmatters/kolam/internal/audio"
	"github.com/linuxmatters/kolam/internal/config"
	"github.com/linuxmatters/kolam/internal/pattern"
	"github.com/linuxmatters/kolam/internal/playback"
	"github.com/linuxmatters/kolam/internal/reactive"
)

var (
	// ErrNoSurface is returned when the engine has nothing to draw on.
	ErrNoSurface = errors.New("no drawing surface")
	// ErrNoAudioSource is returned when the engine has no spectrum or transport.
	ErrNoAudioSource = errors.New("no audio source")
)

// Options configures a new Engine.
type Options struct {
	// Seed of the first pattern; zero draws one from the clock.
	Seed    uint32
	Palette config.Palette
	Tuning  reactive.Tuning
}

// Engine owns the current pattern and the audio reaction state. All methods
// are meant to be called from a single goroutine.
type Engine struct {
	surface   Surface
	spectrum  audio.SpectrumSource
	transport playback.Transport
	tuning    reactive.Tuning
	inks      pattern.Inks

	seed       uint32
	params     pattern.Params
	grid       *pattern.Grid
	cols, rows int

	started bool
	state   *AudioState
	mode    reactive.Mode
	changes int
}

// New returns an engine with an empty grid; call Resize before the first
// frame.
func New(surface Surface, spectrum audio.SpectrumSource, transport playback.Transport, opts Options) (*Engine, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	if spectrum == nil || transport == nil {
		return nil, ErrNoAudioSource
	}

	seed := opts.Seed
	if seed == 0 {
		seed = RandomSeed()
	}

	e := &Engine{
		surface:   surface,
		spectrum:  spectrum,
		transport: transport,
		tuning:    opts.Tuning,
		inks:      InksFor(opts.Palette),
		seed:      seed,
		state:     NewAudioState(opts.Tuning),
	}
	e.rebuild()
	return e, nil
}

// InksFor maps a palette onto the packed pattern inks.
func InksFor(p config.Palette) pattern.Inks {
	return pattern.Inks{
		Cream: config.Pack(p.Cream),
		Haldi: config.Pack(p.Haldi),
		Dark:  config.Pack(p.Ink),
	}
}

// RandomSeed mixes the wall clock with a random draw.
func RandomSeed() uint32 {
	s := uint32(time.Now().UnixNano()) ^ rand.Uint32()
	if s == 0 {
		s = 1
	}
	return s
}

func (e *Engine) rebuild() {
	e.params = pattern.NewParams(e.seed)
	e.grid = pattern.Build(e.params, e.cols, e.rows, e.inks)
}

// Resize sets the grid dimensions and rebuilds the current pattern.
func (e *Engine) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	if cols == e.cols && rows == e.rows {
		return
	}
	e.cols, e.rows = cols, rows
	e.rebuild()
}

// NewPattern advances the seed by the golden-ratio step and rebuilds.
func (e *Engine) NewPattern() {
	e.seed += config.SeedStep
	e.changes++
	e.rebuild()
}

// TogglePlay pauses a playing transport or starts a paused one. Starting
// resets the audio state and shrinks the bloom to a small disc so it grows
// in with the music. A failed start leaves the engine paused.
func (e *Engine) TogglePlay() error {
	e.started = true

	if !e.transport.Paused() {
		e.transport.Pause()
		return nil
	}

	if err := e.transport.Play(); err != nil {
		return fmt.Errorf("start playback: %w", err)
	}

	e.state.Reset()
	e.mode = reactive.Bloom
	r := config.BloomStart * e.grid.MaxRadius()
	e.state.BloomR, e.state.BloomTarget = r, r
	return nil
}

// Frame draws one frame at time now. now must not go backwards.
func (e *Engine) Frame(now time.Duration) {
	e.surface.Clear()

	if e.grid.Cols == 0 || e.grid.Rows == 0 {
		return
	}

	if e.Playing() {
		e.react(now)
	}

	s := e.state
	s.BloomR += config.BloomEase * (s.BloomTarget - s.BloomR)
	Paint(e.surface, e.grid, s.BloomR)
}

func (e *Engine) react(now time.Duration) {
	s := e.state
	maxR := e.grid.MaxRadius()
	r := s.Analyzer.Analyze(e.spectrum)

	if e.tuning.BeatMode {
		e.mode = s.Beat.Update(r.Fullness, now)
	}

	switch e.mode {
	case reactive.Beat:
		s.BloomTarget = maxR * (config.BloomBeatBase + config.BloomBeatBreathe*r.Fullness)
		if s.Onset.Detect(r.BeatEnergy, now) {
			e.NewPattern()
		}
	default:
		s.BloomTarget = lerp(config.BloomMin*maxR, config.BloomMax*maxR, r.Fullness)
		if !e.tuning.BeatMode && s.Onset.Detect(r.BeatEnergy, now) {
			e.NewPattern()
		}
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Playing reports whether playback has been started and is not paused.
func (e *Engine) Playing() bool {
	return e.started && !e.transport.Paused()
}

// Params returns the current pattern parameters.
func (e *Engine) Params() pattern.Params { return e.params }

// Grid returns the current grid. It is replaced, never mutated, on rebuild.
func (e *Engine) Grid() *pattern.Grid { return e.grid }

// Seed returns the current seed.
func (e *Engine) Seed() uint32 { return e.seed }

// Mode returns the current bloom mode.
func (e *Engine) Mode() reactive.Mode { return e.mode }

// BloomRadius returns the eased bloom radius in tiles.
func (e *Engine) BloomRadius() float64 { return e.state.BloomR }

// State exposes the audio state.
func (e *Engine) State() *AudioState { return e.state }

// Changes counts pattern changes since the engine was created.
func (e *Engine) Changes() int { return e.changes }

// Tuning returns the reaction tuning.
func (e *Engine) Tuning() reactive.Tuning { return e.tuning }
