package engine

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/linuxmatters/kolam/internal/config"
	"github.com/linuxmatters/kolam/internal/pattern"
	"github.com/linuxmatters/kolam/internal/playback"
	"github.com/linuxmatters/kolam/internal/reactive"
)

// recordSurface counts clears and remembers the last frame's fills.
type recordSurface struct {
	clears int
	fills  map[[2]int]uint32
}

func (s *recordSurface) Clear() {
	s.clears++
	s.fills = map[[2]int]uint32{}
}

func (s *recordSurface) FillTile(x, y int, rgb uint32) {
	s.fills[[2]int{x, y}] = rgb
}

// levelSpectrum reports every bin at the same level.
type levelSpectrum struct {
	level uint8
	reads int
}

func (s *levelSpectrum) FrequencyBinCount() int { return 1024 }

func (s *levelSpectrum) ByteFrequencyData(dst []uint8) {
	s.reads++
	for i := range dst {
		dst[i] = s.level
	}
}

// fakeTransport plays instantly, or fails when err is set.
type fakeTransport struct {
	playing bool
	err     error
}

func (t *fakeTransport) Play() error {
	if t.err != nil {
		return t.err
	}
	t.playing = true
	return nil
}

func (t *fakeTransport) Pause()                  { t.playing = false }
func (t *fakeTransport) Paused() bool            { return !t.playing }
func (t *fakeTransport) Position() time.Duration { return 0 }

func newTestEngine(t *testing.T, tuning reactive.Tuning) (*Engine, *recordSurface, *levelSpectrum, *fakeTransport) {
	t.Helper()
	surf := &recordSurface{}
	src := &levelSpectrum{}
	tr := &fakeTransport{}
	e, err := New(surf, src, tr, Options{Seed: 123456789, Palette: config.DefaultPalette(), Tuning: tuning})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	e.Resize(40, 30)
	return e, surf, src, tr
}

// run advances the engine frame by frame from start for d at 30 fps and
// returns the time after the last frame.
func run(e *Engine, start, d time.Duration) time.Duration {
	const dt = time.Second / 30
	now := start
	for end := start + d; now < end; now += dt {
		e.Frame(now)
	}
	return now
}

func TestNew_Validation(t *testing.T) {
	opts := Options{Palette: config.DefaultPalette(), Tuning: reactive.HybridTuning()}

	if _, err := New(nil, &levelSpectrum{}, &fakeTransport{}, opts); !errors.Is(err, ErrNoSurface) {
		t.Errorf("nil surface error = %v, want ErrNoSurface", err)
	}
	if _, err := New(&recordSurface{}, nil, &fakeTransport{}, opts); !errors.Is(err, ErrNoAudioSource) {
		t.Errorf("nil spectrum error = %v, want ErrNoAudioSource", err)
	}
	if _, err := New(&recordSurface{}, &levelSpectrum{}, nil, opts); !errors.Is(err, ErrNoAudioSource) {
		t.Errorf("nil transport error = %v, want ErrNoAudioSource", err)
	}

	e, err := New(&recordSurface{}, &levelSpectrum{}, &fakeTransport{}, opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if e.Seed() == 0 {
		t.Error("zero seed option should draw a random seed")
	}
}

func TestEngine_InitialPattern(t *testing.T) {
	e, _, _, _ := newTestEngine(t, reactive.HybridTuning())

	if e.Params().Mode != pattern.Scallop || e.Params().Spacing != 7 {
		t.Errorf("seed 123456789 gave %v, want Scallop spacing 7", e.Params())
	}
	if e.Grid().Cols != 40 || e.Grid().Rows != 30 || e.Grid().Painted() == 0 {
		t.Errorf("grid %dx%d painted %d", e.Grid().Cols, e.Grid().Rows, e.Grid().Painted())
	}
}

func TestEngine_PausedFrame(t *testing.T) {
	e, surf, src, _ := newTestEngine(t, reactive.HybridTuning())

	run(e, 0, time.Second)
	if surf.clears != 30 {
		t.Errorf("clears = %d, want one per frame", surf.clears)
	}
	if src.reads != 0 {
		t.Errorf("spectrum read %d times before playback started", src.reads)
	}
	if e.BloomRadius() != 0 || len(surf.fills) > 1 {
		t.Errorf("paused engine bloom=%f fills=%d, want nothing visible", e.BloomRadius(), len(surf.fills))
	}
}

func TestEngine_EmptyGrid(t *testing.T) {
	e, surf, src, _ := newTestEngine(t, reactive.HybridTuning())
	e.Resize(0, 0)
	e.TogglePlay()
	run(e, 0, time.Second)
	if src.reads != 0 || len(surf.fills) != 0 {
		t.Errorf("empty grid: reads=%d fills=%d, want none", src.reads, len(surf.fills))
	}
}

func TestEngine_TogglePlay(t *testing.T) {
	e, _, _, tr := newTestEngine(t, reactive.HybridTuning())

	if err := e.TogglePlay(); err != nil {
		t.Fatalf("TogglePlay() failed: %v", err)
	}
	if !tr.playing || !e.Playing() {
		t.Fatal("TogglePlay() did not start playback")
	}

	want := config.BloomStart * e.Grid().MaxRadius()
	if e.State().BloomR != want || e.State().BloomTarget != want {
		t.Errorf("bloom after start = %f/%f, want %f", e.State().BloomR, e.State().BloomTarget, want)
	}

	if err := e.TogglePlay(); err != nil {
		t.Fatalf("TogglePlay() to pause failed: %v", err)
	}
	if tr.playing || e.Playing() {
		t.Error("second TogglePlay() did not pause")
	}
}

func TestEngine_TogglePlayRestartsFinishedClock(t *testing.T) {
	now := time.Unix(0, 0)
	clock := playback.NewClock(2*time.Second, func() time.Time { return now })
	src := &levelSpectrum{level: 200}

	e, err := New(&recordSurface{}, src, clock, Options{Seed: 123456789, Palette: config.DefaultPalette(), Tuning: reactive.HybridTuning()})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	e.Resize(40, 30)

	if err := e.TogglePlay(); err != nil {
		t.Fatalf("TogglePlay() failed: %v", err)
	}
	now = now.Add(5 * time.Second)
	run(e, 0, time.Second)
	if e.Playing() {
		t.Fatal("engine still playing after the track ran out")
	}

	if err := e.TogglePlay(); err != nil {
		t.Fatalf("TogglePlay() after end failed: %v", err)
	}
	if !e.Playing() {
		t.Fatalf("TogglePlay() after end did not restart: position=%v", clock.Position())
	}
	if clock.Position() != 0 {
		t.Errorf("restart position = %v, want 0", clock.Position())
	}

	want := config.BloomStart * e.Grid().MaxRadius()
	if e.State().BloomR != want {
		t.Errorf("bloom after restart = %f, want %f", e.State().BloomR, want)
	}
}

func TestEngine_TogglePlayFailure(t *testing.T) {
	e, _, _, tr := newTestEngine(t, reactive.HybridTuning())
	blocked := errors.New("device busy")
	tr.err = blocked

	err := e.TogglePlay()
	if !errors.Is(err, blocked) {
		t.Fatalf("TogglePlay() error = %v, want wrapped device error", err)
	}
	if e.Playing() {
		t.Error("engine playing after failed start")
	}
}

func TestEngine_BloomFollowsFullness(t *testing.T) {
	e, surf, src, _ := newTestEngine(t, reactive.HybridTuning())
	maxR := e.Grid().MaxRadius()

	e.TogglePlay()
	src.level = 200
	run(e, 0, time.Second)

	if e.Mode() != reactive.Bloom {
		t.Fatalf("mode after 1s = %v, want bloom", e.Mode())
	}
	if e.State().BloomTarget < 0.9*maxR {
		t.Errorf("bloom target = %f, want near %f for a full track", e.State().BloomTarget, config.BloomMax*maxR)
	}
	if e.BloomRadius() <= config.BloomStart*maxR {
		t.Errorf("bloom radius %f did not grow from the start disc", e.BloomRadius())
	}
	if len(surf.fills) == 0 {
		t.Error("nothing painted while blooming")
	}
}

func TestEngine_BeatModeCycle(t *testing.T) {
	e, _, src, _ := newTestEngine(t, reactive.HybridTuning())
	maxR := e.Grid().MaxRadius()

	e.TogglePlay()
	src.level = 220
	now := run(e, 0, 2*time.Second)
	if e.Mode() != reactive.Beat {
		t.Fatalf("mode after 2s full = %v, want beat", e.Mode())
	}
	if e.State().BloomTarget < config.BloomBeatBase*maxR {
		t.Errorf("beat bloom target = %f, want at least %f", e.State().BloomTarget, config.BloomBeatBase*maxR)
	}

	src.level = 0
	run(e, now, 2*time.Second)
	if e.Mode() != reactive.Bloom {
		t.Errorf("mode after 2s silence = %v, want bloom", e.Mode())
	}
}

// pulse alternates loud and quiet frames so beat energy keeps rising.
func pulse(e *Engine, src *levelSpectrum, start, d time.Duration) time.Duration {
	const dt = time.Second / 30
	now := start
	for i := 0; now < start+d; i++ {
		if i%8 == 0 {
			src.level = 250
		} else {
			src.level = 150
		}
		e.Frame(now)
		now += dt
	}
	return now
}

func TestEngine_OnsetsChangePatternInBeatMode(t *testing.T) {
	e, _, src, _ := newTestEngine(t, reactive.HybridTuning())
	e.TogglePlay()

	src.level = 220
	now := run(e, 0, 2*time.Second)
	if e.Mode() != reactive.Beat {
		t.Fatalf("setup: mode = %v, want beat", e.Mode())
	}

	before := e.Changes()
	seed := e.Seed()
	pulse(e, src, now, 3*time.Second)

	changes := e.Changes() - before
	if changes < 3 {
		t.Errorf("pulses produced %d pattern changes, want several", changes)
	}
	if e.Seed() != seed+uint32(changes)*config.SeedStep {
		t.Errorf("seed %d, want %d golden steps past %d", e.Seed(), changes, seed)
	}
	t.Logf("%d changes in 3s of pulses", changes)
}

func TestEngine_HybridIgnoresOnsetsWhileBlooming(t *testing.T) {
	e, _, src, _ := newTestEngine(t, reactive.HybridTuning())
	e.TogglePlay()

	// One second of pulses is shorter than the beat-mode hold.
	const dt = time.Second / 30
	now := time.Duration(0)
	for i := 0; i < 30; i++ {
		if i%2 == 0 {
			src.level = 120
		} else {
			src.level = 0
		}
		e.Frame(now)
		now += dt
	}
	if e.Mode() != reactive.Bloom {
		t.Fatalf("mode = %v, want bloom", e.Mode())
	}
	if e.Changes() != 0 {
		t.Errorf("hybrid changed pattern %d times while blooming", e.Changes())
	}
}

func TestEngine_SimpleTuning(t *testing.T) {
	e, _, src, _ := newTestEngine(t, reactive.SimpleTuning())
	e.TogglePlay()

	src.level = 220
	now := run(e, 0, 3*time.Second)
	if e.Mode() != reactive.Bloom {
		t.Errorf("simple tuning entered %v", e.Mode())
	}

	before := e.Changes()
	pulse(e, src, now, 3*time.Second)
	if e.Changes()-before < 3 {
		t.Errorf("simple tuning changed pattern %d times on pulses, want several", e.Changes()-before)
	}
}

func TestEngine_RestartResetsState(t *testing.T) {
	e, _, src, _ := newTestEngine(t, reactive.HybridTuning())
	e.TogglePlay()
	src.level = 220
	run(e, 0, 2*time.Second)

	e.TogglePlay() // pause
	e.TogglePlay() // play
	if e.Mode() != reactive.Bloom || e.State().Beat.Mode() != reactive.Bloom {
		t.Errorf("mode after restart = %v, want bloom", e.Mode())
	}
	if e.State().Analyzer.Fullness != reactive.NewFullness() {
		t.Errorf("fullness not reset: %+v", e.State().Analyzer.Fullness)
	}
}

func TestEngine_NewPatternAndResize(t *testing.T) {
	e, _, _, _ := newTestEngine(t, reactive.HybridTuning())
	seed := e.Seed()
	grid := e.Grid()

	e.Resize(40, 30)
	if e.Grid() != grid {
		t.Error("Resize() to the same size rebuilt the grid")
	}

	e.NewPattern()
	if e.Seed() != seed+config.SeedStep {
		t.Errorf("seed after NewPattern = %d, want %d", e.Seed(), seed+config.SeedStep)
	}
	if e.Params() != pattern.NewParams(e.Seed()) {
		t.Error("params do not match the new seed")
	}

	e.Resize(64, 36)
	if e.Grid().Cols != 64 || e.Grid().Rows != 36 {
		t.Errorf("grid after Resize = %dx%d, want 64x36", e.Grid().Cols, e.Grid().Rows)
	}
}

func TestInksFor(t *testing.T) {
	inks := InksFor(config.DefaultPalette())
	want := pattern.Inks{Cream: 0xf3e7d3, Haldi: 0xf2b705, Dark: 0x140f12}
	if inks != want {
		t.Errorf("InksFor(default) = %+v, want %+v", inks, want)
	}
}

func TestPaint_Radius(t *testing.T) {
	inks := pattern.Inks{Cream: 1, Haldi: 2, Dark: 3}
	g := pattern.Build(pattern.NewParams(42), 40, 30, inks)

	surf := &recordSurface{}
	surf.Clear()
	Paint(surf, g, FullBloom(g))
	if len(surf.fills) != g.Painted() {
		t.Errorf("full bloom painted %d tiles, want %d", len(surf.fills), g.Painted())
	}

	surf.Clear()
	Paint(surf, g, 5)
	cx, cy := g.Center()
	for pt := range surf.fills {
		dx, dy := float64(pt[0]-cx), float64(pt[1]-cy)
		if math.Hypot(dx, dy) > 5 {
			t.Errorf("tile %v painted outside radius 5", pt)
		}
	}

	surf.Clear()
	Paint(surf, g, -1)
	Paint(surf, nil, 10)
	if len(surf.fills) != 0 {
		t.Errorf("negative radius or nil grid painted %d tiles", len(surf.fills))
	}
}

func BenchmarkFrame(b *testing.B) {
	surf := &recordSurface{}
	src := &levelSpectrum{level: 180}
	e, err := New(surf, src, &fakeTransport{}, Options{Seed: 7, Palette: config.DefaultPalette(), Tuning: reactive.HybridTuning()})
	if err != nil {
		b.Fatal(err)
	}
	e.Resize(120, 68)
	e.TogglePlay()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Frame(time.Duration(i) * time.Second / 30)
	}
}
