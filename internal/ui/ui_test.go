package ui

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/linuxmatters/kolam/internal/config"
	"github.com/linuxmatters/kolam/internal/engine"
	"github.com/linuxmatters/kolam/internal/playback"
	"github.com/linuxmatters/kolam/internal/reactive"
)

type quietSpectrum struct{}

func (quietSpectrum) FrequencyBinCount() int { return config.FFTSize / 2 }

func (quietSpectrum) ByteFrequencyData(dst []uint8) {
	for i := range dst {
		dst[i] = 0
	}
}

type brokenTransport struct{}

func (brokenTransport) Play() error             { return errors.New("device unplugged") }
func (brokenTransport) Pause()                  {}
func (brokenTransport) Paused() bool            { return true }
func (brokenTransport) Position() time.Duration { return 0 }

func newTestPlayer(t *testing.T, transport playback.Transport) (*Player, *engine.Engine) {
	t.Helper()

	palette := config.DefaultPalette()
	surface := NewTermSurface(palette.Background)
	eng, err := engine.New(surface, quietSpectrum{}, transport, engine.Options{
		Seed:    123456789,
		Palette: palette,
		Tuning:  reactive.HybridTuning(),
	})
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return NewPlayer(eng, surface, "test.wav"), eng
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTermSurface(t *testing.T) {
	bg := color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}
	s := NewTermSurface(bg)

	if out := s.Render(); out != "" {
		t.Errorf("empty surface rendered %q", out)
	}

	s.Resize(4, 3)
	if cols, rows := s.Grid(); cols != 4 || rows != 3 {
		t.Fatalf("Grid() = %dx%d, want 4x3", cols, rows)
	}

	s.FillTile(1, 2, 0xABCDEF)
	s.FillTile(-1, 0, 0xFFFFFF)
	s.FillTile(4, 0, 0xFFFFFF)

	if got := s.At(1, 2); got != 0xABCDEF {
		t.Errorf("At(1,2) = %06x, want abcdef", got)
	}
	if got := s.At(0, 0); got != 0x102030 {
		t.Errorf("At(0,0) = %06x, want background", got)
	}

	out := s.Render()
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("rendered %d lines, want 2 for 3 tile rows", len(lines))
	}
	for i, line := range lines {
		if n := strings.Count(line, upperHalf); n != 4 {
			t.Errorf("line %d has %d cells, want 4", i, n)
		}
	}
	if !strings.Contains(out, "\x1b[38;2;171;205;239m") {
		t.Error("filled tile colour missing from output")
	}

	s.Clear()
	if got := s.At(1, 2); got != 0x102030 {
		t.Errorf("after Clear At(1,2) = %06x, want background", got)
	}
}

func TestDownsampleFrame(t *testing.T) {
	cfg := PreviewConfig{Width: 8, Height: 4}
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 200, 100, 50, 255
	}

	preview := DownsampleFrame(img, cfg)
	if len(preview) != 8 || len(preview[0]) != 8 {
		t.Fatalf("preview is %dx%d, want 8 rows of 8", len(preview), len(preview[0]))
	}
	want := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	if preview[3][5] != want {
		t.Errorf("preview pixel = %v, want %v", preview[3][5], want)
	}

	out := RenderPreview(preview)
	if got := strings.Count(out, "\n"); got != 6 {
		t.Errorf("preview has %d lines, want 6 (4 rows plus borders)", got)
	}

	if got := DownsampleFrame(image.NewRGBA(image.Rect(0, 0, 4, 4)), cfg); got != nil {
		t.Error("frame smaller than the preview should give nil")
	}
	if got := RenderPreview(nil); got != "" {
		t.Errorf("RenderPreview(nil) = %q, want empty", got)
	}
}

func TestPlayerResize(t *testing.T) {
	p, eng := newTestPlayer(t, playback.NewClock(time.Minute, nil))

	p.Update(tea.WindowSizeMsg{Width: 30, Height: 11})

	if cols, rows := p.surface.Grid(); cols != 30 || rows != 20 {
		t.Errorf("surface grid = %dx%d, want 30x20", cols, rows)
	}
	if g := eng.Grid(); g.Cols != 30 || g.Rows != 20 {
		t.Errorf("engine grid = %dx%d, want 30x20", g.Cols, g.Rows)
	}

	view := p.View()
	if !strings.Contains(view, "paused") {
		t.Error("status bar should show paused before playback starts")
	}
	if got := strings.Count(view, "\n"); got != 10 {
		t.Errorf("view has %d newlines, want 10 mosaic lines", got)
	}
}

func TestPlayerKeys(t *testing.T) {
	p, eng := newTestPlayer(t, playback.NewClock(time.Minute, nil))
	p.Update(tea.WindowSizeMsg{Width: 20, Height: 11})

	p.Update(tea.KeyMsg{Type: tea.KeySpace})
	if !eng.Playing() {
		t.Fatal("space should start playback")
	}

	seed := eng.Seed()
	p.Update(keyRunes("n"))
	if eng.Seed() == seed || eng.Changes() != 1 {
		t.Errorf("n should draw a new pattern: seed %08x → %08x, changes %d", seed, eng.Seed(), eng.Changes())
	}

	p.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if eng.Playing() {
		t.Error("left click should pause playback")
	}

	for _, key := range []tea.KeyMsg{keyRunes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		_, cmd := p.Update(key)
		if cmd == nil {
			t.Fatalf("%q returned no command", key.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q did not quit", key.String())
		}
	}
}

func TestPlayerFrameTicker(t *testing.T) {
	p, _ := newTestPlayer(t, playback.NewClock(time.Minute, nil))
	if cmd := p.Init(); cmd == nil {
		t.Fatal("Init should start the ticker")
	}
	p.Update(tea.WindowSizeMsg{Width: 20, Height: 11})

	if _, cmd := p.Update(frameMsg{gen: p.gen}); cmd == nil {
		t.Error("current frame should schedule the next")
	}
	if _, cmd := p.Update(frameMsg{gen: p.gen - 1}); cmd != nil {
		t.Error("stale frame should be dropped")
	}

	p.Update(tea.BlurMsg{})
	if _, cmd := p.Update(frameMsg{gen: p.gen}); cmd != nil {
		t.Error("hidden player should not draw")
	}

	_, cmd := p.Update(tea.FocusMsg{})
	if cmd == nil {
		t.Fatal("focus should restart the ticker")
	}
	if _, again := p.Update(tea.FocusMsg{}); again != nil {
		t.Error("second focus should not start another ticker")
	}
}

func TestPlayerPlayError(t *testing.T) {
	p, eng := newTestPlayer(t, brokenTransport{})
	p.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	p.Update(tea.KeyMsg{Type: tea.KeySpace})

	if p.Err() == nil {
		t.Fatal("expected a playback error")
	}
	if eng.Playing() {
		t.Error("engine should stay paused after a failed start")
	}
	if !strings.Contains(p.View(), "device unplugged") {
		t.Error("status bar should show the playback error")
	}
}

func TestRenderModel(t *testing.T) {
	m := NewRenderModel(false)

	img := image.NewRGBA(image.Rect(0, 0, config.RenderWidth, config.RenderHeight))
	m.Update(RenderProgress{Frame: 5, TotalFrames: 10, Mode: "bloom", Seed: 42, FrameData: img})

	view := m.View()
	if !strings.Contains(view, "Frame 5 of 10") {
		t.Errorf("progress view missing frame count:\n%s", view)
	}
	if m.cachedPreview == "" {
		t.Error("preview should be cached")
	}

	_, cmd := m.Update(RenderComplete{OutputFile: "out.gif", Frames: 10, FileSize: 2048})
	if cmd == nil {
		t.Fatal("completion should schedule the quit timer")
	}
	if !m.Complete() || !strings.Contains(m.View(), "out.gif") {
		t.Error("completion view should name the output")
	}

	_, cmd = m.Update(quitTimerMsg{})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit timer should quit")
	}
}
