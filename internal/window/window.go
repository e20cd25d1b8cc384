//go:build !headless

package window

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/linuxmatters/kolam/internal/audio"
	"github.com/linuxmatters/kolam/internal/cli"
	"github.com/linuxmatters/kolam/internal/config"
	"github.com/linuxmatters/kolam/internal/engine"
	"github.com/linuxmatters/kolam/internal/playback"
)

// Options configures the window.
type Options struct {
	Title     string
	Width     int
	Height    int
	Spectrum  audio.SpectrumSource
	Transport playback.Transport
	Engine    engine.Options
}

type game struct {
	engine  *engine.Engine
	surface *resizableSurface
	screen  *ebiten.Image
	frames  int
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	surface := newResizableSurface(opts.Engine.Palette.Background)
	eng, err := engine.New(surface, opts.Spectrum, opts.Transport, opts.Engine)
	if err != nil {
		return err
	}

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.LiveFPS)
	// Stop drawing while the window is in the background
	ebiten.SetRunnableOnUnfocused(false)

	g := &game{engine: eng, surface: surface}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (g *game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace), inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		// A failed start leaves the engine paused; the user can retry
		if err := g.engine.TogglePlay(); err != nil {
			cli.PrintWarning(err.Error())
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.engine.NewPattern()
	}

	// TPS is fixed, so the tick count is the frame clock
	g.engine.Frame(time.Duration(g.frames) * time.Second / config.LiveFPS)
	g.frames++
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.screen == nil {
		return
	}
	g.screen.WritePixels(g.surface.Image().Pix)
	screen.DrawImage(g.screen, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.surface.resize(outsideWidth, outsideHeight) || g.screen == nil {
		g.screen = ebiten.NewImage(g.surface.width, g.surface.height)
		g.engine.Resize(g.surface.Grid())
	}
	return g.surface.width, g.surface.height
}
