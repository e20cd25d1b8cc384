package main

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/linuxmatters/kolam/internal/audio"
	"github.com/linuxmatters/kolam/internal/cli"
	"github.com/linuxmatters/kolam/internal/config"
	"github.com/linuxmatters/kolam/internal/engine"
	"github.com/linuxmatters/kolam/internal/pattern"
	"github.com/linuxmatters/kolam/internal/playback"
	"github.com/linuxmatters/kolam/internal/reactive"
	"github.com/linuxmatters/kolam/internal/renderer"
	"github.com/linuxmatters/kolam/internal/ui"
	"github.com/linuxmatters/kolam/internal/window"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

type versionFlag bool

// BeforeApply prints the version and exits before any command runs.
func (versionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	cli.PrintVersion(vars["version"])
	app.Exit(0)
	return nil
}

// Globals are the flags shared by every command.
type Globals struct {
	Seed       uint32      `help:"Pattern seed (0 picks one from the clock)" default:"0"`
	Variant    string      `help:"Reaction variant: hybrid or simple" enum:"hybrid,simple" default:"hybrid"`
	Background string      `name:"bg" help:"Background colour as hex rgb or rrggbb, # optional" env:"KOLAM_BG" placeholder:"hex"`
	Cream      string      `help:"Cream ink colour as hex rgb or rrggbb, # optional" env:"KOLAM_CREAM" placeholder:"hex"`
	Haldi      string      `help:"Haldi ink colour as hex rgb or rrggbb, # optional" env:"KOLAM_HALDI" placeholder:"hex"`
	Ink        string      `help:"Dark ink colour as hex rgb or rrggbb, # optional" env:"KOLAM_INK" placeholder:"hex"`
	Version    versionFlag `help:"Show version information"`
}

var CLI struct {
	Globals

	Play     PlayCmd     `cmd:"" default:"withargs" help:"Play a track with a live mosaic in the terminal"`
	Window   WindowCmd   `cmd:"" help:"Play a track with a live mosaic in a desktop window"`
	Render   RenderCmd   `cmd:"" help:"Render a track to an animated GIF"`
	Snapshot SnapshotCmd `cmd:"" help:"Save one pattern as a PNG"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("kolam"),
		kong.Description("Seeded, 8-fold symmetric dot mosaics that bloom and change with your music."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if err := ctx.Run(&CLI.Globals); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}

// palette validates the colour flags.
func (g *Globals) palette() (config.Palette, error) {
	rc := config.RuntimeConfig{
		Background: &g.Background,
		Cream:      &g.Cream,
		Haldi:      &g.Haldi,
		Ink:        &g.Ink,
	}
	return rc.Palette()
}

// engineOptions gathers the palette, tuning and seed shared by every command.
func (g *Globals) engineOptions() (engine.Options, error) {
	palette, err := g.palette()
	if err != nil {
		return engine.Options{}, err
	}
	tuning, err := reactive.TuningFor(g.Variant)
	if err != nil {
		return engine.Options{}, err
	}
	return engine.Options{Seed: g.Seed, Palette: palette, Tuning: tuning}, nil
}

// openTransport returns an audible transport, or a silent clock when no
// audio device can be opened.
func openTransport(track *audio.Track) playback.Transport {
	t, err := playback.NewOtoTransport(track)
	if err != nil {
		cli.PrintWarning(fmt.Sprintf("no audio output (%v), playing silently", err))
		return playback.NewClock(track.Duration(), nil)
	}
	return t
}

// PlayCmd runs the terminal player.
type PlayCmd struct {
	Audio string `arg:"" name:"audio" help:"Audio file (.wav, .mp3 or .flac)" type:"existingfile"`
}

func (c *PlayCmd) Run(g *Globals) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("play needs an interactive terminal, use render for files")
	}

	opts, err := g.engineOptions()
	if err != nil {
		return err
	}
	track, err := audio.Load(c.Audio)
	if err != nil {
		return fmt.Errorf("loading audio: %w", err)
	}

	transport := openTransport(track)
	defer transport.Pause()

	analyser, err := audio.NewAnalyser(track, transport)
	if err != nil {
		return err
	}

	surface := ui.NewTermSurface(opts.Palette.Background)
	eng, err := engine.New(surface, analyser, transport, opts)
	if err != nil {
		return err
	}

	player := ui.NewPlayer(eng, surface, filepath.Base(c.Audio))
	p := tea.NewProgram(player,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}

// WindowCmd runs the desktop window player.
type WindowCmd struct {
	Audio  string `arg:"" name:"audio" help:"Audio file (.wav, .mp3 or .flac)" type:"existingfile"`
	Width  int    `help:"Initial window width" default:"1280"`
	Height int    `help:"Initial window height" default:"720"`
}

func (c *WindowCmd) Run(g *Globals) error {
	opts, err := g.engineOptions()
	if err != nil {
		return err
	}
	track, err := audio.Load(c.Audio)
	if err != nil {
		return fmt.Errorf("loading audio: %w", err)
	}

	transport := openTransport(track)
	defer transport.Pause()

	analyser, err := audio.NewAnalyser(track, transport)
	if err != nil {
		return err
	}

	return window.Run(window.Options{
		Title:     "Kolam - " + filepath.Base(c.Audio),
		Width:     c.Width,
		Height:    c.Height,
		Spectrum:  analyser,
		Transport: transport,
		Engine:    opts,
	})
}

// RenderCmd renders a track offline to a GIF.
type RenderCmd struct {
	Audio     string        `arg:"" name:"audio" help:"Audio file (.wav, .mp3 or .flac)" type:"existingfile"`
	Output    string        `arg:"" name:"output" help:"Output GIF file"`
	FPS       int           `name:"fps" help:"Frames per second (at most 50)" default:"20"`
	Width     int           `help:"Frame width" default:"640"`
	Height    int           `help:"Frame height" default:"360"`
	Limit     time.Duration `help:"Render at most this much of the track (0 renders all, frames are held in memory until the end)" default:"0s"`
	NoPreview bool          `help:"Disable the frame preview during rendering"`
}

func (c *RenderCmd) Run(g *Globals) error {
	opts, err := g.engineOptions()
	if err != nil {
		return err
	}
	track, err := audio.Load(c.Audio)
	if err != nil {
		return fmt.Errorf("loading audio: %w", err)
	}

	anim := renderer.Animation{
		Track:   track,
		Width:   c.Width,
		Height:  c.Height,
		FPS:     c.FPS,
		Limit:   c.Limit,
		Seed:    opts.Seed,
		Palette: opts.Palette,
		Tuning:  opts.Tuning,
	}

	if size := anim.FrameBytes(); size > config.GIFMemBudget {
		cli.PrintWarning(fmt.Sprintf("%d frames will hold about %s in memory before encoding, use --limit or a lower --fps to reduce it",
			anim.Frames(), cli.FormatBytes(size)))
	}

	model := ui.NewRenderModel(c.NoPreview)
	p := tea.NewProgram(model)

	var renderErr error
	go func() {
		start := time.Now()
		stats, err := c.render(anim, func(u renderer.FrameUpdate) {
			msg := ui.RenderProgress{
				Frame:       u.Frame,
				TotalFrames: u.TotalFrames,
				Elapsed:     time.Since(start),
				Seed:        u.Engine.Seed(),
				Mode:        u.Engine.Mode().String(),
				Changes:     u.Engine.Changes(),
			}
			// The frame buffer is reused, so the preview gets its own copy
			if !c.NoPreview && (u.Frame == 1 || u.Frame%c.FPS == 0) {
				msg.FrameData = cloneRGBA(u.Image)
			}
			p.Send(msg)
		})
		if err != nil {
			renderErr = err
			p.Quit()
			return
		}

		var size int64
		if info, err := os.Stat(c.Output); err == nil {
			size = info.Size()
		}
		p.Send(ui.RenderComplete{
			OutputFile: c.Output,
			Duration:   stats.Duration,
			FileSize:   size,
			Frames:     stats.Frames,
			Changes:    stats.Changes,
			Seed:       stats.Seed,
			TotalTime:  time.Since(start),
		})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	if renderErr != nil {
		return fmt.Errorf("during render: %w", renderErr)
	}
	if !model.Complete() {
		return errors.New("render interrupted")
	}

	cli.PrintSuccess(fmt.Sprintf("Done! Output: %s", c.Output))
	return nil
}

func (c *RenderCmd) render(anim renderer.Animation, progress func(renderer.FrameUpdate)) (renderer.AnimationStats, error) {
	f, err := os.Create(c.Output)
	if err != nil {
		return renderer.AnimationStats{}, fmt.Errorf("creating output: %w", err)
	}
	w := bufio.NewWriter(f)

	stats, err := anim.Render(w, progress)
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return stats, err
}

func cloneRGBA(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Rect)
	copy(out.Pix, img.Pix)
	return out
}

// SnapshotCmd saves one fully bloomed pattern.
type SnapshotCmd struct {
	Output    string `arg:"" name:"output" help:"Output PNG file"`
	Width     int    `help:"Image width before scaling" default:"1280"`
	Height    int    `help:"Image height before scaling" default:"720"`
	Scale     int    `help:"Integer upscale factor" default:"1"`
	NoCaption bool   `help:"Leave out the seed caption"`
}

func (c *SnapshotCmd) Run(g *Globals) error {
	if c.Width <= 0 || c.Height <= 0 || c.Scale <= 0 {
		return errors.New("snapshot size and scale must be positive")
	}
	palette, err := g.palette()
	if err != nil {
		return err
	}

	seed := g.Seed
	if seed == 0 {
		seed = engine.RandomSeed()
	}
	params := pattern.NewParams(seed)

	snap := renderer.Snapshot{
		Width:   c.Width,
		Height:  c.Height,
		Scale:   c.Scale,
		Palette: palette,
	}
	if !c.NoCaption {
		snap.Caption = fmt.Sprintf("kolam %08x  %s/%d", seed, params.Mode, params.Petals)
	}

	err = snap.Save(c.Output, func(s *renderer.ImageSurface) {
		cols, rows := s.Grid()
		grid := pattern.Build(params, cols, rows, engine.InksFor(palette))
		engine.Paint(s, grid, engine.FullBloom(grid))
	})
	if err != nil {
		return err
	}

	cli.PrintBanner()
	cli.PrintInfo("Seed", fmt.Sprintf("%08x", seed))
	cli.PrintInfo("Pattern", fmt.Sprintf("%s, %d petals, spacing %d", params.Mode, params.Petals, params.Spacing))
	cli.PrintInfo("Size", fmt.Sprintf("%dx%d", c.Width*c.Scale, c.Height*c.Scale))
	cli.PrintSuccess(fmt.Sprintf("Saved %s", c.Output))
	return nil
}
