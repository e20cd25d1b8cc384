package renderer

import (
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/linuxmatters/kolam/internal/audio"
	"github.com/linuxmatters/kolam/internal/config"
	"github.com/linuxmatters/kolam/internal/engine"
	"github.com/linuxmatters/kolam/internal/playback"
	"github.com/linuxmatters/kolam/internal/reactive"
)

// Animation describes an offline render of a track.
type Animation struct {
	Track   *audio.Track
	Width   int
	Height  int
	FPS     int
	Limit   time.Duration // zero renders the whole track
	Seed    uint32
	Palette config.Palette
	Tuning  reactive.Tuning
}

// FrameUpdate reports one rendered frame.
type FrameUpdate struct {
	Frame       int
	TotalFrames int
	Engine      *engine.Engine
	Image       *image.RGBA
}

// AnimationStats summarises a finished render.
type AnimationStats struct {
	Frames   int
	Duration time.Duration
	Changes  int
	Seed     uint32
}

// Frames returns the number of frames the animation will produce.
func (a Animation) Frames() int {
	d := a.Track.Duration()
	if a.Limit > 0 {
		d = min(d, a.Limit)
	}
	return int(d * time.Duration(a.FPS) / time.Second)
}

// FrameBytes estimates the memory the paletted frames hold until the GIF is
// encoded: one byte per pixel per frame.
func (a Animation) FrameBytes() int64 {
	return int64(a.Frames()) * int64(a.Width) * int64(a.Height)
}

// Render plays the track against a frame clock, drawing every frame into a
// GIF written to out. progress, if set, is called after each frame.
func (a Animation) Render(out io.Writer, progress func(FrameUpdate)) (AnimationStats, error) {
	if a.Track == nil {
		return AnimationStats{}, engine.ErrNoAudioSource
	}
	if a.FPS <= 0 || a.Width <= 0 || a.Height <= 0 {
		return AnimationStats{}, errors.New("render size and frame rate must be positive")
	}
	if a.FPS > config.MaxGIFFPS {
		return AnimationStats{}, fmt.Errorf("frame rate %d exceeds the GIF limit of %d fps", a.FPS, config.MaxGIFFPS)
	}

	total := a.Frames()
	if total == 0 {
		return AnimationStats{}, fmt.Errorf("track too short for one frame at %d fps", a.FPS)
	}

	// The clock reads the current frame time, so audio and frames stay locked.
	var now time.Duration
	epoch := time.Unix(0, 0)
	clock := playback.NewClock(a.Track.Duration(), func() time.Time { return epoch.Add(now) })

	analyser, err := audio.NewAnalyser(a.Track, clock)
	if err != nil {
		return AnimationStats{}, fmt.Errorf("creating analyser: %w", err)
	}

	var surface *ImageSurface
	if a.Width == config.RenderWidth && a.Height == config.RenderHeight {
		surface = AcquireRenderSurface(config.TileSize, a.Palette.Background)
		defer surface.Release()
	} else {
		surface = NewImageSurface(a.Width, a.Height, config.TileSize, a.Palette.Background)
	}

	eng, err := engine.New(surface, analyser, clock, engine.Options{Seed: a.Seed, Palette: a.Palette, Tuning: a.Tuning})
	if err != nil {
		return AnimationStats{}, err
	}
	eng.Resize(surface.Grid())
	if err := eng.TogglePlay(); err != nil {
		return AnimationStats{}, err
	}

	gw := NewGIFWriter(a.Palette, a.FPS)
	frameDur := time.Second / time.Duration(a.FPS)
	for i := 0; i < total; i++ {
		now = time.Duration(i) * frameDur
		eng.Frame(now)
		gw.AddFrame(surface.Image())

		if progress != nil {
			progress(FrameUpdate{Frame: i + 1, TotalFrames: total, Engine: eng, Image: surface.Image()})
		}
	}

	if err := gw.Encode(out); err != nil {
		return AnimationStats{}, fmt.Errorf("encoding GIF: %w", err)
	}

	return AnimationStats{
		Frames:   total,
		Duration: time.Duration(total) * frameDur,
		Changes:  eng.Changes(),
		Seed:     eng.Seed(),
	}, nil
}
