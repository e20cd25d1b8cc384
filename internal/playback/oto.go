//go:build !headless

package playback

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/linuxmatters/kolam/internal/audio"
)

// oto allows one context per process.
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoRate int
	otoErr  error
)

func otoContext(sampleRate int) (*oto.Context, error) {
	otoOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatFloat32LE,
			BufferSize:   50 * time.Millisecond,
		})
		if err != nil {
			otoErr = fmt.Errorf("%w: %v", ErrNoDevice, err)
			return
		}
		<-ready
		otoCtx, otoRate = ctx, sampleRate
	})
	if otoErr != nil {
		return nil, otoErr
	}
	if otoRate != sampleRate {
		return nil, fmt.Errorf("audio device already open at %d Hz, track is %d Hz", otoRate, sampleRate)
	}
	return otoCtx, nil
}

// OtoTransport plays a track through the system audio device.
type OtoTransport struct {
	ctx    *oto.Context
	player *oto.Player
	stream *trackStream
	track  *audio.Track
}

// NewOtoTransport opens the audio device at the track's sample rate.
func NewOtoTransport(track *audio.Track) (*OtoTransport, error) {
	ctx, err := otoContext(track.SampleRate)
	if err != nil {
		return nil, err
	}

	stream := &trackStream{samples: track.Samples}
	return &OtoTransport{
		ctx:    ctx,
		player: ctx.NewPlayer(stream),
		stream: stream,
		track:  track,
	}, nil
}

func (o *OtoTransport) Play() error {
	if err := o.ctx.Err(); err != nil {
		return fmt.Errorf("audio device: %w", err)
	}
	if err := o.player.Err(); err != nil {
		return fmt.Errorf("audio player: %w", err)
	}
	if o.player.IsPlaying() {
		return nil
	}
	if o.finished() {
		if _, err := o.player.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("rewind: %w", err)
		}
	}
	o.player.Play()
	return nil
}

func (o *OtoTransport) Pause() {
	o.player.Pause()
}

func (o *OtoTransport) Paused() bool {
	return !o.player.IsPlaying()
}

// Position is the read cursor less whatever oto has buffered but not yet
// played.
func (o *OtoTransport) Position() time.Duration {
	played := int(o.stream.offset.Load()) - o.player.BufferedSize()/4
	return o.track.DurationOf(max(0, played))
}

func (o *OtoTransport) finished() bool {
	return int(o.stream.offset.Load()) >= len(o.stream.samples) && o.player.BufferedSize() == 0
}
