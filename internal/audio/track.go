package audio

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// readChunkSize is the number of samples pulled from a decoder per read.
const readChunkSize = 8192

// Track is a fully decoded mono audio file.
type Track struct {
	Samples    []float64
	SampleRate int
}

// Load decodes filename into memory.
func Load(filename string) (*Track, error) {
	dec, err := Open(filename)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return ReadAll(dec)
}

// ReadAll drains a decoder into a Track.
func ReadAll(dec Decoder) (*Track, error) {
	if dec.SampleRate() <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", dec.SampleRate())
	}

	track := &Track{SampleRate: dec.SampleRate()}
	for {
		chunk, err := dec.ReadChunk(readChunkSize)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading audio at sample %d: %w", len(track.Samples), err)
		}
		track.Samples = append(track.Samples, chunk...)
	}

	if len(track.Samples) == 0 {
		return nil, fmt.Errorf("no audio data in file")
	}
	return track, nil
}

// Duration returns the playing time of the track.
func (t *Track) Duration() time.Duration {
	return t.DurationOf(len(t.Samples))
}

// DurationOf converts a sample count to time at the track's rate.
func (t *Track) DurationOf(samples int) time.Duration {
	return time.Duration(int64(samples) * int64(time.Second) / int64(t.SampleRate))
}

// IndexAt returns the sample index played at position d, clamped to the track.
func (t *Track) IndexAt(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	i := int(int64(d) * int64(t.SampleRate) / int64(time.Second))
	return min(i, len(t.Samples))
}
