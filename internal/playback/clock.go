package playback

import "time"

// Clock is a silent Transport whose playhead follows a clock. It stands in
// for the audio device when rendering offline or when no device is present.
type Clock struct {
	now    func() time.Time
	length time.Duration

	playing bool
	started time.Time
	offset  time.Duration
}

// NewClock returns a paused Clock for a track of the given length. A nil now
// uses the wall clock.
func NewClock(length time.Duration, now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, length: length}
}

// Play starts the clock. A clock that has run to the end counts as stopped
// and restarts from zero.
func (c *Clock) Play() error {
	if c.playing {
		if !c.Paused() {
			return nil
		}
		c.offset = c.length
	}
	if c.length > 0 && c.offset >= c.length {
		c.offset = 0
	}
	c.started = c.now()
	c.playing = true
	return nil
}

func (c *Clock) Pause() {
	if !c.playing {
		return
	}
	c.offset = c.Position()
	c.playing = false
}

func (c *Clock) Paused() bool {
	return !c.playing || (c.length > 0 && c.Position() >= c.length)
}

func (c *Clock) Position() time.Duration {
	pos := c.offset
	if c.playing {
		pos += c.now().Sub(c.started)
	}
	if c.length > 0 {
		pos = min(pos, c.length)
	}
	return pos
}
