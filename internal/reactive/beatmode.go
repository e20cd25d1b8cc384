package reactive

import (
	"time"

	"github.com/linuxmatters/kolam/internal/config"
)

// Mode is the bloom state of the engine.
type Mode int

const (
	// Bloom grows and shrinks the visible disc with fullness.
	Bloom Mode = iota
	// Beat holds the disc near full size and changes pattern on onsets.
	Beat
)

func (m Mode) String() string {
	if m == Beat {
		return "beat"
	}
	return "bloom"
}

// BeatModeController switches between Bloom and Beat with hysteresis: the
// fullness must stay past a threshold for a hold time before the mode flips.
type BeatModeController struct {
	mode Mode

	highSince, lowSince time.Duration
	highSet, lowSet     bool
}

// Mode returns the current mode.
func (c *BeatModeController) Mode() Mode { return c.mode }

// Reset returns to Bloom and clears both hold timers.
func (c *BeatModeController) Reset() {
	*c = BeatModeController{}
}

// Update feeds one fullness sample taken at now and returns the new mode.
func (c *BeatModeController) Update(fullness float64, now time.Duration) Mode {
	switch c.mode {
	case Bloom:
		if fullness <= config.BeatModeOn {
			c.highSet = false
			break
		}
		if !c.highSet {
			c.highSince, c.highSet = now, true
		}
		if now-c.highSince > config.BeatModeOnHold*time.Millisecond {
			c.mode = Beat
			c.lowSet = false
		}
	case Beat:
		if fullness >= config.BeatModeOff {
			c.lowSet = false
			break
		}
		if !c.lowSet {
			c.lowSince, c.lowSet = now, true
		}
		if now-c.lowSince > config.BeatModeOffHold*time.Millisecond {
			c.mode = Bloom
			c.highSet = false
		}
	}
	return c.mode
}
