package reactive

import (
	"math"
	"time"
)

// OnsetDetector fires when the positive rise in beat energy jumps well above
// its recent average. The mean and variance of the rise are tracked with an
// exponential moving average and update on every sample, cooldown or not.
type OnsetDetector struct {
	tuning Tuning

	prev     float64
	mean     float64
	variance float64

	last  time.Duration
	fired bool
}

// NewOnsetDetector returns a detector using t.
func NewOnsetDetector(t Tuning) *OnsetDetector {
	return &OnsetDetector{tuning: t}
}

// Reset clears the statistics and the cooldown.
func (d *OnsetDetector) Reset() {
	*d = OnsetDetector{tuning: d.tuning}
}

// Threshold returns the rise the next sample must exceed.
func (d *OnsetDetector) Threshold() float64 {
	return d.mean + d.tuning.K*math.Sqrt(max(0, d.variance)) + d.tuning.Bias
}

// Detect feeds the beat energy sampled at now and reports an onset.
func (d *OnsetDetector) Detect(energy float64, now time.Duration) bool {
	rise := max(0, energy-d.prev)
	d.prev = energy

	diff := rise - d.mean
	d.mean += d.tuning.Alpha * diff
	d.variance += d.tuning.Alpha * (diff*diff - d.variance)

	if d.fired && now-d.last < d.tuning.Cooldown {
		return false
	}
	if rise < d.tuning.MinDelta {
		return false
	}
	if rise > d.Threshold() {
		d.last, d.fired = now, true
		return true
	}
	return false
}
