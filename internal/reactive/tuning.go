// Package reactive turns a byte frequency spectrum into the control signals
// that drive the mosaic: a normalised fullness level, the bloom/beat mode
// and note onsets.
package reactive

import (
	"fmt"
	"strings"
	"time"

	"github.com/linuxmatters/kolam/internal/config"
)

// Tuning selects how the engine reacts to audio.
type Tuning struct {
	Name string

	// Onset detector
	Alpha    float64       // EMA coefficient for the derivative statistics
	K        float64       // Standard deviations above the mean
	Bias     float64       // Constant added to the threshold
	MinDelta float64       // Smallest rise that can count as an onset
	Cooldown time.Duration // Minimum gap between onsets

	// BeatMode enables the bloom→beat hysteresis. Without it the engine
	// stays in bloom and every onset brings a new pattern.
	BeatMode bool
}

// HybridTuning blooms with the music and switches to per-beat pattern
// changes once the track has been full for a while.
func HybridTuning() Tuning {
	return Tuning{
		Name:     "hybrid",
		Alpha:    config.OnsetAlpha,
		K:        config.HybridOnsetK,
		Bias:     config.HybridOnsetBias,
		MinDelta: config.HybridOnsetMinDelta,
		Cooldown: config.HybridOnsetCooldown * time.Millisecond,
		BeatMode: true,
	}
}

// SimpleTuning reacts to every onset with a plain adaptive threshold.
func SimpleTuning() Tuning {
	return Tuning{
		Name:     "simple",
		Alpha:    config.OnsetAlpha,
		K:        config.SimpleOnsetK,
		Bias:     config.SimpleOnsetBias,
		MinDelta: config.SimpleOnsetMinDelta,
		Cooldown: config.SimpleOnsetCooldown * time.Millisecond,
		BeatMode: false,
	}
}

// TuningFor returns the tuning called name.
func TuningFor(name string) (Tuning, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "hybrid":
		return HybridTuning(), nil
	case "simple":
		return SimpleTuning(), nil
	default:
		return Tuning{}, fmt.Errorf("unknown variant %q (want hybrid or simple)", name)
	}
}
