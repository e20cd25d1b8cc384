package engine

import "github.com/linuxmatters/kolam/internal/reactive"

// AudioState is everything the engine remembers about the music between
// frames. It is reset each time playback starts from paused.
type AudioState struct {
	Analyzer *reactive.Analyzer
	Beat     reactive.BeatModeController
	Onset    *reactive.OnsetDetector

	BloomR      float64
	BloomTarget float64
}

// NewAudioState returns a reset state for tuning t.
func NewAudioState(t reactive.Tuning) *AudioState {
	return &AudioState{
		Analyzer: reactive.NewAnalyzer(),
		Onset:    reactive.NewOnsetDetector(t),
	}
}

// Reset clears every tracker and collapses the bloom.
func (s *AudioState) Reset() {
	s.Analyzer.Reset()
	s.Beat.Reset()
	s.Onset.Reset()
	s.BloomR = 0
	s.BloomTarget = 0
}
