package config

import "math"

// Grid layout
const (
	TileBase  = 20  // Base tile edge in pixels before scaling
	GridScale = 0.8 // Layout scale applied to TileBase
	MinTile   = 10  // Smallest tile edge allowed after scaling
)

// TileSize is the edge length of one grid tile in pixels.
var TileSize = max(MinTile, int(math.Round(TileBase*GridScale)))

// Output settings
const (
	// Live players tick at this rate
	LiveFPS = 30

	// Offline render defaults
	RenderFPS    = 20
	RenderWidth  = 640
	RenderHeight = 360
	MaxGIFFPS    = 50        // GIF delays are whole centiseconds, at least 2
	GIFMemBudget = 256 << 20 // Frame bytes held before encoding; larger renders warn

	// Snapshot defaults
	SnapshotWidth  = 1280
	SnapshotHeight = 720
	SnapshotScale  = 1
)

// Audio settings
const (
	FFTSize            = 2048  // Analyser window (frequency bins = FFTSize/2)
	AnalyserSmoothing  = 0.72  // Time smoothing between successive spectra
	AnalyserMinDecibel = -100. // Byte 0 in the spectrum
	AnalyserMaxDecibel = -30.  // Byte 255 in the spectrum
)

// Spectrum bands (inclusive bin ranges)
const (
	LowBandLo      = 0
	LowBandHi      = 24
	MidBandLo      = 25
	MidBandHi      = 110
	HighBandLo     = 111
	HighBandHi     = 260
	MidDrumsBandLo = 25
	MidDrumsBandHi = 90
)

// Fullness tracking
const (
	FullnessLowWeight  = 0.50
	FullnessMidWeight  = 0.35
	FullnessHighWeight = 0.15
	FullnessEMA        = 0.10  // Smoothing coefficient for the raw blend
	FullnessMaxDecay   = 0.995 // Running maximum decay per sample
	FullnessMaxFloor   = 0.06  // Normalisation floor
	FullnessMaxInitial = 0.08  // Running maximum after a reset

	BeatEnergyLowWeight = 0.72
	BeatEnergyMidWeight = 0.28
)

// Beat-mode hysteresis
const (
	BeatModeOn      = 0.78
	BeatModeOff     = 0.55
	BeatModeOnHold  = 1200 // ms above BeatModeOn before entering beat mode
	BeatModeOffHold = 900  // ms below BeatModeOff before leaving beat mode
)

// Onset detector tuning. The hybrid set is moderate, not trigger-happy.
const (
	OnsetAlpha = 0.12

	HybridOnsetK        = 1.10
	HybridOnsetBias     = 3.2
	HybridOnsetMinDelta = 7
	HybridOnsetCooldown = 240 // ms

	SimpleOnsetK        = 1.15
	SimpleOnsetBias     = 0
	SimpleOnsetMinDelta = 0
	SimpleOnsetCooldown = 180 // ms
)

// Bloom radius (fractions of the maximum corner radius)
const (
	BloomMin         = 0.12
	BloomMax         = 1.02
	BloomBeatBase    = 0.94
	BloomBeatBreathe = 0.08
	BloomStart       = 0.10
	BloomEase        = 0.08 // Per-frame exponential easing toward the target
)

// Pattern assembly
const (
	RimFade = 0.965 // Non-edge paint is dropped beyond this fraction of the max radius
)

// Seed stepping for new patterns (golden-ratio increment)
const SeedStep uint32 = 0x9E3779B9

// Default palette. Future customisation happens through RuntimeConfig.
const (
	DefaultBackground = "#6b0f1a"
	DefaultCream      = "#f3e7d3"
	DefaultHaldi      = "#f2b705"
	DefaultInk        = "#140f12"
)

// GridFor returns the number of whole tiles that fit in a viewport and the
// pixel origin that centres that grid.
func GridFor(width, height int) (cols, rows, originX, originY int) {
	if width <= 0 || height <= 0 {
		return 0, 0, 0, 0
	}
	cols = width / TileSize
	rows = height / TileSize
	originX = (width - cols*TileSize) / 2
	originY = (height - rows*TileSize) / 2
	return cols, rows, originX, originY
}
