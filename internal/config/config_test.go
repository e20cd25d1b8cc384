package config

import (
	"errors"
	"image/color"
	"testing"
)

// TestParseHexColor_ValidInputs verifies that ParseHexColor correctly parses
// the accepted hex colour formats, catching case sensitivity issues,
// prefix handling, short-form expansion and byte ordering bugs.
func TestParseHexColor_ValidInputs(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		wantR uint8
		wantG uint8
		wantB uint8
	}{
		{name: "FF0000 (uppercase red, no hash)", input: "FF0000", wantR: 255},
		{name: "ff0000 (lowercase red, no hash)", input: "ff0000", wantR: 255},
		{name: "#FF0000 (uppercase red, with hash)", input: "#FF0000", wantR: 255},
		{name: "Ff00fF (mixed case magenta)", input: "Ff00fF", wantR: 255, wantB: 255},
		{name: "00FF00 (green)", input: "00FF00", wantG: 255},
		{name: "0000FF (blue)", input: "0000FF", wantB: 255},
		{name: "000000 (black)", input: "000000"},
		{name: "FFFFFF (white)", input: "FFFFFF", wantR: 255, wantG: 255, wantB: 255},
		{name: "808080 (gray)", input: "808080", wantR: 128, wantG: 128, wantB: 128},
		{name: "010203 (low values)", input: "010203", wantR: 1, wantG: 2, wantB: 3},
		{name: "FDFEFF (high values)", input: "FDFEFF", wantR: 253, wantG: 254, wantB: 255},
		// Short forms expand each digit
		{name: "FFF (short white)", input: "FFF", wantR: 255, wantG: 255, wantB: 255},
		{name: "#abc (short, with hash)", input: "#abc", wantR: 0xaa, wantG: 0xbb, wantB: 0xcc},
		{name: "#1A2 (short, mixed case)", input: "#1A2", wantR: 0x11, wantG: 0xaa, wantB: 0x22},
		// Default palette
		{name: "#6b0f1a (default background)", input: DefaultBackground, wantR: 0x6b, wantG: 0x0f, wantB: 0x1a},
		{name: "#f3e7d3 (default cream)", input: DefaultCream, wantR: 0xf3, wantG: 0xe7, wantB: 0xd3},
		{name: "#f2b705 (default haldi)", input: DefaultHaldi, wantR: 0xf2, wantG: 0xb7, wantB: 0x05},
		{name: "#140f12 (default ink)", input: DefaultInk, wantR: 0x14, wantG: 0x0f, wantB: 0x12},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, g, b, err := ParseHexColor(tc.input)
			if err != nil {
				t.Fatalf("ParseHexColor(%q) returned error: %v", tc.input, err)
			}
			if r != tc.wantR || g != tc.wantG || b != tc.wantB {
				t.Errorf("ParseHexColor(%q) = (%d, %d, %d), want (%d, %d, %d)",
					tc.input, r, g, b, tc.wantR, tc.wantG, tc.wantB)
			}
		})
	}
}

// TestParseHexColor_InvalidInputs verifies that ParseHexColor rejects
// malformed input with ErrInvalidColor.
func TestParseHexColor_InvalidInputs(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"FF (too short)", "FF"},
		{"FFFF (between short and long)", "FFFF"},
		{"#FFFFF (five digits)", "#FFFFF"},
		{"FFFFFFF (too long)", "FFFFFFF"},
		{"#FFFFFFF (too long with hash)", "#FFFFFFF"},
		{"GGGGGG (invalid hex)", "GGGGGG"},
		{"#GGG (invalid short hex)", "#GGG"},
		{"FF00GG (mixed valid/invalid)", "FF00GG"},
		{"Empty string", ""},
		{"# (just hash)", "#"},
		{"FF 000 (spaces)", "FF 000"},
		{"FF#000 (hash in middle)", "FF#000"},
		{"##FF0000 (double hash)", "##FF0000"},
		{"FF0000\\n (with newline)", "FF0000\n"},
		{"rgb() (css function)", "rgb(1,2,3)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := ParseHexColor(tc.input)
			if err == nil {
				t.Fatalf("ParseHexColor(%q) expected error, got nil", tc.input)
			}
			if !errors.Is(err, ErrInvalidColor) {
				t.Errorf("ParseHexColor(%q) error = %v, want ErrInvalidColor", tc.input, err)
			}
		})
	}
}

func TestPackUnpack(t *testing.T) {
	c := color.RGBA{R: 0xf2, G: 0xb7, B: 0x05, A: 255}
	if got := Pack(c); got != 0xf2b705 {
		t.Errorf("Pack(%v) = %#06x, want 0xf2b705", c, got)
	}
	if got := Unpack(0xf2b705); got != c {
		t.Errorf("Unpack(0xf2b705) = %v, want %v", got, c)
	}
}

// TestRuntimeConfig_NilFields verifies that the getters fall back to the
// defaults, so a zero RuntimeConfig never dereferences a nil pointer.
func TestRuntimeConfig_NilFields(t *testing.T) {
	empty := ""
	custom := "#010203"

	tests := []struct {
		name   string
		config *RuntimeConfig
		want   [4]string
	}{
		{
			name:   "Completely nil config",
			config: &RuntimeConfig{},
			want:   [4]string{DefaultBackground, DefaultCream, DefaultHaldi, DefaultInk},
		},
		{
			name:   "Empty strings use defaults",
			config: &RuntimeConfig{Background: &empty, Ink: &empty},
			want:   [4]string{DefaultBackground, DefaultCream, DefaultHaldi, DefaultInk},
		},
		{
			name:   "Partial override",
			config: &RuntimeConfig{Haldi: &custom},
			want:   [4]string{DefaultBackground, DefaultCream, custom, DefaultInk},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := [4]string{
				tt.config.GetBackground(),
				tt.config.GetCream(),
				tt.config.GetHaldi(),
				tt.config.GetInk(),
			}
			if got != tt.want {
				t.Errorf("getters = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRuntimeConfig_Palette(t *testing.T) {
	bad := "#12345g"
	short := "#fff"

	t.Run("defaults", func(t *testing.T) {
		p, err := (&RuntimeConfig{}).Palette()
		if err != nil {
			t.Fatalf("Palette() error: %v", err)
		}
		if Pack(p.Background) != 0x6b0f1a || Pack(p.Ink) != 0x140f12 {
			t.Errorf("Palette() = %+v, want defaults", p)
		}
		if p != DefaultPalette() {
			t.Errorf("Palette() = %+v, want DefaultPalette()", p)
		}
	})

	t.Run("short override", func(t *testing.T) {
		p, err := (&RuntimeConfig{Cream: &short}).Palette()
		if err != nil {
			t.Fatalf("Palette() error: %v", err)
		}
		if Pack(p.Cream) != 0xffffff {
			t.Errorf("cream = %#06x, want 0xffffff", Pack(p.Cream))
		}
	})

	t.Run("invalid colour fails fast", func(t *testing.T) {
		_, err := (&RuntimeConfig{Ink: &bad}).Palette()
		if !errors.Is(err, ErrInvalidColor) {
			t.Fatalf("Palette() error = %v, want ErrInvalidColor", err)
		}
	})
}

func TestGridFor(t *testing.T) {
	tests := []struct {
		name               string
		width, height      int
		cols, rows, ox, oy int
	}{
		{"exact fit", TileSize * 40, TileSize * 30, 40, 30, 0, 0},
		{"centred remainder", TileSize*10 + 7, TileSize*5 + 3, 10, 5, 3, 1},
		{"smaller than a tile", TileSize - 1, TileSize - 1, 0, 0, (TileSize - 1) / 2, (TileSize - 1) / 2},
		{"zero viewport", 0, 0, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, rows, ox, oy := GridFor(tt.width, tt.height)
			if cols != tt.cols || rows != tt.rows || ox != tt.ox || oy != tt.oy {
				t.Errorf("GridFor(%d, %d) = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
					tt.width, tt.height, cols, rows, ox, oy, tt.cols, tt.rows, tt.ox, tt.oy)
			}
		})
	}
}

func TestTileSize(t *testing.T) {
	if TileSize != 16 {
		t.Errorf("TileSize = %d, want 16", TileSize)
	}
}
