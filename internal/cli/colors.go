package cli

import "github.com/charmbracelet/lipgloss"

// Kolam palette: rice-flour cream and turmeric on a kumkum ground.
// Shared by the CLI and the TUI for consistent branding.
var (
	Haldi  = lipgloss.Color("#F2B705") // Turmeric yellow
	Cream  = lipgloss.Color("#F3E7D3") // Rice flour
	Kumkum = lipgloss.Color("#C0283A") // Vermilion red

	// Accent colours
	Clay = lipgloss.Color("#A8876B") // Muted clay for subtle text
)
