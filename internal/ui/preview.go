package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// PreviewConfig holds configuration for the render preview
type PreviewConfig struct {
	Width  int // Width in terminal cells
	Height int // Height in terminal cells
}

// DefaultPreviewConfig returns a sensible default preview size
// 48x13 cells with half blocks is close to 16:9
func DefaultPreviewConfig() PreviewConfig {
	return PreviewConfig{
		Width:  48,
		Height: 13,
	}
}

// DownsampleFrame takes a full-resolution frame and averages it down to
// preview size. Each cell covers two preview pixels, top and bottom, so the
// returned grid has 2×Height rows.
func DownsampleFrame(frame *image.RGBA, config PreviewConfig) [][]color.RGBA {
	bounds := frame.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()
	rows := config.Height * 2

	if config.Width <= 0 || rows <= 0 || srcWidth < config.Width || srcHeight < rows {
		return nil
	}

	// Calculate how many source pixels each preview pixel represents
	cellWidth := srcWidth / config.Width
	cellHeight := srcHeight / rows

	preview := make([][]color.RGBA, rows)
	for row := 0; row < rows; row++ {
		preview[row] = make([]color.RGBA, config.Width)
		for col := 0; col < config.Width; col++ {
			srcX := col * cellWidth
			srcY := row * cellHeight

			var sumR, sumG, sumB int
			for y := srcY; y < srcY+cellHeight; y++ {
				i := frame.PixOffset(bounds.Min.X+srcX, bounds.Min.Y+y)
				for x := 0; x < cellWidth; x++ {
					sumR += int(frame.Pix[i])
					sumG += int(frame.Pix[i+1])
					sumB += int(frame.Pix[i+2])
					i += 4
				}
			}

			n := cellWidth * cellHeight
			preview[row][col] = color.RGBA{
				R: uint8(sumR / n),
				G: uint8(sumG / n),
				B: uint8(sumB / n),
				A: 255,
			}
		}
	}

	return preview
}

// RenderPreview converts a preview grid to a bordered string using ANSI
// 24-bit colour and upper half blocks.
func RenderPreview(preview [][]color.RGBA) string {
	if len(preview) == 0 {
		return ""
	}

	width := len(preview[0])
	var sb strings.Builder

	sb.WriteString("  ┌" + strings.Repeat("─", width) + "┐\n")
	for row := 0; row < len(preview); row += 2 {
		sb.WriteString("  │")
		for col, top := range preview[row] {
			bottom := top
			if row+1 < len(preview) {
				bottom = preview[row+1][col]
			}
			fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%s",
				top.R, top.G, top.B, bottom.R, bottom.G, bottom.B, upperHalf)
		}
		sb.WriteString("\x1b[0m│\n")
	}
	sb.WriteString("  └" + strings.Repeat("─", width) + "┘\n")

	return sb.String()
}
