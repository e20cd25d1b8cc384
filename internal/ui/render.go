package ui

import (
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/linuxmatters/kolam/internal/cli"
)

// RenderProgress reports one rendered frame
type RenderProgress struct {
	Frame       int
	TotalFrames int
	Elapsed     time.Duration
	Seed        uint32
	Mode        string
	Changes     int
	FrameData   *image.RGBA // Current frame for the preview (optional)
}

// RenderComplete signals that the GIF has been written
type RenderComplete struct {
	OutputFile string
	Duration   time.Duration // Length of the animation
	FileSize   int64
	Frames     int
	Changes    int
	Seed       uint32
	TotalTime  time.Duration
}

// quitTimerMsg is sent when it's time to quit after showing completion
type quitTimerMsg struct{}

// RenderModel implements the Bubbletea model for an offline render
type RenderModel struct {
	progress        progress.Model
	lastUpdate      RenderProgress
	complete        *RenderComplete
	startTime       time.Time
	width           int
	minDisplayTime  time.Duration // Minimum time to show UI
	completionDelay time.Duration // Time to show completion screen
	cachedPreview   string        // Cached rendered preview string
	cachedFrameNum  int           // Frame number of cached preview
	noPreview       bool
}

// NewRenderModel creates a new render progress model
func NewRenderModel(noPreview bool) *RenderModel {
	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return &RenderModel{
		progress:        p,
		startTime:       time.Now(),
		minDisplayTime:  500 * time.Millisecond,
		completionDelay: 2 * time.Second,
		noPreview:       noPreview,
	}
}

// Init initializes the model
func (m *RenderModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *RenderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = max(10, min(msg.Width-30, 50))
		return m, nil

	case RenderProgress:
		m.lastUpdate = msg
		if !m.noPreview && msg.FrameData != nil && msg.Frame != m.cachedFrameNum {
			m.cachedPreview = RenderPreview(DownsampleFrame(msg.FrameData, DefaultPreviewConfig()))
			m.cachedFrameNum = msg.Frame
		}
		return m, nil

	case RenderComplete:
		m.complete = &msg

		delay := m.completionDelay
		if elapsed := time.Since(m.startTime); elapsed < m.minDisplayTime {
			delay += m.minDisplayTime - elapsed
		}
		return m, tea.Tick(delay, func(time.Time) tea.Msg {
			return quitTimerMsg{}
		})

	case quitTimerMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		// Any key skips the completion screen
		if m.complete != nil || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m, nil
}

// Complete reports whether the render finished.
func (m *RenderModel) Complete() bool {
	return m.complete != nil
}

// View renders the UI
func (m *RenderModel) View() string {
	if m.complete != nil {
		return m.renderComplete()
	}
	return m.renderProgress()
}

func (m *RenderModel) renderProgress() string {
	var s strings.Builder

	s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(cli.Kumkum).Render(cli.AppName))
	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Faint(true).Render("Rendering animation"))
	s.WriteString("\n\n")

	u := m.lastUpdate
	if u.TotalFrames > 0 {
		pct := float64(u.Frame) / float64(u.TotalFrames)

		s.WriteString("Progress: ")
		s.WriteString(m.progress.ViewAs(pct))
		s.WriteString(fmt.Sprintf("  %d%%", int(pct*100)))
		s.WriteString("\n\n")

		elapsed := u.Elapsed
		if elapsed == 0 {
			elapsed = time.Since(m.startTime)
		}
		var eta time.Duration
		if pct > 0 {
			eta = time.Duration(float64(elapsed)/pct) - elapsed
		}

		timing := fmt.Sprintf("Frame %d of %d  │  Time: %s  │  ETA: %s",
			u.Frame, u.TotalFrames, cli.FormatDuration(elapsed), cli.FormatDuration(eta))
		s.WriteString(lipgloss.NewStyle().Faint(true).Render(timing))
		s.WriteString("\n")

		label := lipgloss.NewStyle().Faint(true)
		value := lipgloss.NewStyle().Bold(true)
		s.WriteString(label.Render("Mode: "))
		s.WriteString(value.Render(u.Mode))
		s.WriteString(label.Render("  Seed: "))
		s.WriteString(value.Render(fmt.Sprintf("%08x", u.Seed)))
		s.WriteString(label.Render("  Patterns: "))
		s.WriteString(value.Render(fmt.Sprintf("%d", u.Changes+1)))
		s.WriteString("\n")
	}

	if m.cachedPreview != "" {
		s.WriteString("\n")
		s.WriteString(m.cachedPreview)
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(cli.Kumkum).
		Padding(1, 2).
		Render(s.String())
}

func (m *RenderModel) renderComplete() string {
	var s strings.Builder
	c := m.complete

	s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(cli.Haldi).Render("✓ Render Complete!"))
	s.WriteString("\n\n")

	s.WriteString(fmt.Sprintf("Output:   %s\n", c.OutputFile))
	s.WriteString(fmt.Sprintf("Duration: %.1fs animation in %s\n", c.Duration.Seconds(), cli.FormatDuration(c.TotalTime)))
	s.WriteString(fmt.Sprintf("Size:     %s\n", cli.FormatBytes(c.FileSize)))
	s.WriteString(fmt.Sprintf("Frames:   %d\n", c.Frames))
	s.WriteString(fmt.Sprintf("Patterns: %d (last seed %08x)", c.Changes+1, c.Seed))

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(cli.Haldi).
		Padding(1, 1).
		Render(s.String()) + "\n"
}
