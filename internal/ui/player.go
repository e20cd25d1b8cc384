package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/linuxmatters/kolam/internal/cli"
	"github.com/linuxmatters/kolam/internal/config"
	"github.com/linuxmatters/kolam/internal/engine"
)

// statusLines is the height of the status bar below the mosaic.
const statusLines = 1

// frameMsg asks for the next frame. Messages from an older generation are
// dropped, which is how a paused ticker is cancelled.
type frameMsg struct {
	gen int
}

var (
	statusKeyStyle   = lipgloss.NewStyle().Foreground(cli.Clay)
	statusValueStyle = lipgloss.NewStyle().Bold(true).Foreground(cli.Cream)
	statusModeStyle  = lipgloss.NewStyle().Bold(true).Foreground(cli.Haldi)
	statusErrStyle   = lipgloss.NewStyle().Bold(true).Foreground(cli.Kumkum)
)

// Player is the interactive terminal front end. It owns the frame ticker
// and forwards input to the engine.
type Player struct {
	engine  *engine.Engine
	surface *TermSurface
	title   string
	now     func() time.Time
	start   time.Time

	gen     int
	hidden  bool
	width   int
	height  int
	lastErr error
}

// NewPlayer returns a player drawing eng onto surface. title names the
// track in the status bar.
func NewPlayer(eng *engine.Engine, surface *TermSurface, title string) *Player {
	return &Player{
		engine:  eng,
		surface: surface,
		title:   title,
		now:     time.Now,
	}
}

// Init starts the frame ticker
func (m *Player) Init() tea.Cmd {
	m.start = m.now()
	return m.tick()
}

func (m *Player) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(time.Second/config.LiveFPS, func(time.Time) tea.Msg {
		return frameMsg{gen: gen}
	})
}

// Update handles messages
func (m *Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		cols, rows := msg.Width, max(0, msg.Height-statusLines)*2
		m.surface.Resize(cols, rows)
		m.engine.Resize(cols, rows)
		return m, nil

	case frameMsg:
		if msg.gen != m.gen || m.hidden {
			return m, nil
		}
		m.engine.Frame(m.now().Sub(m.start))
		return m, m.tick()

	case tea.BlurMsg:
		// Stop drawing while the terminal is hidden
		m.hidden = true
		m.gen++
		return m, nil

	case tea.FocusMsg:
		if !m.hidden {
			return m, nil
		}
		m.hidden = false
		m.gen++
		return m, m.tick()

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.togglePlay()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ", "enter":
			m.togglePlay()
		case "n":
			m.engine.NewPattern()
		}
		return m, nil
	}

	return m, nil
}

func (m *Player) togglePlay() {
	m.lastErr = m.engine.TogglePlay()
}

// Err returns the last playback error, if any.
func (m *Player) Err() error {
	return m.lastErr
}

// View renders the mosaic above a one-line status bar
func (m *Player) View() string {
	var s strings.Builder
	s.WriteString(m.surface.Render())
	if s.Len() > 0 {
		s.WriteString("\n")
	}
	s.WriteString(m.status())
	return s.String()
}

func (m *Player) status() string {
	if m.lastErr != nil {
		return statusErrStyle.Render("✗ " + m.lastErr.Error())
	}

	state := "paused"
	if m.engine.Playing() {
		state = m.engine.Mode().String()
	}

	p := m.engine.Params()
	parts := []string{
		statusModeStyle.Render(state),
		statusKeyStyle.Render("seed ") + statusValueStyle.Render(fmt.Sprintf("%08x", m.engine.Seed())),
		statusKeyStyle.Render("pattern ") + statusValueStyle.Render(fmt.Sprintf("%s/%d", p.Mode, p.Petals)),
	}
	if m.title != "" {
		parts = append(parts, statusValueStyle.Render(m.title))
	}
	parts = append(parts, statusKeyStyle.Render("space play · n new · q quit"))

	line := strings.Join(parts, statusKeyStyle.Render("  │  "))
	if m.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	return line
}
