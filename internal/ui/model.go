// ABOUTME: Bubbletea model for the demo TUI
// ABOUTME: Defines application state and update logic
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Controller is what the TUI drives; cmd/strata-demo wires it to the engine.
type Controller interface {
	// FireEffect plays the one-shot effect with a random pan and returns its
	// handle.
	FireEffect() uint32
	// ToggleMusic halts or resumes the looping music and reports whether it
	// is now halted.
	ToggleMusic() bool
	// StopAll stops every sound.
	StopAll()
	// SetVolume sets the global volume.
	SetVolume(v float32)
	// ActiveLayers counts the layers currently claimed.
	ActiveLayers() int
}

// Model represents the TUI state.
type Model struct {
	ctl Controller

	musicName  string
	effectName string

	volume float32
	halted bool
	fired  int
	active int

	width  int
	height int
}

// TickMsg refreshes the layer counter.
type TickMsg struct{}

// NewModel creates the demo TUI model.
func NewModel(ctl Controller, musicName, effectName string) Model {
	return Model{
		ctl:        ctl,
		musicName:  musicName,
		effectName: effectName,
		volume:     1.0,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case TickMsg:
		m.active = m.ctl.ActiveLayers()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "s":
		m.ctl.FireEffect()
		m.fired++
	case "m":
		m.halted = m.ctl.ToggleMusic()
	case "x":
		m.ctl.StopAll()
		m.halted = false
	case "up", "+":
		m.volume += 0.1
		if m.volume > 2 {
			m.volume = 2
		}
		m.ctl.SetVolume(m.volume)
	case "down", "-":
		m.volume -= 0.1
		if m.volume < 0 {
			m.volume = 0
		}
		m.ctl.SetVolume(m.volume)
	}
	m.active = m.ctl.ActiveLayers()
	return m, nil
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// View renders the TUI.
func (m Model) View() string {
	musicState := "looping"
	if m.halted {
		musicState = "halted"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("strata demo"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s (%s)\n", labelStyle.Render("music:"), m.musicName, musicState))
	b.WriteString(fmt.Sprintf("%s %s (fired %d)\n", labelStyle.Render("effect:"), m.effectName, m.fired))
	b.WriteString(fmt.Sprintf("%s %.1f\n", labelStyle.Render("volume:"), m.volume))
	b.WriteString(fmt.Sprintf("%s %d\n", labelStyle.Render("active layers:"), m.active))
	b.WriteString(helpStyle.Render("space: fire effect · m: halt/resume music · x: stop all · +/-: volume · q: quit"))

	return boxStyle.Render(b.String()) + "\n"
}
