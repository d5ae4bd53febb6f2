// ABOUTME: Interactive TUI wizard for writing an initial matchday config
// ABOUTME: 3-step bubbletea model collecting cache backend, cache file, and API listen address
package tui

import (
	"fmt"
	"net"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harper/matchday/internal/cache"
	"github.com/harper/matchday/internal/config"
)

// Step represents the current wizard step.
type Step int

const (
	StepBackend Step = iota
	StepCachePath
	StepListenAddr
	StepDone
)

const stepCount = 3

// SetupModel is the bubbletea model for the setup wizard.
type SetupModel struct {
	step     Step
	inputs   [stepCount]textinput.Model
	errMsg   string
	quitting bool
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	brandStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NewSetupModel creates a new setup wizard model, pre-filling with existing config values.
func NewSetupModel(cc config.CacheConfig, addr string) SetupModel {
	backendInput := textinput.New()
	backendInput.Placeholder = config.CacheSQLite
	backendInput.Focus()
	backendInput.Width = 50
	if cc.Backend != "" {
		backendInput.SetValue(cc.Backend)
	}

	pathInput := textinput.New()
	pathInput.Placeholder = cache.DefaultPath()
	pathInput.Width = 50
	if cc.Path != "" {
		pathInput.SetValue(cc.Path)
	}

	addrInput := textinput.New()
	addrInput.Placeholder = config.DefaultListenAddr
	addrInput.Width = 50
	if addr != "" {
		addrInput.SetValue(addr)
	}

	return SetupModel{
		step:   StepBackend,
		inputs: [stepCount]textinput.Model{backendInput, pathInput, addrInput},
	}
}

// Init implements tea.Model.
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			m.quitting = true
			return m, tea.Quit
		}

		if m.step < StepDone {
			return m.updateInput(msg)
		}
	default:
		// Forward other messages (e.g. cursor blink) to the active input
		if m.step < StepDone {
			idx := int(m.step)
			var cmd tea.Cmd
			m.inputs[idx], cmd = m.inputs[idx].Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		return m.handleEnter()
	}

	idx := int(m.step)
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

func (m SetupModel) handleEnter() (tea.Model, tea.Cmd) {
	idx := int(m.step)
	val := strings.TrimSpace(m.inputs[idx].Value())
	m.errMsg = ""

	switch m.step {
	case StepBackend:
		if val == "" {
			val = config.CacheSQLite
		}
		val = strings.ToLower(val)
		if val != config.CacheSQLite && val != config.CacheMemory {
			m.errMsg = fmt.Sprintf("backend must be %s or %s", config.CacheSQLite, config.CacheMemory)
			return m, nil
		}
	case StepCachePath:
		if val == "" {
			val = cache.DefaultPath()
		}
	case StepListenAddr:
		if val == "" {
			val = config.DefaultListenAddr
		}
		if _, _, err := net.SplitHostPort(val); err != nil {
			m.errMsg = "listen address must be host:port"
			return m, nil
		}
	}
	m.inputs[idx].SetValue(val)
	m.inputs[idx].Blur()

	next := m.step + 1
	// The in-memory cache has no file to place.
	if next == StepCachePath && val == config.CacheMemory {
		m.inputs[StepCachePath].SetValue("")
		next++
	}

	m.step = next
	if m.step == StepDone {
		return m, tea.Quit
	}
	m.inputs[m.step].Focus()
	return m, textinput.Blink
}

// View implements tea.Model.
func (m SetupModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   MATCHDAY"))
	b.WriteString(titleStyle.Render(" - Setup"))
	b.WriteString("\n\n")
	b.WriteString("Configure the payload cache and API server.\n\n")

	switch m.step {
	case StepBackend:
		b.WriteString(stepStyle.Render("Step 1 of 3: Cache Backend"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("(sqlite or memory, press Enter for default)"))
		b.WriteString("\n")
		b.WriteString(m.inputs[StepBackend].View())
		b.WriteString("\n")

	case StepCachePath:
		b.WriteString(fmt.Sprintf("  Backend: %s\n\n", m.inputs[StepBackend].Value()))
		b.WriteString(stepStyle.Render("Step 2 of 3: Cache File"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render(fmt.Sprintf("(press Enter for default: %s)", cache.DefaultPath())))
		b.WriteString("\n")
		b.WriteString(m.inputs[StepCachePath].View())
		b.WriteString("\n")

	case StepListenAddr:
		b.WriteString(fmt.Sprintf("  Backend: %s\n\n", m.inputs[StepBackend].Value()))
		b.WriteString(stepStyle.Render("Step 3 of 3: API Listen Address"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render(fmt.Sprintf("(press Enter for default: %s)", config.DefaultListenAddr)))
		b.WriteString("\n")
		b.WriteString(m.inputs[StepListenAddr].View())
		b.WriteString("\n")

	case StepDone:
		b.WriteString(successStyle.Render("Setup complete!"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("  Cache backend:  %s\n", m.inputs[StepBackend].Value()))
		if p := m.inputs[StepCachePath].Value(); p != "" {
			b.WriteString(fmt.Sprintf("  Cache file:     %s\n", p))
		}
		b.WriteString(fmt.Sprintf("  Listen address: %s\n", m.inputs[StepListenAddr].Value()))
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	return b.String()
}

// Result returns the entered values.
func (m SetupModel) Result() (config.CacheConfig, string) {
	cc := config.CacheConfig{
		Backend: m.inputs[StepBackend].Value(),
		Path:    m.inputs[StepCachePath].Value(),
	}
	return cc, m.inputs[StepListenAddr].Value()
}

// ShouldSave returns true if the wizard completed and the user did not cancel.
func (m SetupModel) ShouldSave() bool {
	return m.step == StepDone && !m.quitting
}
