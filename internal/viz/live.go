package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/astroglia/casim/internal/odesys"
)

const (
	graphWidth      = 70
	graphHeight     = 14
	historyCapacity = 600
	stepsPerTick    = 20
)

var (
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	statsStyle       = lipgloss.NewStyle().Padding(1, 2)
)

type TickMsg time.Time

// Model drives the live concentration trace view.
type Model struct {
	sys        odesys.System
	integrator odesys.Integrator
	state      odesys.State
	t, dt      float64
	par        float64
	modelName  string
	labels     []string

	running bool
	history [][]float64

	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int
	initialState  odesys.State

	showHelp bool
}

// NewModel initializes the live view for one system at a fixed
// bifurcation parameter value.
func NewModel(sys odesys.System, integ odesys.Integrator, x0 odesys.State, dt, par float64, modelName string, labels []string) Model {
	params := make(map[string]float64)
	if c, ok := sys.(odesys.Configurable); ok {
		for k, v := range c.GetParams() {
			params[k] = v
		}
	}
	keys := make([]string, 0, len(params))
	initialParams := make(map[string]float64)
	for k, v := range params {
		keys = append(keys, k)
		if v == 0 {
			v = 1e-6
		}
		initialParams[k] = v
	}
	sort.Strings(keys)

	history := make([][]float64, sys.StateDim())
	for i := range history {
		history[i] = make([]float64, 0, historyCapacity)
	}

	return Model{
		sys:           sys,
		integrator:    integ,
		state:         x0.Clone(),
		dt:            dt,
		par:           par,
		modelName:     modelName,
		labels:        labels,
		running:       true,
		history:       history,
		params:        params,
		initialParams: initialParams,
		paramKeys:     keys,
		initialState:  x0.Clone(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "left", "h":
			m.par *= 0.95
		case "right", "l":
			m.par *= 1.05
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			for i := 0; i < stepsPerTick; i++ {
				m.step()
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	m.state = m.integrator.Step(m.sys, m.state, m.t, m.dt, m.par)
	m.t += m.dt
	if !m.state.IsValid() {
		// Diverged; hold the view and let the user reset.
		m.running = false
		return
	}
	for i, v := range m.state {
		m.history[i] = append(m.history[i], v)
		if len(m.history[i]) > historyCapacity {
			m.history[i] = m.history[i][1:]
		}
	}
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	newVal := m.params[key] * factor
	m.params[key] = newVal
	if c, ok := m.sys.(odesys.Configurable); ok {
		c.SetParam(key, newVal)
	}
}

func (m *Model) reset() {
	m.t = 0
	m.state = m.initialState.Clone()
	for i := range m.history {
		m.history[i] = m.history[i][:0]
	}
	for k, v := range m.initialParams {
		m.params[k] = v
		if c, ok := m.sys.(odesys.Configurable); ok {
			c.SetParam(k, v)
		}
	}
	m.running = true
}

func (m Model) label(i int) string {
	if i < len(m.labels) {
		return m.labels[i]
	}
	return fmt.Sprintf("x%d", i)
}

// View renders the trace, current state readout and parameter panel.
func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.modelName)) + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n")

	if len(m.history) > 0 && len(m.history[0]) > 1 {
		chart := asciigraph.Plot(m.history[0],
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption(m.label(0)))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Param") + valueStyle.Render(fmt.Sprintf("%.4f", m.par)) + "\n")
	for i, v := range m.state {
		s.WriteString(labelStyle.Render(m.label(i)) + valueStyle.Render(fmt.Sprintf("%.4f", v)) + "\n")
	}

	s.WriteString("\nMODEL CONSTANTS\n")
	if len(m.paramKeys) > 0 {
		for i, k := range m.paramKeys {
			line := fmt.Sprintf("%-10s %.4f", k, m.params[k])
			if i == m.selected {
				s.WriteString(activeParamStyle.Render("> "+line) + "\n")
			} else {
				s.WriteString("  " + labelStyle.Render(line) + "\n")
			}
		}
	} else {
		s.WriteString(labelStyle.Render("  (none)") + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Pause R:Reset Q:Quit Tab:Select ↑↓:Tune ←→:Param ?:Help"))

	view := statsStyle.Render(s.String())
	if m.showHelp {
		return helpText + "\n" + view
	}
	return view
}

const helpText = `
  Space    - Pause/Resume simulation
  R        - Reset state and constants
  Q        - Quit
  Tab      - Cycle model constants
  Up/K     - Increase selected constant (+5%)
  Down/J   - Decrease selected constant (-5%)
  Left/H   - Decrease bifurcation parameter (-5%)
  Right/L  - Increase bifurcation parameter (+5%)
  ?        - Toggle this help`
