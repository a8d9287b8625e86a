package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/lbarbosa/swarmpilot/pkg/input"
	"github.com/lbarbosa/swarmpilot/pkg/teleop"
)

const (
	headerHeight = 2 // title + blank line
	legendHeight = 2 // legend row + blank
	statusHeight = 2 // robot/velocity row + blank
	footerHeight = 7 // log box height
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // chart border
)

const (
	leftColor  = "10" // green
	rightColor = "51" // cyan
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	robotStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

// pilotModel renders the live teleoperation view for both the
// keyboard and joystick commands. When keys is non-nil, directional
// key events feed the input source; otherwise only quit keys are
// handled and driving input comes from the gamepad.
type pilotModel struct {
	title    string
	ctrl     *teleop.Controller
	keys     *input.Keys
	chart    *streamlinechart.Model
	width    int
	height   int
	logs     []string
	quitting bool
	state    teleop.State
	seen     bool
	lastCmd  teleop.State
}

func (m *pilotModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// Messages from the controller
type stateMsg teleop.State
type logMsg string

func waitForState(ctrl *teleop.Controller) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-ctrl.States())
	}
}

func waitForLog(ctrl *teleop.Controller) tea.Cmd {
	return func() tea.Msg {
		return logMsg(<-ctrl.Logs())
	}
}

// chartSize calculates the size of the chart based on terminal dimensions
func (m *pilotModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 14 // default size before we know terminal size
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - legendHeight - statusHeight - footerHeight - borderSize
	if height < 8 {
		height = 8
	}
	return width, height
}

func (m *pilotModel) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

func newPilotModel(title string, ctrl *teleop.Controller, keys *input.Keys) pilotModel {
	chart := streamlinechart.New(80, 14,
		streamlinechart.WithYRange(-1.5, 1.5),
	)

	chart.SetDataSetStyles("left", runes.ThinLineStyle,
		lipgloss.NewStyle().Foreground(lipgloss.Color(leftColor)))
	chart.SetDataSetStyles("right", runes.ThinLineStyle,
		lipgloss.NewStyle().Foreground(lipgloss.Color(rightColor)))

	return pilotModel{
		title: title,
		ctrl:  ctrl,
		keys:  keys,
		chart: &chart,
	}
}

func (m pilotModel) Init() tea.Cmd {
	return tea.Batch(
		waitForState(m.ctrl),
		waitForLog(m.ctrl),
	)
}

func (m pilotModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			if m.keys != nil {
				m.keys.Quit()
			}
			m.quitting = true
			return m, tea.Quit
		}
		if m.keys != nil {
			switch msg.String() {
			case "up", "w":
				m.keys.Press(input.KeyForward)
			case "down", "s":
				m.keys.Press(input.KeyBackward)
			case "left", "a":
				m.keys.Press(input.KeyLeft)
			case "right", "d":
				m.keys.Press(input.KeyRight)
			case "x":
				m.keys.Cycle()
			}
		}
		return m, nil

	case stateMsg:
		state := teleop.State(msg)
		// Only redraw the chart when the command changed (freeze when idle)
		if !m.seen || state.Command != m.lastCmd.Command || state.RobotID != m.lastCmd.RobotID {
			m.chart.PushDataSet("left", state.Command.Left)
			m.chart.PushDataSet("right", state.Command.Right)
			m.chart.DrawAll()
			m.lastCmd = state
		}
		m.state = state
		m.seen = true
		return m, waitForState(m.ctrl)

	case logMsg:
		m.addLog(string(msg))
		return m, waitForLog(m.ctrl)
	}

	return m, nil
}

func (m pilotModel) View() string {
	if m.quitting {
		return "Teleoperation stopped.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(titleStyle.Render(m.title))
	sb.WriteString(fmt.Sprintf(" - %d Hz", m.ctrl.Hz()))
	if m.width > 0 {
		sb.WriteString(statusStyle.Render(fmt.Sprintf("  [%dx%d]", m.width, m.height)))
	}
	sb.WriteString("\n\n")

	// Chart
	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	// Legend
	sb.WriteString(renderLegend())
	sb.WriteString("\n")

	// Status row
	sb.WriteString(m.renderStatus())
	sb.WriteString("\n\n")

	// Log box
	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(m.width - 4).
		Foreground(lipgloss.Color("9"))

	var logLines string
	if len(m.logs) == 0 {
		logLines = statusStyle.Render("Press 'q' to quit, 'x' to switch robot")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

func (m pilotModel) renderStatus() string {
	if !m.seen {
		return statusStyle.Render("Waiting for first tick...")
	}

	parts := []string{
		robotStyle.Render(fmt.Sprintf("Robot %d", m.state.RobotID)),
		fmt.Sprintf("VL %+.2f  VR %+.2f", m.state.Command.Left, m.state.Command.Right),
	}
	if active := describeIntent(m.state.Intent); active != "" {
		parts = append(parts, activeStyle.Render(active))
	}
	return strings.Join(parts, "   ")
}

// describeIntent names the active directional intents for the status
// row, the way the reference UI showed held keys.
func describeIntent(in input.Intent) string {
	var parts []string
	if in.Throttle > 0 {
		parts = append(parts, "forward")
	}
	if in.Throttle < 0 {
		parts = append(parts, "backward")
	}
	if in.Turn < 0 {
		parts = append(parts, "left")
	}
	if in.Turn > 0 {
		parts = append(parts, "right")
	}
	return strings.Join(parts, "+")
}

func renderLegend() string {
	leftItem := lipgloss.NewStyle().Foreground(lipgloss.Color(leftColor)).Bold(true).Render("━━") + " left wheel"
	rightItem := lipgloss.NewStyle().Foreground(lipgloss.Color(rightColor)).Bold(true).Render("━━") + " right wheel"
	return leftItem + "  " + rightItem
}
