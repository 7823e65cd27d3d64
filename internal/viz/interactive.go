package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sixdof/internal/config"
	"github.com/san-kum/sixdof/internal/experiment"
	"go.uber.org/zap"
)

var presetInfo = map[string]string{
	"spinner":   "flywheel slowed by one vane",
	"vane":      "unit cylinder, rim panel",
	"tumbler":   "intermediate axis flip",
	"dart":      "finned rod weathervanes",
	"flatplate": "falling plate, terminal speed",
	"freefall":  "ballistic drop in vacuum",
	"detumble":  "PID rate controller",
}

// menu picks a preset and then hands over to the live Model.
type menu struct {
	registry *experiment.Registry
	logger   *zap.Logger
	presets  []string
	cursor   int
	live     *Model
	err      error
}

func NewInteractiveApp(reg *experiment.Registry, logger *zap.Logger) tea.Model {
	return menu{registry: reg, logger: logger, presets: config.ListPresets()}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.live != nil {
		next, cmd := m.live.Update(msg)
		live := next.(Model)
		m.live = &live
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		exp := experiment.New(config.GetPreset(m.presets[m.cursor]))
		if err := exp.Setup(m.registry, m.logger); err != nil {
			m.err = err
			return m, nil
		}
		live := FromExperiment(exp)
		m.live = &live
		return m, live.Init()
	}
	return m, nil
}

func (m menu) View() string {
	if m.live != nil {
		return m.live.View()
	}

	accent := lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	name := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	desc := lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	sub := lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))

	var b strings.Builder
	b.WriteString("\n\n    " + GradientText("SIXDOF", "#00ffff", "#ff00ff") + "\n    " + sub.Render("rigid body simulator") + "\n    " + sub.Render("────────────────────") + "\n\n")
	for i, p := range m.presets {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", accent.Render("▸"), name.Render(fmt.Sprintf("%-12s", p)), desc.Render(presetInfo[p])))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", sub.Render(fmt.Sprintf("%-12s", p)), sub.Render(presetInfo[p])))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + accent.Render("j/k") + sub.Render(" navigate  ") + accent.Render("enter") + sub.Render(" select  ") + accent.Render("q") + sub.Render(" quit") + "\n")
	return b.String()
}

// RunInteractive shows the preset menu and runs the chosen preset live.
func RunInteractive(reg *experiment.Registry, logger *zap.Logger) error {
	_, err := tea.NewProgram(NewInteractiveApp(reg, logger), tea.WithAltScreen()).Run()
	return err
}

// RunLive runs a single live view until the user quits.
func RunLive(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
