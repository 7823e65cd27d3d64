package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sixdof/internal/control"
	"github.com/san-kum/sixdof/internal/dynamo"
	"github.com/san-kum/sixdof/internal/experiment"
	"github.com/san-kum/sixdof/internal/quantity"
	"github.com/san-kum/sixdof/internal/sim"
)

const (
	width           = 60
	height          = 20
	historyCapacity = 600
	frameRate       = 60
)

// kickTorque is the torque, in N·m, fired for one step by the thruster keys.
const kickTorque = 0.5

type TickMsg time.Time

// Model steps a rigid body in real time and draws it rotating in place.
type Model struct {
	name          string
	integrator    dynamo.Integrator
	actuator      control.Actuator
	tunable       control.Configurable
	manual        *control.Manual
	state         *dynamo.State
	initialState  *dynamo.State
	t, dt         float64
	stepsPerFrame int
	canvas        *Canvas
	camera        *Camera
	running       bool
	err           error
	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int
	energyHistory []float64
	rateHistory   []float64
	history       []sim.Snapshot
	playHead      int
	theme         Theme
	styles        styles
	showHelp      bool
}

// NewModel returns a live view of s0 advanced by integ with timestep dt. If
// act is, or sums, a control.Configurable its parameters can be tuned from
// the keyboard. The thruster keys fire a control.Manual found inside act, or
// one summed with act when there is none.
func NewModel(name string, s0 *dynamo.State, integ dynamo.Integrator, act control.Actuator, dt float64) Model {
	if act == nil {
		act = control.NewNone()
	}

	m := Model{
		name:          name,
		integrator:    integ,
		actuator:      act,
		state:         s0.Clone(),
		initialState:  s0.Clone(),
		dt:            dt,
		stepsPerFrame: max(1, int(math.Round(1/(frameRate*dt)))),
		canvas:        NewCanvas(width, height),
		camera:        NewCamera(),
		running:       true,
		params:        make(map[string]float64),
		initialParams: make(map[string]float64),
		energyHistory: make([]float64, 0, historyCapacity),
		rateHistory:   make([]float64, 0, historyCapacity),
		history:       make([]sim.Snapshot, 0, historyCapacity),
		playHead:      -1,
		theme:         Themes[0],
		styles:        newStyles(Themes[0]),
	}

	m.tunable, m.manual = inspect(act)
	if m.manual == nil {
		m.manual = control.NewManual(0)
		m.actuator = control.Sum{act, m.manual}
	}
	if m.tunable != nil {
		for k, v := range m.tunable.GetParams() {
			m.params[k] = v
			m.initialParams[k] = v
			m.paramKeys = append(m.paramKeys, k)
		}
		sort.Strings(m.paramKeys)
	}
	return m
}

// FromExperiment builds a live view of a set-up experiment.
func FromExperiment(exp *experiment.Experiment) Model {
	s := exp.GetSimulator()
	return NewModel(exp.Config().Name, exp.InitialState(), s.Integrator(), s.Actuator(), exp.Config().Dt)
}

func inspect(a control.Actuator) (tunable control.Configurable, manual *control.Manual) {
	switch a := a.(type) {
	case control.Sum:
		for _, inner := range a {
			t, mn := inspect(inner)
			if tunable == nil {
				tunable = t
			}
			if manual == nil {
				manual = mn
			}
		}
	case *control.Manual:
		manual = a
	case control.Configurable:
		tunable = a
	}
	return tunable, manual
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
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
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.styles = newStyles(m.theme)
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "1", "2", "3", "4", "5", "6":
			m.kick(msg.String())
		}
	case TickMsg:
		if m.running && m.err == nil {
			if m.playHead == -1 {
				for i := 0; i < m.stepsPerFrame && m.err == nil; i++ {
					m.step()
				}
			} else {
				m.playHead++
				if m.playHead >= len(m.history) {
					m.playHead = -1
				}
			}
		}
		return m, tick()
	}
	return m, nil
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
	val := m.params[key] * factor
	if val == 0 && factor > 1 {
		val = 1e-3
	}
	if err := m.tunable.SetParam(key, val); err == nil {
		m.params[key] = val
	}
}

// kick fires a one-shot torque about ±x, ±y or ±z for keys 1 to 6.
func (m *Model) kick(key string) {
	i := int(key[0] - '1')
	var tq quantity.Torque
	tq[i/2] = kickTorque
	if i%2 == 1 {
		tq[i/2] = -kickTorque
	}
	m.manual.Add(dynamo.Moment{Torque: tq})
}

// step advances the body by one timestep.
func (m *Model) step() {
	ext := m.actuator.Moment(m.state, m.t)
	if err := m.state.StepWith(m.integrator, m.dt, ext); err != nil {
		m.err = err
		return
	}
	if !m.state.IsValid() {
		m.err = dynamo.ErrInvalidState
		return
	}
	m.state.Renormalize()
	m.t += m.dt

	m.energyHistory = appendCapped(m.energyHistory, m.state.KineticEnergy())
	m.rateHistory = appendCapped(m.rateHistory, m.state.Velocity().Angular.Len())

	m.history = append(m.history, sim.SnapshotOf(m.state))
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func appendCapped(xs []float64, v float64) []float64 {
	xs = append(xs, v)
	if len(xs) > historyCapacity {
		xs = xs[1:]
	}
	return xs
}

// scrub changes the playback position in history.
func (m *Model) scrub(dir int) {
	if m.playHead == -1 {
		if len(m.history) == 0 {
			return
		}
		m.playHead = len(m.history) - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

// reset restores the initial state and parameters.
func (m *Model) reset() {
	m.t = 0
	m.err = nil
	m.state = m.initialState.Clone()
	m.energyHistory = m.energyHistory[:0]
	m.rateHistory = m.rateHistory[:0]
	m.history = m.history[:0]
	m.playHead = -1
	for k, v := range m.initialParams {
		m.params[k] = v
		m.tunable.SetParam(k, v)
	}
	if r, ok := m.actuator.(control.Resetter); ok {
		r.Reset()
	}
}

// displayed is the state on screen, which differs from the live state while
// replaying.
func (m Model) displayed() *dynamo.State {
	if m.playHead >= 0 && m.playHead < len(m.history) {
		return m.history[m.playHead].State(m.state)
	}
	return m.state
}

func (m Model) draw(s *dynamo.State) string {
	m.canvas.Clear()
	Render3D(m.canvas, BodyWireframe(s).Transformed(s.Transform.Rotation.Quat()), m.camera)
	return m.canvas.String()
}

// View renders the TUI interface.
func (m Model) View() string {
	st := m.styles
	s := m.displayed()

	status := st.running.Render("RUNNING")
	switch {
	case m.err != nil:
		status = st.failed.Render("STOPPED: " + m.err.Error())
	case m.playHead != -1:
		back := float64(len(m.history)-1-m.playHead) * m.dt
		status = st.paused.Render(fmt.Sprintf("REPLAY (-%.2fs)", back))
	case !m.running:
		status = st.paused.Render("PAUSED")
	}

	v := s.Velocity()
	w := v.Angular
	var b strings.Builder
	b.WriteString(GradientText(strings.ToUpper(m.name), m.theme.Primary, m.theme.Secondary) + "\n")
	b.WriteString(status + "\n\n")

	row := func(label, value string) {
		b.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.t))
	row("Position", fmt.Sprintf("%7.2f %7.2f %7.2f", s.Transform.Translation[0], s.Transform.Translation[1], s.Transform.Translation[2]))
	row("Speed", fmt.Sprintf("%.3f m/s", v.Linear.Len()))
	row("ω", fmt.Sprintf("%7.3f %7.3f %7.3f", w[0], w[1], w[2]))
	row("|ω|", fmt.Sprintf("%.3f rad/s", w.Len()))
	row("|L|", fmt.Sprintf("%.4f", s.Momentum.Angular.Len()))
	row("Energy", fmt.Sprintf("%.4f J", s.KineticEnergy()))
	row("Panels", fmt.Sprintf("%d", len(s.Panels)))

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		b.WriteString(st.graph.Render(chart) + "\n")
	}
	b.WriteString(st.label.Render("|ω|") + st.SparklineChart(m.rateHistory, 30) + "\n")

	b.WriteString("\nPARAMETERS\n")
	if len(m.paramKeys) > 0 {
		for i, k := range m.paramKeys {
			line := fmt.Sprintf("%-8s %.4g", k, m.params[k])
			if i == m.selected {
				b.WriteString(st.active.Render("> "+line) + "\n")
			} else {
				b.WriteString("  " + st.value.Render(line) + "\n")
			}
		}
	} else {
		b.WriteString(st.label.Render("  (none)") + "\n")
	}

	help := "SP:Pause R:Reset Q:Quit T:Theme ?:Help\nX/Y/Z:Rotate +/-:Zoom Tab ↑↓:Tune\n1-6:Torque ±x ±y ±z"
	b.WriteString(st.help.Render(help))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, st.canvas.Render(m.draw(s)), st.stats.Render(b.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

const helpText = `
  Space    pause / resume
  R        reset to the initial state
  [ ]      step back / forward through history
  Tab      select parameter
  Up/K     increase parameter 5%
  Down/J   decrease parameter 5%
  x y z    rotate camera (shift reverses)
  + -      zoom
  1-6      torque kicks about ±x ±y ±z
  T        cycle themes
  Q        quit
`
