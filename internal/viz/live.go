package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/particlelab/internal/engine"
)

const (
	canvasWidth     = 80
	canvasHeight    = 30
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives a live simulation: the fixed-step clock consumes real
// frame deltas while the terminal renders whatever state is current.
type Model struct {
	eng      *engine.Engine
	clock    *engine.Clock
	canvas   *Canvas
	palette  Palette
	styles   []lipgloss.Style
	scenario string
	rng      *rand.Rand

	initial       *engine.Snapshot
	lastTick      time.Time
	energyHistory []float64
	showHelp      bool
}

func NewModel(eng *engine.Engine, clock *engine.Clock, scenario, paletteName string, seed int64) Model {
	m := Model{
		eng:           eng,
		clock:         clock,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		palette:       GetPalette(paletteName),
		scenario:      scenario,
		rng:           rand.New(rand.NewSource(seed)),
		initial:       eng.Capture(),
		energyHistory: make([]float64, 0, historyCapacity),
	}
	m.styles = m.palette.Styles(eng.Store().TypeCount())
	return m
}

func (m Model) Init() tea.Cmd {
	m.clock.Start()
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.clock.Running() {
				m.clock.Stop()
			} else {
				m.clock.Start()
			}
		case "r":
			m.eng.Restore(m.initial)
			m.energyHistory = m.energyHistory[:0]
		case "m":
			m.eng.Rules().Randomize(m.rng, 1.0, 80)
		case "n":
			m.eng.Rules().Mutate(m.rng, 0.2, 2.0)
		case "t":
			names := PaletteNames()
			for i, name := range names {
				if name == m.palette.Name {
					m.palette = GetPalette(names[(i+1)%len(names)])
					break
				}
			}
			m.styles = m.palette.Styles(m.eng.Store().TypeCount())
		case "+", "=":
			m.clock.SetTimeScale(m.clock.TimeScale() * 1.25)
		case "-", "_":
			m.clock.SetTimeScale(m.clock.TimeScale() / 1.25)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		now := time.Time(msg)
		delta := 0.0
		if !m.lastTick.IsZero() {
			delta = float64(now.Sub(m.lastTick).Microseconds()) / 1000
		}
		m.lastTick = now
		m.clock.Update(delta)
		m.recordEnergy()
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) recordEnergy() {
	st := m.eng.Store()
	total := 0.0
	for i := 0; i < st.Count(); i++ {
		if !st.Active[i] {
			continue
		}
		total += 0.5 * st.Mass[i] * (st.VX[i]*st.VX[i] + st.VY[i]*st.VY[i])
	}
	m.energyHistory = append(m.energyHistory, total)
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

// draw rasterizes the particle arrays into the braille grid.
func (m *Model) draw() {
	m.canvas.Clear()
	st := m.eng.Store()
	bounds := m.eng.Bounds()
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}
	sw := float64(m.canvas.Width * 2)
	sh := float64(m.canvas.Height * 4)
	for i := 0; i < st.Count(); i++ {
		if !st.Active[i] {
			continue
		}
		px := int((st.X[i] - bounds.X) / bounds.Width * sw)
		py := int((st.Y[i] - bounds.Y) / bounds.Height * sh)
		m.canvas.Set(px, py, st.Type[i])
	}
}

func (m Model) View() string {
	renderStart := time.Now()
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.Render(m.styles))

	st := m.eng.Store()
	metrics := m.eng.Metrics()

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.scenario)) + "\n")
	status := "RUNNING"
	if !m.clock.Running() {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d / %d", st.ActiveCount(), st.Capacity())) + "\n")
	s.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprintf("%d", m.eng.StepCount())) + "\n")
	s.WriteString(labelStyle.Render("Steps/s") + valueStyle.Render(fmt.Sprintf("%d", metrics.StepsPerSecond)) + "\n")
	s.WriteString(labelStyle.Render("Rebuild") + valueStyle.Render(metrics.SpatialRebuild.String()) + "\n")
	s.WriteString(labelStyle.Render("Solve") + valueStyle.Render(metrics.ForceSolve.String()) + "\n")
	s.WriteString(labelStyle.Render("Integrate") + valueStyle.Render(metrics.Integration.String()) + "\n")
	s.WriteString(labelStyle.Render("Alpha") + valueStyle.Render(fmt.Sprintf("%.2f", m.clock.Alpha())) + "\n")
	s.WriteString(labelStyle.Render("Backlogs") + valueStyle.Render(fmt.Sprintf("%d", m.clock.Backlogs())) + "\n")
	s.WriteString(labelStyle.Render("Time scale") + valueStyle.Render(fmt.Sprintf("%.2fx", m.clock.TimeScale())) + "\n")
	s.WriteString(labelStyle.Render("Palette") + valueStyle.Render(m.palette.Name) + "\n")

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nM:Randomize N:Mutate T:Palette\n+/-:Speed ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	m.eng.ObserveRender(time.Since(renderStart))

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset to initial state   ║
║  Q        - Quit                     ║
║  M        - Randomize rule matrix    ║
║  N        - Mutate rule matrix       ║
║  T        - Cycle color palette      ║
║  +/-      - Adjust time scale        ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
