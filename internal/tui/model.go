// Package tui is a terminal front end that drives a simulation from the
// bubbletea update loop.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitsim/internal/apsis"
	"github.com/san-kum/orbitsim/internal/engine"
	"github.com/san-kum/orbitsim/internal/gravity"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/orbit"
	"github.com/san-kum/orbitsim/internal/recenter"
)

const (
	canvasCols      = 60
	canvasRows      = 24
	trailLength     = 120
	historyCapacity = 300
	frameInterval   = time.Second / 60
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model owns the simulation for the lifetime of the program.
type Model struct {
	sim      *engine.Simulation
	title    string
	canvas   *Canvas
	view     View
	last     time.Time
	report   engine.Report
	trails   map[orbit.ID][]mgl32.Vec3
	offset   mgl64.Vec3
	energy0  float64
	drift    []float64
	showHelp bool
}

func NewModel(sim *engine.Simulation, title string) Model {
	m := Model{
		sim:     sim,
		title:   title,
		canvas:  NewCanvas(canvasCols, canvasRows),
		trails:  make(map[orbit.ID][]mgl32.Vec3),
		offset:  sim.Offset(),
		energy0: gravity.TotalEnergy(sim.Store().Bodies()),
		drift:   make([]float64, 0, historyCapacity),
	}
	m.view = View{Extent: fitExtent(sim.Store().Bodies())}
	return m
}

// fitExtent frames every body with a small margin.
func fitExtent(bodies []orbit.Body) float32 {
	var extent float32
	for i := range bodies {
		p := bodies[i].RenderPosition
		extent = max(extent, abs32(p[0]), abs32(p[1]))
	}
	if extent == 0 {
		return 1
	}
	return extent * 1.2
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ctl := m.sim.Controls()
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			ctl.TogglePause()
		case "+", "=":
			ctl.ScaleSpeed(2)
		case "-", "_":
			ctl.ScaleSpeed(0.5)
		case "]":
			ctl.IncSubSteps()
		case "[":
			ctl.DecSubSteps()
		case "e":
			ctl.SetScheme(integrators.Euler)
		case "v":
			ctl.SetScheme(integrators.Verlet)
		case "s":
			ctl.SetScheme(ctl.Scheme.Next())
		case "tab":
			m.cycleSelection()
		case "r":
			if ctl.Selected != orbit.None {
				m.sim.ResetApsis(ctl.Selected)
			} else {
				m.sim.ResetAllApsides()
			}
		case "z":
			m.view.Extent /= 1.5
		case "x":
			m.view.Extent *= 1.5
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		now := time.Time(msg)
		delta := frameInterval.Seconds()
		if !m.last.IsZero() {
			delta = now.Sub(m.last).Seconds()
		}
		m.last = now
		m.step(delta)
		return m, tick()
	}
	return m, nil
}

// step runs one frame and refreshes the derived display state.
func (m *Model) step(wallDelta float64) {
	r := m.sim.Frame(wallDelta)
	m.report = r
	if !r.Integrated {
		return
	}

	m.shiftTrails()
	for _, b := range m.sim.Store().Bodies() {
		t := append(m.trails[b.ID], b.RenderPosition)
		if len(t) > trailLength {
			t = t[1:]
		}
		m.trails[b.ID] = t
	}

	if m.energy0 != 0 {
		e := gravity.TotalEnergy(m.sim.Store().Bodies())
		m.drift = append(m.drift, (e-m.energy0)/math.Abs(m.energy0))
		if len(m.drift) > historyCapacity {
			m.drift = m.drift[1:]
		}
	}
}

// shiftTrails moves trail points recorded under the previous offset into
// the current frame.
func (m *Model) shiftTrails() {
	cur := m.sim.Offset()
	if cur != m.offset {
		for id, t := range m.trails {
			for i := range t {
				t[i] = recenter.Shift(t[i], m.offset, cur)
			}
			m.trails[id] = t
		}
	}
	m.offset = cur
}

// cycleSelection walks none, then every body in store order, then none.
func (m *Model) cycleSelection() {
	ctl := m.sim.Controls()
	bodies := m.sim.Store().Bodies()

	next := orbit.None
	if len(bodies) > 0 {
		if ctl.Selected == orbit.None {
			next = bodies[0].ID
		} else if i, ok := m.sim.Store().Index(ctl.Selected); ok && i+1 < len(bodies) {
			next = bodies[i+1].ID
		}
	}
	ctl.Select(next)

	m.sim.Recenter()
	m.shiftTrails()
}

func (m *Model) draw() string {
	m.canvas.Clear()
	for _, t := range m.trails {
		for _, p := range t {
			x, y := m.view.Project(m.canvas, p)
			m.canvas.Dot(x, y)
		}
	}
	for _, b := range m.sim.Store().Bodies() {
		x, y := m.view.Project(m.canvas, b.RenderPosition)
		r := '●'
		if b.ID == m.sim.Controls().Selected {
			r = '◉'
		}
		m.canvas.Label(x, y, r)
	}
	return m.canvas.String()
}

func (m Model) View() string {
	canvasView := canvasStyle.Render(m.draw())

	ctl := m.sim.Controls()
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")

	switch {
	case m.report.Invalid:
		s.WriteString(statusInvalid.Render("NON-FINITE STATE") + "\n\n")
	case ctl.Paused:
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	default:
		s.WriteString(statusRunning.Render("RUNNING") + "\n\n")
	}

	s.WriteString(row("Time", formatDuration(m.sim.SimTime())))
	s.WriteString(row("Speed", fmt.Sprintf("%gx", ctl.Speed)))
	s.WriteString(row("Scheme", ctl.Scheme.String()))
	s.WriteString(row("Sub-steps", fmt.Sprintf("%d", ctl.SubSteps)))
	s.WriteString(row("Step", formatDuration(m.report.Dt)))
	if m.report.CoincidentPairs > 0 {
		s.WriteString(row("Coincident", fmt.Sprintf("%d", m.report.CoincidentPairs)))
	}

	if len(m.drift) > 1 {
		chart := asciigraph.Plot(m.drift, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy drift"))
		s.WriteString("\n" + graphStyle.Render(chart) + "\n")
	}

	s.WriteString("\n" + rule(40) + "\n")
	s.WriteString(m.bodyPanel())

	s.WriteString(helpStyle.Render("SP:pause +/-:speed [ ]:sub-steps e/v:scheme\nTAB:follow r:reset apsis z/x:zoom q:quit"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + main
	}
	return main
}

func (m Model) bodyPanel() string {
	store := m.sim.Store()
	bodies := store.Bodies()
	selected := m.sim.Controls().Selected

	var s strings.Builder
	for i := range bodies {
		b := &bodies[i]
		name := b.Name
		if b.ID == selected {
			name = selectedStyle.Render("> " + name)
		} else {
			name = "  " + name
		}
		s.WriteString(name + "\n")

		j, ok := store.ParentIndex(i)
		if !ok || b.Apsis.Unset() {
			continue
		}
		s.WriteString(subtleStyle.Render(fmt.Sprintf("    peri %.4g m  apo %.4g m",
			b.Apsis.Periapsis.Distance, b.Apsis.Apoapsis.Distance)) + "\n")
		if el, ok := apsis.FromRecord(b.Apsis, bodies[j].Mass, b.Mass); ok && el.Eccentricity > 0 {
			s.WriteString(subtleStyle.Render(fmt.Sprintf("    e %.4f  T %s",
				el.Eccentricity, formatDuration(el.Period))) + "\n")
		}
	}
	return s.String()
}

func formatDuration(seconds float64) string {
	const day = 86400.0
	switch {
	case seconds >= 365.25*day:
		return fmt.Sprintf("%.2f yr", seconds/(365.25*day))
	case seconds >= day:
		return fmt.Sprintf("%.2f d", seconds/day)
	case seconds >= 3600:
		return fmt.Sprintf("%.2f h", seconds/3600)
	default:
		return fmt.Sprintf("%.2f s", seconds)
	}
}

const helpText = `
╭──────────────────────────────────────╮
│  Space  pause / resume               │
│  + -    double / halve speed         │
│  [ ]    fewer / more sub-steps       │
│  e v    symplectic Euler / Verlet    │
│  s      cycle integration scheme     │
│  Tab    follow next body             │
│  r      reset apsis of followed body │
│  z x    zoom in / out                │
│  ?      toggle this help             │
│  q      quit                         │
╰──────────────────────────────────────╯`
