package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/orbitsim/internal/engine"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/orbit"
	"github.com/san-kum/orbitsim/internal/scenario"
)

func newModel(t *testing.T) Model {
	t.Helper()
	store := orbit.NewStore()
	scenario.SunEarth(store)
	sim := engine.New(store)
	sim.Controls().SetSpeed(86400 * 60)
	sim.Controls().SetSubSteps(24)
	return NewModel(sim, "sun-earth")
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestKeysChangeControls(t *testing.T) {
	m := newModel(t)
	ctl := m.sim.Controls()

	m = send(m, key(" "))
	if !ctl.Paused {
		t.Error("space should pause")
	}
	m = send(m, key(" "))
	if ctl.Paused {
		t.Error("space should resume")
	}

	speed := ctl.Speed
	m = send(m, key("+"))
	if ctl.Speed != 2*speed {
		t.Errorf("speed = %g, want %g", ctl.Speed, 2*speed)
	}
	m = send(m, key("-"), key("-"))
	if ctl.Speed != speed/2 {
		t.Errorf("speed = %g, want %g", ctl.Speed, speed/2)
	}

	m = send(m, key("]"))
	if ctl.SubSteps != 25 {
		t.Errorf("sub-steps = %d, want 25", ctl.SubSteps)
	}
	for i := 0; i < 40; i++ {
		m = send(m, key("["))
	}
	if ctl.SubSteps != 1 {
		t.Errorf("sub-steps = %d, want 1", ctl.SubSteps)
	}

	m = send(m, key("e"))
	if ctl.Scheme != integrators.Euler {
		t.Errorf("scheme = %v, want euler", ctl.Scheme)
	}
	m = send(m, key("v"))
	if ctl.Scheme != integrators.Verlet {
		t.Errorf("scheme = %v, want verlet", ctl.Scheme)
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestTabCyclesSelection(t *testing.T) {
	m := newModel(t)
	ctl := m.sim.Controls()
	sun, _ := m.sim.Store().Lookup("sun")
	earth, _ := m.sim.Store().Lookup("earth")

	want := []orbit.ID{sun, earth, orbit.None, sun}
	for _, id := range want {
		m = send(m, key("tab"))
		if ctl.Selected != id {
			t.Fatalf("selected %d, want %d", ctl.Selected, id)
		}
	}

	b, _ := m.sim.Store().Get(sun)
	if b.RenderPosition != (mgl32.Vec3{}) {
		t.Errorf("followed body should be drawn at the origin, got %v", b.RenderPosition)
	}
}

func TestTicksAdvanceSimulation(t *testing.T) {
	m := newModel(t)
	start := time.Unix(0, 0)

	for i := 0; i < 10; i++ {
		m = send(m, TickMsg(start.Add(time.Duration(i)*frameInterval)))
	}

	if m.sim.Frames() != 10 {
		t.Errorf("frames = %d, want 10", m.sim.Frames())
	}
	if len(m.drift) != 10 {
		t.Errorf("drift history = %d, want 10", len(m.drift))
	}
	earth, _ := m.sim.Store().Lookup("earth")
	if got := len(m.trails[earth]); got != 10 {
		t.Errorf("trail length = %d, want 10", got)
	}

	m = send(m, key(" "))
	m = send(m, TickMsg(start.Add(20*frameInterval)))
	if m.sim.Frames() != 10 {
		t.Error("paused ticks must not run frames")
	}
}

func TestResetApsisKey(t *testing.T) {
	m := newModel(t)
	start := time.Unix(0, 0)
	m = send(m, TickMsg(start), TickMsg(start.Add(frameInterval)))

	earth, _ := m.sim.Store().Lookup("earth")
	b, _ := m.sim.Store().Get(earth)
	if b.Apsis.Unset() {
		t.Fatal("apsis should be measured after a frame")
	}

	m = send(m, key("r"))
	if !b.Apsis.Unset() {
		t.Error("r should reset apsis records")
	}
}

func TestView(t *testing.T) {
	m := newModel(t)
	m = send(m, TickMsg(time.Unix(0, 0)), TickMsg(time.Unix(0, 0).Add(frameInterval)))

	out := m.View()
	for _, want := range []string{"SUN-EARTH", "RUNNING", "verlet", "earth", "peri"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = send(m, key(" "), key("?"))
	out = m.View()
	if !strings.Contains(out, "PAUSED") {
		t.Error("view should show paused state")
	}
	if !strings.Contains(out, "follow next body") {
		t.Error("view should show help")
	}
}

func TestCanvas(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Dot(0, 0)
	c.Dot(3, 3)
	c.Dot(-1, 0)
	c.Dot(4, 0)

	got := []rune(strings.TrimSuffix(c.String(), "\n"))
	if got[0] != 0x2801 || got[1] != 0x2880 {
		t.Errorf("unexpected cells %U %U", got[0], got[1])
	}

	c.Label(2, 0, 'x')
	if !strings.HasPrefix(c.String(), string(rune(0x2801))+"x") {
		t.Errorf("label not drawn: %q", c.String())
	}

	v := View{Extent: 1}
	x, y := v.Project(c, mgl32.Vec3{0, 0, 0})
	if x != 2 || y != 2 {
		t.Errorf("center projects to (%d, %d), want (2, 2)", x, y)
	}
}
