package metrics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitsim/internal/engine"
	"github.com/san-kum/orbitsim/internal/gravity"
	"github.com/san-kum/orbitsim/internal/orbit"
	"github.com/san-kum/orbitsim/internal/scenario"
)

func pair() []orbit.Body {
	return []orbit.Body{
		{ID: 1, Mass: 1e24, Position: mgl64.Vec3{-1e7, 0, 0}, Velocity: mgl64.Vec3{0, -100, 0}},
		{ID: 2, Mass: 1e24, Position: mgl64.Vec3{1e7, 0, 0}, Velocity: mgl64.Vec3{0, 100, 0}, Parent: 1},
	}
}

func TestEnergy(t *testing.T) {
	m := NewEnergy()
	if m.Value() != 0 {
		t.Error("expected zero energy before any sample")
	}

	bodies := pair()
	m.Observe(bodies, 0)
	if want := gravity.TotalEnergy(bodies); m.Value() != want {
		t.Errorf("energy = %g, want %g", m.Value(), want)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift()
	bodies := pair()
	e0 := gravity.TotalEnergy(bodies)

	m.Observe(bodies, 0)
	if m.Value() != 0 {
		t.Errorf("drift after one sample = %g, want 0", m.Value())
	}

	bodies[1].Velocity = bodies[1].Velocity.Mul(2)
	m.Observe(bodies, 1)
	want := math.Abs(gravity.TotalEnergy(bodies)-e0) / math.Abs(e0)
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("drift = %g, want %g", m.Value(), want)
	}

	// restoring the state keeps the maximum
	bodies[1].Velocity = bodies[1].Velocity.Mul(0.5)
	m.Observe(bodies, 2)
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("max drift lost: %g, want %g", m.Value(), want)
	}
	if math.Abs(m.Current()) > 1e-12 {
		t.Errorf("current drift = %g, want 0", m.Current())
	}

	m.Reset()
	if m.Value() != 0 || m.Current() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestMomentumDrift(t *testing.T) {
	m := NewMomentumDrift()
	bodies := pair()
	m.Observe(bodies, 0)

	bodies[0].Velocity = mgl64.Vec3{0, 100, 0}
	m.Observe(bodies, 1)

	// p changed by 2e26, scale is 2e26
	if math.Abs(m.Value()-1) > 1e-12 {
		t.Errorf("momentum drift = %g, want 1", m.Value())
	}
}

func TestStability(t *testing.T) {
	s := NewStability()
	if s.Value() != 1 {
		t.Error("expected stability 1 with no samples")
	}
	bodies := pair()
	s.Observe(bodies, 0)
	bodies[0].Position[0] = math.NaN()
	s.Observe(bodies, 1)
	if s.Value() != 0.5 {
		t.Errorf("stability = %g, want 0.5", s.Value())
	}
}

func TestEccentricityAndPeriod(t *testing.T) {
	bodies := pair()
	bodies[1].Apsis = orbit.ApsisRecord{
		Periapsis: orbit.Extremum{Distance: 1e7},
		Apoapsis:  orbit.Extremum{Distance: 3e7},
	}

	e := NewEccentricity("b", 2)
	e.Observe(bodies, 0)
	if math.Abs(e.Value()-0.5) > 1e-9 {
		t.Errorf("eccentricity = %g, want 0.5", e.Value())
	}
	if e.Name() != "eccentricity_b" {
		t.Errorf("name = %q", e.Name())
	}

	p := NewPeriod("b", 2)
	p.Observe(bodies, 0)
	if p.Value() <= 0 {
		t.Errorf("period = %g, want > 0", p.Value())
	}

	orphan := NewPeriod("a", 1)
	orphan.Observe(bodies, 0)
	if orphan.Value() != 0 {
		t.Error("a body without a parent has no period")
	}
}

func TestSetAsObserver(t *testing.T) {
	store := orbit.NewStore()
	scenario.SunEarth(store)

	set := Default(true)
	sim := engine.New(store, engine.WithObserver(set))
	sim.Controls().SetSpeed(86400)
	sim.Controls().SetSubSteps(24)

	set.Observe(store.Bodies(), 0)
	for i := 0; i < 100; i++ {
		sim.Frame(1)
	}

	if got := len(set.Times()); got != 101 {
		t.Fatalf("recorded %d samples, want 101", got)
	}
	if got := len(set.Series("energy_drift")); got != 101 {
		t.Errorf("energy_drift series has %d samples, want 101", got)
	}

	v := set.Values()
	if v["energy_drift"] > 1e-5 {
		t.Errorf("verlet energy drift %g over 100 days", v["energy_drift"])
	}
	if v["momentum_drift"] > 1e-9 {
		t.Errorf("momentum drift %g", v["momentum_drift"])
	}
	if v["stability"] != 1 {
		t.Errorf("stability = %g", v["stability"])
	}

	set.Reset()
	if len(set.Times()) != 0 || set.Series("energy") != nil {
		t.Error("Reset should clear history")
	}
}
