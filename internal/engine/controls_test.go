package engine

import (
	"math"
	"testing"

	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/orbit"
)

func TestDefaultControls(t *testing.T) {
	c := DefaultControls()
	if c.Paused || c.Speed != 1 || c.SubSteps != 1 || c.Scheme != integrators.Verlet || c.Selected != orbit.None {
		t.Errorf("unexpected defaults: %+v", c)
	}
}

func TestSetSpeed(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{2, 2},
		{0, 0},
		{-3, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
	}
	for _, tt := range tests {
		c := DefaultControls()
		c.SetSpeed(tt.in)
		if c.Speed != tt.want {
			t.Errorf("SetSpeed(%v) = %v, want %v", tt.in, c.Speed, tt.want)
		}
	}

	c := DefaultControls()
	c.ScaleSpeed(4)
	c.ScaleSpeed(0.5)
	if c.Speed != 2 {
		t.Errorf("ScaleSpeed: got %v, want 2", c.Speed)
	}
}

func TestSubSteps(t *testing.T) {
	c := DefaultControls()
	c.DecSubSteps()
	c.DecSubSteps()
	if c.SubSteps != 1 {
		t.Errorf("DecSubSteps went below 1: %d", c.SubSteps)
	}
	c.IncSubSteps()
	c.IncSubSteps()
	if c.SubSteps != 3 {
		t.Errorf("IncSubSteps: got %d, want 3", c.SubSteps)
	}
	c.SetSubSteps(-7)
	if c.SubSteps != 1 {
		t.Errorf("SetSubSteps(-7) = %d, want 1", c.SubSteps)
	}
	c.SetSubSteps(MaxSubSteps * 10)
	if c.SubSteps != MaxSubSteps {
		t.Errorf("SetSubSteps above the limit = %d, want %d", c.SubSteps, MaxSubSteps)
	}
	c.IncSubSteps()
	if c.SubSteps != MaxSubSteps {
		t.Errorf("IncSubSteps passed the limit: %d", c.SubSteps)
	}
}

func TestSetScheme(t *testing.T) {
	c := DefaultControls()
	c.SetScheme(integrators.Euler)
	if c.Scheme != integrators.Euler {
		t.Errorf("got %v, want euler", c.Scheme)
	}
	c.SetScheme(integrators.Scheme(-1))
	if c.Scheme != integrators.Verlet {
		t.Errorf("invalid scheme should fall back to verlet, got %v", c.Scheme)
	}
}

func TestPauseAndSelection(t *testing.T) {
	c := DefaultControls()
	c.TogglePause()
	if !c.Paused {
		t.Error("TogglePause should pause")
	}
	c.SetPaused(false)
	if c.Paused {
		t.Error("SetPaused(false) should resume")
	}

	c.Select(7)
	if c.Selected != 7 {
		t.Errorf("Selected = %d, want 7", c.Selected)
	}
	c.Deselect()
	if c.Selected != orbit.None {
		t.Errorf("Deselect left %d", c.Selected)
	}
}

func TestNormalized(t *testing.T) {
	c := Controls{Speed: math.NaN(), SubSteps: 0, Scheme: 9}
	n := c.normalized()
	if n.Speed != 0 || n.SubSteps != 1 || n.Scheme != integrators.Default {
		t.Errorf("normalized() = %+v", n)
	}
	if n := (Controls{SubSteps: math.MaxInt}).normalized(); n.SubSteps != MaxSubSteps {
		t.Errorf("normalized() sub-steps = %d, want %d", n.SubSteps, MaxSubSteps)
	}
	if c.SubSteps != 0 {
		t.Error("normalized must not modify the receiver")
	}
}
