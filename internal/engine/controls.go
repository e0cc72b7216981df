package engine

import (
	"math"

	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/orbit"
)

// Controls are the runtime knobs a driver exposes to the user.
type Controls struct {
	Paused   bool
	Speed    float64 // simulated seconds per wall-clock second
	SubSteps int
	Scheme   integrators.Scheme
	Selected orbit.ID
}

func DefaultControls() Controls {
	return Controls{
		Speed:    1,
		SubSteps: 1,
		Scheme:   integrators.Default,
		Selected: orbit.None,
	}
}

func (c *Controls) SetPaused(p bool) { c.Paused = p }
func (c *Controls) TogglePause()      { c.Paused = !c.Paused }

// SetSpeed clamps NaN, infinities and negative values to 0.
func (c *Controls) SetSpeed(speed float64) {
	if math.IsNaN(speed) || math.IsInf(speed, 0) || speed < 0 {
		speed = 0
	}
	c.Speed = speed
}

// ScaleSpeed multiplies the speed by factor, e.g. 2 or 0.5 for +/- keys.
func (c *Controls) ScaleSpeed(factor float64) {
	c.SetSpeed(c.Speed * factor)
}

// MaxSubSteps bounds the work one frame may do.
const MaxSubSteps = 100_000

// SetSubSteps clamps n to [1, MaxSubSteps].
func (c *Controls) SetSubSteps(n int) {
	c.SubSteps = min(max(n, 1), MaxSubSteps)
}

func (c *Controls) IncSubSteps() { c.SetSubSteps(c.SubSteps + 1) }
func (c *Controls) DecSubSteps() { c.SetSubSteps(c.SubSteps - 1) }

// SetScheme falls back to the default scheme for unknown values.
func (c *Controls) SetScheme(s integrators.Scheme) {
	if !s.Valid() {
		s = integrators.Default
	}
	c.Scheme = s
}

func (c *Controls) Select(id orbit.ID) { c.Selected = id }
func (c *Controls) Deselect()          { c.Selected = orbit.None }

// normalized repairs a Controls value built by hand so the frame loop can
// rely on its invariants.
func (c Controls) normalized() Controls {
	c.SetSpeed(c.Speed)
	c.SetSubSteps(c.SubSteps)
	c.SetScheme(c.Scheme)
	return c
}
