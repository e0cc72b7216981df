package metrics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitsim/internal/gravity"
	"github.com/san-kum/orbitsim/internal/orbit"
)

// MomentumDrift is the largest change of total linear momentum relative to
// the momentum scale sum(m|v|) of the first sample. Pairwise forces cancel
// exactly, so anything above rounding noise points at a broken
// accumulator.
type MomentumDrift struct {
	name     string
	initial  mgl64.Vec3
	scale    float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(bodies []orbit.Body, t float64) {
	p := gravity.Momentum(bodies)
	if m.samples == 0 {
		m.initial = p
		m.scale = gravity.MomentumScale(bodies)
	}
	m.samples++

	if m.scale > 0 {
		m.maxDrift = math.Max(m.maxDrift, p.Sub(m.initial).Len()/m.scale)
	}
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = mgl64.Vec3{}
	m.scale = 0
	m.maxDrift = 0
	m.samples = 0
}

// AngularMomentumDrift is the largest relative change of total angular
// momentum about the origin.
type AngularMomentumDrift struct {
	name     string
	initial  mgl64.Vec3
	maxDrift float64
	samples  int
}

func NewAngularMomentumDrift() *AngularMomentumDrift {
	return &AngularMomentumDrift{name: "angular_momentum_drift"}
}

func (a *AngularMomentumDrift) Name() string { return a.name }

func (a *AngularMomentumDrift) Observe(bodies []orbit.Body, t float64) {
	l := gravity.AngularMomentum(bodies)
	if a.samples == 0 {
		a.initial = l
	}
	a.samples++

	if n := a.initial.Len(); n > 0 {
		a.maxDrift = math.Max(a.maxDrift, l.Sub(a.initial).Len()/n)
	}
}

func (a *AngularMomentumDrift) Value() float64 { return a.maxDrift }

func (a *AngularMomentumDrift) Reset() {
	a.initial = mgl64.Vec3{}
	a.maxDrift = 0
	a.samples = 0
}
