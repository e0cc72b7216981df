package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/gravity"
	"github.com/san-kum/orbitsim/internal/orbit"
)

// Energy is the total mechanical energy at the last sample, in joules.
type Energy struct {
	name    string
	energy  float64
	samples int
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(bodies []orbit.Body, t float64) {
	e.energy = gravity.TotalEnergy(bodies)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.energy
}

func (e *Energy) Reset() {
	e.energy = 0
	e.samples = 0
}

// EnergyDrift is the largest relative deviation from the first sampled
// energy.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(bodies []orbit.Body, t float64) {
	energy := gravity.TotalEnergy(bodies)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

// Current is the relative drift at the last sample.
func (e *EnergyDrift) Current() float64 {
	if e.initialEnergy == 0 {
		return 0
	}
	return (e.currentEnergy - e.initialEnergy) / math.Abs(e.initialEnergy)
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
