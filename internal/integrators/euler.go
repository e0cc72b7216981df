package integrators

import (
	"github.com/san-kum/orbitsim/internal/gravity"
	"github.com/san-kum/orbitsim/internal/orbit"
)

// EulerStep advances bodies by dt with semi-implicit (symplectic) Euler:
// velocity is kicked by the freshly accumulated acceleration first, then
// position drifts with the new velocity. Swapping the two updates turns it
// into explicit Euler, which spirals outward on closed orbits.
func EulerStep(bodies []orbit.Body, dt float64) StepStats {
	skipped := gravity.Accumulate(bodies)

	for i := range bodies {
		b := &bodies[i]
		b.Velocity = b.Velocity.Add(b.Acceleration.Mul(dt))
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
	}

	return StepStats{ForceEvaluations: 1, CoincidentPairs: skipped}
}
