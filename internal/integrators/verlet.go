package integrators

import (
	"github.com/san-kum/orbitsim/internal/gravity"
	"github.com/san-kum/orbitsim/internal/orbit"
)

// VerletStep advances bodies by dt with velocity Verlet in kick-drift-kick
// form. Forces are evaluated at the start positions and again at the
// drifted positions, so each call costs two full pair sweeps.
func VerletStep(bodies []orbit.Body, dt float64) StepStats {
	halfDt := 0.5 * dt

	skipped := gravity.Accumulate(bodies)
	for i := range bodies {
		b := &bodies[i]
		b.Velocity = b.Velocity.Add(b.Acceleration.Mul(halfDt))
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
	}

	skipped += gravity.Accumulate(bodies)
	for i := range bodies {
		b := &bodies[i]
		b.Velocity = b.Velocity.Add(b.Acceleration.Mul(halfDt))
	}

	return StepStats{ForceEvaluations: 2, CoincidentPairs: skipped}
}
