// Package gravity computes exact pairwise Newtonian accelerations and the
// conserved quantities used to judge an integrator.
//
// There is no softening and no tree approximation: every unordered pair is
// visited once and Newton's third law is applied to both members.
//
// # Coincident bodies
//
// A pair at zero separation has no defined force direction. [Accumulate]
// skips such a pair (it contributes nothing to either body) and reports how
// many pairs it skipped, so no NaN ever leaves the accumulator for finite
// inputs.
package gravity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitsim/internal/orbit"
)

// G is the Newtonian gravitational constant in m³·kg⁻¹·s⁻².
const G = 6.67430e-11

// Accumulate resets every acceleration and sums the pairwise contributions.
// It returns the number of coincident pairs that were skipped.
func Accumulate(bodies []orbit.Body) int {
	for i := range bodies {
		bodies[i].Acceleration = mgl64.Vec3{}
	}

	skipped := 0
	n := len(bodies)
	for i := 0; i < n; i++ {
		bi := &bodies[i]
		for j := i + 1; j < n; j++ {
			bj := &bodies[j]

			f, ok := PairForce(bi, bj)
			if !ok {
				skipped++
				continue
			}

			bi.Acceleration = bi.Acceleration.Add(f.Mul(1 / bi.Mass))
			bj.Acceleration = bj.Acceleration.Sub(f.Mul(1 / bj.Mass))
		}
	}
	return skipped
}

// PairForce returns the force exerted on a by b. It reports false when the
// two bodies share a position.
func PairForce(a, b *orbit.Body) (mgl64.Vec3, bool) {
	delta := b.Position.Sub(a.Position)
	r2 := delta.Dot(delta)
	if r2 == 0 {
		return mgl64.Vec3{}, false
	}
	magnitude := G * a.Mass * b.Mass / r2
	return delta.Mul(magnitude / math.Sqrt(r2)), true
}

// Coincident lists index pairs at zero separation.
func Coincident(bodies []orbit.Body) [][2]int {
	var pairs [][2]int
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			if bodies[i].Position == bodies[j].Position {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}
