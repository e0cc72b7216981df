package gravity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitsim/internal/orbit"
)

func KineticEnergy(bodies []orbit.Body) float64 {
	ke := 0.0
	for i := range bodies {
		v := bodies[i].Velocity
		ke += 0.5 * bodies[i].Mass * v.Dot(v)
	}
	return ke
}

// PotentialEnergy skips coincident pairs, matching Accumulate.
func PotentialEnergy(bodies []orbit.Body) float64 {
	pe := 0.0
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			r := bodies[j].Position.Sub(bodies[i].Position).Len()
			if r == 0 {
				continue
			}
			pe -= G * bodies[i].Mass * bodies[j].Mass / r
		}
	}
	return pe
}

func TotalEnergy(bodies []orbit.Body) float64 {
	return KineticEnergy(bodies) + PotentialEnergy(bodies)
}

func Momentum(bodies []orbit.Body) mgl64.Vec3 {
	var p mgl64.Vec3
	for i := range bodies {
		p = p.Add(bodies[i].Velocity.Mul(bodies[i].Mass))
	}
	return p
}

// MomentumScale is the sum of |m·v| over all bodies; a natural yardstick for
// judging how close the total momentum stays to its initial value.
func MomentumScale(bodies []orbit.Body) float64 {
	s := 0.0
	for i := range bodies {
		s += bodies[i].Mass * bodies[i].Velocity.Len()
	}
	return s
}

func AngularMomentum(bodies []orbit.Body) mgl64.Vec3 {
	var l mgl64.Vec3
	for i := range bodies {
		l = l.Add(bodies[i].Position.Cross(bodies[i].Velocity).Mul(bodies[i].Mass))
	}
	return l
}

func CenterOfMass(bodies []orbit.Body) mgl64.Vec3 {
	var c mgl64.Vec3
	total := 0.0
	for i := range bodies {
		c = c.Add(bodies[i].Position.Mul(bodies[i].Mass))
		total += bodies[i].Mass
	}
	if total == 0 {
		return mgl64.Vec3{}
	}
	return c.Mul(1 / total)
}

// CircularSpeed is the speed of a circular orbit of radius r around a
// primary of mass m, ignoring the orbiter's own mass.
func CircularSpeed(m, r float64) float64 {
	if r <= 0 {
		return 0
	}
	return math.Sqrt(G * m / r)
}
