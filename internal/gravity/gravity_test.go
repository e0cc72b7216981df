package gravity_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/gravity"
	"github.com/san-kum/orbitsim/internal/orbit"
)

func body(mass float64, pos mgl64.Vec3) orbit.Body {
	return orbit.Body{Mass: mass, Position: pos}
}

var _ = Describe("Accumulate", func() {
	It("matches Newton's law for a single pair", func() {
		bodies := []orbit.Body{
			body(1.989e30, mgl64.Vec3{}),
			body(5.972e24, mgl64.Vec3{1.496e11, 0, 0}),
		}

		skipped := gravity.Accumulate(bodies)
		Expect(skipped).To(BeZero())

		r := 1.496e11
		wantEarth := gravity.G * 1.989e30 / (r * r)
		wantSun := gravity.G * 5.972e24 / (r * r)

		Expect(bodies[1].Acceleration[0]).To(BeNumerically("~", -wantEarth, wantEarth*1e-12))
		Expect(bodies[0].Acceleration[0]).To(BeNumerically("~", wantSun, wantSun*1e-12))
		Expect(bodies[0].Acceleration[1]).To(BeZero())
		Expect(bodies[1].Acceleration[2]).To(BeZero())
	})

	It("applies equal and opposite forces to every pair", func() {
		bodies := []orbit.Body{
			body(3e24, mgl64.Vec3{1e9, -2e9, 5e8}),
			body(7e22, mgl64.Vec3{-4e8, 3e9, 1e9}),
		}

		fab, ok := gravity.PairForce(&bodies[0], &bodies[1])
		Expect(ok).To(BeTrue())
		fba, ok := gravity.PairForce(&bodies[1], &bodies[0])
		Expect(ok).To(BeTrue())

		for k := 0; k < 3; k++ {
			Expect(fab[k]).To(BeNumerically("~", -fba[k], math.Abs(fab[k])*1e-14))
		}

		gravity.Accumulate(bodies)
		onA := bodies[0].Acceleration.Mul(bodies[0].Mass)
		onB := bodies[1].Acceleration.Mul(bodies[1].Mass)
		for k := 0; k < 3; k++ {
			Expect(onA[k]).To(BeNumerically("~", -onB[k], math.Abs(onA[k])*1e-12))
			Expect(onA[k]).To(BeNumerically("~", fab[k], math.Abs(fab[k])*1e-12))
		}
	})

	It("resets stale accelerations before summing", func() {
		bodies := []orbit.Body{
			body(1, mgl64.Vec3{}),
		}
		bodies[0].Acceleration = mgl64.Vec3{5, 5, 5}

		gravity.Accumulate(bodies)
		Expect(bodies[0].Acceleration).To(Equal(mgl64.Vec3{}))
	})

	It("leaves the net force of a closed system at zero", func() {
		bodies := []orbit.Body{
			body(2e30, mgl64.Vec3{}),
			body(6e24, mgl64.Vec3{1.5e11, 0, 0}),
			body(7e22, mgl64.Vec3{1.504e11, 1e7, 0}),
			body(6.4e23, mgl64.Vec3{-2.2e11, 3e10, 1e9}),
		}
		gravity.Accumulate(bodies)

		var net mgl64.Vec3
		scale := 0.0
		for i := range bodies {
			f := bodies[i].Acceleration.Mul(bodies[i].Mass)
			net = net.Add(f)
			scale += f.Len()
		}
		Expect(net.Len()).To(BeNumerically("<", scale*1e-12))
	})

	Context("with coincident bodies", func() {
		It("skips the pair instead of producing NaN", func() {
			bodies := []orbit.Body{
				body(1e24, mgl64.Vec3{1e9, 0, 0}),
				body(1e24, mgl64.Vec3{1e9, 0, 0}),
				body(1e24, mgl64.Vec3{-1e9, 0, 0}),
			}

			skipped := gravity.Accumulate(bodies)
			Expect(skipped).To(Equal(1))

			for i := range bodies {
				Expect(bodies[i].IsValid()).To(BeTrue())
			}
			Expect(bodies[0].Acceleration).To(Equal(bodies[1].Acceleration))
			Expect(bodies[0].Acceleration[0]).To(BeNumerically("<", 0))

			_, ok := gravity.PairForce(&bodies[0], &bodies[1])
			Expect(ok).To(BeFalse())
			Expect(gravity.Coincident(bodies)).To(Equal([][2]int{{0, 1}}))
		})
	})
})

var _ = Describe("conserved quantities", func() {
	It("computes the energy of a bound pair", func() {
		m, r := 1e24, 1e7
		v := math.Sqrt(gravity.G * m / (2 * 2 * r))
		bodies := []orbit.Body{
			{Mass: m, Position: mgl64.Vec3{-r, 0, 0}, Velocity: mgl64.Vec3{0, -v, 0}},
			{Mass: m, Position: mgl64.Vec3{r, 0, 0}, Velocity: mgl64.Vec3{0, v, 0}},
		}

		pe := -gravity.G * m * m / (2 * r)
		Expect(gravity.PotentialEnergy(bodies)).To(BeNumerically("~", pe, math.Abs(pe)*1e-12))
		Expect(gravity.KineticEnergy(bodies)).To(BeNumerically("~", m*v*v, m*v*v*1e-12))
		Expect(gravity.TotalEnergy(bodies)).To(BeNumerically("<", 0))

		Expect(gravity.Momentum(bodies).Len()).To(BeNumerically("<", 1e-6*gravity.MomentumScale(bodies)))
		Expect(gravity.CenterOfMass(bodies)).To(Equal(mgl64.Vec3{}))
		Expect(gravity.AngularMomentum(bodies)[2]).To(BeNumerically(">", 0))
	})

	It("derives circular speed", func() {
		v := gravity.CircularSpeed(1.989e30, 1.496e11)
		Expect(v).To(BeNumerically("~", 29789, 2))
		Expect(gravity.CircularSpeed(1, 0)).To(BeZero())
	})
})
