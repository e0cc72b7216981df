// Package scenario builds the body lists the CLI and drivers start from.
//
// Masses and distances are mean values in SI units. Every satellite starts
// on a circular orbit around its parent in the xy plane, and the whole
// system is shifted into its barycentric frame so total momentum is zero.
package scenario

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitsim/internal/gravity"
	"github.com/san-kum/orbitsim/internal/orbit"
)

const (
	SolarMass   = 1.989e30
	EarthMass   = 5.972e24
	MoonMass    = 7.342e22
	MercuryMass = 3.301e23
	VenusMass   = 4.867e24
	MarsMass    = 6.417e23

	AU          = 1.496e11
	MoonOrbit   = 3.844e8
	MercuryAxis = 5.791e10
	VenusAxis   = 1.082e11
	MarsAxis    = 2.279e11
)

// Scenario is a named, reproducible initial condition.
type Scenario struct {
	Name        string
	Description string
	// Follow names the body drivers select by default. Empty means no
	// recentering.
	Follow string
	Build  func(s *orbit.Store)
}

var registry = map[string]Scenario{
	"sun-earth": {
		Name: "sun-earth", Description: "Sun and Earth on a circular 1 AU orbit",
		Follow: "sun", Build: SunEarth,
	},
	"earth-moon": {
		Name: "earth-moon", Description: "Earth and Moon, no Sun",
		Follow: "earth", Build: EarthMoon,
	},
	"inner-system": {
		Name: "inner-system", Description: "Sun, Mercury, Venus, Earth with Moon, Mars",
		Follow: "sun", Build: InnerSystem,
	},
	"binary": {
		Name: "binary", Description: "equal-mass binary star with a circumbinary planet",
		Follow: "", Build: Binary,
	},
}

// Get looks up a built-in scenario by name.
func Get(name string) (Scenario, error) {
	sc, ok := registry[name]
	if !ok {
		return Scenario{}, fmt.Errorf("unknown scenario: %s", name)
	}
	return sc, nil
}

// Build clears s and fills it with the named scenario. It returns the ID of
// the body to follow, or orbit.None.
func Build(name string, s *orbit.Store) (orbit.ID, error) {
	sc, err := Get(name)
	if err != nil {
		return orbit.None, err
	}
	s.Reset()
	sc.Build(s)
	if sc.Follow == "" {
		return orbit.None, nil
	}
	id, _ := s.Lookup(sc.Follow)
	return id, nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CircularVelocity is the relative speed of a two-body circular orbit of
// radius r.
func CircularVelocity(parentMass, mass, r float64) float64 {
	return gravity.CircularSpeed(parentMass+mass, r)
}

// Orbiting places a body of the given mass on a circular, prograde orbit of
// radius r around parent, at angle phase (radians) in the xy plane.
func Orbiting(parent *orbit.Body, name string, mass, r, phase float64) orbit.BodySpec {
	sin, cos := math.Sincos(phase)
	v := CircularVelocity(parent.Mass, mass, r)
	return orbit.BodySpec{
		Name:     name,
		Mass:     mass,
		Position: parent.Position.Add(mgl64.Vec3{r * cos, r * sin, 0}),
		Velocity: parent.Velocity.Add(mgl64.Vec3{-v * sin, v * cos, 0}),
		Parent:   parent.ID,
	}
}

// addOrbiting is Orbiting plus MustAdd.
func addOrbiting(s *orbit.Store, parent orbit.ID, name string, mass, r, phase float64) orbit.ID {
	p, _ := s.Get(parent)
	return s.MustAdd(Orbiting(p, name, mass, r, phase))
}

// ZeroMomentum shifts every velocity by the same amount so the total
// momentum of the store is zero. Relative motion is unchanged.
func ZeroMomentum(s *orbit.Store) {
	bodies := s.Bodies()
	total := 0.0
	for i := range bodies {
		total += bodies[i].Mass
	}
	if total == 0 {
		return
	}
	drift := gravity.Momentum(bodies).Mul(1 / total)
	for i := range bodies {
		bodies[i].Velocity = bodies[i].Velocity.Sub(drift)
	}
}

func SunEarth(s *orbit.Store) {
	sun := s.MustAdd(orbit.BodySpec{Name: "sun", Mass: SolarMass})
	addOrbiting(s, sun, "earth", EarthMass, AU, 0)
	ZeroMomentum(s)
}

func EarthMoon(s *orbit.Store) {
	earth := s.MustAdd(orbit.BodySpec{Name: "earth", Mass: EarthMass})
	addOrbiting(s, earth, "moon", MoonMass, MoonOrbit, 0)
	ZeroMomentum(s)
}

func InnerSystem(s *orbit.Store) {
	sun := s.MustAdd(orbit.BodySpec{Name: "sun", Mass: SolarMass})
	addOrbiting(s, sun, "mercury", MercuryMass, MercuryAxis, 0.5)
	addOrbiting(s, sun, "venus", VenusMass, VenusAxis, 2.1)
	earth := addOrbiting(s, sun, "earth", EarthMass, AU, 0)
	addOrbiting(s, earth, "moon", MoonMass, MoonOrbit, 0)
	addOrbiting(s, sun, "mars", MarsMass, MarsAxis, 4.0)
	ZeroMomentum(s)
}

// Binary is two solar-mass stars 1 AU apart and a planet at 4 AU from
// their barycenter. The planet has no parent.
func Binary(s *orbit.Store) {
	const sep = AU
	v := 0.5 * CircularVelocity(SolarMass, SolarMass, sep)

	a := s.MustAdd(orbit.BodySpec{
		Name: "alpha", Mass: SolarMass,
		Position: mgl64.Vec3{-sep / 2, 0, 0},
		Velocity: mgl64.Vec3{0, -v, 0},
	})
	s.MustAdd(orbit.BodySpec{
		Name: "beta", Mass: SolarMass,
		Position: mgl64.Vec3{sep / 2, 0, 0},
		Velocity: mgl64.Vec3{0, v, 0},
		Parent:   a,
	})

	r := 4 * AU
	vp := CircularVelocity(2*SolarMass, EarthMass, r)
	s.MustAdd(orbit.BodySpec{
		Name: "planet", Mass: EarthMass,
		Position: mgl64.Vec3{0, r, 0},
		Velocity: mgl64.Vec3{-vp, 0, 0},
	})
	ZeroMomentum(s)
}
