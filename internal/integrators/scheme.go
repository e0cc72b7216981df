// Package integrators advances a body slice through one sub-step.
//
// The set of schemes is closed: [Euler] and [Verlet]. A [Scheme] value is
// matched once per call to [Scheme.Step]; there is no registry and no
// interface dispatch.
package integrators

import (
	"fmt"
	"strings"

	"github.com/san-kum/orbitsim/internal/orbit"
)

type Scheme int

const (
	Verlet Scheme = iota
	Euler
)

// Default is the scheme used when none is configured. Verlet keeps the
// energy error of periodic orbits bounded at second order.
const Default = Verlet

// StepStats describes the work done by one sub-step.
type StepStats struct {
	ForceEvaluations int
	CoincidentPairs  int
}

func (s StepStats) Add(o StepStats) StepStats {
	return StepStats{
		ForceEvaluations: s.ForceEvaluations + o.ForceEvaluations,
		CoincidentPairs:  s.CoincidentPairs + o.CoincidentPairs,
	}
}

func (s Scheme) String() string {
	switch s {
	case Euler:
		return "euler"
	case Verlet:
		return "verlet"
	default:
		return fmt.Sprintf("scheme(%d)", int(s))
	}
}

func (s Scheme) Valid() bool {
	return s == Euler || s == Verlet
}

// Next cycles through the schemes; used by interactive drivers.
func (s Scheme) Next() Scheme {
	if s == Verlet {
		return Euler
	}
	return Verlet
}

func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "euler", "symplectic-euler", "semi-implicit-euler":
		return Euler, nil
	case "verlet", "velocity-verlet":
		return Verlet, nil
	default:
		return Default, fmt.Errorf("unknown integrator: %s", name)
	}
}

func (s Scheme) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown integrator: %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Scheme) UnmarshalText(text []byte) error {
	parsed, err := ParseScheme(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Step advances bodies by one sub-step of length dt.
func (s Scheme) Step(bodies []orbit.Body, dt float64) StepStats {
	switch s {
	case Euler:
		return EulerStep(bodies, dt)
	default:
		return VerletStep(bodies, dt)
	}
}

// Names lists the accepted canonical scheme names.
func Names() []string {
	return []string{Verlet.String(), Euler.String()}
}
