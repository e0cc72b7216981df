package metrics

import "github.com/san-kum/orbitsim/internal/orbit"

// Stability is the fraction of samples in which every body had a finite
// state.
type Stability struct {
	name       string
	violations int
	samples    int
}

func NewStability() *Stability {
	return &Stability{name: "stability"}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(bodies []orbit.Body, t float64) {
	s.samples++
	for i := range bodies {
		if !bodies[i].IsValid() {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
