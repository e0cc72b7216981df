package metrics

import (
	"github.com/san-kum/orbitsim/internal/apsis"
	"github.com/san-kum/orbitsim/internal/orbit"
)

// Eccentricity reports the eccentricity implied by the apsis record of one
// body. It reads the record the engine maintains and keeps no state of its
// own beyond the last value.
type Eccentricity struct {
	name  string
	id    orbit.ID
	value float64
}

func NewEccentricity(name string, id orbit.ID) *Eccentricity {
	return &Eccentricity{name: "eccentricity_" + name, id: id}
}

func (e *Eccentricity) Name() string { return e.name }

func (e *Eccentricity) Observe(bodies []orbit.Body, t float64) {
	b, parent, ok := withParent(bodies, e.id)
	if !ok {
		return
	}
	if el, ok := apsis.FromRecord(b.Apsis, parent.Mass, b.Mass); ok {
		e.value = el.Eccentricity
	}
}

func (e *Eccentricity) Value() float64 { return e.value }
func (e *Eccentricity) Reset()         { e.value = 0 }

// Period reports the orbital period in seconds derived from the apsis
// record of one body.
type Period struct {
	name  string
	id    orbit.ID
	value float64
}

func NewPeriod(name string, id orbit.ID) *Period {
	return &Period{name: "period_" + name, id: id}
}

func (p *Period) Name() string { return p.name }

func (p *Period) Observe(bodies []orbit.Body, t float64) {
	b, parent, ok := withParent(bodies, p.id)
	if !ok {
		return
	}
	if el, ok := apsis.FromRecord(b.Apsis, parent.Mass, b.Mass); ok {
		p.value = el.Period
	}
}

func (p *Period) Value() float64 { return p.value }
func (p *Period) Reset()         { p.value = 0 }

func withParent(bodies []orbit.Body, id orbit.ID) (*orbit.Body, *orbit.Body, bool) {
	var b, parent *orbit.Body
	for i := range bodies {
		if bodies[i].ID == id {
			b = &bodies[i]
		}
	}
	if b == nil || b.Parent == orbit.None {
		return nil, nil, false
	}
	for i := range bodies {
		if bodies[i].ID == b.Parent {
			parent = &bodies[i]
		}
	}
	return b, parent, parent != nil
}
