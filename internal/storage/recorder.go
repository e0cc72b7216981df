package storage

import (
	"github.com/san-kum/orbitsim/internal/apsis"
	"github.com/san-kum/orbitsim/internal/engine"
	"github.com/san-kum/orbitsim/internal/orbit"
)

// Recorder is an engine observer that samples the trajectory every Every
// integrated frames. Every <= 1 records every frame.
type Recorder struct {
	Every   int
	samples []Sample
	seen    int
}

func NewRecorder(every int) *Recorder {
	return &Recorder{Every: every}
}

func (r *Recorder) OnFrame(sim *engine.Simulation, rep engine.Report) {
	r.seen++
	if r.Every > 1 && r.seen%r.Every != 0 {
		return
	}
	r.Record(sim.Store().Bodies(), rep.SimTime)
}

// Record appends one sample per body.
func (r *Recorder) Record(bodies []orbit.Body, t float64) {
	for i := range bodies {
		r.samples = append(r.samples, Sample{
			Time:     t,
			Body:     bodies[i].Name,
			Position: bodies[i].Position,
			Velocity: bodies[i].Velocity,
		})
	}
}

func (r *Recorder) Samples() []Sample { return r.samples }

func (r *Recorder) Reset() {
	r.samples = nil
	r.seen = 0
}

// Apsides collects the apsis records of every parented body that has been
// measured at least once.
func Apsides(s *orbit.Store) []ApsisEntry {
	bodies := s.Bodies()
	out := make([]ApsisEntry, 0)
	for i := range bodies {
		b := &bodies[i]
		j, ok := s.ParentIndex(i)
		if !ok || b.Apsis.Unset() {
			continue
		}
		parent := &bodies[j]
		e := ApsisEntry{
			Body:              b.Name,
			Parent:            parent.Name,
			Periapsis:         b.Apsis.Periapsis.Distance,
			PeriapsisPosition: b.Apsis.Periapsis.Position,
			Apoapsis:          b.Apsis.Apoapsis.Distance,
			ApoapsisPosition:  b.Apsis.Apoapsis.Position,
		}
		if el, ok := apsis.FromRecord(b.Apsis, parent.Mass, b.Mass); ok {
			e.SemiMajorAxis = el.SemiMajorAxis
			e.Eccentricity = el.Eccentricity
			e.Period = el.Period
		}
		out = append(out, e)
	}
	return out
}
