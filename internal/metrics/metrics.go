// Package metrics measures integration quality frame by frame.
package metrics

import (
	"github.com/san-kum/orbitsim/internal/engine"
	"github.com/san-kum/orbitsim/internal/orbit"
)

type Metric interface {
	Name() string
	Observe(bodies []orbit.Body, t float64)
	Value() float64
	Reset()
}

// Set feeds a group of metrics from engine frames and optionally keeps the
// value history of each one.
type Set struct {
	metrics []Metric
	record  bool
	times   []float64
	series  map[string][]float64
}

func NewSet(record bool, ms ...Metric) *Set {
	return &Set{
		metrics: ms,
		record:  record,
		series:  make(map[string][]float64),
	}
}

// Default is the set the CLI attaches to every run.
func Default(record bool) *Set {
	return NewSet(record,
		NewEnergy(),
		NewEnergyDrift(),
		NewMomentumDrift(),
		NewAngularMomentumDrift(),
		NewStability(),
	)
}

func (s *Set) Add(m Metric) { s.metrics = append(s.metrics, m) }

// Observe samples every metric. It is also called directly to record the
// initial state before the first frame.
func (s *Set) Observe(bodies []orbit.Body, t float64) {
	for _, m := range s.metrics {
		m.Observe(bodies, t)
	}
	if !s.record {
		return
	}
	s.times = append(s.times, t)
	for _, m := range s.metrics {
		s.series[m.Name()] = append(s.series[m.Name()], m.Value())
	}
}

func (s *Set) OnFrame(sim *engine.Simulation, r engine.Report) {
	s.Observe(sim.Store().Bodies(), r.SimTime)
}

func (s *Set) Metrics() []Metric { return s.metrics }

// Values returns the current value of every metric by name.
func (s *Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Series returns the recorded history of one metric, or nil.
func (s *Set) Series(name string) []float64 { return s.series[name] }
func (s *Set) Times() []float64             { return s.times }

func (s *Set) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
	s.times = nil
	clear(s.series)
}
