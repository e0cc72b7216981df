package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitsim/internal/apsis"
	"github.com/san-kum/orbitsim/internal/gravity"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/orbit"
	"github.com/san-kum/orbitsim/internal/recenter"
	"github.com/san-kum/orbitsim/internal/scale"
)

// Observer is notified after every frame that integrated.
type Observer interface {
	OnFrame(s *Simulation, r Report)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s *Simulation, r Report)

func (f ObserverFunc) OnFrame(s *Simulation, r Report) { f(s, r) }

// Report summarizes one call to Frame.
type Report struct {
	Frame      int
	Integrated bool
	Paused     bool
	Scheme     integrators.Scheme
	SubSteps   int
	Dt         float64 // seconds per sub-step
	Elapsed    float64 // simulated seconds covered by the frame
	SimTime    float64
	Offset     mgl64.Vec3

	ForceEvaluations int
	CoincidentPairs  int
	ApsisUpdates     int
	Invalid          bool
}

type Simulation struct {
	store     *orbit.Store
	controls  Controls
	conv      scale.Converter
	logger    *log.Logger
	observers []Observer

	offset  mgl64.Vec3
	simTime float64
	frames  int
	invalid bool
}

type Option func(*Simulation)

func WithControls(c Controls) Option {
	return func(s *Simulation) { s.controls = c.normalized() }
}

func WithScale(c scale.Converter) Option {
	return func(s *Simulation) { s.conv = c }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(s *Simulation) { s.observers = append(s.observers, o) }
}

// New creates a simulation over store and writes initial render positions.
func New(store *orbit.Store, opts ...Option) *Simulation {
	s := &Simulation{
		store:    store,
		controls: DefaultControls(),
		conv:     scale.Default,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Recenter()
	return s
}

func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Controls returns the live controls. Changes apply from the next frame.
func (s *Simulation) Controls() *Controls    { return &s.controls }
func (s *Simulation) Store() *orbit.Store     { return s.store }
func (s *Simulation) Scale() scale.Converter { return s.conv }
func (s *Simulation) Offset() mgl64.Vec3     { return s.offset }
func (s *Simulation) SimTime() float64       { return s.simTime }
func (s *Simulation) Frames() int            { return s.frames }

// Snapshot copies the bodies as of the last completed frame.
func (s *Simulation) Snapshot() []orbit.Body { return s.store.Snapshot() }

// Frame advances the simulation by wallDelta seconds of wall-clock time
// scaled by the current speed. A paused frame, or one covering no
// simulated time, changes nothing.
func (s *Simulation) Frame(wallDelta float64) Report {
	ctl := s.controls.normalized()
	r := Report{
		Frame:    s.frames,
		Paused:   ctl.Paused,
		Scheme:   ctl.Scheme,
		SubSteps: ctl.SubSteps,
		SimTime:  s.simTime,
		Offset:   s.offset,
	}
	if ctl.Paused {
		return r
	}

	span := wallDelta * ctl.Speed
	if !(span > 0) || math.IsInf(span, 0) {
		return r
	}

	bodies := s.store.Bodies()
	dt := span / float64(ctl.SubSteps)

	stats := s.stepPhysics(bodies, ctl.Scheme, dt, ctl.SubSteps)
	s.simTime += span
	s.offset = s.recenter(bodies, ctl.Selected)
	updates := apsis.Update(bodies, s.store.ParentIndex)
	s.frames++

	r.Integrated = true
	r.Dt = dt
	r.Elapsed = span
	r.SimTime = s.simTime
	r.Offset = s.offset
	r.ForceEvaluations = stats.ForceEvaluations
	r.CoincidentPairs = stats.CoincidentPairs
	r.ApsisUpdates = updates
	r.Invalid = !s.valid(bodies)

	if r.CoincidentPairs > 0 {
		kv := []any{"pairs", r.CoincidentPairs, "frame", r.Frame}
		if err := s.CoincidentBodies(); err != nil {
			kv = append(kv, "err", err)
		}
		s.logger.Warn("coincident bodies skipped", kv...)
	}
	if r.Invalid && !s.invalid {
		s.logger.Error("non-finite body state", "frame", r.Frame, "sim_time", s.simTime)
	}
	s.invalid = r.Invalid

	for _, o := range s.observers {
		o.OnFrame(s, r)
	}
	return r
}

// stepPhysics runs the sub-steps of one frame. The scheme is fixed for the
// whole frame.
func (s *Simulation) stepPhysics(bodies []orbit.Body, scheme integrators.Scheme, dt float64, subSteps int) integrators.StepStats {
	var total integrators.StepStats
	for k := 0; k < subSteps; k++ {
		total = total.Add(scheme.Step(bodies, dt))
	}
	return total
}

func (s *Simulation) recenter(bodies []orbit.Body, selected orbit.ID) mgl64.Vec3 {
	idx := recenter.NoSelection
	if selected != orbit.None {
		if i, ok := s.store.Index(selected); ok {
			idx = i
		} else {
			s.logger.Debug("selected body no longer exists", "id", selected)
		}
	}
	return recenter.Apply(bodies, idx, s.conv)
}

// Recenter rewrites render positions from the current physical state
// without integrating. Drivers call it after changing the selection while
// paused, or after editing the store.
func (s *Simulation) Recenter() mgl64.Vec3 {
	s.offset = s.recenter(s.store.Bodies(), s.controls.Selected)
	return s.offset
}

// CoincidentBodies reports every pair of bodies that currently share a
// position. Each error wraps orbit.ErrCoincident. It returns nil when all
// positions are distinct.
func (s *Simulation) CoincidentBodies() error {
	bodies := s.store.Bodies()
	var errs []error
	for _, p := range gravity.Coincident(bodies) {
		a, b := &bodies[p[0]], &bodies[p[1]]
		errs = append(errs, &orbit.BodyError{
			Name:    a.Name,
			ID:      a.ID,
			Wrapped: fmt.Errorf("%w with %q", orbit.ErrCoincident, b.Name),
		})
	}
	return errors.Join(errs...)
}

func (s *Simulation) valid(bodies []orbit.Body) bool {
	for i := range bodies {
		if !bodies[i].IsValid() {
			return false
		}
	}
	return true
}

// ResetApsis re-arms the apsis record of one body. It reports false if the
// body does not exist.
func (s *Simulation) ResetApsis(id orbit.ID) bool {
	b, ok := s.store.Get(id)
	if !ok {
		return false
	}
	apsis.Reset(&b.Apsis)
	return true
}

func (s *Simulation) ResetAllApsides() {
	bodies := s.store.Bodies()
	for i := range bodies {
		apsis.Reset(&bodies[i].Apsis)
	}
}

// Run drives frames of wallDelta seconds until frames have completed or ctx
// is done. Cancellation is only observed between frames.
func (s *Simulation) Run(ctx context.Context, wallDelta float64, frames int) (Report, error) {
	var last Report
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return last, ctx.Err()
		default:
		}
		last = s.Frame(wallDelta)
	}
	return last, nil
}
