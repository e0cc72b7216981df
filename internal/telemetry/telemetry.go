// Package telemetry exports frame statistics as Prometheus metrics.
package telemetry

import (
	"math"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/san-kum/orbitsim/internal/engine"
	"github.com/san-kum/orbitsim/internal/gravity"
)

const namespace = "orbitsim"

// Collector is an engine observer. Each Collector owns its registry so
// several simulations, or tests, can run side by side.
type Collector struct {
	registry *prometheus.Registry

	framesTotal      prometheus.Counter
	forceEvaluations prometheus.Counter
	coincidentPairs  prometheus.Counter
	invalidFrames    prometheus.Counter
	simTime          prometheus.Gauge
	subStepSeconds   prometheus.Gauge
	subSteps         prometheus.Gauge
	totalEnergy      prometheus.Gauge
	energyDrift      prometheus.Gauge
	bodies           prometheus.Gauge
	schemeFrames     *prometheus.CounterVec
	parentDistance   *prometheus.GaugeVec
	periapsis        *prometheus.GaugeVec
	apoapsis         *prometheus.GaugeVec

	initialEnergy float64
	haveEnergy    bool
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		framesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Integrated frames",
		}),
		forceEvaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "force_evaluations_total",
			Help:      "Full pairwise force evaluations",
		}),
		coincidentPairs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coincident_pairs_total",
			Help:      "Body pairs skipped because they shared a position",
		}),
		invalidFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalid_frames_total",
			Help:      "Frames that ended with a non-finite body state",
		}),
		simTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sim_time_seconds",
			Help:      "Simulated time since start",
		}),
		subStepSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sub_step_seconds",
			Help:      "Simulated seconds per integration sub-step in the last frame",
		}),
		subSteps: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sub_steps",
			Help:      "Sub-steps per frame",
		}),
		totalEnergy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_energy_joules",
			Help:      "Kinetic plus potential energy",
		}),
		energyDrift: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "energy_drift_ratio",
			Help:      "Relative change of total energy since the first observed frame",
		}),
		bodies: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bodies",
			Help:      "Bodies in the store",
		}),
		schemeFrames: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scheme_frames_total",
				Help:      "Integrated frames per integration scheme",
			},
			[]string{"scheme"},
		),
		parentDistance: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "parent_distance_meters",
				Help:      "Distance from each body to its parent",
			},
			[]string{"body"},
		),
		periapsis: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "periapsis_meters",
				Help:      "Smallest observed distance to the parent",
			},
			[]string{"body"},
		),
		apoapsis: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "apoapsis_meters",
				Help:      "Largest observed distance to the parent",
			},
			[]string{"body"},
		),
	}

	c.registry.MustRegister(
		c.framesTotal,
		c.forceEvaluations,
		c.coincidentPairs,
		c.invalidFrames,
		c.simTime,
		c.subStepSeconds,
		c.subSteps,
		c.totalEnergy,
		c.energyDrift,
		c.bodies,
		c.schemeFrames,
		c.parentDistance,
		c.periapsis,
		c.apoapsis,
	)
	return c
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) OnFrame(sim *engine.Simulation, r engine.Report) {
	c.framesTotal.Inc()
	c.forceEvaluations.Add(float64(r.ForceEvaluations))
	c.coincidentPairs.Add(float64(r.CoincidentPairs))
	if r.Invalid {
		c.invalidFrames.Inc()
	}
	c.simTime.Set(r.SimTime)
	c.subStepSeconds.Set(r.Dt)
	c.subSteps.Set(float64(r.SubSteps))
	c.schemeFrames.WithLabelValues(r.Scheme.String()).Inc()

	store := sim.Store()
	bodies := store.Bodies()
	c.bodies.Set(float64(len(bodies)))

	energy := gravity.TotalEnergy(bodies)
	if !c.haveEnergy {
		c.initialEnergy = energy
		c.haveEnergy = true
	}
	c.totalEnergy.Set(energy)
	if c.initialEnergy != 0 {
		c.energyDrift.Set((energy - c.initialEnergy) / math.Abs(c.initialEnergy))
	}

	c.parentDistance.Reset()
	c.periapsis.Reset()
	c.apoapsis.Reset()
	for i := range bodies {
		j, ok := store.ParentIndex(i)
		if !ok {
			continue
		}
		b := &bodies[i]
		c.parentDistance.WithLabelValues(b.Name).Set(b.Position.Sub(bodies[j].Position).Len())
		if !b.Apsis.Unset() {
			c.periapsis.WithLabelValues(b.Name).Set(float64(b.Apsis.Periapsis.Distance))
			c.apoapsis.WithLabelValues(b.Name).Set(float64(b.Apsis.Apoapsis.Distance))
		}
	}
}
