package engine_test

import (
	"bytes"
	"context"
	"math"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/engine"
	"github.com/san-kum/orbitsim/internal/gravity"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/orbit"
	"github.com/san-kum/orbitsim/internal/scenario"
)

const year = 31557600.0

func sunEarth() (*engine.Simulation, orbit.ID, orbit.ID) {
	store := orbit.NewStore()
	scenario.SunEarth(store)
	sun, _ := store.Lookup("sun")
	earth, _ := store.Lookup("earth")
	return engine.New(store), sun, earth
}

func body(sim *engine.Simulation, id orbit.ID) orbit.Body {
	b, ok := sim.Store().Get(id)
	Expect(ok).To(BeTrue())
	return *b
}

var _ = Describe("Simulation", func() {
	var (
		sim   *engine.Simulation
		sun   orbit.ID
		earth orbit.ID
	)

	BeforeEach(func() {
		sim, sun, earth = sunEarth()
		sim.Controls().SetSpeed(86400)
	})

	Describe("Frame", func() {
		It("splits the frame into equal sub-steps", func() {
			sim.Controls().SetSubSteps(4)
			r := sim.Frame(1)

			Expect(r.Integrated).To(BeTrue())
			Expect(r.Dt).To(Equal(86400.0 / 4))
			Expect(r.SubSteps).To(Equal(4))
			Expect(r.Elapsed).To(Equal(86400.0))
			Expect(r.Scheme).To(Equal(integrators.Verlet))
			Expect(r.ForceEvaluations).To(Equal(8))
			Expect(sim.SimTime()).To(Equal(86400.0))
			Expect(sim.Frames()).To(Equal(1))
		})

		It("does nothing while paused", func() {
			sim.Frame(1)
			before := sim.Snapshot()
			offset, t0, frames := sim.Offset(), sim.SimTime(), sim.Frames()

			sim.Controls().SetPaused(true)
			for i := 0; i < 5; i++ {
				r := sim.Frame(1)
				Expect(r.Integrated).To(BeFalse())
				Expect(r.Paused).To(BeTrue())
			}

			Expect(sim.Snapshot()).To(Equal(before))
			Expect(sim.Offset()).To(Equal(offset))
			Expect(sim.SimTime()).To(Equal(t0))
			Expect(sim.Frames()).To(Equal(frames))
		})

		It("does nothing at zero speed or for non-positive deltas", func() {
			before := sim.Snapshot()

			sim.Controls().SetSpeed(0)
			Expect(sim.Frame(1).Integrated).To(BeFalse())

			sim.Controls().SetSpeed(1)
			Expect(sim.Frame(0).Integrated).To(BeFalse())
			Expect(sim.Frame(-1).Integrated).To(BeFalse())
			Expect(sim.Frame(math.NaN()).Integrated).To(BeFalse())
			Expect(sim.Frame(math.Inf(1)).Integrated).To(BeFalse())

			Expect(sim.Snapshot()).To(Equal(before))
		})

		It("clamps hand-edited sub-steps to one", func() {
			sim.Controls().SubSteps = 0
			r := sim.Frame(1)
			Expect(r.SubSteps).To(Equal(1))
			Expect(r.Dt).To(Equal(86400.0))
		})

		It("switches scheme on the next frame", func() {
			sim.Controls().SetSubSteps(3)

			r := sim.Frame(1)
			Expect(r.Scheme).To(Equal(integrators.Verlet))
			Expect(r.ForceEvaluations).To(Equal(6))

			sim.Controls().SetScheme(integrators.Euler)
			r = sim.Frame(1)
			Expect(r.Scheme).To(Equal(integrators.Euler))
			Expect(r.ForceEvaluations).To(Equal(3))

			sim.Controls().SetScheme(integrators.Scheme(42))
			r = sim.Frame(1)
			Expect(r.Scheme).To(Equal(integrators.Verlet))
		})
	})

	Describe("recentering", func() {
		It("puts the selected body exactly at the origin", func() {
			sim.Controls().Select(earth)
			sim.Frame(1)

			Expect(body(sim, earth).RenderPosition).To(Equal(mgl32.Vec3{}))
			Expect(sim.Offset()).To(Equal(sim.Scale().ToRender(body(sim, earth).Position).Mul(-1)))
		})

		It("round-trips render positions back to physical ones", func() {
			sim.Controls().Select(earth)
			sim.Frame(1)

			conv := sim.Scale()
			for _, id := range []orbit.ID{sun, earth} {
				b := body(sim, id)
				rp := b.RenderPosition
				back := mgl64.Vec3{float64(rp[0]), float64(rp[1]), float64(rp[2])}.Sub(sim.Offset())
				want := conv.ToRender(b.Position)
				Expect(back.Sub(want).Len()).To(BeNumerically("<", 1e-4))
			}
		})

		It("does not accumulate offsets across frames", func() {
			sim.Controls().Select(earth)
			for i := 0; i < 10; i++ {
				sim.Frame(1)
			}
			want := sim.Scale().ToRender(body(sim, earth).Position).Mul(-1)
			Expect(sim.Offset()).To(Equal(want))
		})

		It("uses render positions as-is without a selection", func() {
			sim.Frame(1)
			Expect(sim.Offset()).To(Equal(mgl64.Vec3{}))
			e := body(sim, earth)
			Expect(e.RenderPosition).To(Equal(sim.Scale().ToRender32(e.Position)))
		})

		It("falls back to a zero offset for a stale selection", func() {
			sim.Controls().Select(earth)
			sim.Frame(1)
			Expect(sim.Offset()).NotTo(Equal(mgl64.Vec3{}))

			Expect(sim.Store().Remove(earth)).To(Succeed())
			r := sim.Frame(1)
			Expect(r.Integrated).To(BeTrue())
			Expect(r.Offset).To(Equal(mgl64.Vec3{}))

			sim.Controls().Select(orbit.ID(999))
			sim.Frame(1)
			Expect(sim.Offset()).To(Equal(mgl64.Vec3{}))
		})

		It("recenters on demand without integrating", func() {
			sim.Controls().SetPaused(true)
			sim.Controls().Select(sun)
			offset := sim.Recenter()

			Expect(offset).To(Equal(sim.Scale().ToRender(body(sim, sun).Position).Mul(-1)))
			Expect(body(sim, sun).RenderPosition).To(Equal(mgl32.Vec3{}))
			Expect(sim.Frames()).To(BeZero())
		})
	})

	Describe("apsis tracking", func() {
		It("updates parented bodies once per frame", func() {
			for i := 0; i < 30; i++ {
				sim.Frame(1)
			}

			e := body(sim, earth)
			Expect(e.Apsis.Unset()).To(BeFalse())
			Expect(e.Apsis.Periapsis.Distance).To(BeNumerically("<=", e.Apsis.Apoapsis.Distance))
			Expect(float64(e.Apsis.Periapsis.Distance)).To(BeNumerically("~", scenario.AU, scenario.AU*1e-3))

			Expect(body(sim, sun).Apsis.Unset()).To(BeTrue())
		})

		It("resets a single record", func() {
			sim.Frame(1)
			Expect(sim.ResetApsis(earth)).To(BeTrue())
			Expect(body(sim, earth).Apsis.Unset()).To(BeTrue())
			Expect(sim.ResetApsis(orbit.ID(999))).To(BeFalse())

			sim.Frame(1)
			Expect(body(sim, earth).Apsis.Unset()).To(BeFalse())

			sim.ResetAllApsides()
			Expect(body(sim, earth).Apsis.Unset()).To(BeTrue())
		})
	})

	Describe("observers", func() {
		It("are notified only for integrated frames", func() {
			var reports []engine.Report
			sim.AddObserver(engine.ObserverFunc(func(_ *engine.Simulation, r engine.Report) {
				reports = append(reports, r)
			}))

			sim.Frame(1)
			sim.Controls().TogglePause()
			sim.Frame(1)
			sim.Controls().TogglePause()
			sim.Frame(1)

			Expect(reports).To(HaveLen(2))
			Expect(reports[0].Frame).To(Equal(0))
			Expect(reports[1].Frame).To(Equal(1))
		})
	})

	Describe("Run", func() {
		It("stops at a frame boundary when the context is done", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := sim.Run(ctx, 1, 10)
			Expect(err).To(MatchError(context.Canceled))
			Expect(sim.Frames()).To(BeZero())
		})

		It("runs the requested number of frames", func() {
			last, err := sim.Run(context.Background(), 1, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(last.Frame).To(Equal(4))
			Expect(sim.Frames()).To(Equal(5))
		})
	})

	Describe("coincident bodies", func() {
		It("reports skipped pairs without producing NaN", func() {
			store := orbit.NewStore()
			store.MustAdd(orbit.BodySpec{Name: "a", Mass: 1e24})
			store.MustAdd(orbit.BodySpec{Name: "b", Mass: 1e24})
			s := engine.New(store)

			r := s.Frame(1)
			Expect(r.CoincidentPairs).To(Equal(2))
			Expect(r.Invalid).To(BeFalse())
			for _, b := range s.Snapshot() {
				Expect(b.IsValid()).To(BeTrue())
			}
		})

		It("names the coincident bodies in the warning", func() {
			var buf bytes.Buffer
			store := orbit.NewStore()
			store.MustAdd(orbit.BodySpec{Name: "a", Mass: 1e24})
			store.MustAdd(orbit.BodySpec{Name: "b", Mass: 1e24})
			store.MustAdd(orbit.BodySpec{Name: "c", Mass: 1e24, Position: mgl64.Vec3{1e9, 0, 0}})
			s := engine.New(store, engine.WithLogger(log.New(&buf)))

			err := s.CoincidentBodies()
			Expect(err).To(MatchError(orbit.ErrCoincident))
			Expect(err.Error()).To(ContainSubstring(`body "a"`))
			Expect(err.Error()).To(ContainSubstring(`with "b"`))
			Expect(err.Error()).NotTo(ContainSubstring(`"c"`))

			s.Frame(1)
			Expect(buf.String()).To(ContainSubstring("coincident bodies skipped"))
			Expect(buf.String()).To(ContainSubstring("orbit: coincident bodies"))
		})

		It("reports nothing when positions are distinct", func() {
			sim, _, _ := sunEarth()
			Expect(sim.CoincidentBodies()).To(Succeed())
		})
	})
})

var _ = Describe("Sun-Earth over one year", func() {
	It("returns Earth close to its starting point with 3600 s sub-steps", func() {
		sim, sun, earth := sunEarth()
		sim.Controls().SetSpeed(1)
		sim.Controls().SetSubSteps(int(year / 3600))

		start := body(sim, earth).Position.Sub(body(sim, sun).Position)
		e0 := gravity.TotalEnergy(sim.Snapshot())

		r := sim.Frame(year)
		Expect(r.Dt).To(BeNumerically("~", 3600, 1e-9))
		Expect(r.Invalid).To(BeFalse())

		rel := body(sim, earth).Position.Sub(body(sim, sun).Position)
		Expect(rel.Len()).To(BeNumerically("~", start.Len(), 0.01*start.Len()))
		Expect(rel.Sub(start).Len()).To(BeNumerically("<", 0.02*start.Len()))

		e1 := gravity.TotalEnergy(sim.Snapshot())
		Expect(math.Abs((e1 - e0) / e0)).To(BeNumerically("<", 1e-5))

		e := body(sim, earth)
		Expect(e.Apsis.Unset()).To(BeFalse())
	})
})
