// Package engine advances a body store frame by frame.
//
// A [Simulation] owns an [orbit.Store] and a [Controls] value. Each call to
// [Simulation.Frame] takes the wall-clock time elapsed since the previous
// frame and runs, strictly in order:
//
//   - the physics phase: SubSteps sequential integration sub-steps of
//     dt = wallDelta*Speed/SubSteps using the selected scheme
//   - the recentering phase: render positions around the selected body
//   - the apsis phase: periapsis/apoapsis records from final positions
//   - observer notification
//
// # Example
//
//	store := orbit.NewStore()
//	scenario.SunEarth(store)
//	sim := engine.New(store)
//	sim.Controls().SetSpeed(86400)
//	report := sim.Frame(1.0 / 60)
//
// # Controls
//
// Controls are read once at the start of a frame. Changing them while a
// frame runs (which single-threaded drivers cannot do anyway) has no effect
// until the next frame. All control setters clamp instead of failing.
//
// # Thread Safety
//
// Simulation instances are NOT thread-safe. Drivers run frames and read
// state from one goroutine, or hand out [orbit.Store.Snapshot] copies.
package engine
