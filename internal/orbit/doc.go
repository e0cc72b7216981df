// Package orbit holds the data model shared by every part of the
// gravitational engine:
//
//   - [Body]: one simulated point mass with physical and render state
//   - [ApsisRecord]: running periapsis/apoapsis extrema of a body
//   - [Store]: the authoritative, contiguous collection of bodies
//
// Physical state is float64 ([mgl64.Vec3], meters). Render state is
// float32 ([mgl32.Vec3], display units) and always derived.
//
// # Identity
//
// Bodies are addressed by [ID]. IDs are issued by the store, never reused,
// and stay valid across removals of other bodies; slice indices do not.
// The engine works on indices inside a frame and on IDs across frames.
//
// # Thread Safety
//
// A Store is NOT thread-safe. It is owned by the engine while a frame
// runs; readers should use [Store.Snapshot] between frames.
package orbit
