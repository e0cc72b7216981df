// Package apsis maintains per-body periapsis and apoapsis records.
//
// Records are updated once per frame from final physical positions. A
// periapsis distance of 0 marks a record as unset; while unset, the next
// sample becomes both bounds. The apoapsis bound consults the periapsis
// sentinel too, so the two bounds are always armed together.
package apsis

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitsim/internal/orbit"
)

// Observe folds one distance sample into rec.
func Observe(rec *orbit.ApsisRecord, distance float64, pos mgl64.Vec3) {
	d := float32(distance)
	unset := rec.Periapsis.Distance == 0

	if d < rec.Periapsis.Distance || unset {
		rec.Periapsis = orbit.Extremum{Distance: d, Position: pos}
	}
	if d > rec.Apoapsis.Distance || unset {
		rec.Apoapsis = orbit.Extremum{Distance: d, Position: pos}
	}
}

// ParentFunc resolves the slice index of a body's parent.
type ParentFunc func(i int) (int, bool)

// Update measures every parented body against its parent. Bodies without a
// resolvable parent are left untouched. It returns the number of records
// updated.
func Update(bodies []orbit.Body, parent ParentFunc) int {
	n := 0
	for i := range bodies {
		if !bodies[i].Tracked() {
			continue
		}
		p, ok := parent(i)
		if !ok {
			continue
		}
		d := bodies[p].Position.Sub(bodies[i].Position).Len()
		Observe(&bodies[i].Apsis, d, bodies[i].Position)
		n++
	}
	return n
}

// Reset re-arms rec so the next sample sets both bounds.
func Reset(rec *orbit.ApsisRecord) {
	rec.Reset()
}
