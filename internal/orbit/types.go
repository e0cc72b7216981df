package orbit

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// ID identifies a body for its whole lifetime in a store.
type ID uint32

// None is the zero ID. It never names a body; it marks "no parent" and
// "no selection".
const None ID = 0

// Extremum is one apsis bound: the distance to the parent and the physical
// position at which it was observed.
type Extremum struct {
	Distance float32
	Position mgl64.Vec3
}

// ApsisRecord tracks the orbital extrema of a body relative to its parent.
// A periapsis distance of exactly 0 means "not yet measured" for both bounds.
type ApsisRecord struct {
	Periapsis Extremum
	Apoapsis  Extremum
}

// Unset reports whether the record has been re-armed and awaits a sample.
func (r ApsisRecord) Unset() bool {
	return r.Periapsis.Distance == 0
}

// Reset re-arms both bounds.
func (r *ApsisRecord) Reset() {
	*r = ApsisRecord{}
}

type Body struct {
	ID   ID
	Name string

	Mass         float64
	Position     mgl64.Vec3
	Velocity     mgl64.Vec3
	Acceleration mgl64.Vec3

	RenderPosition mgl32.Vec3

	Parent ID
	Apsis  ApsisRecord
}

// Tracked reports whether the body has a gravitational parent and
// therefore an apsis record worth updating.
func (b *Body) Tracked() bool {
	return b.Parent != None
}

// IsValid reports whether the physical state is free of NaN and Inf.
func (b *Body) IsValid() bool {
	return finite(b.Position) && finite(b.Velocity) && finite(b.Acceleration)
}

// BodySpec is what a scenario hands to the store to create a body.
type BodySpec struct {
	Name     string
	Mass     float64
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Parent   ID
}

func finite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
