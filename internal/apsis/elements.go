package apsis

import (
	"math"

	"github.com/san-kum/orbitsim/internal/gravity"
	"github.com/san-kum/orbitsim/internal/orbit"
)

// Elements are the orbit shape derived from a measured apsis record.
type Elements struct {
	SemiMajorAxis float64 // meters
	Eccentricity  float64
	Period        float64 // seconds
}

// FromRecord derives orbital elements from rec. It reports false while the
// record is unset. The values are only meaningful once the body has swept
// past both apsides at least once.
func FromRecord(rec orbit.ApsisRecord, parentMass, bodyMass float64) (Elements, bool) {
	if rec.Unset() {
		return Elements{}, false
	}
	peri := float64(rec.Periapsis.Distance)
	apo := float64(rec.Apoapsis.Distance)

	a := 0.5 * (peri + apo)
	e := 0.0
	if peri+apo > 0 {
		e = (apo - peri) / (apo + peri)
	}

	mu := gravity.G * (parentMass + bodyMass)
	period := 0.0
	if mu > 0 && a > 0 {
		period = 2 * math.Pi * math.Sqrt(a*a*a/mu)
	}

	return Elements{SemiMajorAxis: a, Eccentricity: e, Period: period}, true
}
