// Package scale converts between physical meters and render units.
// It only ever feeds display state; the physics never sees render units.
package scale

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultMetersPerUnit maps one render unit to a million kilometers, which
// keeps the inner solar system within a few hundred units of the origin.
const DefaultMetersPerUnit = 1e9

type Converter struct {
	MetersPerUnit float64
}

var Default = Converter{MetersPerUnit: DefaultMetersPerUnit}

func New(metersPerUnit float64) (Converter, error) {
	if !(metersPerUnit > 0) || math.IsInf(metersPerUnit, 0) {
		return Converter{}, fmt.Errorf("scale: meters per unit must be positive, got %g", metersPerUnit)
	}
	return Converter{MetersPerUnit: metersPerUnit}, nil
}

// ToRender scales a physical vector but keeps float64 precision, so callers
// can subtract offsets before narrowing.
func (c Converter) ToRender(p mgl64.Vec3) mgl64.Vec3 {
	return p.Mul(1 / c.MetersPerUnit)
}

func (c Converter) ToRender32(p mgl64.Vec3) mgl32.Vec3 {
	return Narrow(c.ToRender(p))
}

func (c Converter) ToPhysical(r mgl32.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(r[0]), float64(r[1]), float64(r[2])}.Mul(c.MetersPerUnit)
}

// Length converts a scalar distance.
func (c Converter) Length(meters float64) float64 {
	return meters / c.MetersPerUnit
}

func Narrow(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}
