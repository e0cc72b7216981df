// Package recenter writes render-space positions so that a selected body
// sits at the origin.
//
// Physical positions are meters at solar-system scale. Narrowing them to
// float32 directly makes anything far from the origin jitter, so the
// offset is applied in float64 render units and only the result is
// narrowed. The physical state is never touched.
package recenter

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitsim/internal/orbit"
	"github.com/san-kum/orbitsim/internal/scale"
)

// NoSelection passed as the selected index disables recentering.
const NoSelection = -1

// Offset returns the render-space offset for the body at index selected,
// or zero if the index is out of range.
func Offset(bodies []orbit.Body, selected int, conv scale.Converter) mgl64.Vec3 {
	if selected < 0 || selected >= len(bodies) {
		return mgl64.Vec3{}
	}
	return conv.ToRender(bodies[selected].Position).Mul(-1)
}

// Apply recomputes the offset from the selected body's current position and
// writes every body's render position. The selected body lands exactly on
// the origin. It returns the offset that was applied.
func Apply(bodies []orbit.Body, selected int, conv scale.Converter) mgl64.Vec3 {
	offset := Offset(bodies, selected, conv)

	for i := range bodies {
		if i == selected {
			bodies[i].RenderPosition = mgl32.Vec3{}
			continue
		}
		bodies[i].RenderPosition = scale.Narrow(conv.ToRender(bodies[i].Position).Add(offset))
	}
	return offset
}

// Shift moves a render-space point recorded in an earlier frame into the
// current frame, for drawers that keep history such as motion trails.
func Shift(p mgl32.Vec3, previous, current mgl64.Vec3) mgl32.Vec3 {
	d := current.Sub(previous)
	return mgl32.Vec3{p[0] + float32(d[0]), p[1] + float32(d[1]), p[2] + float32(d[2])}
}
