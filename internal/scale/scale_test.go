package scale

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	c, err := New(1e6)
	require.NoError(t, err)
	assert.Equal(t, 1e6, c.MetersPerUnit)

	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := New(bad)
		assert.Error(t, err, "New(%v)", bad)
	}
}

func TestToRender(t *testing.T) {
	c := Default
	p := mgl64.Vec3{1.496e11, -2e9, 0}

	r := c.ToRender(p)
	assert.InDelta(t, 149.6, r[0], 1e-9)
	assert.InDelta(t, -2.0, r[1], 1e-12)
	assert.Equal(t, 0.0, r[2])

	r32 := c.ToRender32(p)
	assert.Equal(t, mgl32.Vec3{149.6, -2, 0}, r32)
}

func TestRoundTrip(t *testing.T) {
	c := Default
	p := mgl64.Vec3{3e9, 4e9, -5e9}
	back := c.ToPhysical(c.ToRender32(p))
	assert.True(t, back.ApproxEqualThreshold(p, 1e-6), "got %v", back)
}

func TestLength(t *testing.T) {
	assert.InDelta(t, 0.384, Default.Length(3.84e8), 1e-12)
}
