package coord

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphericalRoundTrip(t *testing.T) {
	points := [][3]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, -3},
		{1234.5, -987.25, 42},
		{-1e6, 2e6, -3e6},
		{0.001, 0.002, 0.003},
	}

	for _, p := range points {
		theta, phi, r := CartesianToSpherical(p[0], p[1], p[2])
		assert.GreaterOrEqual(t, theta, 0.0)
		assert.LessOrEqual(t, theta, 180.0)
		assert.GreaterOrEqual(t, r, 0.0)

		x, y, z := SphericalToCartesian(theta, phi, r)
		tol := 1e-9 * math.Max(1, r)
		assert.InDelta(t, p[0], x, tol)
		assert.InDelta(t, p[1], y, tol)
		assert.InDelta(t, p[2], z, tol)
	}
}

func TestSphericalHorizontalRemap(t *testing.T) {
	az, el, norm := SphericalToHorizontal(30, 45, 2)
	assert.Equal(t, 45.0, az)
	assert.Equal(t, 60.0, el)
	assert.Equal(t, 2.0, norm)

	theta, phi, r := HorizontalToSpherical(az, el, norm)
	assert.Equal(t, 30.0, theta)
	assert.Equal(t, 45.0, phi)
	assert.Equal(t, 2.0, r)
}

func TestCartesianToHorizontal(t *testing.T) {
	// y is north in an ENU basis
	az, el, norm := CartesianToHorizontal(0, 1, 0)
	assert.InDelta(t, 0, az, 1e-12)
	assert.InDelta(t, 0, el, 1e-12)
	assert.InDelta(t, 1, norm, 1e-12)

	az, el, _ = CartesianToHorizontal(1, 0, 0)
	assert.InDelta(t, 90, az, 1e-12)
	assert.InDelta(t, 0, el, 1e-12)

	_, el, _ = CartesianToHorizontal(0, 0, 5)
	assert.InDelta(t, 90, el, 1e-12)

	x, y, z := HorizontalToCartesian(90, 0, 1)
	assert.InDelta(t, 1, x, 1e-12)
	assert.InDelta(t, 0, y, 1e-12)
	assert.InDelta(t, 0, z, 1e-12)
}

func TestCartesianBatch(t *testing.T) {
	c, err := NewCartesian([]float64{1, 2, 3}, []float64{0}, []float64{4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []float64{0, 0, 0}, c.Y())
	assert.Equal(t, [3]float64{2, 0, 5}, c.At(1))

	back := c.Spherical().Cartesian()
	for i := 0; i < 3; i++ {
		want, got := c.At(i), back.At(i)
		assert.InDeltaSlice(t, want[:], got[:], 1e-12)
	}

	h := c.Horizontal()
	assert.Equal(t, 3, h.Len())
	assert.InDeltaSlice(t, c.Norm(), h.Norm(), 1e-12)
}

func TestCartesianImmutable(t *testing.T) {
	x := []float64{1, 2}
	c, err := NewCartesian(x, []float64{3, 4}, []float64{5, 6})
	require.NoError(t, err)

	x[0] = 100
	assert.Equal(t, 1.0, c.X()[0])

	got := c.X()
	got[1] = 100
	assert.Equal(t, 2.0, c.X()[1])
}

func TestShapeMismatch(t *testing.T) {
	_, err := NewCartesian([]float64{1, 2, 3}, []float64{1, 2}, []float64{1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShapeMismatch))

	_, err = NewSpherical([]float64{}, []float64{1}, []float64{1})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = NewHorizontal([]float64{1, 2}, []float64{1, 2, 3}, nil)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestCartesianFromTypes(t *testing.T) {
	c, err := CartesianFrom(1, 2.5, []float64{3, 4})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, [3]float64{1, 2.5, 4}, c.At(1))

	_, err = CartesianFrom("1", 2, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrType)
	assert.Contains(t, err.Error(), "string")
}

func TestHorizontalDefaultNorm(t *testing.T) {
	h, err := NewHorizontal([]float64{0, 90}, []float64{10, 20}, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, h.Norm())
}

func TestAddSub(t *testing.T) {
	a, err := NewCartesian([]float64{1, 2}, []float64{3, 4}, []float64{5, 6})
	require.NoError(t, err)

	b := Point(1, 1, 1)

	d, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, [3]float64{1, 3, 5}, d.At(1))

	s, err := d.Add(b)
	require.NoError(t, err)
	assert.Equal(t, a.At(0), s.At(0))

	c3, err := NewCartesian([]float64{1, 2, 3}, []float64{0}, []float64{0})
	require.NoError(t, err)

	_, err = a.Sub(c3)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestPlaceholder(t *testing.T) {
	p := Placeholder()
	assert.Equal(t, 1, p.Len())
	assert.True(t, math.IsNaN(p.X()[0]))
}

func TestGeodeticRepr(t *testing.T) {
	g, err := NewGeodeticRepr([]float64{10}, []float64{20}, []float64{30}, Geoid)
	require.NoError(t, err)
	assert.Equal(t, Geoid, g.Reference())
	assert.Equal(t, "geoid", g.Reference().String())

	_, err = NewGeodeticRepr([]float64{10}, []float64{20}, []float64{30}, Reference(7))
	assert.ErrorIs(t, err, ErrType)

	r, err := ParseReference("ELLIPSOID")
	require.NoError(t, err)
	assert.Equal(t, Ellipsoid, r)

	_, err = ParseReference("sea")
	assert.Error(t, err)
}
