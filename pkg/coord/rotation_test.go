package coord

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertMatrixInDelta(t *testing.T, expected, actual Matrix, delta float64) {
	t.Helper()

	for i := 0; i < 3; i++ {
		assert.InDeltaSlice(t, expected[i][:], actual[i][:], delta, "row %d", i)
	}
}

func TestEulerSingleAxis(t *testing.T) {
	r, err := RotationFromEuler("z", 90)
	require.NoError(t, err)

	v := r.ApplyVec([3]float64{1, 0, 0})
	assert.InDeltaSlice(t, []float64{0, 1, 0}, v[:], 1e-12)
	assert.InDelta(t, math.Pi/2, r.Magnitude(), 1e-12)

	rv := r.RotVec()
	assert.InDeltaSlice(t, []float64{0, 0, math.Pi / 2}, rv[:], 1e-12)
}

func TestEulerExtrinsicVsIntrinsic(t *testing.T) {
	ext, err := RotationFromEuler("xyz", 10, 20, 30)
	require.NoError(t, err)

	intr, err := RotationFromEuler("ZYX", 30, 20, 10)
	require.NoError(t, err)

	assertMatrixInDelta(t, ext.Matrix(), intr.Matrix(), 1e-12)

	rx, _ := RotationFromEuler("x", 10)
	ry, _ := RotationFromEuler("y", 20)
	rz, _ := RotationFromEuler("z", 30)
	assertMatrixInDelta(t, rz.Matrix().Mul(ry.Matrix()).Mul(rx.Matrix()), ext.Matrix(), 1e-12)
}

func TestEulerRoundTrip(t *testing.T) {
	angles := [3]float64{25, -40, 130}

	for _, seq := range []string{"xyz", "zyx", "zxz", "xyx", "XYZ", "ZYX", "ZXZ", "YZY"} {
		a := angles
		if seq[0] == seq[2] {
			// proper euler angles keep the middle one in [0, 180]
			a[1] = 40
		}

		r, err := RotationFromEuler(seq, a[0], a[1], a[2])
		require.NoError(t, err, seq)

		got, err := r.EulerAngles(seq)
		require.NoError(t, err, seq)
		assert.InDeltaSlice(t, a[:], got[:], 1e-9, seq)
	}
}

func TestEulerGimbalLock(t *testing.T) {
	r, err := RotationFromEuler("xyz", 20, 90, 35)
	require.NoError(t, err)

	got, err := r.EulerAngles("xyz")
	require.NoError(t, err)

	back, err := RotationFromEuler("xyz", got[0], got[1], got[2])
	require.NoError(t, err)
	assertMatrixInDelta(t, r.Matrix(), back.Matrix(), 1e-9)
}

func TestEulerInvalid(t *testing.T) {
	for _, seq := range []string{"", "xYz", "xxz", "abc", "xyzx"} {
		_, err := RotationFromEuler(seq, 1, 2, 3)
		assert.ErrorIs(t, err, ErrInvalidSequence, seq)
	}

	_, err := RotationFromEuler("xyz", 1, 2)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = IdentityRotation().EulerAngles("xy")
	assert.ErrorIs(t, err, ErrInvalidSequence)
}

func TestRotVec(t *testing.T) {
	r := RotationFromRotVec([3]float64{0, 0, 180})
	assert.InDelta(t, math.Pi, r.Magnitude(), 1e-12)

	v := r.ApplyVec([3]float64{1, 0, 0})
	assert.InDeltaSlice(t, []float64{-1, 0, 0}, v[:], 1e-12)

	r2 := RotationFromRotVec([3]float64{30, -20, 10})
	rv := r2.RotVec()
	expected := []float64{Radians(30), Radians(-20), Radians(10)}
	assert.InDeltaSlice(t, expected, rv[:], 1e-12)

	assert.Equal(t, 0.0, RotationFromRotVec([3]float64{}).Magnitude())
}

func TestInverseAndCompose(t *testing.T) {
	r, err := RotationFromEuler("zyx", 12, 34, 56)
	require.NoError(t, err)

	id := r.Compose(r.Inverse())
	assert.InDelta(t, 0, id.Magnitude(), 1e-12)
	assertMatrixInDelta(t, r.Matrix().T(), r.Inverse().Matrix(), 1e-12)
	assert.InDelta(t, 1, r.Matrix().Det(), 1e-12)

	a, _ := RotationFromEuler("x", 30)
	b, _ := RotationFromEuler("y", 60)
	assertMatrixInDelta(t, a.Matrix().Mul(b.Matrix()), a.Compose(b).Matrix(), 1e-12)
}

func TestMatrixRoundTrip(t *testing.T) {
	for _, angles := range [][3]float64{{0, 0, 0}, {170, 5, -3}, {10, 179, 20}, {-90, 45, 90}, {180, 0, 0}} {
		r, err := RotationFromEuler("xyz", angles[0], angles[1], angles[2])
		require.NoError(t, err)

		back := RotationFromMatrix(r.Matrix())
		assertMatrixInDelta(t, r.Matrix(), back.Matrix(), 1e-12)
	}
}

func TestApplyOperands(t *testing.T) {
	r, err := RotationFromEuler("z", 90)
	require.NoError(t, err)

	c, err := NewCartesian([]float64{1, 0}, []float64{0, 1}, []float64{0, 0})
	require.NoError(t, err)

	res, err := r.Apply(c, false)
	require.NoError(t, err)

	rc, ok := res.(Cartesian)
	require.True(t, ok)
	assert.Equal(t, 2, rc.Len())
	assert.InDeltaSlice(t, []float64{0, -1}, rc.X(), 1e-12)
	assert.InDeltaSlice(t, []float64{1, 0}, rc.Y(), 1e-12)

	res, err = r.Apply([3]float64{0, 1, 0}, true)
	require.NoError(t, err)
	v := res.([3]float64)
	assert.InDeltaSlice(t, []float64{1, 0, 0}, v[:], 1e-12)

	res, err = r.Apply(Vectors3{{1, 0, 0}}, false)
	require.NoError(t, err)
	vs := res.(Vectors3)
	assert.InDeltaSlice(t, []float64{0, 1, 0}, vs[0][:], 1e-12)

	res, err = r.Apply(r, true)
	require.NoError(t, err)
	assert.InDelta(t, 0, res.(Rotation).Magnitude(), 1e-12)

	_, err = r.Apply("vector", false)
	assert.ErrorIs(t, err, ErrNotSupported)
}

func TestRotationFromQuat(t *testing.T) {
	_, err := RotationFromQuat([4]float64{})
	assert.Error(t, err)

	r, err := RotationFromQuat([4]float64{0, 0, 2, 0})
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, r.Magnitude(), 1e-12)
	assert.Equal(t, [4]float64{0, 0, 1, 0}, r.Quat())
}
