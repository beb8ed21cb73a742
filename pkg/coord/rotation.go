package coord

import (
	"errors"
	"fmt"
	"math"
)

// Rotation is a proper rotation stored as a unit quaternion (x, y, z, w).
type Rotation struct {
	q [4]float64
}

func IdentityRotation() Rotation {
	return Rotation{q: [4]float64{0, 0, 0, 1}}
}

// RotationFromQuat normalizes q, given scalar last.
func RotationFromQuat(q [4]float64) (Rotation, error) {
	n := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	if n == 0 || math.IsNaN(n) {
		return Rotation{}, errors.New("zero norm quaternion")
	}

	return Rotation{q: [4]float64{q[0] / n, q[1] / n, q[2] / n, q[3] / n}}, nil
}

// RotationFromMatrix converts an orthonormal matrix with det +1.
func RotationFromMatrix(m Matrix) Rotation {
	var q [4]float64

	tr := m[0][0] + m[1][1] + m[2][2]

	switch {
	case tr >= m[0][0] && tr >= m[1][1] && tr >= m[2][2]:
		w := math.Sqrt(1+tr) / 2
		q = [4]float64{(m[2][1] - m[1][2]) / (4 * w), (m[0][2] - m[2][0]) / (4 * w), (m[1][0] - m[0][1]) / (4 * w), w}
	case m[0][0] >= m[1][1] && m[0][0] >= m[2][2]:
		x := math.Sqrt(1+m[0][0]-m[1][1]-m[2][2]) / 2
		q = [4]float64{x, (m[0][1] + m[1][0]) / (4 * x), (m[0][2] + m[2][0]) / (4 * x), (m[2][1] - m[1][2]) / (4 * x)}
	case m[1][1] >= m[2][2]:
		y := math.Sqrt(1+m[1][1]-m[0][0]-m[2][2]) / 2
		q = [4]float64{(m[0][1] + m[1][0]) / (4 * y), y, (m[1][2] + m[2][1]) / (4 * y), (m[0][2] - m[2][0]) / (4 * y)}
	default:
		z := math.Sqrt(1+m[2][2]-m[0][0]-m[1][1]) / 2
		q = [4]float64{(m[0][2] + m[2][0]) / (4 * z), (m[1][2] + m[2][1]) / (4 * z), z, (m[1][0] - m[0][1]) / (4 * z)}
	}

	r, err := RotationFromQuat(q)
	if err != nil {
		return IdentityRotation()
	}

	return r
}

// RotationFromRotVec builds a rotation from an axis-angle vector whose norm is in degrees.
func RotationFromRotVec(v [3]float64) Rotation {
	n := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if n == 0 {
		return IdentityRotation()
	}

	s, c := math.Sincos(Radians(n) / 2)

	return Rotation{q: [4]float64{v[0] / n * s, v[1] / n * s, v[2] / n * s, c}}
}

// Quat returns the quaternion, scalar last.
func (r Rotation) Quat() [4]float64 {
	return r.q
}

func (r Rotation) Matrix() Matrix {
	x, y, z, w := r.q[0], r.q[1], r.q[2], r.q[3]

	return Matrix{
		{1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w)},
		{2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w)},
		{2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y)},
	}
}

func (r Rotation) Inverse() Rotation {
	return Rotation{q: [4]float64{-r.q[0], -r.q[1], -r.q[2], r.q[3]}}
}

// RotVec returns the axis-angle vector in radians.
func (r Rotation) RotVec() [3]float64 {
	q := r.canonical()
	angle := 2 * math.Atan2(math.Sqrt(q[0]*q[0]+q[1]*q[1]+q[2]*q[2]), q[3])

	var scale float64
	if angle <= 1e-3 {
		a2 := angle * angle
		scale = 2 + a2/12 + 7*a2*a2/2880
	} else {
		scale = angle / math.Sin(angle/2)
	}

	return [3]float64{scale * q[0], scale * q[1], scale * q[2]}
}

// Magnitude is the rotation angle in radians, in [0, pi].
func (r Rotation) Magnitude() float64 {
	q := r.canonical()

	return 2 * math.Atan2(math.Sqrt(q[0]*q[0]+q[1]*q[1]+q[2]*q[2]), q[3])
}

func (r Rotation) canonical() [4]float64 {
	if r.q[3] < 0 {
		return [4]float64{-r.q[0], -r.q[1], -r.q[2], -r.q[3]}
	}

	return r.q
}

// Compose returns the rotation applying o first, then r.
func (r Rotation) Compose(o Rotation) Rotation {
	return Rotation{q: quatMul(r.q, o.q)}
}

func (r Rotation) ApplyVec(v [3]float64) [3]float64 {
	return r.Matrix().MulVec(v)
}

// ApplyCartesian rotates every point of the batch, keeping its shape.
func (r Rotation) ApplyCartesian(c Cartesian) Cartesian {
	return r.Matrix().Apply(c)
}

// Apply rotates a [3]float64, Vectors3 or Cartesian, or composes with a Rotation.
// With inverse set the inverse rotation is used.
func (r Rotation) Apply(operand any, inverse bool) (any, error) {
	rot := r
	if inverse {
		rot = r.Inverse()
	}

	switch v := operand.(type) {
	case Rotation:
		return rot.Compose(v), nil
	case Cartesian:
		return rot.ApplyCartesian(v), nil
	case [3]float64:
		return rot.ApplyVec(v), nil
	case Vectors3:
		m := rot.Matrix()
		res := make(Vectors3, len(v))

		for i, e := range v {
			res[i] = m.MulVec(e)
		}

		return res, nil
	default:
		return nil, fmt.Errorf("%w: cannot rotate %T", ErrNotSupported, operand)
	}
}

func (r Rotation) String() string {
	v := r.RotVec()

	return fmt.Sprintf("Rotation(rotvec=[%g %g %g])", v[0], v[1], v[2])
}

func quatMul(p, q [4]float64) [4]float64 {
	return [4]float64{
		p[3]*q[0] + q[3]*p[0] + p[1]*q[2] - p[2]*q[1],
		p[3]*q[1] + q[3]*p[1] + p[2]*q[0] - p[0]*q[2],
		p[3]*q[2] + q[3]*p[2] + p[0]*q[1] - p[1]*q[0],
		p[3]*q[3] - p[0]*q[0] - p[1]*q[1] - p[2]*q[2],
	}
}
