package coord

import (
	"fmt"
	"math"
	"strings"
)

// eulerEps is the tolerance on the middle angle below which a sequence is
// treated as gimbal locked.
const eulerEps = 1e-7

// parseSeq validates an axis sequence. Lowercase letters mean extrinsic (fixed
// axes), uppercase intrinsic (body axes).
func parseSeq(seq string, minLen int) (axes []int, extrinsic bool, err error) {
	if len(seq) < minLen || len(seq) > 3 {
		return nil, false, fmt.Errorf("%w: %q must have %d to 3 axes", ErrInvalidSequence, seq, minLen)
	}

	switch seq {
	case strings.ToLower(seq):
		extrinsic = true
	case strings.ToUpper(seq):
		extrinsic = false
	default:
		return nil, false, fmt.Errorf("%w: %q mixes extrinsic and intrinsic axes", ErrInvalidSequence, seq)
	}

	for i, ch := range strings.ToLower(seq) {
		var a int

		switch ch {
		case 'x':
			a = 0
		case 'y':
			a = 1
		case 'z':
			a = 2
		default:
			return nil, false, fmt.Errorf("%w: %q has unknown axis %q", ErrInvalidSequence, seq, ch)
		}

		if i > 0 && axes[i-1] == a {
			return nil, false, fmt.Errorf("%w: %q repeats consecutive axes", ErrInvalidSequence, seq)
		}

		axes = append(axes, a)
	}

	return axes, extrinsic, nil
}

// RotationFromEuler composes elementary rotations, angles in degrees.
func RotationFromEuler(seq string, angles ...float64) (Rotation, error) {
	axes, extrinsic, err := parseSeq(seq, 1)
	if err != nil {
		return Rotation{}, err
	}

	if len(angles) != len(axes) {
		return Rotation{}, fmt.Errorf("%w: %d angles for sequence %q", ErrShapeMismatch, len(angles), seq)
	}

	q := [4]float64{0, 0, 0, 1}

	for i, a := range axes {
		var e [4]float64
		s, c := math.Sincos(Radians(angles[i]) / 2)
		e[a], e[3] = s, c

		if extrinsic {
			q = quatMul(e, q)
		} else {
			q = quatMul(q, e)
		}
	}

	return Rotation{q: q}, nil
}

// EulerAngles decomposes r along a 3-axis sequence, result in degrees.
// In a gimbal lock the third angle (first for intrinsic sequences) is set to 0.
func (r Rotation) EulerAngles(seq string) ([3]float64, error) {
	axes, extrinsic, err := parseSeq(seq, 3)
	if err != nil {
		return [3]float64{}, err
	}

	i, j, k := axes[0], axes[1], axes[2]
	if !extrinsic {
		i, k = k, i
	}

	symmetric := i == k
	if symmetric {
		k = 3 - i - j
	}

	sign := float64((i - j) * (j - k) * (k - i) / 2)
	q := r.q

	var a, b, c, d float64
	if symmetric {
		a, b, c, d = q[3], q[i], q[j], q[k]*sign
	} else {
		a, b, c, d = q[3]-q[j], q[i]+q[k]*sign, q[j]+q[3], q[k]*sign-q[i]
	}

	var angles [3]float64
	angles[1] = 2 * math.Atan2(math.Hypot(c, d), math.Hypot(a, b))

	halfSum := math.Atan2(b, a)
	halfDiff := math.Atan2(d, c)

	switch {
	case math.Abs(angles[1]) <= eulerEps:
		angles[0] = 2 * halfSum
	case math.Abs(angles[1]-math.Pi) <= eulerEps:
		angles[0] = -2 * halfDiff
	default:
		angles[0] = halfSum - halfDiff
		angles[2] = halfSum + halfDiff
	}

	if !symmetric {
		angles[2] *= sign
		angles[1] -= math.Pi / 2
	}

	if !extrinsic {
		angles[0], angles[2] = angles[2], angles[0]
	}

	for n := range angles {
		switch {
		case angles[n] < -math.Pi:
			angles[n] += 2 * math.Pi
		case angles[n] > math.Pi:
			angles[n] -= 2 * math.Pi
		}

		angles[n] = Degrees(angles[n])
	}

	return angles, nil
}
