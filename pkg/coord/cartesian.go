package coord

import (
	"fmt"
	"math"
)

// Cartesian is a batch of (x, y, z) values. It is immutable: accessors return copies.
type Cartesian struct {
	components
}

var cartesianNames = [3]string{"x", "y", "z"}

// NewCartesian builds a batch from components. Single-entry components are broadcast.
func NewCartesian(x, y, z []float64) (Cartesian, error) {
	t, err := newComponents(cartesianNames, x, y, z)
	if err != nil {
		return Cartesian{}, err
	}

	return Cartesian{t}, nil
}

// CartesianFrom accepts scalars or slices of any supported numeric type.
func CartesianFrom(x, y, z any) (Cartesian, error) {
	var vs [3][]float64

	for i, v := range []any{x, y, z} {
		f, err := Values(cartesianNames[i], v)
		if err != nil {
			return Cartesian{}, err
		}

		vs[i] = f
	}

	return NewCartesian(vs[0], vs[1], vs[2])
}

// Point returns a single-entry Cartesian.
func Point(x, y, z float64) Cartesian {
	return Cartesian{scalarComponents(x, y, z)}
}

// FromVectors builds a Cartesian from a list of 3-vectors.
func FromVectors(v Vectors3) (Cartesian, error) {
	if len(v) == 0 {
		return Cartesian{}, fmt.Errorf("%w: no vectors", ErrShapeMismatch)
	}

	c := Cartesian{components{c: [3][]float64{make([]float64, len(v)), make([]float64, len(v)), make([]float64, len(v))}}}
	for i, e := range v {
		c.c[0][i], c.c[1][i], c.c[2][i] = e[0], e[1], e[2]
	}

	return c, nil
}

// Placeholder is a single NaN point, used when a frame is defined without coordinates.
func Placeholder() Cartesian {
	return Cartesian{components{c: [3][]float64{nanBatch(1), nanBatch(1), nanBatch(1)}}}
}

func (c Cartesian) X() []float64 { return c.get(0) }
func (c Cartesian) Y() []float64 { return c.get(1) }
func (c Cartesian) Z() []float64 { return c.get(2) }

func (c Cartesian) Vectors() Vectors3 {
	res := make(Vectors3, c.Len())
	for i := range res {
		res[i] = c.At(i)
	}

	return res
}

func (c Cartesian) Norm() []float64 {
	res := make([]float64, c.Len())
	for i := range res {
		res[i] = math.Sqrt(c.c[0][i]*c.c[0][i] + c.c[1][i]*c.c[1][i] + c.c[2][i]*c.c[2][i])
	}

	return res
}

// Add returns c + o, broadcasting single-entry operands.
func (c Cartesian) Add(o Cartesian) (Cartesian, error) {
	return c.combine(o, 1)
}

// Sub returns c - o, broadcasting single-entry operands.
func (c Cartesian) Sub(o Cartesian) (Cartesian, error) {
	return c.combine(o, -1)
}

func (c Cartesian) combine(o Cartesian, sign float64) (Cartesian, error) {
	n, err := batchLen([3]string{"lhs", "rhs", ""}, c.c[0], o.c[0])
	if err != nil {
		return Cartesian{}, err
	}

	res := Cartesian{components{c: [3][]float64{make([]float64, n), make([]float64, n), make([]float64, n)}}}

	for k := 0; k < 3; k++ {
		a, b := broadcast(c.c[k], n), broadcast(o.c[k], n)
		for i := 0; i < n; i++ {
			res.c[k][i] = a[i] + sign*b[i]
		}
	}

	return res, nil
}

func (c Cartesian) Spherical() Spherical {
	return Spherical{mapBatch(c.components, CartesianToSpherical)}
}

func (c Cartesian) Horizontal() Horizontal {
	return Horizontal{mapBatch(c.components, CartesianToHorizontal)}
}
