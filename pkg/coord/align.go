package coord

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Vectors is a read-only list of 3-vectors.
type Vectors interface {
	Len() int
	At(i int) [3]float64
}

// Vectors3 is a plain list of 3-vectors.
type Vectors3 [][3]float64

func (v Vectors3) Len() int             { return len(v) }
func (v Vectors3) At(i int) [3]float64 { return v[i] }

// AlignVectors finds the rotation R minimizing sum(w_i * |targets_i - R*sources_i|^2)
// (Kabsch). It returns R and the root of that weighted sum. nil weights mean 1.
func AlignVectors(targets, sources Vectors, weights []float64) (Rotation, float64, error) {
	n := targets.Len()

	if n == 0 {
		return Rotation{}, 0, fmt.Errorf("%w: no vectors to align", ErrShapeMismatch)
	}

	if sources.Len() != n {
		return Rotation{}, 0, fmt.Errorf("%w: %d targets and %d sources", ErrShapeMismatch, n, sources.Len())
	}

	if weights == nil {
		weights = broadcast([]float64{1}, n)
	}

	if len(weights) != n {
		return Rotation{}, 0, fmt.Errorf("%w: %d weights for %d vectors", ErrShapeMismatch, len(weights), n)
	}

	h := mat.NewDense(3, 3, nil)

	for i := 0; i < n; i++ {
		if weights[i] < 0 {
			return Rotation{}, 0, fmt.Errorf("negative weight %g at %d", weights[i], i)
		}

		a, b := targets.At(i), sources.At(i)

		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				h.Set(r, c, h.At(r, c)+weights[i]*a[r]*b[c])
			}
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(h, mat.SVDFull); !ok {
		return Rotation{}, 0, errors.New("svd factorization failed")
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	d := mat.NewDiagDense(3, []float64{1, 1, 1})
	if mat.Det(&u)*mat.Det(&v) < 0 {
		d.SetDiag(2, -1)
	}

	var ud, rm mat.Dense
	ud.Mul(&u, d)
	rm.Mul(&ud, v.T())

	m := matrixFromDense(&rm)

	var sum float64

	for i := 0; i < n; i++ {
		a, b := targets.At(i), m.MulVec(sources.At(i))
		for k := 0; k < 3; k++ {
			sum += weights[i] * (a[k] - b[k]) * (a[k] - b[k])
		}
	}

	return RotationFromMatrix(m), math.Sqrt(sum), nil
}
