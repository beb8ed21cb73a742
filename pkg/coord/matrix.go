package coord

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a 3x3 row-major matrix. Frame bases store their axes as rows.
type Matrix [3][3]float64

func IdentityMatrix() Matrix {
	return Matrix{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// MatrixFromRows stacks three row vectors.
func MatrixFromRows(a, b, c [3]float64) Matrix {
	return Matrix{a, b, c}
}

func (m Matrix) Row(i int) [3]float64 {
	return m[i]
}

func (m Matrix) T() Matrix {
	var res Matrix

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			res[i][j] = m[j][i]
		}
	}

	return res
}

func (m Matrix) Mul(o Matrix) Matrix {
	var res Matrix

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				res[i][j] += m[i][k] * o[k][j]
			}
		}
	}

	return res
}

func (m Matrix) MulVec(v [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

func (m Matrix) Det() float64 {
	return mat.Det(m.dense())
}

// IsOrthonormal reports whether m·mᵀ is the identity within tol.
func (m Matrix) IsOrthonormal(tol float64) bool {
	p := m.Mul(m.T())
	id := IdentityMatrix()

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(p[i][j]-id[i][j]) > tol {
				return false
			}
		}
	}

	return true
}

// Apply multiplies every point of the batch by m, as one 3xN matrix product.
func (m Matrix) Apply(c Cartesian) Cartesian {
	n := c.Len()
	p := mat.NewDense(3, n, nil)

	for k := 0; k < 3; k++ {
		p.SetRow(k, c.c[k])
	}

	var out mat.Dense
	out.Mul(m.dense(), p)

	return Cartesian{components{c: [3][]float64{
		mat.Row(nil, 0, &out),
		mat.Row(nil, 1, &out),
		mat.Row(nil, 2, &out),
	}}}
}

func (m Matrix) dense() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2],
	})
}

func matrixFromDense(d mat.Matrix) Matrix {
	var res Matrix

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			res[i][j] = d.At(i, j)
		}
	}

	return res
}
