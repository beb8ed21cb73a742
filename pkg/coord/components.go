package coord

import (
	"fmt"
	"math"
	"slices"
)

// components holds three equally sized batches of values. Length 1 means scalar.
type components struct {
	c [3][]float64
}

func newComponents(names [3]string, a, b, c []float64) (components, error) {
	n, err := batchLen(names, a, b, c)
	if err != nil {
		return components{}, err
	}

	return components{c: [3][]float64{broadcast(a, n), broadcast(b, n), broadcast(c, n)}}, nil
}

func scalarComponents(a, b, c float64) components {
	return components{c: [3][]float64{{a}, {b}, {c}}}
}

func (t components) Len() int {
	return len(t.c[0])
}

func (t components) At(i int) [3]float64 {
	return [3]float64{t.c[0][i], t.c[1][i], t.c[2][i]}
}

func (t components) get(k int) []float64 {
	return slices.Clone(t.c[k])
}

// batchLen returns the batch size shared by all inputs. Length 1 inputs broadcast.
func batchLen(names [3]string, vs ...[]float64) (int, error) {
	n := 1

	for i, v := range vs {
		switch {
		case len(v) == 0:
			return 0, fmt.Errorf("%w: %s is empty", ErrShapeMismatch, names[i])
		case len(v) == 1:
		case n == 1:
			n = len(v)
		case len(v) != n:
			return 0, fmt.Errorf("%w: %s has %d entries, expected %d", ErrShapeMismatch, names[i], len(v), n)
		}
	}

	return n, nil
}

func broadcast(v []float64, n int) []float64 {
	res := make([]float64, n)

	if len(v) == 1 {
		for i := range res {
			res[i] = v[0]
		}

		return res
	}

	copy(res, v)

	return res
}

// Values converts a scalar or batch given as any to a []float64.
func Values(name string, v any) ([]float64, error) {
	switch x := v.(type) {
	case float64:
		return []float64{x}, nil
	case float32:
		return []float64{float64(x)}, nil
	case int:
		return []float64{float64(x)}, nil
	case int64:
		return []float64{float64(x)}, nil
	case []float64:
		return x, nil
	case []int:
		res := make([]float64, len(x))
		for i, e := range x {
			res[i] = float64(e)
		}

		return res, nil
	default:
		return nil, fmt.Errorf("%w: %s is %T", ErrType, name, v)
	}
}

func nanBatch(n int) []float64 {
	res := make([]float64, n)
	for i := range res {
		res[i] = math.NaN()
	}

	return res
}
