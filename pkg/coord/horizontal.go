package coord

// Horizontal is a batch of (azimuth, elevation, norm). Azimuth is counted from
// North towards East, elevation from the horizontal plane towards zenith.
type Horizontal struct {
	components
}

var horizontalNames = [3]string{"azimuth", "elevation", "norm"}

// NewHorizontal builds a batch of horizontal values. A nil norm means unit vectors.
func NewHorizontal(azimuth, elevation, norm []float64) (Horizontal, error) {
	if norm == nil {
		norm = []float64{1}
	}

	t, err := newComponents(horizontalNames, azimuth, elevation, norm)
	if err != nil {
		return Horizontal{}, err
	}

	return Horizontal{t}, nil
}

func (h Horizontal) Azimuth() []float64   { return h.get(0) }
func (h Horizontal) Elevation() []float64 { return h.get(1) }
func (h Horizontal) Norm() []float64      { return h.get(2) }

func (h Horizontal) Spherical() Spherical {
	return Spherical{mapBatch(h.components, HorizontalToSpherical)}
}

func (h Horizontal) Cartesian() Cartesian {
	return Cartesian{mapBatch(h.components, HorizontalToCartesian)}
}
