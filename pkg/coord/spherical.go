package coord

// Spherical is a batch of (theta, phi, r): polar angle from +Z, azimuth from +X
// (both degrees) and radius.
type Spherical struct {
	components
}

var sphericalNames = [3]string{"theta", "phi", "r"}

func NewSpherical(theta, phi, r []float64) (Spherical, error) {
	t, err := newComponents(sphericalNames, theta, phi, r)
	if err != nil {
		return Spherical{}, err
	}

	return Spherical{t}, nil
}

func (s Spherical) Theta() []float64 { return s.get(0) }
func (s Spherical) Phi() []float64   { return s.get(1) }
func (s Spherical) R() []float64     { return s.get(2) }

func (s Spherical) Cartesian() Cartesian {
	return Cartesian{mapBatch(s.components, SphericalToCartesian)}
}

func (s Spherical) Horizontal() Horizontal {
	return Horizontal{mapBatch(s.components, SphericalToHorizontal)}
}
