package frame

import (
	"github.com/grand-mother/geoframe/pkg/coord"
)

// ECEF is a batch of Earth-centered Earth-fixed coordinates in meters.
type ECEF struct {
	coord.Cartesian
}

func NewECEF(x, y, z []float64) (ECEF, error) {
	c, err := coord.NewCartesian(x, y, z)
	if err != nil {
		return ECEF{}, err
	}

	return ECEF{c}, nil
}

func ECEFPoint(x, y, z float64) ECEF {
	return ECEF{coord.Point(x, y, z)}
}

// NewECEFFrom converts any position to ECEF.
func NewECEFFrom(env *Env, p Position) (ECEF, error) {
	return p.ToECEF(env)
}

func (e ECEF) ToECEF(_ *Env) (ECEF, error) {
	return e, nil
}

func (e ECEF) ECEFDirection() ECEF {
	return e
}

func (e ECEF) ToGeodetic(env *Env, ref coord.Reference) (Geodetic, error) {
	return geodeticFromECEF(env, e, ref)
}
