package frame

import (
	"github.com/grand-mother/geoframe/pkg/coord"
)

// Geodetic is a batch of latitude, longitude (degrees) and height (meters) above
// either the ellipsoid or the geoid.
type Geodetic struct {
	coord.GeodeticRepr
}

func NewGeodetic(lat, lon, height []float64, ref coord.Reference) (Geodetic, error) {
	g, err := coord.NewGeodeticRepr(lat, lon, height, ref)
	if err != nil {
		return Geodetic{}, err
	}

	return Geodetic{g}, nil
}

// NewGeodeticFrom converts any position to geodetic coordinates with the given
// height reference.
func NewGeodeticFrom(env *Env, p Position, ref coord.Reference) (Geodetic, error) {
	if g, ok := p.(Geodetic); ok {
		return g.WithReference(env, ref)
	}

	e, err := p.ToECEF(env)
	if err != nil {
		return Geodetic{}, err
	}

	return geodeticFromECEF(env, e, ref)
}

func (g Geodetic) ToECEF(env *Env) (ECEF, error) {
	lat, lon := g.Latitude(), g.Longitude()

	h, err := g.heightTo(env, coord.Ellipsoid)
	if err != nil {
		return ECEF{}, err
	}

	el := env.ellipsoid()
	x, y, z := make([]float64, len(lat)), make([]float64, len(lat)), make([]float64, len(lat))

	for i := range lat {
		x[i], y[i], z[i] = el.GeodeticToECEF(lat[i], lon[i], h[i])
	}

	return NewECEF(x, y, z)
}

// WithReference re-expresses the heights relative to ref at the same latitude and longitude.
func (g Geodetic) WithReference(env *Env, ref coord.Reference) (Geodetic, error) {
	if ref == g.Reference() {
		return g, nil
	}

	h, err := g.heightTo(env, ref)
	if err != nil {
		return Geodetic{}, err
	}

	return NewGeodetic(g.Latitude(), g.Longitude(), h, ref)
}

func (g Geodetic) heightTo(env *Env, ref coord.Reference) ([]float64, error) {
	h := g.Height()
	if ref == g.Reference() {
		return h, nil
	}

	sign := 1.0
	if ref == coord.Geoid {
		sign = -1
	}

	lat, lon := g.Latitude(), g.Longitude()
	model := env.geoid()

	for i := range h {
		u, err := model.Undulation(lat[i], lon[i])
		if err != nil {
			return nil, err
		}

		h[i] += sign * u
	}

	return h, nil
}

func geodeticFromECEF(env *Env, e ECEF, ref coord.Reference) (Geodetic, error) {
	x, y, z := e.X(), e.Y(), e.Z()
	lat, lon, h := make([]float64, len(x)), make([]float64, len(x)), make([]float64, len(x))

	el := env.ellipsoid()
	for i := range x {
		lat[i], lon[i], h[i] = el.ECEFToGeodetic(x[i], y[i], z[i])
	}

	g, err := NewGeodetic(lat, lon, h, coord.Ellipsoid)
	if err != nil {
		return Geodetic{}, err
	}

	return g.WithReference(env, ref)
}
