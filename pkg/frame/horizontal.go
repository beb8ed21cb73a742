package frame

import (
	"math"

	"github.com/grand-mother/geoframe/pkg/coord"
)

// HorizontalVector is a batch of (azimuth, elevation, norm) directions measured in
// the east, north, up frame at a location. It is a direction, not a position.
type HorizontalVector struct {
	coord.Horizontal
	frame *LTP
}

// NewHorizontalVector builds directions at location. A nil location means the site origin,
// a nil norm means unit vectors.
func NewHorizontalVector(env *Env, azimuth, elevation, norm []float64, location Position) (HorizontalVector, error) {
	h, err := coord.NewHorizontal(azimuth, elevation, norm)
	if err != nil {
		return HorizontalVector{}, err
	}

	f, err := enuAt(env, location)
	if err != nil {
		return HorizontalVector{}, err
	}

	return HorizontalVector{Horizontal: h, frame: f}, nil
}

// HorizontalVectorFrom projects the ECEF position vector of p, origin not removed,
// on the east, north, up axes at location.
func HorizontalVectorFrom(env *Env, p Position, location Position) (HorizontalVector, error) {
	f, err := enuAt(env, location)
	if err != nil {
		return HorizontalVector{}, err
	}

	e, err := p.ToECEF(env)
	if err != nil {
		return HorizontalVector{}, err
	}

	local := f.basis.Apply(e.Cartesian)
	n := local.Len()
	az, el, norm := make([]float64, n), make([]float64, n), make([]float64, n)

	for i := 0; i < n; i++ {
		v := local.At(i)
		norm[i] = math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
		az[i] = coord.Degrees(math.Atan2(v[0], v[1]))
		el[i] = coord.Degrees(math.Asin(v[2] / norm[i]))
	}

	h, err := coord.NewHorizontal(az, el, norm)
	if err != nil {
		return HorizontalVector{}, err
	}

	return HorizontalVector{Horizontal: h, frame: f}, nil
}

func enuAt(env *Env, location Position) (*LTP, error) {
	if location == nil {
		location = SiteOrigin()
	}

	return NewLTP(env, LTPOptions{Location: location, Orientation: "ENU"})
}

func (h HorizontalVector) Basis() coord.Matrix { return h.frame.basis }
func (h HorizontalVector) Origin() ECEF        { return h.frame.origin }

// ECEFDirection rotates the vectors to ECEF axes. No origin is added.
func (h HorizontalVector) ECEFDirection() ECEF {
	return ECEF{h.frame.basis.T().Apply(h.Cartesian())}
}
