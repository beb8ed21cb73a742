package coord

import (
	"fmt"
	"strings"
)

// Reference tells what a geodetic height is measured from.
type Reference int

const (
	Ellipsoid Reference = iota + 1
	Geoid
)

func (r Reference) String() string {
	switch r {
	case Ellipsoid:
		return "ellipsoid"
	case Geoid:
		return "geoid"
	default:
		return fmt.Sprintf("reference(%d)", int(r))
	}
}

// ParseReference accepts "ellipsoid" or "geoid" (case-insensitive).
func ParseReference(s string) (Reference, error) {
	switch strings.ToLower(s) {
	case "ellipsoid":
		return Ellipsoid, nil
	case "geoid", "":
		return Geoid, nil
	default:
		return 0, fmt.Errorf("%w: height reference %q", ErrType, s)
	}
}

// GeodeticRepr is a batch of (latitude, longitude, height) in degrees and meters,
// tagged with the height reference.
type GeodeticRepr struct {
	components
	ref Reference
}

var geodeticNames = [3]string{"latitude", "longitude", "height"}

func NewGeodeticRepr(lat, lon, height []float64, ref Reference) (GeodeticRepr, error) {
	if ref != Ellipsoid && ref != Geoid {
		return GeodeticRepr{}, fmt.Errorf("%w: height reference %d", ErrType, int(ref))
	}

	t, err := newComponents(geodeticNames, lat, lon, height)
	if err != nil {
		return GeodeticRepr{}, err
	}

	return GeodeticRepr{components: t, ref: ref}, nil
}

func (g GeodeticRepr) Latitude() []float64  { return g.get(0) }
func (g GeodeticRepr) Longitude() []float64 { return g.get(1) }
func (g GeodeticRepr) Height() []float64    { return g.get(2) }
func (g GeodeticRepr) Reference() Reference { return g.ref }
