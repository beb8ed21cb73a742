package frame

import (
	"time"

	"github.com/grand-mother/geoframe/pkg/coord"
)

// Nominal site origin, height above the geoid.
const (
	SiteLatitude  = 38.88849
	SiteLongitude = 92.28605
	SiteHeight    = 2920.522
)

// GRANDCS is the site frame: north, west, up axes corrected for magnetic declination.
type GRANDCS struct {
	*LTP
}

type GRANDCSOptions struct {
	// Location defaults to the nominal site origin.
	Location    Position
	MagModel    string
	Declination *float64
	ObsTime     time.Time

	Input Position
	XYZ   *coord.Cartesian
}

// SiteOrigin returns the nominal site origin.
func SiteOrigin() Geodetic {
	g, _ := NewGeodetic([]float64{SiteLatitude}, []float64{SiteLongitude}, []float64{SiteHeight}, coord.Geoid)

	return g
}

func NewGRANDCS(env *Env, opts GRANDCSOptions) (GRANDCS, error) {
	loc := opts.Location
	if loc == nil {
		loc = SiteOrigin()
	}

	l, err := NewLTP(env, LTPOptions{
		Location:    loc,
		Orientation: "NWU",
		Magnetic:    true,
		MagModel:    opts.MagModel,
		Declination: opts.Declination,
		ObsTime:     opts.ObsTime,
		Input:       opts.Input,
		XYZ:         opts.XYZ,
	})
	if err != nil {
		return GRANDCS{}, err
	}

	return GRANDCS{l}, nil
}

// Express returns a site frame with the same origin holding p.
func (g GRANDCS) Express(env *Env, p Position) (GRANDCS, error) {
	l, err := g.LTP.Express(env, p)
	if err != nil {
		return GRANDCS{}, err
	}

	return GRANDCS{l}, nil
}
