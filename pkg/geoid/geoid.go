// Package geoid provides geoid undulation models, the height of the geoid above the
// reference ellipsoid.
package geoid

import (
	"fmt"
	"math"
	"sync"

	"github.com/westphae/geomag/pkg/egm96"
)

// polar keeps latitudes off the last grid row, where egm96 interpolation indexes past
// the end of the grid.
const polar = 90 - 1e-9

var (
	loadOnce sync.Once
	loadErr  error
)

// Model returns the undulation in meters at a geodetic latitude and longitude, degrees.
type Model interface {
	Undulation(lat, lon float64) (float64, error)
}

// Preload loads the egm96 grid. The library fills a package level grid on first use, so
// it must be loaded once before concurrent lookups. Undulation and the geomagnet models
// call it themselves.
func Preload() error {
	loadOnce.Do(func() {
		_, loadErr = egm96.NewLocationGeodetic(0, 0, 0).HeightAboveMSL()
		if loadErr != nil {
			loadErr = fmt.Errorf("egm96 grid: %w", loadErr)
		}
	})

	return loadErr
}

// EGM96 is the Earth Gravitational Model 1996 geoid. Latitudes are in [-90, 90],
// longitudes in any range.
type EGM96 struct{}

func (EGM96) Undulation(lat, lon float64) (float64, error) {
	if err := Preload(); err != nil {
		return 0, err
	}

	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return 0, fmt.Errorf("egm96: latitude %g out of range", lat)
	}

	lat = math.Max(-polar, math.Min(polar, lat))
	lon = NormalizeLongitude(lon)

	// a point on the ellipsoid sits -N above mean sea level
	h, err := egm96.NewLocationGeodetic(lat, lon, 0).HeightAboveMSL()
	if err != nil {
		return 0, fmt.Errorf("egm96 at %g,%g: %w", lat, lon, err)
	}

	return -h, nil
}

// NormalizeLongitude maps a longitude in degrees into [0, 360).
func NormalizeLongitude(lon float64) float64 {
	lon = math.Mod(lon, 360)
	if lon < 0 {
		lon += 360
	}

	if lon >= 360 {
		lon = 0
	}

	return lon
}

// Constant is a flat geoid, useful for tests and offline work.
type Constant float64

func (c Constant) Undulation(_, _ float64) (float64, error) {
	return float64(c), nil
}

// Func adapts a plain function to a Model.
type Func func(lat, lon float64) (float64, error)

func (f Func) Undulation(lat, lon float64) (float64, error) {
	return f(lat, lon)
}
