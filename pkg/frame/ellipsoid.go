package frame

import (
	"math"

	"github.com/grand-mother/geoframe/pkg/coord"
)

const (
	wgs84A  = 6378137.0
	wgs84F  = 1 / 298.257223563
	wgs84E2 = wgs84F * (2 - wgs84F)

	geodeticTol   = 1e-12
	geodeticSteps = 10
)

// Ellipsoid converts between geodetic and ECEF coordinates. Heights are always
// measured from the ellipsoid, angles are in degrees.
type Ellipsoid interface {
	GeodeticToECEF(lat, lon, h float64) (x, y, z float64)
	ECEFToGeodetic(x, y, z float64) (lat, lon, h float64)
	// DirectionFromHorizontal returns the ECEF unit vector pointing to azimuth az
	// (from north toward east) and elevation el at the given location.
	DirectionFromHorizontal(lat, lon, az, el float64) [3]float64
}

// WGS84 is the World Geodetic System 1984 ellipsoid.
type WGS84 struct{}

func (WGS84) GeodeticToECEF(lat, lon, h float64) (x, y, z float64) {
	sinLat, cosLat := math.Sincos(coord.Radians(lat))
	sinLon, cosLon := math.Sincos(coord.Radians(lon))

	n := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)

	x = (n + h) * cosLat * cosLon
	y = (n + h) * cosLat * sinLon
	z = (n*(1-wgs84E2) + h) * sinLat

	return x, y, z
}

func (WGS84) ECEFToGeodetic(x, y, z float64) (lat, lon, h float64) {
	p := math.Hypot(x, y)
	phi := math.Atan2(z, p*(1-wgs84E2))

	var sinPhi, cosPhi, n float64

	for i := 0; i < geodeticSteps; i++ {
		sinPhi = math.Sin(phi)
		n = wgs84A / math.Sqrt(1-wgs84E2*sinPhi*sinPhi)

		next := math.Atan2(z+wgs84E2*n*sinPhi, p)
		if math.Abs(next-phi) < geodeticTol {
			phi = next
			break
		}

		phi = next
	}

	sinPhi, cosPhi = math.Sincos(phi)
	n = wgs84A / math.Sqrt(1-wgs84E2*sinPhi*sinPhi)
	h = p*cosPhi + z*sinPhi - wgs84A*wgs84A/n

	return coord.Degrees(phi), coord.Degrees(math.Atan2(y, x)), h
}

func (WGS84) DirectionFromHorizontal(lat, lon, az, el float64) [3]float64 {
	sinLat, cosLat := math.Sincos(coord.Radians(lat))
	sinLon, cosLon := math.Sincos(coord.Radians(lon))
	sinAz, cosAz := math.Sincos(coord.Radians(az))
	sinEl, cosEl := math.Sincos(coord.Radians(el))

	east := [3]float64{-sinLon, cosLon, 0}
	north := [3]float64{-sinLat * cosLon, -sinLat * sinLon, cosLat}
	up := [3]float64{cosLat * cosLon, cosLat * sinLon, sinLat}

	e, n, u := cosEl*sinAz, cosEl*cosAz, sinEl

	var res [3]float64
	for i := range res {
		res[i] = e*east[i] + n*north[i] + u*up[i]
	}

	return res
}
