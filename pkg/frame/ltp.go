package frame

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/grand-mother/geoframe/pkg/coord"
)

const DefaultMagModel = "WMM"

// DefaultObsTime is the observation date used for magnetic declination when none is given.
var DefaultObsTime = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// LTP is a local tangent plane frame: an origin on the Earth and three axes given as
// unit vectors in ECEF, carrying a batch of local (x, y, z) coordinates.
type LTP struct {
	origin      ECEF
	location    Geodetic
	basis       coord.Matrix
	orientation string
	magnetic    bool
	declination float64
	magModel    string
	obsTime     time.Time

	xyz coord.Cartesian
}

// LTPOptions selects the frame origin, its axes and its payload.
//
// The origin comes from Frame, else from Latitude, Longitude and Height (geoid
// referenced, all three required), else from Location. The payload comes from
// Input, else from XYZ, else it is a single NaN point.
type LTPOptions struct {
	// Frame copies the origin and axes of an existing frame.
	Frame *LTP

	Latitude  *float64
	Longitude *float64
	Height    *float64
	Location  Position

	// Orientation is three letters among E, W, N, S, U and D, e.g. "ENU" or "NWU".
	Orientation string
	Magnetic    bool
	MagModel    string
	// Declination in degrees. Setting it makes the frame magnetic.
	Declination *float64
	ObsTime     time.Time

	Input Position
	XYZ   *coord.Cartesian
}

func NewLTP(env *Env, opts LTPOptions) (*LTP, error) {
	l := new(LTP)

	if opts.Frame != nil {
		l.copyStructure(opts.Frame)
	} else if err := l.build(env, opts); err != nil {
		return nil, err
	}

	switch {
	case opts.Input != nil:
		xyz, err := l.project(env, opts.Input)
		if err != nil {
			return nil, err
		}

		l.xyz = xyz
	case opts.XYZ != nil:
		l.xyz = *opts.XYZ
	default:
		l.xyz = coord.Placeholder()
	}

	return l, nil
}

func (l *LTP) copyStructure(o *LTP) {
	l.origin = o.origin
	l.location = o.location
	l.basis = o.basis
	l.orientation = o.orientation
	l.magnetic = o.magnetic
	l.declination = o.declination
	l.magModel = o.magModel
	l.obsTime = o.obsTime
}

func (l *LTP) build(env *Env, opts LTPOptions) error {
	loc, err := resolveLocation(env, opts)
	if err != nil {
		return err
	}

	if loc.Len() != 1 {
		return fmt.Errorf("%w: frame location has %d points", coord.ErrShapeMismatch, loc.Len())
	}

	if opts.Orientation == "" {
		return ErrMissingOrientation
	}

	orientation, err := parseOrientation(opts.Orientation)
	if err != nil {
		return err
	}

	l.location = loc
	l.orientation = orientation
	l.magModel = opts.MagModel
	l.obsTime = opts.ObsTime

	if l.magModel == "" {
		l.magModel = DefaultMagModel
	}

	if l.obsTime.IsZero() {
		l.obsTime = DefaultObsTime
	}

	ell, err := loc.WithReference(env, coord.Ellipsoid)
	if err != nil {
		return err
	}

	lat, lon, h := ell.Latitude()[0], ell.Longitude()[0], ell.Height()[0]

	switch {
	case opts.Declination != nil:
		l.magnetic = true
		l.declination = *opts.Declination
	case opts.Magnetic:
		l.magnetic = true

		// evaluated at the ellipsoid height; the undulation offset is below the model resolution
		d, err := env.geomagnet().Declination(lat, lon, h, l.magModel, l.obsTime)
		if err != nil {
			return err
		}

		env.logger().Debug("magnetic declination",
			slog.Float64("lat", lat), slog.Float64("lon", lon), slog.String("model", l.magModel), slog.Float64("declination", d))

		l.declination = d
	}

	el := env.ellipsoid()

	for i, ch := range orientation {
		az, elev := axisDirection(ch)
		if ch != 'U' && ch != 'D' {
			az += l.declination
		}

		l.basis[i] = el.DirectionFromHorizontal(lat, lon, az, elev)
	}

	x, y, z := el.GeodeticToECEF(lat, lon, h)
	l.origin = ECEFPoint(x, y, z)

	return nil
}

func resolveLocation(env *Env, opts LTPOptions) (Geodetic, error) {
	explicit := opts.Latitude != nil || opts.Longitude != nil || opts.Height != nil

	switch {
	case explicit:
		if opts.Latitude == nil || opts.Longitude == nil || opts.Height == nil {
			return Geodetic{}, fmt.Errorf("%w: latitude, longitude and height must all be set", ErrMissingLocation)
		}

		return NewGeodetic([]float64{*opts.Latitude}, []float64{*opts.Longitude}, []float64{*opts.Height}, coord.Geoid)
	case opts.Location != nil:
		if g, ok := opts.Location.(Geodetic); ok {
			return g, nil
		}

		return NewGeodeticFrom(env, opts.Location, coord.Geoid)
	default:
		return Geodetic{}, ErrMissingLocation
	}
}

func parseOrientation(s string) (string, error) {
	o := strings.ToUpper(s)
	if len(o) != 3 {
		return "", fmt.Errorf("%w: %q must have three axes", ErrInvalidOrientation, s)
	}

	var used [3]bool

	for _, ch := range o {
		var k int

		switch ch {
		case 'E', 'W':
			k = 0
		case 'N', 'S':
			k = 1
		case 'U', 'D':
			k = 2
		default:
			return "", fmt.Errorf("%w: %q has unknown axis %q", ErrInvalidOrientation, s, ch)
		}

		if used[k] {
			return "", fmt.Errorf("%w: %q repeats an axis", ErrInvalidOrientation, s)
		}

		used[k] = true
	}

	return o, nil
}

func axisDirection(ch rune) (az, el float64) {
	switch ch {
	case 'E':
		return 90, 0
	case 'W':
		return 270, 0
	case 'N':
		return 0, 0
	case 'S':
		return 180, 0
	case 'U':
		return 0, 90
	default:
		return 0, -90
	}
}

// project expresses p in this frame.
func (l *LTP) project(env *Env, p Position) (coord.Cartesian, error) {
	e, err := p.ToECEF(env)
	if err != nil {
		return coord.Cartesian{}, err
	}

	d, err := e.Sub(l.origin.Cartesian)
	if err != nil {
		return coord.Cartesian{}, err
	}

	return l.basis.Apply(d), nil
}

func (l *LTP) Origin() ECEF         { return l.origin }
func (l *LTP) Location() Geodetic   { return l.location }
func (l *LTP) Basis() coord.Matrix  { return l.basis }
func (l *LTP) Orientation() string  { return l.orientation }
func (l *LTP) Magnetic() bool       { return l.magnetic }
func (l *LTP) Declination() float64 { return l.declination }
func (l *LTP) MagModel() string     { return l.magModel }
func (l *LTP) ObsTime() time.Time   { return l.obsTime }
func (l *LTP) XYZ() coord.Cartesian { return l.xyz }
func (l *LTP) Len() int             { return l.xyz.Len() }
func (l *LTP) At(i int) [3]float64  { return l.xyz.At(i) }

// SetXYZ replaces the local coordinates, keeping the origin and axes.
func (l *LTP) SetXYZ(xyz coord.Cartesian) {
	l.xyz = xyz
}

func (l *LTP) ToECEF(_ *Env) (ECEF, error) {
	c, err := l.basis.T().Apply(l.xyz).Add(l.origin.Cartesian)
	if err != nil {
		return ECEF{}, err
	}

	return ECEF{c}, nil
}

func (l *LTP) ToGeodetic(env *Env, ref coord.Reference) (Geodetic, error) {
	return NewGeodeticFrom(env, l, ref)
}

// ECEFDirection rotates the payload to ECEF axes without adding the origin.
func (l *LTP) ECEFDirection() ECEF {
	return ECEF{l.basis.T().Apply(l.xyz)}
}

// Express returns a frame with the same origin and axes holding p.
func (l *LTP) Express(env *Env, p Position) (*LTP, error) {
	xyz, err := l.project(env, p)
	if err != nil {
		return nil, err
	}

	res := new(LTP)
	res.copyStructure(l)
	res.xyz = xyz

	return res, nil
}

// ToLTP expresses the payload in the target frame.
func (l *LTP) ToLTP(env *Env, target *LTP) (*LTP, error) {
	return target.Express(env, l)
}

func (l *LTP) String() string {
	lat, lon, h := l.location.Latitude()[0], l.location.Longitude()[0], l.location.Height()[0]

	return fmt.Sprintf("LTP(%s, %.5f %.5f %.1fm %s, declination=%.3f, n=%d)",
		l.orientation, lat, lon, h, l.location.Reference(), l.declination, l.Len())
}
