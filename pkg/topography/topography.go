// Package topography answers ground elevation and ray to ground distance queries
// against a tiled elevation backend.
package topography

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/grand-mother/geoframe/pkg/coord"
	"github.com/grand-mother/geoframe/pkg/frame"
)

var ErrIncompatibleSize = errors.New("incompatible size")

// Backend is the elevation data source.
type Backend interface {
	// Elevation returns the height above sea level in meters at a geodetic point.
	Elevation(lat, lon float64) (float64, error)
	// Distance takes n ECEF positions r and directions v, flattened as 3n values, and
	// n maximum distances d (0 for the backend default). It returns the signed distance
	// to the ground along each ray, NaN when there is none.
	Distance(r, v, d []float64) ([]float64, error)
}

type Options struct {
	Env        *frame.Env
	Model      string
	Registerer prometheus.Registerer
	Logger     *slog.Logger
}

type Topography struct {
	backend Backend
	env     *frame.Env
	model   string
	metrics *metrics
	logger  *slog.Logger
}

func New(backend Backend, opts Options) *Topography {
	t := &Topography{
		backend: backend,
		env:     opts.Env,
		model:   opts.Model,
		metrics: newMetrics(opts.Registerer),
		logger:  opts.Logger,
	}

	if t.model == "" {
		t.model = DefaultModel
	}

	if t.logger == nil {
		t.logger = slog.Default()
	}

	t.logger = t.logger.With("logger", "topography")

	return t
}

func (t *Topography) Model() string {
	return t.model
}

// Elevation returns the ground height above sea level under each point.
func (t *Topography) Elevation(p frame.Position) ([]float64, error) {
	res, err := t.elevation(p)
	t.metrics.observe("elevation", len(res), err)

	return res, err
}

func (t *Topography) elevation(p frame.Position) ([]float64, error) {
	lat, lon, err := t.latLon(p)
	if err != nil {
		return nil, err
	}

	res := make([]float64, len(lat))

	for i := range lat {
		if res[i], err = t.backend.Elevation(lat[i], lon[i]); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// Distance returns the signed distance in meters from each position to the ground
// along dir. It is positive when the position is above ground and negative below.
// Positions, directions and maxDistance are broadcast together; maxDistance may be nil.
func (t *Topography) Distance(pos frame.Position, dir frame.Direction, maxDistance []float64) ([]float64, error) {
	res, err := t.distance(pos, dir, maxDistance)
	t.metrics.observe("distance", len(res), err)

	return res, err
}

func (t *Topography) distance(pos frame.Position, dir frame.Direction, maxDistance []float64) ([]float64, error) {
	r, err := pos.ToECEF(t.env)
	if err != nil {
		return nil, err
	}

	v := dir.ECEFDirection()

	if len(maxDistance) == 0 {
		maxDistance = []float64{0}
	}

	n := max(r.Len(), v.Len(), len(maxDistance))

	for _, size := range []int{r.Len(), v.Len(), len(maxDistance)} {
		if size != 1 && size != n {
			return nil, fmt.Errorf("%w: sizes %d, %d and %d", ErrIncompatibleSize, r.Len(), v.Len(), len(maxDistance))
		}
	}

	rf, vf, d := make([]float64, 3*n), make([]float64, 3*n), make([]float64, n)

	for i := 0; i < n; i++ {
		a, b := r.At(min(i, r.Len()-1)), v.At(min(i, v.Len()-1))
		copy(rf[3*i:], a[:])
		copy(vf[3*i:], b[:])
		d[i] = maxDistance[min(i, len(maxDistance)-1)]
	}

	t.logger.Debug("distance query", slog.Int("n", n))

	return t.backend.Distance(rf, vf, d)
}

// Tiles lists the tiles needed to cover the points, extended by radius meters.
func (t *Topography) Tiles(p frame.Position, radius float64) ([]string, error) {
	lat, lon, err := t.latLon(p)
	if err != nil {
		return nil, err
	}

	mp := make(orb.MultiPoint, len(lat))

	for i := range lat {
		mp[i] = orb.Point{lon[i], lat[i]}
	}

	b := mp.Bound()

	if radius > 0 {
		if b, err = t.extend(b, radius); err != nil {
			return nil, err
		}
	}

	return TilesCovering(b, t.model), nil
}

// extend grows the bound by radius meters, measured in the local frames at its corners.
func (t *Topography) extend(b orb.Bound, radius float64) (orb.Bound, error) {
	for i, c := range []orb.Point{b.Min, b.Max} {
		delta := -radius
		if i == 1 {
			delta = radius
		}

		loc, err := frame.NewGeodetic([]float64{c.Lat()}, []float64{c.Lon()}, []float64{0}, coord.Ellipsoid)
		if err != nil {
			return b, err
		}

		xyz := coord.Point(delta, delta, 0)

		l, err := frame.NewLTP(t.env, frame.LTPOptions{Location: loc, Orientation: "ENU", XYZ: &xyz})
		if err != nil {
			return b, err
		}

		g, err := l.ToGeodetic(t.env, coord.Ellipsoid)
		if err != nil {
			return b, err
		}

		b = b.Extend(orb.Point{g.Longitude()[0], g.Latitude()[0]})
	}

	return b, nil
}

// latLon returns the geodetic latitudes and longitudes of p. Geodetic input is used as is.
func (t *Topography) latLon(p frame.Position) ([]float64, []float64, error) {
	g, ok := p.(frame.Geodetic)
	if !ok {
		var err error
		if g, err = frame.NewGeodeticFrom(t.env, p, coord.Ellipsoid); err != nil {
			return nil, nil, err
		}
	}

	return g.Latitude(), g.Longitude(), nil
}
