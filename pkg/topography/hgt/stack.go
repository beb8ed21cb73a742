// Package hgt is a terrain backend reading SRTM .hgt tiles from a directory.
package hgt

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"path/filepath"
	"time"

	"github.com/grand-mother/geoframe/internal/cache"
	"github.com/grand-mother/geoframe/pkg/frame"
	"github.com/grand-mother/geoframe/pkg/geoid"
	"github.com/grand-mother/geoframe/pkg/tools"
	"github.com/grand-mother/geoframe/pkg/topography"
)

const (
	DefaultStep  = 10.0
	DefaultRange = 50000.0

	// no ground above this height over the geoid
	ceiling = 9000.0

	bisections = 40
)

type Options struct {
	Dir   string
	Model string
	// Step is the ray march step in meters.
	Step float64
	// Range is the distance searched when a query gives no maximum.
	Range float64
	// TTL of loaded tiles, zero keeps them until Clean.
	TTL time.Duration

	Ellipsoid frame.Ellipsoid
	Geoid     geoid.Model
	Logger    *slog.Logger
}

// Stack serves elevations from the tiles found in a directory. Tiles are loaded on
// first use. It is safe for concurrent use.
type Stack struct {
	dir       string
	model     string
	step      float64
	rng       float64
	ellipsoid frame.Ellipsoid
	geoid     geoid.Model
	tiles     *cache.Cache[*Tile]
	logger    *slog.Logger
}

func NewStack(opts Options) *Stack {
	s := &Stack{
		dir:       opts.Dir,
		model:     opts.Model,
		step:      opts.Step,
		rng:       opts.Range,
		ellipsoid: opts.Ellipsoid,
		geoid:     opts.Geoid,
		logger:    opts.Logger,
	}

	if s.model == "" {
		s.model = topography.DefaultModel
	}

	if s.step <= 0 {
		s.step = DefaultStep
	}

	if s.rng <= 0 {
		s.rng = DefaultRange
	}

	if s.ellipsoid == nil {
		s.ellipsoid = frame.WGS84{}
	}

	if s.geoid == nil {
		s.geoid = geoid.EGM96{}
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.logger = s.logger.With("logger", "hgt")
	s.tiles = cache.NewWithTTL[*Tile](opts.TTL, s.loadTile)

	return s
}

func (s *Stack) loadTile(name string) (*Tile, error) {
	lat, lon, _, err := topography.ParseTileName(name)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	t, err := ReadTile(filepath.Join(s.dir, name), lat, lon)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("tile loaded", slog.String("name", name), slog.Int("size", t.Size()), slog.Duration("took", time.Since(start)))

	return t, nil
}

// Missing lists the tiles among names that are not in the stack directory.
func (s *Stack) Missing(names []string) []string {
	return tools.MissingFiles(s.dir, names)
}

// Clean drops idle tiles.
func (s *Stack) Clean() {
	s.tiles.Clean()
}

func (s *Stack) Elevation(lat, lon float64) (float64, error) {
	tlat, tlon := topography.TileOf(lat, lon)

	t, err := s.tiles.Load(topography.TileName(tlat, tlon, s.model))
	if err != nil {
		return 0, err
	}

	return t.Elevation(lat, lon), nil
}

// Distance marches every ray in steps and refines the first ground crossing by
// bisection. Rays starting below ground look for the exit and give a negative distance.
func (s *Stack) Distance(r, v, d []float64) ([]float64, error) {
	n := len(d)
	if len(r) != 3*n || len(v) != 3*n {
		return nil, fmt.Errorf("%w: %d positions, %d directions, %d distances", topography.ErrIncompatibleSize, len(r)/3, len(v)/3, n)
	}

	res := make([]float64, n)

	for i := 0; i < n; i++ {
		var (
			ri = [3]float64{r[3*i], r[3*i+1], r[3*i+2]}
			vi = [3]float64{v[3*i], v[3*i+1], v[3*i+2]}
			di = d[i]
		)

		if di <= 0 {
			di = s.rng
		}

		dist, err := s.march(ri, vi, di)
		if err != nil {
			return nil, err
		}

		res[i] = dist
	}

	return res, nil
}

func (s *Stack) march(r, v [3]float64, maxDistance float64) (float64, error) {
	norm := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if norm == 0 {
		return math.NaN(), nil
	}

	for k := range v {
		v[k] /= norm
	}

	at := func(t float64) [3]float64 {
		return [3]float64{r[0] + t*v[0], r[1] + t*v[1], r[2] + t*v[2]}
	}

	a0, err := s.above(r, v)
	if err != nil {
		return 0, err
	}

	if a0.height == 0 {
		return 0, nil
	}

	inside := a0.height < 0
	crossed := func(a float64) bool {
		if inside {
			return a >= 0
		}

		return a <= 0
	}

	for t0 := 0.0; t0 < maxDistance; {
		t1 := math.Min(t0+s.step, maxDistance)

		a1, err := s.above(at(t1), v)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// left the covered area
				return math.NaN(), nil
			}

			return 0, err
		}

		if crossed(a1.height) {
			hit, err := s.bisect(at, v, t0, t1, crossed)
			if err != nil {
				return 0, err
			}

			if inside {
				return -hit, nil
			}

			return hit, nil
		}

		if !inside && a1.clear {
			return math.NaN(), nil
		}

		t0 = t1
	}

	return math.NaN(), nil
}

func (s *Stack) bisect(at func(float64) [3]float64, v [3]float64, t0, t1 float64, crossed func(float64) bool) (float64, error) {
	for k := 0; k < bisections && t1-t0 > 1e-6; k++ {
		tm := (t0 + t1) / 2

		a, err := s.above(at(tm), v)
		if err != nil {
			return 0, err
		}

		if crossed(a.height) {
			t1 = tm
		} else {
			t0 = tm
		}
	}

	return (t0 + t1) / 2, nil
}

type clearance struct {
	// height above ground, negative below
	height float64
	// clear is set when the ray is above any possible ground and not descending
	clear bool
}

func (s *Stack) above(p, v [3]float64) (clearance, error) {
	lat, lon, h := s.ellipsoid.ECEFToGeodetic(p[0], p[1], p[2])

	u, err := s.geoid.Undulation(lat, lon)
	if err != nil {
		return clearance{}, err
	}

	if h-u > ceiling {
		up := s.ellipsoid.DirectionFromHorizontal(lat, lon, 0, 90)
		if up[0]*v[0]+up[1]*v[1]+up[2]*v[2] >= 0 {
			return clearance{height: h - u - ceiling, clear: true}, nil
		}
	}

	z, err := s.Elevation(lat, lon)
	if err != nil {
		return clearance{}, err
	}

	return clearance{height: h - (z + u)}, nil
}
