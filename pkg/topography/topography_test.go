package topography

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grand-mother/geoframe/pkg/coord"
	"github.com/grand-mother/geoframe/pkg/frame"
	"github.com/grand-mother/geoframe/pkg/geoid"
	"github.com/grand-mother/geoframe/pkg/geomagnet"
)

// memBackend has ground at lat*10 meters and records distance calls.
type memBackend struct {
	calls   int
	r, v, d []float64
	err     error
}

func (m *memBackend) Elevation(lat, _ float64) (float64, error) {
	if m.err != nil {
		return 0, m.err
	}

	return lat * 10, nil
}

func (m *memBackend) Distance(r, v, d []float64) ([]float64, error) {
	m.calls++
	m.r, m.v, m.d = r, v, d

	if m.err != nil {
		return nil, m.err
	}

	res := make([]float64, len(d))
	for i := range res {
		res[i] = float64(i)
	}

	return res, nil
}

func testEnv() *frame.Env {
	return &frame.Env{Geoid: geoid.Constant(0), Geomagnet: geomagnet.Fixed(0)}
}

func points(t *testing.T, n int) frame.ECEF {
	t.Helper()

	x := make([]float64, n)
	for i := range x {
		x[i] = 6378137 + float64(i)
	}

	e, err := frame.NewECEF(x, []float64{0}, []float64{0})
	require.NoError(t, err)

	return e
}

func TestTileName(t *testing.T) {
	assert.Equal(t, "N38E092.SRTMGL1.hgt", TileName(38, 92, DefaultModel))
	assert.Equal(t, "S01W001.SRTMGL1.hgt", TileName(-1, -1, DefaultModel))
	assert.Equal(t, "N00E000.SRTMGL3.hgt", TileName(0, 0, "SRTMGL3"))

	lat, lon := TileOf(-0.5, -179.2)
	assert.Equal(t, -1, lat)
	assert.Equal(t, -180, lon)

	for _, name := range []string{"N38E092.SRTMGL1.hgt", "S01W001.SRTMGL1.hgt"} {
		lat, lon, model, err := ParseTileName(name)
		require.NoError(t, err)
		assert.Equal(t, name, TileName(lat, lon, model))
	}

	for _, name := range []string{"", "N38E092.hgt", "X38E092.SRTMGL1.hgt", "N38E092.SRTMGL1.tif", "NaaE092.SRTMGL1.hgt"} {
		_, _, _, err := ParseTileName(name)
		assert.Error(t, err, name)
	}
}

func TestTilesCovering(t *testing.T) {
	b := orb.Bound{Min: orb.Point{92.2, 38.5}, Max: orb.Point{93.1, 39.2}}

	assert.Equal(t, []string{
		"N38E092.SRTMGL1.hgt",
		"N38E093.SRTMGL1.hgt",
		"N39E092.SRTMGL1.hgt",
		"N39E093.SRTMGL1.hgt",
	}, TilesCovering(b, DefaultModel))

	assert.Equal(t, []string{"N38E092.SRTMGL1.hgt"}, TilesCovering(orb.Point{92.2, 38.5}.Bound(), DefaultModel))
}

func TestTiles(t *testing.T) {
	topo := New(&memBackend{}, Options{Env: testEnv()})

	site, err := frame.NewGeodetic([]float64{38.5}, []float64{92.5}, []float64{0}, coord.Ellipsoid)
	require.NoError(t, err)

	tiles, err := topo.Tiles(site, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"N38E092.SRTMGL1.hgt"}, tiles)

	// about 0.9 degree of latitude and 1.15 of longitude
	tiles, err = topo.Tiles(site, 100000)
	require.NoError(t, err)
	assert.Len(t, tiles, 9)
	assert.Contains(t, tiles, "N37E091.SRTMGL1.hgt")
	assert.Contains(t, tiles, "N39E093.SRTMGL1.hgt")
}

func TestElevation(t *testing.T) {
	reg := prometheus.NewRegistry()
	topo := New(&memBackend{}, Options{Env: testEnv(), Registerer: reg})

	g, err := frame.NewGeodetic([]float64{10, 20, 30}, []float64{5}, []float64{100}, coord.Geoid)
	require.NoError(t, err)

	z, err := topo.Elevation(g)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{100, 200, 300}, z, 1e-9)

	e, err := g.ToECEF(testEnv())
	require.NoError(t, err)

	z, err = topo.Elevation(e)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{100, 200, 300}, z, 1e-6)

	assert.Equal(t, 2.0, testutil.ToFloat64(topo.metrics.queries.WithLabelValues("elevation", "ok")))
}

func TestElevationError(t *testing.T) {
	errBackend := errors.New("no tile")
	topo := New(&memBackend{err: errBackend}, Options{Env: testEnv()})

	_, err := topo.Elevation(points(t, 1))
	assert.Same(t, errBackend, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(topo.metrics.queries.WithLabelValues("elevation", "error")))
}

func TestDistanceBroadcast(t *testing.T) {
	b := &memBackend{}
	topo := New(b, Options{Env: testEnv()})

	dir, err := frame.NewECEF([]float64{0}, []float64{0}, []float64{1})
	require.NoError(t, err)

	d, err := topo.Distance(points(t, 3), dir, []float64{50})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, d)

	assert.Equal(t, 1, b.calls)
	assert.Equal(t, []float64{50, 50, 50}, b.d)
	assert.Equal(t, []float64{0, 0, 1, 0, 0, 1, 0, 0, 1}, b.v)
	assert.Equal(t, 6378139.0, b.r[6])

	d, err = topo.Distance(points(t, 1), dir, nil)
	require.NoError(t, err)
	assert.Len(t, d, 1)
	assert.Equal(t, []float64{0}, b.d)
}

func TestDistanceIncompatibleSize(t *testing.T) {
	b := &memBackend{}
	topo := New(b, Options{Env: testEnv()})

	dirs, err := frame.NewECEF([]float64{0, 0, 0}, []float64{0}, []float64{1})
	require.NoError(t, err)

	_, err = topo.Distance(points(t, 5), dirs, nil)
	assert.ErrorIs(t, err, ErrIncompatibleSize)

	_, err = topo.Distance(points(t, 3), dirs, []float64{1, 2})
	assert.ErrorIs(t, err, ErrIncompatibleSize)
	assert.Equal(t, 0, b.calls)
}

func TestDistanceLTPDirection(t *testing.T) {
	b := &memBackend{}
	env := testEnv()
	topo := New(b, Options{Env: env})

	up := coord.Point(0, 0, 1)

	l, err := frame.NewLTP(env, frame.LTPOptions{Location: frame.SiteOrigin(), Orientation: "ENU", XYZ: &up})
	require.NoError(t, err)

	_, err = topo.Distance(l, l, nil)
	require.NoError(t, err)

	// direction is the local up axis, without the origin
	lat, lon := coord.Radians(frame.SiteLatitude), coord.Radians(frame.SiteLongitude)
	assert.InDeltaSlice(t, []float64{math.Cos(lat) * math.Cos(lon), math.Cos(lat) * math.Sin(lon), math.Sin(lat)}, b.v, 1e-12)

	o := l.Origin()
	assert.InDelta(t, o.X()[0]+b.v[0], b.r[0], 1e-6)
}
