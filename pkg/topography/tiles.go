package topography

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

const DefaultModel = "SRTMGL1"

// TileName returns the file name of the one degree tile whose south-west corner is
// at lat, lon, e.g. N38E092.SRTMGL1.hgt.
func TileName(lat, lon int, model string) string {
	ns, ew := 'N', 'E'

	if lat < 0 {
		ns, lat = 'S', -lat
	}

	if lon < 0 {
		ew, lon = 'W', -lon
	}

	return fmt.Sprintf("%c%02d%c%03d.%s.hgt", ns, lat, ew, lon, model)
}

// TileOf returns the south-west corner of the tile holding a point.
func TileOf(lat, lon float64) (int, int) {
	return int(math.Floor(lat)), int(math.Floor(lon))
}

// TilesCovering lists the tiles intersecting the bound, west to east then south to north.
func TilesCovering(b orb.Bound, model string) []string {
	lat0, lon0 := TileOf(b.Min.Lat(), b.Min.Lon())
	lat1, lon1 := TileOf(b.Max.Lat(), b.Max.Lon())

	res := make([]string, 0, (lat1-lat0+1)*(lon1-lon0+1))

	for lat := lat0; lat <= lat1; lat++ {
		for lon := lon0; lon <= lon1; lon++ {
			res = append(res, TileName(lat, lon, model))
		}
	}

	return res
}

// ParseTileName is the inverse of TileName.
func ParseTileName(name string) (lat, lon int, model string, err error) {
	base, ok := strings.CutSuffix(name, ".hgt")
	if !ok || len(base) < 9 || base[7] != '.' {
		return 0, 0, "", fmt.Errorf("bad tile name %q", name)
	}

	if lat, err = strconv.Atoi(base[1:3]); err != nil {
		return 0, 0, "", fmt.Errorf("bad tile name %q: %w", name, err)
	}

	if lon, err = strconv.Atoi(base[4:7]); err != nil {
		return 0, 0, "", fmt.Errorf("bad tile name %q: %w", name, err)
	}

	switch base[0] {
	case 'N':
	case 'S':
		lat = -lat
	default:
		return 0, 0, "", fmt.Errorf("bad tile name %q", name)
	}

	switch base[3] {
	case 'E':
	case 'W':
		lon = -lon
	default:
		return 0, 0, "", fmt.Errorf("bad tile name %q", name)
	}

	return lat, lon, base[8:], nil
}
