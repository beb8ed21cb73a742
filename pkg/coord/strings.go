package coord

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	r1 = regexp.MustCompile(`^(?P<x>-?\d+(?:\.\d+)?)[;,\s]+(?P<y>-?\d+(?:\.\d+)?)$`)
	r2 = regexp.MustCompile(`^(?P<x>\d+(?:\.\d+)?)\s*([nNsS])[;,\s]*(?P<y>\d+(?:\.\d+)?)\s*([eEwW])$`)
)

// StringToLatLon parses "38.888 92.286", "38.888, -92.286" or "38.888N 92.286E".
func StringToLatLon(s string) (float64, float64, error) {
	s = strings.Trim(s, " \t\n\r.,")

	if r1.MatchString(s) {
		res := r1.FindStringSubmatch(s)

		lat, err := strconv.ParseFloat(res[1], 64)
		if err != nil {
			return 0, 0, err
		}

		lon, err := strconv.ParseFloat(res[2], 64)
		if err != nil {
			return 0, 0, err
		}

		return checkLatLon(lat, lon)
	}

	if r2.MatchString(s) {
		res := r2.FindStringSubmatch(s)

		lat, err := strconv.ParseFloat(res[1], 64)
		if err != nil {
			return 0, 0, err
		}

		if res[2] == "S" || res[2] == "s" {
			lat = -lat
		}

		lon, err := strconv.ParseFloat(res[3], 64)
		if err != nil {
			return 0, 0, err
		}

		if res[4] == "W" || res[4] == "w" {
			lon = -lon
		}

		return checkLatLon(lat, lon)
	}

	return 0, 0, fmt.Errorf("can't parse location %q", s)
}

func checkLatLon(lat, lon float64) (float64, float64, error) {
	if lat < -90 || lat > 90 {
		return 0, 0, fmt.Errorf("latitude %g out of range", lat)
	}

	if lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("longitude %g out of range", lon)
	}

	return lat, lon, nil
}
