package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testData struct {
	s    string
	x, y float64
}

func TestStringConvert(t *testing.T) {
	data := []testData{
		{"38.88849 92.28605", 38.88849, 92.28605},
		{"51.49,  -35.14", 51.49, -35.14},
		{"51.49;35.14", 51.49, 35.14},
		{"38.88849N 92.28605E", 38.88849, 92.28605},
		{"51.49N,  35.14w", 51.49, -35.14},
		{"12.5s 0.25E", -12.5, 0.25},
	}

	for _, d := range data {
		lat, lon, err := StringToLatLon(d.s)
		require.NoError(t, err, d.s)
		assert.Equal(t, d.x, lat)
		assert.Equal(t, d.y, lon)
	}
}

func TestStringConvertErrors(t *testing.T) {
	for _, s := range []string{"", "abc", "95.0 10.0", "10.0 190.0", "x5709130 y6648746"} {
		_, _, err := StringToLatLon(s)
		assert.Error(t, err, s)
	}
}
