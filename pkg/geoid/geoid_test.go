package geoid

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstant(t *testing.T) {
	var m Model = Constant(-32.5)

	u, err := m.Undulation(38.88849, 92.28605)
	require.NoError(t, err)
	assert.Equal(t, -32.5, u)
}

func TestFunc(t *testing.T) {
	m := Func(func(lat, lon float64) (float64, error) {
		if lat > 90 {
			return 0, errors.New("bad latitude")
		}

		return lat + lon, nil
	})

	u, err := m.Undulation(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3.0, u)

	_, err = m.Undulation(91, 0)
	assert.Error(t, err)
}

func TestNormalizeLongitude(t *testing.T) {
	tests := []struct {
		lon, want float64
	}{
		{0, 0},
		{92.28605, 92.28605},
		{-100, 260},
		{-180, 180},
		{180, 180},
		{360, 0},
		{-360, 0},
		{725, 5},
		{-1e-20, 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizeLongitude(tt.lon), 1e-9, tt.lon)
	}
}

func TestEGM96(t *testing.T) {
	if err := Preload(); err != nil {
		t.Skipf("egm96 grid not available: %v", err)
	}

	tests := []struct {
		name     string
		lat, lon float64
		min, max float64
	}{
		{"indian ocean low", 4.7, 78.8, -110, -95},
		{"new guinea high", -8.4, 147.4, 70, 90},
		{"grand site", 38.88849, 92.28605, -65, -45},
		{"north america", 40, -100, -35, -15},
		{"antimeridian west", 0, -180, -10, 40},
		{"antimeridian east", 0, 180, -10, 40},
		{"north pole", 90, 0, 5, 25},
		{"south pole", -90, 0, -40, -20},
		{"south pole other side", -90, -135, -40, -20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := EGM96{}.Undulation(tt.lat, tt.lon)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, u, tt.min)
			assert.LessOrEqual(t, u, tt.max)
		})
	}
}

func TestEGM96Longitudes(t *testing.T) {
	if err := Preload(); err != nil {
		t.Skipf("egm96 grid not available: %v", err)
	}

	for _, lat := range []float64{-45, 0, 38.88849} {
		west, err := EGM96{}.Undulation(lat, -100)
		require.NoError(t, err)

		east, err := EGM96{}.Undulation(lat, 260)
		require.NoError(t, err)
		assert.Equal(t, east, west)

		a, err := EGM96{}.Undulation(lat, -180)
		require.NoError(t, err)

		b, err := EGM96{}.Undulation(lat, 180)
		require.NoError(t, err)
		assert.InDelta(t, a, b, 1e-9)
	}

	_, err := EGM96{}.Undulation(91, 0)
	assert.Error(t, err)
}

func TestEGM96Concurrent(t *testing.T) {
	want, err := EGM96{}.Undulation(38.88849, 92.28605)
	if err != nil {
		t.Skipf("egm96 grid not available: %v", err)
	}

	var wg sync.WaitGroup

	res := make([]float64, 64)
	for i := range res {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			res[i], _ = EGM96{}.Undulation(38.88849, 92.28605)
		}(i)
	}

	wg.Wait()

	for _, u := range res {
		assert.Equal(t, want, u)
	}
}
