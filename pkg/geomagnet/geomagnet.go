// Package geomagnet evaluates geomagnetic field models for the magnetic declination
// used by magnetic local frames.
package geomagnet

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/westphae/geomag/pkg/egm96"
	"github.com/westphae/geomag/pkg/wmm"

	"github.com/grand-mother/geoframe/pkg/geoid"
)

var ErrUnknownModel = errors.New("unknown geomagnetic model")

// wmmMu serializes wmm evaluations: the library keeps the last location and field in
// package variables, shared by every WMM value.
var wmmMu sync.Mutex

// Model returns the declination in degrees, east positive, at a geodetic position
// with ellipsoid height h in meters.
type Model interface {
	Declination(lat, lon, h float64, model string, t time.Time) (float64, error)
}

// WMM is the World Magnetic Model. The model name must be "WMM" (any case) or empty.
// It is safe for concurrent use.
type WMM struct {
	Logger *slog.Logger
}

func (w WMM) Declination(lat, lon, h float64, model string, t time.Time) (float64, error) {
	if model != "" && !strings.EqualFold(model, "WMM") {
		return 0, fmt.Errorf("%w: %s", ErrUnknownModel, model)
	}

	if err := geoid.Preload(); err != nil {
		return 0, err
	}

	d, err := declination(lat, lon, h, t)
	if err != nil {
		return 0, fmt.Errorf("wmm at %g,%g,%g on %s: %w", lat, lon, h, t.Format(time.DateOnly), err)
	}

	if w.Logger != nil {
		w.Logger.Debug("declination", slog.Float64("lat", lat), slog.Float64("lon", lon), slog.Float64("declination", d))
	}

	return d, nil
}

func declination(lat, lon, h float64, t time.Time) (float64, error) {
	wmmMu.Lock()
	defer wmmMu.Unlock()

	field, err := wmm.CalculateWMMMagneticField(egm96.NewLocationGeodetic(lat, geoid.NormalizeLongitude(lon), h), t)
	if err != nil {
		return 0, err
	}

	return field.D(), nil
}

// Fixed returns the same declination everywhere, for any model.
type Fixed float64

func (f Fixed) Declination(_, _, _ float64, _ string, _ time.Time) (float64, error) {
	return float64(f), nil
}
