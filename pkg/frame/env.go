package frame

import (
	"log/slog"

	"github.com/grand-mother/geoframe/pkg/geoid"
	"github.com/grand-mother/geoframe/pkg/geomagnet"
)

// Env bundles the collaborators every frame conversion needs. A nil Env or nil
// field falls back to WGS84, EGM96, WMM and the default logger.
type Env struct {
	Ellipsoid Ellipsoid
	Geoid     geoid.Model
	Geomagnet geomagnet.Model
	Logger    *slog.Logger
}

func DefaultEnv() *Env {
	return &Env{
		Ellipsoid: WGS84{},
		Geoid:     geoid.EGM96{},
		Geomagnet: geomagnet.WMM{Logger: slog.Default().With("logger", "geomagnet")},
		Logger:    slog.Default(),
	}
}

func (e *Env) ellipsoid() Ellipsoid {
	if e == nil || e.Ellipsoid == nil {
		return WGS84{}
	}

	return e.Ellipsoid
}

func (e *Env) geoid() geoid.Model {
	if e == nil || e.Geoid == nil {
		return geoid.EGM96{}
	}

	return e.Geoid
}

func (e *Env) geomagnet() geomagnet.Model {
	if e == nil || e.Geomagnet == nil {
		return geomagnet.WMM{}
	}

	return e.Geomagnet
}

func (e *Env) logger() *slog.Logger {
	if e == nil || e.Logger == nil {
		return slog.Default()
	}

	return e.Logger
}

// Position is anything that can be located in ECEF.
type Position interface {
	ToECEF(env *Env) (ECEF, error)
	Len() int
}

// Direction is anything that can be expressed as an ECEF vector without an origin.
type Direction interface {
	ECEFDirection() ECEF
	Len() int
}
