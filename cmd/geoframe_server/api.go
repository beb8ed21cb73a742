package main

import (
	"errors"
	"io/fs"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/grand-mother/geoframe/pkg/coord"
	"github.com/grand-mother/geoframe/pkg/frame"
	"github.com/grand-mother/geoframe/pkg/log"
	"github.com/grand-mother/geoframe/pkg/topography"
)

type API struct {
	f    *fiber.App
	addr string
}

func NewAPI(app *App, addr string) *API {
	api := &API{addr: addr}

	api.f = fiber.New(fiber.Config{EnablePrintRoutes: false, DisableStartupMessage: true, ErrorHandler: errorHandler})

	api.f.Use(log.NewFiberLogger(&log.LoggerConfig{Name: "api", Logger: app.logger, DoMetrics: true, LogErrorsOnly: true}))

	api.f.Get("/api/elevation", getElevationHandler(app))
	api.f.Get("/api/distance", getDistanceHandler(app))
	api.f.Get("/api/tiles", getTilesHandler(app))
	api.f.Get("/api/grandcs", getGrandcsHandler(app))
	api.f.Get("/api/geodetic", getGeodeticHandler(app))
	api.f.Get("/metrics", getMetricsHandler())

	return api
}

func (api *API) Address() string {
	return api.addr
}

func (api *API) Listen() error {
	return api.f.Listen(api.addr)
}

func (api *API) Shutdown() error {
	return api.f.Shutdown()
}

func getMetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(
		prometheus.DefaultGatherer,
		promhttp.HandlerOpts{DisableCompression: true},
	))
}

// queryFloat reads a float query parameter. A missing parameter gives def, or an
// error when def is nil.
func queryFloat(ctx *fiber.Ctx, name string, def *float64) (float64, error) {
	s := ctx.Query(name)
	if s == "" {
		if def == nil {
			return 0, fiber.NewError(fiber.StatusBadRequest, "missing parameter "+name)
		}

		return *def, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fiber.NewError(fiber.StatusBadRequest, "bad parameter "+name)
	}

	return v, nil
}

func queryFloats(ctx *fiber.Ctx, names ...string) ([]float64, error) {
	res := make([]float64, len(names))

	for i, name := range names {
		v, err := queryFloat(ctx, name, nil)
		if err != nil {
			return nil, err
		}

		res[i] = v
	}

	return res, nil
}

func queryReference(ctx *fiber.Ctx) (coord.Reference, error) {
	ref, err := coord.ParseReference(ctx.Query("ref"))
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return ref, nil
}

// queryPosition reads lat, lon and an optional height into a single geodetic point.
func queryPosition(ctx *fiber.Ctx) (frame.Geodetic, error) {
	v, err := queryFloats(ctx, "lat", "lon")
	if err != nil {
		return frame.Geodetic{}, err
	}

	zero := 0.0

	h, err := queryFloat(ctx, "height", &zero)
	if err != nil {
		return frame.Geodetic{}, err
	}

	ref, err := queryReference(ctx)
	if err != nil {
		return frame.Geodetic{}, err
	}

	if math.Abs(v[0]) > 90 || math.Abs(v[1]) > 180 {
		return frame.Geodetic{}, fiber.NewError(fiber.StatusBadRequest, "coordinates out of range")
	}

	return frame.NewGeodetic([]float64{v[0]}, []float64{v[1]}, []float64{h}, ref)
}

// nullable turns NaN into a JSON null.
func nullable(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}

	return &v
}

func getElevationHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		pos, err := queryPosition(ctx)
		if err != nil {
			return err
		}

		z, err := app.topo.Elevation(pos)
		if err != nil {
			return err
		}

		return ctx.JSON(fiber.Map{
			"lat":       pos.Latitude()[0],
			"lon":       pos.Longitude()[0],
			"elevation": z[0],
		})
	}
}

func getDistanceHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		pos, err := queryPosition(ctx)
		if err != nil {
			return err
		}

		dir, err := queryFloats(ctx, "az", "el")
		if err != nil {
			return err
		}

		zero := 0.0

		maxDistance, err := queryFloat(ctx, "max", &zero)
		if err != nil {
			return err
		}

		hv, err := frame.NewHorizontalVector(app.env, dir[:1], dir[1:], nil, pos)
		if err != nil {
			return err
		}

		d, err := app.topo.Distance(pos, hv, []float64{maxDistance})
		if err != nil {
			return err
		}

		return ctx.JSON(fiber.Map{
			"distance": nullable(d[0]),
		})
	}
}

func getTilesHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		pos, err := queryPosition(ctx)
		if err != nil {
			return err
		}

		zero := 0.0

		radius, err := queryFloat(ctx, "radius", &zero)
		if err != nil {
			return err
		}

		tiles, err := app.topo.Tiles(pos, radius)
		if err != nil {
			return err
		}

		return ctx.JSON(fiber.Map{
			"model":   app.topo.Model(),
			"tiles":   tiles,
			"missing": app.stack.Missing(tiles),
		})
	}
}

func getGrandcsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		pos, err := queryPosition(ctx)
		if err != nil {
			return err
		}

		g, err := app.siteFrame(pos)
		if err != nil {
			return err
		}

		xyz := g.At(0)

		return ctx.JSON(fiber.Map{
			"x":           xyz[0],
			"y":           xyz[1],
			"z":           xyz[2],
			"declination": g.Declination(),
		})
	}
}

func getGeodeticHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		v, err := queryFloats(ctx, "x", "y", "z")
		if err != nil {
			return err
		}

		ref, err := queryReference(ctx)
		if err != nil {
			return err
		}

		g, err := frame.ECEFPoint(v[0], v[1], v[2]).ToGeodetic(app.env, ref)
		if err != nil {
			return err
		}

		return ctx.JSON(fiber.Map{
			"lat":       g.Latitude()[0],
			"lon":       g.Longitude()[0],
			"height":    g.Height()[0],
			"reference": g.Reference().String(),
		})
	}
}

func errorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, topography.ErrIncompatibleSize), errors.Is(err, coord.ErrShapeMismatch):
		code = fiber.StatusBadRequest
	case errors.Is(err, fs.ErrNotExist):
		code = fiber.StatusNotFound
	}

	return ctx.Status(code).JSON(fiber.Map{"error": err.Error()})
}
