package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/grand-mother/geoframe/internal/config"
	"github.com/grand-mother/geoframe/pkg/coord"
	"github.com/grand-mother/geoframe/pkg/frame"
	"github.com/grand-mother/geoframe/pkg/geoid"
	"github.com/grand-mother/geoframe/pkg/log"
	"github.com/grand-mother/geoframe/pkg/topography"
	"github.com/grand-mother/geoframe/pkg/topography/hgt"
)

var (
	gitRevision = "unknown"
	gitBranch   = "unknown"
)

type App struct {
	cfg    *config.AppConfig
	env    *frame.Env
	stack  *hgt.Stack
	topo   *topography.Topography
	site   frame.Geodetic
	obs    time.Time
	logger *slog.Logger
}

func NewApp(cfg *config.AppConfig, env *frame.Env, reg prometheus.Registerer) (*App, error) {
	lat, lon, h, err := cfg.Site()
	if err != nil {
		return nil, err
	}

	site, err := frame.NewGeodetic([]float64{lat}, []float64{lon}, []float64{h}, coord.Geoid)
	if err != nil {
		return nil, err
	}

	obs, err := cfg.ObsTime()
	if err != nil {
		return nil, err
	}

	app := &App{
		cfg:    cfg,
		env:    env,
		site:   site,
		obs:    obs,
		logger: env.Logger,
	}

	if app.logger == nil {
		app.logger = slog.Default()
	}

	app.stack = hgt.NewStack(hgt.Options{
		Dir:       cfg.DataDir(),
		Model:     cfg.TopographyModel(),
		Step:      cfg.TopographyStep(),
		Range:     cfg.TopographyRange(),
		TTL:       cfg.TileTTL(),
		Ellipsoid: env.Ellipsoid,
		Geoid:     env.Geoid,
		Logger:    app.logger,
	})

	app.topo = topography.New(app.stack, topography.Options{
		Env:        env,
		Model:      cfg.TopographyModel(),
		Registerer: reg,
		Logger:     app.logger,
	})

	return app, nil
}

func (app *App) siteFrame(input frame.Position) (frame.GRANDCS, error) {
	return frame.NewGRANDCS(app.env, frame.GRANDCSOptions{
		Location: app.site,
		MagModel: app.cfg.MagModel(),
		ObsTime:  app.obs,
		Input:    input,
	})
}

func (app *App) cleaner(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.stack.Clean()
		}
	}
}

func main() {
	fmt.Printf("version %s:%s\n", gitBranch, gitRevision)

	conf := flag.String("config", "geoframe.yml", "name of config file")
	debug := flag.Bool("debug", false, "debug")
	flag.Parse()

	cfg := config.NewAppConfig()
	cfg.Load(*conf)

	if err := cfg.LoadEnv(config.EnvPrefix); err != nil {
		fmt.Printf("error loading env: %s", err.Error())
		return
	}

	level := cfg.LogLevel()
	if *debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(log.NewHandler(os.Stdout, cfg.LogFormat(), &slog.HandlerOptions{Level: level})))

	if err := geoid.Preload(); err != nil {
		slog.Error("geoid error", slog.Any("error", err))
		return
	}

	env := frame.DefaultEnv()

	app, err := NewApp(cfg, env, prometheus.DefaultRegisterer)
	if err != nil {
		slog.Error("config error", slog.Any("error", err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	go app.cleaner(ctx)

	api := NewAPI(app, cfg.APIAddr())

	go func() {
		app.logger.Info("listening " + api.Address())

		if err := api.Listen(); err != nil {
			app.logger.Error("api error", slog.Any("error", err))
			cancel()
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-c:
	case <-ctx.Done():
	}

	cancel()
	_ = api.Shutdown()
}
