package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/grand-mother/geoframe/pkg/coord"
)

const EnvPrefix = "GEOFRAME_"

type AppConfig struct {
	k *koanf.Koanf
}

func NewAppConfig() *AppConfig {
	c := &AppConfig{k: koanf.New(".")}

	setDefaults(c.k)

	return c
}

func (c *AppConfig) Load(filename ...string) bool {
	loaded := false

	for _, name := range filename {
		if err := c.k.Load(file.Provider(name), yaml.Parser()); err != nil {
			slog.Info(fmt.Sprintf("error loading config: %s", err.Error()))
		} else {
			loaded = true
		}
	}

	return loaded
}

// LoadEnv maps GEOFRAME_SITE_LOCATION to site.location and so on.
func (c *AppConfig) LoadEnv(prefix string) error {
	return c.k.Load(env.Provider(prefix, ".", func(s string) string {
		s1 := strings.ToLower(strings.TrimPrefix(s, prefix))
		for _, pr := range []string{"topography_", "site_", "magnetic_", "log_"} {
			if strings.HasPrefix(s1, pr) {
				slog.Info("ENV param: " + strings.Replace(s1, "_", ".", 1))
				return strings.Replace(s1, "_", ".", 1)
			}
		}
		slog.Info("ENV param: " + s1)

		return s1
	}), nil)
}

func (c *AppConfig) Bool(key string) bool {
	return c.k.Bool(key)
}

func (c *AppConfig) String(key string) string {
	return c.k.String(key)
}

func (c *AppConfig) Float64(key string) float64 {
	return c.k.Float64(key)
}

func (c *AppConfig) Int(key string) int {
	return c.k.Int(key)
}

func (c *AppConfig) Set(key string, v any) error {
	return c.k.Set(key, v)
}

func (c *AppConfig) APIAddr() string {
	return c.k.String("api_addr")
}

func (c *AppConfig) DataDir() string {
	return c.k.String("data_dir")
}

func (c *AppConfig) TopographyModel() string {
	return c.k.String("topography.model")
}

func (c *AppConfig) TopographyStep() float64 {
	return c.k.Float64("topography.step")
}

func (c *AppConfig) TopographyRange() float64 {
	return c.k.Float64("topography.range")
}

func (c *AppConfig) TileTTL() time.Duration {
	return c.k.Duration("topography.tile_ttl")
}

// Site returns the configured site origin, height above the geoid.
func (c *AppConfig) Site() (lat, lon, height float64, err error) {
	lat, lon, err = coord.StringToLatLon(c.k.String("site.location"))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("site.location: %w", err)
	}

	return lat, lon, c.k.Float64("site.height"), nil
}

func (c *AppConfig) MagModel() string {
	return c.k.String("magnetic.model")
}

func (c *AppConfig) ObsTime() (time.Time, error) {
	s := c.k.String("magnetic.obstime")

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("magnetic.obstime: %w", err)
	}

	return t, nil
}

func (c *AppConfig) LogLevel() slog.Level {
	var l slog.Level

	if err := l.UnmarshalText([]byte(c.k.String("log.level"))); err != nil {
		return slog.LevelInfo
	}

	return l
}

func (c *AppConfig) LogFormat() string {
	return c.k.String("log.format")
}

func setDefaults(k *koanf.Koanf) {
	k.Set("api_addr", ":8080")
	k.Set("data_dir", "data/topography")

	k.Set("topography.model", "SRTMGL1")
	k.Set("topography.step", 10.0)
	k.Set("topography.range", 50000.0)
	k.Set("topography.tile_ttl", "0s")

	k.Set("site.location", "38.88849N 92.28605E")
	k.Set("site.height", 2920.522)

	k.Set("magnetic.model", "WMM")
	k.Set("magnetic.obstime", "2020-01-01")

	k.Set("log.level", "info")
	k.Set("log.format", "text")
}
