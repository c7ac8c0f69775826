package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"galaxygenerator/core"
)

// DefaultPath is where the viewer looks for settings when -config is not given
const DefaultPath = "settings.yaml"

type Settings struct {
	Galaxy     GalaxySettings     `yaml:"galaxy"`
	Window     WindowSettings     `yaml:"window"`
	Generation GenerationSettings `yaml:"generation"`
	Server     ServerSettings     `yaml:"server"`
	Logging    LoggingSettings    `yaml:"logging"`
}

// GalaxySettings is the starting parameter set; colors are "#rrggbb"
type GalaxySettings struct {
	Count           int     `yaml:"count"`
	Size            float64 `yaml:"size"`
	Radius          float64 `yaml:"radius"`
	Branches        int     `yaml:"branches"`
	Spin            float64 `yaml:"spin"`
	Randomness      float64 `yaml:"randomness"`
	RandomnessPower float64 `yaml:"randomnessPower"`
	InsideColor     string  `yaml:"insideColor"`
	OutsideColor    string  `yaml:"outsideColor"`
}

type WindowSettings struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

type GenerationSettings struct {
	Workers int    `yaml:"workers"`
	Seed    uint64 `yaml:"seed"` // 0 reseeds every regenerate
}

type ServerSettings struct {
	Enabled        bool            `yaml:"enabled"`
	Addr           string          `yaml:"addr"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	BurstSize         int     `yaml:"burstSize"`
}

type LoggingSettings struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Defaults returns the settings used when no file is present
func Defaults() Settings {
	p := core.DefaultParameters()
	return Settings{
		Galaxy: GalaxySettings{
			Count:           p.Count,
			Size:            p.Size,
			Radius:          p.Radius,
			Branches:        p.Branches,
			Spin:            p.Spin,
			Randomness:      p.Randomness,
			RandomnessPower: p.RandomnessPower,
			InsideColor:     p.InsideColor.Hex(),
			OutsideColor:    p.OutsideColor.Hex(),
		},
		Window: WindowSettings{
			Width:  1280,
			Height: 720,
			Title:  "Galaxy Generator",
			VSync:  true,
		},
		Generation: GenerationSettings{
			Workers: 4,
		},
		Server: ServerSettings{
			Enabled:        false,
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerSecond: 10,
				BurstSize:         20,
			},
		},
		Logging: LoggingSettings{
			Level: "info",
		},
	}
}

// Load reads path over the defaults, then applies .env and GALAXY_*
// environment overrides. A missing file is not an error.
func Load(path string) (*Settings, error) {
	settings := Defaults()

	logger := slog.With("component", "config", "path", path)
	if err := readFile(path, &settings); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		logger.Info("No settings file found, using defaults")
	} else {
		logger.Debug("Loaded settings file")
	}

	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using system environment variables")
	}
	if err := settings.applyEnv(); err != nil {
		return nil, err
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &settings, nil
}

func readFile(path string, settings *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, settings); err != nil {
		return fmt.Errorf("error parsing %s: %w", path, err)
	}
	return nil
}

// LoadGalaxy re-reads only the galaxy section, for hot reload
func LoadGalaxy(path string) (core.ParameterSet, error) {
	settings := Defaults()
	if err := readFile(path, &settings); err != nil {
		return core.ParameterSet{}, err
	}
	return settings.Galaxy.Params()
}

func (s *Settings) applyEnv() error {
	for _, o := range []struct {
		key   string
		apply func(string) error
	}{
		{"GALAXY_LOG_LEVEL", func(v string) error { s.Logging.Level = v; return nil }},
		{"GALAXY_LOG_JSON", func(v string) error { return parseBool(v, &s.Logging.JSON) }},
		{"GALAXY_SERVER_ENABLED", func(v string) error { return parseBool(v, &s.Server.Enabled) }},
		{"GALAXY_SERVER_ADDR", func(v string) error { s.Server.Addr = v; return nil }},
		{"GALAXY_WORKERS", func(v string) error { return parseInt(v, &s.Generation.Workers) }},
		{"GALAXY_SEED", func(v string) error {
			seed, err := strconv.ParseUint(v, 10, 64)
			s.Generation.Seed = seed
			return err
		}},
		{"GALAXY_COUNT", func(v string) error { return parseInt(v, &s.Galaxy.Count) }},
	} {
		v, ok := os.LookupEnv(o.key)
		if !ok || v == "" {
			continue
		}
		if err := o.apply(v); err != nil {
			return fmt.Errorf("%s: %w", o.key, err)
		}
	}
	return nil
}

func parseBool(v string, dst *bool) error {
	b, err := strconv.ParseBool(v)
	*dst = b
	return err
}

func parseInt(v string, dst *int) error {
	n, err := strconv.Atoi(v)
	*dst = n
	return err
}

// Params converts the galaxy section into a ParameterSet
func (g GalaxySettings) Params() (core.ParameterSet, error) {
	inside, err := core.ParseHex(g.InsideColor)
	if err != nil {
		return core.ParameterSet{}, fmt.Errorf("galaxy.insideColor: %w", err)
	}
	outside, err := core.ParseHex(g.OutsideColor)
	if err != nil {
		return core.ParameterSet{}, fmt.Errorf("galaxy.outsideColor: %w", err)
	}
	return core.ParameterSet{
		Count:           g.Count,
		Size:            g.Size,
		Radius:          g.Radius,
		Branches:        g.Branches,
		Spin:            g.Spin,
		Randomness:      g.Randomness,
		RandomnessPower: g.RandomnessPower,
		InsideColor:     inside,
		OutsideColor:    outside,
	}, nil
}

func (s *Settings) Validate() error {
	params, err := s.Galaxy.Params()
	if err != nil {
		return err
	}
	if err := params.CheckDomain(); err != nil {
		return fmt.Errorf("galaxy: %w", err)
	}
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", s.Window.Width, s.Window.Height)
	}
	if s.Generation.Workers < 0 {
		return fmt.Errorf("generation.workers must not be negative")
	}
	if s.Server.Enabled && s.Server.Addr == "" {
		return fmt.Errorf("server.addr is required when the server is enabled")
	}
	if s.Server.RateLimit.Enabled && (s.Server.RateLimit.RequestsPerSecond <= 0 || s.Server.RateLimit.BurstSize <= 0) {
		return fmt.Errorf("server.rateLimit needs positive requestsPerSecond and burstSize")
	}
	switch s.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", s.Logging.Level)
	}
	return nil
}
