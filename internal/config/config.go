// Package config loads processor settings from YAML, .env files and the
// environment.
//
// Precedence, lowest first: built-in defaults, the YAML file, variables
// from .env files, then GMLBOUND_* variables already in the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/beetlebugorg/gmlbound/internal/geodesy"
	"github.com/beetlebugorg/gmlbound/pkg/gmlbound"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GMLBOUND_"

// Projection names accepted by the projection key.
const (
	ProjectionSeries  = "series"
	ProjectionPrecise = "precise"
)

// Config is the resolved configuration.
type Config struct {
	ScaleFactor   float64
	FontPoint     float64
	FontType      string
	StrokePoint   float64
	Colors        gmlbound.Palette
	Projection    string
	NormalizeText bool
	ZoneOffsets   map[string]gmlbound.Offset
	LogLevel      string
	LogFormat     string
	Workers       int
}

// Default returns the built-in configuration.
func Default() Config {
	opts := gmlbound.DefaultOptions()
	return Config{
		ScaleFactor:   opts.ScaleFactor,
		FontPoint:     opts.FontPoint,
		FontType:      opts.FontType,
		StrokePoint:   opts.StrokePoint,
		Colors:        opts.Colors,
		Projection:    ProjectionSeries,
		NormalizeText: opts.NormalizeText,
		LogLevel:      "info",
		LogFormat:     "text",
		Workers:       0,
	}
}

// Load resolves configuration from an optional YAML file and the environment.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, &OpError{
				Op:   "config.load",
				Kind: KindNotFound,
				Path: path,
				Err:  err,
			}
		}

		var dto YAMLConfig
		if err := yaml.Unmarshal(b, &dto); err != nil {
			return Config{}, &OpError{
				Op:   "config.load",
				Kind: KindInvalidConfig,
				Path: path,
				Err:  err,
			}
		}

		if err := apply(&cfg, path, dto); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotEnv loads variables from .env files into the process environment.
// Missing files are ignored; variables already set are kept.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return &OpError{Op: "config.dotenv", Kind: KindInvalidConfig, Path: f, Err: err}
		}
	}
	return nil
}

// colorFields maps YAML color names onto palette entries.
var colorFields = map[string]func(*gmlbound.Palette) *gmlbound.Color{
	"area_stroke": func(p *gmlbound.Palette) *gmlbound.Color { return &p.AreaStroke },
	"area_fill":   func(p *gmlbound.Palette) *gmlbound.Color { return &p.AreaFill },
	"font":        func(p *gmlbound.Palette) *gmlbound.Color { return &p.Font },
	"box_fill":    func(p *gmlbound.Palette) *gmlbound.Color { return &p.BoxFill },
	"box_stroke":  func(p *gmlbound.Palette) *gmlbound.Color { return &p.BoxStroke },
}

func apply(cfg *Config, path string, dto YAMLConfig) error {
	if dto.ScaleFactor != nil {
		cfg.ScaleFactor = *dto.ScaleFactor
	}
	if dto.FontPoint != nil {
		cfg.FontPoint = *dto.FontPoint
	}
	if strings.TrimSpace(dto.FontType) != "" {
		cfg.FontType = dto.FontType
	}
	if dto.StrokePoint != nil {
		cfg.StrokePoint = *dto.StrokePoint
	}
	if dto.Projection != "" {
		cfg.Projection = strings.ToLower(dto.Projection)
	}
	if dto.NormalizeText != nil {
		cfg.NormalizeText = *dto.NormalizeText
	}
	if dto.LogLevel != "" {
		cfg.LogLevel = dto.LogLevel
	}
	if dto.LogFormat != "" {
		cfg.LogFormat = strings.ToLower(dto.LogFormat)
	}
	if dto.Workers != nil {
		cfg.Workers = *dto.Workers
	}

	// Sorted so the first reported error is stable.
	names := make([]string, 0, len(dto.Colors))
	for name := range dto.Colors {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		field, ok := colorFields[name]
		if !ok {
			return invalidField(path, "colors."+name, "unknown color")
		}
		cmyk := dto.Colors[name]
		if len(cmyk) != 4 {
			return invalidField(path, "colors."+name, "expected [c, m, y, k]")
		}
		for _, v := range cmyk {
			if v < 0 || v > 100 {
				return invalidField(path, "colors."+name, "components must be within 0..100")
			}
		}
		*field(&cfg.Colors) = gmlbound.Color{C: cmyk[0], M: cmyk[1], Y: cmyk[2], K: cmyk[3]}
	}

	if len(dto.ZoneOffsets) > 0 {
		cfg.ZoneOffsets = make(map[string]gmlbound.Offset, len(dto.ZoneOffsets))
		for code, off := range dto.ZoneOffsets {
			if _, known := geodesy.ResolveZone(code); !known {
				return invalidField(path, "zone_offsets."+code, "unknown EPSG zone code")
			}
			cfg.ZoneOffsets[code] = gmlbound.Offset{X: off.X, Y: off.Y}
		}
	}
	return nil
}

func applyEnv(cfg *Config) error {
	floats := []struct {
		key string
		dst *float64
	}{
		{"SCALE_FACTOR", &cfg.ScaleFactor},
		{"FONT_POINT", &cfg.FontPoint},
		{"STROKE_POINT", &cfg.StrokePoint},
	}
	for _, f := range floats {
		v, ok := lookup(f.key)
		if !ok {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return invalidField(EnvPrefix+f.key, f.key, "not a number")
		}
		*f.dst = n
	}

	if v, ok := lookup("FONT_TYPE"); ok {
		cfg.FontType = v
	}
	if v, ok := lookup("PROJECTION"); ok {
		cfg.Projection = strings.ToLower(v)
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup("LOG_FORMAT"); ok {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v, ok := lookup("NORMALIZE_TEXT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return invalidField(EnvPrefix+"NORMALIZE_TEXT", "NORMALIZE_TEXT", "not a boolean")
		}
		cfg.NormalizeText = b
	}
	if v, ok := lookup("WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return invalidField(EnvPrefix+"WORKERS", "WORKERS", "not an integer")
		}
		cfg.Workers = n
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.ScaleFactor <= 0:
		return invalidField("", "scale_factor", "must be positive")
	case c.FontPoint <= 0:
		return invalidField("", "font_point", "must be positive")
	case c.StrokePoint <= 0:
		return invalidField("", "stroke_point", "must be positive")
	case c.Workers < 0:
		return invalidField("", "workers", "must not be negative")
	}
	if c.Projection != ProjectionSeries && c.Projection != ProjectionPrecise {
		return invalidField("", "projection", fmt.Sprintf("expected %s or %s, got %q", ProjectionSeries, ProjectionPrecise, c.Projection))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return invalidField("", "log_format", fmt.Sprintf("expected text or json, got %q", c.LogFormat))
	}
	return nil
}

// Options converts the configuration into processor options.
func (c Config) Options(log *slog.Logger) gmlbound.Options {
	opts := gmlbound.Options{
		ScaleFactor:   c.ScaleFactor,
		FontPoint:     c.FontPoint,
		FontType:      c.FontType,
		StrokePoint:   c.StrokePoint,
		Colors:        c.Colors,
		NormalizeText: c.NormalizeText,
		ZoneOffsets:   c.ZoneOffsets,
		Logger:        log,
	}
	if c.Projection == ProjectionPrecise {
		opts.Projection = gmlbound.PreciseProjection()
	} else {
		opts.Projection = gmlbound.SeriesProjection()
	}
	return opts
}
