package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beetlebugorg/gmlbound/pkg/gmlbound"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ScaleFactor != gmlbound.DefaultScaleFactor {
		t.Fatalf("expected default scale factor, got %f", cfg.ScaleFactor)
	}
	if cfg.FontPoint != 6 || cfg.StrokePoint != 1 || cfg.FontType != "ShinGoPro-Medium" {
		t.Fatalf("unexpected font defaults %+v", cfg)
	}
	if !cfg.NormalizeText {
		t.Fatalf("expected normalize_text on by default")
	}
	if cfg.Projection != ProjectionSeries {
		t.Fatalf("expected series projection, got %s", cfg.Projection)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "gmlbound.yaml", `
scale_factor: 0.5
font_point: 8
font_type: KozGoPr6N-Regular
normalize_text: false
projection: precise
log_format: json
workers: 3
colors:
  box_stroke: [0, 0, 0, 80]
zone_offsets:
  "2451": {x: 10, y: 20}
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ScaleFactor != 0.5 || cfg.FontPoint != 8 || cfg.FontType != "KozGoPr6N-Regular" {
		t.Fatalf("unexpected sizing %+v", cfg)
	}
	if cfg.StrokePoint != 1 {
		t.Fatalf("expected stroke default to survive, got %f", cfg.StrokePoint)
	}
	if cfg.NormalizeText {
		t.Fatalf("expected normalize_text false")
	}
	if cfg.Projection != ProjectionPrecise || cfg.LogFormat != "json" || cfg.Workers != 3 {
		t.Fatalf("unexpected settings %+v", cfg)
	}
	if cfg.Colors.BoxStroke != (gmlbound.Color{K: 80}) {
		t.Fatalf("expected box stroke override, got %+v", cfg.Colors.BoxStroke)
	}
	if cfg.Colors.AreaStroke != (gmlbound.Color{C: 100, M: 100}) {
		t.Fatalf("expected area stroke default, got %+v", cfg.Colors.AreaStroke)
	}
	if cfg.ZoneOffsets["2451"] != (gmlbound.Offset{X: 10, Y: 20}) {
		t.Fatalf("expected zone offset override, got %+v", cfg.ZoneOffsets)
	}

	opts := cfg.Options(nil)
	if opts.Projection == nil || opts.ZoneOffsets["2451"].X != 10 {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"bad color length", "colors:\n  font: [1, 2]\n", "colors.font"},
		{"unknown color", "colors:\n  sky: [0, 0, 0, 0]\n", "colors.sky"},
		{"color range", "colors:\n  font: [0, 0, 0, 120]\n", "colors.font"},
		{"unknown zone", "zone_offsets:\n  \"9999\": {x: 1, y: 1}\n", "zone_offsets.9999"},
		{"bad projection", "projection: mercator\n", "projection"},
		{"negative scale", "scale_factor: -1\n", "scale_factor"},
		{"bad log format", "log_format: xml\n", "log_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bad.yaml", tt.body)
			_, err := Load(path)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !IsKind(err, KindInvalidConfig) {
				t.Fatalf("expected invalid_config, got %v", err)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig in chain, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Fatalf("expected field %s in error, got %v", tt.field, err)
			}
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeFile(t, "broken.yaml", "scale_factor: [\n")
	_, err := Load(path)
	if !IsKind(err, KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected path in error, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !IsKind(err, KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	path := writeFile(t, "gmlbound.yaml", "font_point: 8\nworkers: 2\n")
	t.Setenv("GMLBOUND_FONT_POINT", "10")
	t.Setenv("GMLBOUND_NORMALIZE_TEXT", "false")
	t.Setenv("GMLBOUND_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.FontPoint != 10 {
		t.Fatalf("expected env font point 10, got %f", cfg.FontPoint)
	}
	if cfg.Workers != 2 {
		t.Fatalf("expected yaml workers 2, got %d", cfg.Workers)
	}
	if cfg.NormalizeText || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected env overrides %+v", cfg)
	}
}

func TestEnvInvalid(t *testing.T) {
	t.Setenv("GMLBOUND_WORKERS", "many")
	_, err := Load("")
	if !IsKind(err, KindInvalidConfig) || !strings.Contains(err.Error(), "GMLBOUND_WORKERS") {
		t.Fatalf("expected invalid GMLBOUND_WORKERS, got %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	const key = "GMLBOUND_FONT_TYPE"
	if _, set := os.LookupEnv(key); set {
		t.Skipf("%s already set", key)
	}
	t.Cleanup(func() { os.Unsetenv(key) })

	path := writeFile(t, ".env", key+"=FromDotEnv\n")
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env"), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.FontType != "FromDotEnv" {
		t.Fatalf("expected font type from .env, got %q", cfg.FontType)
	}
}

func TestDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	t.Setenv("GMLBOUND_PROJECTION", "precise")
	path := writeFile(t, ".env", "GMLBOUND_PROJECTION=series\n")
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Projection != ProjectionPrecise {
		t.Fatalf("expected environment to win, got %s", cfg.Projection)
	}
}
