// Package config loads imgfilter.yaml, the optional CLI configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vearutop/imgfilter"
	"github.com/vearutop/imgfilter/surface"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when no path is given.
const DefaultPath = "imgfilter.yaml"

// Config represents imgfilter.yaml. Missing values keep filter defaults.
type Config struct {
	Surface    SurfaceConfig    `yaml:"surface"`
	Threshold  ThresholdConfig  `yaml:"threshold"`
	Pixelate   PixelateConfig   `yaml:"pixelate"`
	Brightness BrightnessConfig `yaml:"brightness"`
	Contrast   BetaConfig       `yaml:"contrast"`
	Saturation BetaConfig       `yaml:"saturation"`
	Gamma      GammaConfig      `yaml:"gamma"`
}

// SurfaceConfig controls the drawing surface used for I/O and pixelation.
type SurfaceConfig struct {
	Smoothing bool   `yaml:"smoothing,omitempty"`
	Scaler    string `yaml:"scaler,omitempty"`
}

// ThresholdConfig contains threshold levels.
type ThresholdConfig struct {
	Threshold *float64 `yaml:"threshold,omitempty"`
	Light     *float64 `yaml:"light,omitempty"`
	Dark      *float64 `yaml:"dark,omitempty"`
}

// PixelateConfig contains the pixelation block size.
type PixelateConfig struct {
	Size *float64 `yaml:"size,omitempty"`
}

// BrightnessConfig contains the brightness delta.
type BrightnessConfig struct {
	Delta *float64 `yaml:"delta,omitempty"`
}

// BetaConfig contains a contrast or saturation beta.
type BetaConfig struct {
	Beta *float64 `yaml:"beta,omitempty"`
}

// GammaConfig contains the gamma exponent.
type GammaConfig struct {
	Gamma *float64 `yaml:"gamma,omitempty"`
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadOptional reads path if present, a missing file yields an empty Config.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	return cfg, nil
}

// Params resolves filter parameters over the library defaults.
func (c *Config) Params() imgfilter.Params {
	p := imgfilter.DefaultParams()
	set(&p.Threshold.Threshold, c.Threshold.Threshold)
	set(&p.Threshold.Light, c.Threshold.Light)
	set(&p.Threshold.Dark, c.Threshold.Dark)
	set(&p.Delta, c.Brightness.Delta)
	set(&p.Gamma, c.Gamma.Gamma)
	return p
}

// Beta returns the configured beta for the contrast or saturation filter.
func (c *Config) Beta(filter string) float64 {
	var b *float64
	switch filter {
	case "contrast":
		b = c.Contrast.Beta
	case "saturation":
		b = c.Saturation.Beta
	}
	if b == nil {
		return 0
	}
	return *b
}

// PixelateSize returns the configured block size.
func (c *Config) PixelateSize() float64 {
	size := imgfilter.DefaultPixelateOptions().Size
	set(&size, c.Pixelate.Size)
	return size
}

// SurfaceOptions returns surface options, validating the scaler name.
func (c *Config) SurfaceOptions() (func(o *surface.Options), error) {
	var sc surface.Scaler
	if c.Surface.Scaler != "" {
		var err error
		if sc, err = surface.ScalerByName(c.Surface.Scaler); err != nil {
			return nil, err
		}
	}

	return func(o *surface.Options) {
		o.Smoothing = c.Surface.Smoothing
		if sc != nil {
			o.Scaler = sc
		}
	}, nil
}

func set(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
