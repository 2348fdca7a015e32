// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Grid       GridConfig       `yaml:"grid"`
	Domain     DomainConfig     `yaml:"domain"`
	Sources    SourcesConfig    `yaml:"sources"`
	Simulation SimulationConfig `yaml:"simulation"`
	Display    DisplayConfig    `yaml:"display"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Export     ExportConfig     `yaml:"export"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds the contouring grid parameters.
type GridConfig struct {
	Width          int     `yaml:"width"`           // Grid points along X
	Height         int     `yaml:"height"`          // Grid points along Y
	Unit           float64 `yaml:"unit"`            // World units between grid points
	Threshold      float64 `yaml:"threshold"`       // Iso level
	MergeTolerance float64 `yaml:"merge_tolerance"` // 0 = exact point matching
}

// DomainConfig places the grid inside the window.
type DomainConfig struct {
	OriginX float64 `yaml:"origin_x"`
	OriginY float64 `yaml:"origin_y"`
}

// SourcesConfig holds metaball generation and animation parameters.
type SourcesConfig struct {
	Count          int     `yaml:"count"`
	RadiusMin      float64 `yaml:"radius_min"`
	RadiusMax      float64 `yaml:"radius_max"`
	Speed          float64 `yaml:"speed"`
	JitterMin      float64 `yaml:"jitter_min"`
	JitterMax      float64 `yaml:"jitter_max"`
	DecayMin       float64 `yaml:"decay_min"`
	DecayMax       float64 `yaml:"decay_max"`
	ClickRadiusMin float64 `yaml:"click_radius_min"`
	ClickRadiusMax float64 `yaml:"click_radius_max"`
	Respawn        bool    `yaml:"respawn"`
}

// SimulationConfig holds timing parameters.
type SimulationConfig struct {
	DT float64 `yaml:"dt"`
}

// DisplayConfig holds rendering options.
type DisplayConfig struct {
	GridSpacing   float64 `yaml:"grid_spacing"`
	HistoryLayers int     `yaml:"history_layers"`
	ShowGrid      bool    `yaml:"show_grid"`
	ShowSources   bool    `yaml:"show_sources"`
	LineWidth     float64 `yaml:"line_width"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds of sim time per stats window
	PerfWindow  int     `yaml:"perf_window"`  // Ticks in the perf rolling window
}

// ExportConfig holds contour snapshot export parameters.
type ExportConfig struct {
	PlotEvery    int     `yaml:"plot_every"`
	PlotWidthIn  float64 `yaml:"plot_width_in"`
	PlotHeightIn float64 `yaml:"plot_height_in"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32      float32 // Simulation.DT as float32
	ScreenW32 float32
	ScreenH32 float32
	DomainW   float64 // Grid.Width * Grid.Unit
	DomainH   float64 // Grid.Height * Grid.Unit
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate checks values the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Grid.Width < 2 || c.Grid.Height < 2 {
		errs = append(errs, fmt.Errorf("grid: need at least 2x2 points, got %dx%d", c.Grid.Width, c.Grid.Height))
	}
	if c.Grid.Unit <= 0 {
		errs = append(errs, fmt.Errorf("grid: unit must be positive, got %v", c.Grid.Unit))
	}
	if c.Simulation.DT <= 0 {
		errs = append(errs, fmt.Errorf("simulation: dt must be positive, got %v", c.Simulation.DT))
	}
	if c.Sources.Count < 0 {
		errs = append(errs, fmt.Errorf("sources: count must not be negative, got %d", c.Sources.Count))
	}
	if c.Sources.RadiusMin < 0 || c.Sources.RadiusMax < c.Sources.RadiusMin {
		errs = append(errs, fmt.Errorf("sources: bad radius range [%v, %v]", c.Sources.RadiusMin, c.Sources.RadiusMax))
	}
	if c.Sources.JitterMin <= 0 || c.Sources.JitterMax < c.Sources.JitterMin {
		errs = append(errs, fmt.Errorf("sources: bad jitter range [%v, %v]", c.Sources.JitterMin, c.Sources.JitterMax))
	}
	if c.Sources.DecayMax < c.Sources.DecayMin {
		errs = append(errs, fmt.Errorf("sources: bad decay range [%v, %v]", c.Sources.DecayMin, c.Sources.DecayMax))
	}
	if c.Sources.ClickRadiusMax < c.Sources.ClickRadiusMin {
		errs = append(errs, fmt.Errorf("sources: bad click radius range [%v, %v]", c.Sources.ClickRadiusMin, c.Sources.ClickRadiusMax))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Simulation.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.DomainW = float64(c.Grid.Width) * c.Grid.Unit
	c.Derived.DomainH = float64(c.Grid.Height) * c.Grid.Unit
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
