package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/orbitsim/internal/engine"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/scale"
	"github.com/san-kum/orbitsim/internal/scenario"
	"gopkg.in/yaml.v3"
)

const (
	DefaultScenario    = "sun-earth"
	DefaultSpeed       = 86400.0 // one simulated day per wall second
	DefaultSubSteps    = 24
	DefaultFrameDt     = 1.0 / 60
	DefaultDuration    = 365.25 * 86400
	DefaultRecordEvery = 60
)

// Config describes one headless or interactive run. Duration is simulated
// seconds; FrameDt is the wall-clock length of a frame.
type Config struct {
	Scenario      string  `yaml:"scenario"`
	Scheme        string  `yaml:"scheme"`
	Speed         float64 `yaml:"speed"`
	SubSteps      int     `yaml:"sub_steps"`
	FrameDt       float64 `yaml:"frame_dt"`
	Duration      float64 `yaml:"duration"`
	MetersPerUnit float64 `yaml:"meters_per_unit"`
	Selected      string  `yaml:"selected"`
	RecordEvery   int     `yaml:"record_every"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:      DefaultScenario,
		Scheme:        integrators.Default.String(),
		Speed:         DefaultSpeed,
		SubSteps:      DefaultSubSteps,
		FrameDt:       DefaultFrameDt,
		Duration:      DefaultDuration,
		MetersPerUnit: scale.DefaultMetersPerUnit,
		RecordEvery:   DefaultRecordEvery,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports every problem with the config at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := scenario.Get(c.Scenario); err != nil {
		errs = append(errs, err)
	}
	if _, err := integrators.ParseScheme(c.Scheme); err != nil {
		errs = append(errs, err)
	}
	if !positive(c.Speed) {
		errs = append(errs, fmt.Errorf("speed must be positive, got %v", c.Speed))
	}
	if c.SubSteps < 1 || c.SubSteps > engine.MaxSubSteps {
		errs = append(errs, fmt.Errorf("sub_steps must be in [1, %d], got %d", engine.MaxSubSteps, c.SubSteps))
	}
	if !positive(c.FrameDt) {
		errs = append(errs, fmt.Errorf("frame_dt must be positive, got %v", c.FrameDt))
	}
	if !positive(c.Duration) {
		errs = append(errs, fmt.Errorf("duration must be positive, got %v", c.Duration))
	}
	if _, err := scale.New(c.MetersPerUnit); err != nil {
		errs = append(errs, err)
	}
	if c.RecordEvery < 0 {
		errs = append(errs, fmt.Errorf("record_every must not be negative, got %d", c.RecordEvery))
	}
	return errors.Join(errs...)
}

// ParsedScheme returns the configured scheme, or the default if it does
// not parse.
func (c *Config) ParsedScheme() integrators.Scheme {
	s, err := integrators.ParseScheme(c.Scheme)
	if err != nil {
		return integrators.Default
	}
	return s
}

// SimPerFrame is the simulated time covered by one frame.
func (c *Config) SimPerFrame() float64 {
	return c.FrameDt * c.Speed
}

// Frames is the number of frames needed to cover Duration.
func (c *Config) Frames() int {
	per := c.SimPerFrame()
	if !positive(per) || !positive(c.Duration) {
		return 0
	}
	return int(math.Ceil(c.Duration / per))
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
