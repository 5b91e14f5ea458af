// Package runconfig holds the settings of one command-line NBS run and reads
// them from YAML.
package runconfig

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/TrevorS/nbs"
)

// Config is a complete run description. Keys absent from a YAML file keep
// the values from Default.
type Config struct {
	GroupX       string  `yaml:"group_x"`
	GroupY       string  `yaml:"group_y"`
	Threshold    float64 `yaml:"threshold"`
	Tail         string  `yaml:"tail"`
	Permutations int     `yaml:"permutations"`
	Seed         uint64  `yaml:"seed"`
	Workers      int     `yaml:"workers"`
	Alpha        float64 `yaml:"alpha"`
	Output       string  `yaml:"output"`
	DOT          string  `yaml:"dot"`
}

// Default returns the settings used when neither a file nor a flag sets them.
func Default() Config {
	d := nbs.DefaultConfig()
	return Config{
		Threshold:    d.Threshold,
		Tail:         string(d.Tail),
		Permutations: d.Permutations,
		Alpha:        0.05,
	}
}

// Load reads path on top of Default. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("runconfig: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("runconfig: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings that the engine does not check itself.
func (c Config) Validate() error {
	if c.GroupX == "" || c.GroupY == "" {
		return errors.New("runconfig: both group_x and group_y are required")
	}
	if c.Alpha <= 0 || c.Alpha > 1 || math.IsNaN(c.Alpha) {
		return fmt.Errorf("runconfig: alpha must be in (0, 1], got %v", c.Alpha)
	}
	_, err := c.Engine()
	return err
}

// Engine converts the run settings into an engine configuration.
func (c Config) Engine() (nbs.Config, error) {
	tail, err := nbs.ParseTail(c.Tail)
	if err != nil {
		return nbs.Config{}, err
	}
	if c.Permutations <= 0 {
		return nbs.Config{}, fmt.Errorf("runconfig: permutations must be > 0, got %d: %w", c.Permutations, nbs.ErrInvalidArgument)
	}
	if c.Workers < 0 {
		return nbs.Config{}, fmt.Errorf("runconfig: workers must be >= 0, got %d: %w", c.Workers, nbs.ErrInvalidArgument)
	}
	return nbs.Config{
		Threshold:    c.Threshold,
		Tail:         tail,
		Permutations: c.Permutations,
		Seed:         c.Seed,
		Workers:      c.Workers,
	}, nil
}
