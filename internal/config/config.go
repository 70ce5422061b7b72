// Package config holds the settings of one verification run.
package config

import (
	"time"

	"robustscan/internal/network"
	"robustscan/internal/robustness"
	"robustscan/internal/util"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Range struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high" validate:"gtefield=Low"`
}

type Solver struct {
	Verbosity int           `yaml:"verbosity" validate:"gte=0"`
	Timeout   time.Duration `yaml:"timeout" validate:"gt=0"`
}

type Config struct {
	Network     string  `yaml:"network" validate:"required"`
	Dataset     string  `yaml:"dataset" validate:"required"`
	Delta       float64 `yaml:"delta" validate:"gte=0"`
	Range       Range   `yaml:"range"`
	Solver      Solver  `yaml:"solver"`
	Workers     int     `yaml:"workers" validate:"gte=1"`
	MetricsAddr string  `yaml:"metrics_addr" validate:"omitempty,hostname_port"`

	// ThreadSafeSolver declares that libyices was built thread-safe. More
	// than one worker is refused without it.
	ThreadSafeSolver bool `yaml:"thread_safe_solver"`
}

const DefaultDelta = 0.001

func Default() *Config {
	return &Config{
		Delta: DefaultDelta,
		Range: Range{Low: 0, High: 1},
		Solver: Solver{
			Verbosity: 1,
			Timeout:   network.DefaultTimeout,
		},
		Workers: 1,
	}
}

// Load overlays a YAML file on the defaults. An empty source yields the
// defaults.
func Load(source string) (*Config, error) {
	cfg := Default()
	if source == "" {
		return cfg, nil
	}
	data, err := util.ReadSource(source)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", source)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", source)
	}
	return cfg, nil
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	if c.Workers > 1 && !c.ThreadSafeSolver {
		return errors.Errorf("invalid config: %d workers need a thread-safe libyices, set thread_safe_solver", c.Workers)
	}
	return nil
}

func (c *Config) Perturbation() robustness.Perturbation {
	return robustness.Perturbation{
		Delta: c.Delta,
		Low:   c.Range.Low,
		High:  c.Range.High,
	}
}

func (c *Config) SolveOptions() network.SolveOptions {
	return network.SolveOptions{
		Verbosity: c.Solver.Verbosity,
		Timeout:   c.Solver.Timeout,
	}
}
