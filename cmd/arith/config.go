package main

import (
	"io"
	"os"
	"runtime"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/arith"
)

// Config holds the settings that may come from a config file. Flags override
// anything loaded from a file.
type Config struct {
	AngleUnit arith.AngleUnit `yaml:"angle_unit"`
	// Format is the fmt verb used to print results.
	Format  string `yaml:"format"`
	Workers int    `yaml:"workers"`
	Echo    bool   `yaml:"echo"`
	Dump    bool   `yaml:"dump"`
}

// DefaultConfig returns the settings used when neither a config file nor a
// flag says otherwise.
func DefaultConfig() Config {
	return Config{
		AngleUnit: arith.Radian,
		Format:    "%g",
		Workers:   runtime.GOMAXPROCS(0),
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, errors.Wrap(err, "unable to read config file")
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, errors.Wrapf(err, "unable to unmarshal config file %s", path)
	}
	return cfg, cfg.Validate()
}

// Validate reports settings that cannot work.
func (cfg Config) Validate() error {
	if cfg.Workers < 1 {
		return errors.Errorf("workers must be positive, not %d", cfg.Workers)
	}
	if cfg.Format == "" {
		return errors.New("format must not be empty")
	}
	switch cfg.AngleUnit {
	case arith.Radian, arith.Degree:
		return nil
	default:
		return errors.Errorf("invalid angle unit %v", cfg.AngleUnit)
	}
}
